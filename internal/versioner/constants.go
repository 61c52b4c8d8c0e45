package versioner

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const (
	DefaultPermissions = 0644
)
