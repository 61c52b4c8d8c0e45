package versioner

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileVersions renders the current per-file versions. The text format is one
// "<version>  <path>" line per file.
func (m *Manager) FileVersions(format string) (string, error) {
	versions := make(map[string]string, len(m.current.files))
	for path, fv := range m.current.files {
		versions[path] = fv.Version
	}

	switch format {
	case FormatText:
		lines := make([]string, 0, len(versions))
		for _, path := range sortedKeys(versions) {
			lines = append(lines, versions[path]+"  "+path)
		}
		return strings.Join(lines, "\n"), nil
	case FormatJSON:
		data, err := json.MarshalIndent(versions, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(versions)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}
