package filelist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "tracked.list")
	content := "# tracked sources\n\nsrc/b.go\n  src/a.go  \n./src/../src/a.go\n# trailing comment\n"
	require.NoError(t, os.WriteFile(list, []byte(content), 0644))

	tests := []struct {
		name      string
		args      []string
		listFiles []string
		want      []string
		wantErr   bool
	}{
		{
			name: "Args only",
			args: []string{"b.txt", "a.txt", "./a.txt", " "},
			want: []string{"a.txt", "b.txt"},
		},
		{
			name:      "List file",
			listFiles: []string{list},
			want:      []string{"src/a.go", "src/b.go"},
		},
		{
			name:      "Args and list file",
			args:      []string{"src/a.go", "README"},
			listFiles: []string{list},
			want:      []string{"README", "src/a.go", "src/b.go"},
		},
		{
			name: "Nothing",
			want: []string{},
		},
		{
			name:      "Missing list file",
			listFiles: []string{filepath.Join(dir, "absent.list")},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Collect(tt.args, tt.listFiles)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
