package filelist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{
		"a.txt",
		"sub/b.txt",
		"sub/deeper/c.txt",
		".hidden",
		".git/config",
		"sub/.cache/d.txt",
	} {
		full := filepath.Join(root, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(p), 0644))
	}

	got, err := Scan(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "sub", "b.txt"),
		filepath.Join(root, "sub", "deeper", "c.txt"),
	}, got)
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
