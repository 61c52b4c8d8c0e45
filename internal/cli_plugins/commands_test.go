package cliplugins

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fileversion/internal/cli"
	"fileversion/internal/db"
	"fileversion/internal/hasher"
	pkgcli "fileversion/pkg/cli"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runContext(t, context.Background(), args...)
}

func runContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	app := cli.NewAppContext(&out, &errOut)
	c := pkgcli.NewCLI(cli.NewRootCommand(app))
	for _, p := range All(app) {
		c.RegisterPlugin(p)
	}
	c.Root().SetArgs(args)
	c.Root().SetOut(&out)
	c.Root().SetErr(&errOut)

	err := errors.Join(c.Run(ctx), app.Close())
	return out.String(), err
}

type fixture struct {
	dir      string
	a, b     string
	revision string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:      dir,
		a:        filepath.Join(dir, "a.txt"),
		b:        filepath.Join(dir, "b.txt"),
		revision: filepath.Join(dir, "rev", "fileversion.json"),
	}
	require.NoError(t, os.WriteFile(f.a, []byte("one\ntwo\nthree\n"), 0644))
	require.NoError(t, os.WriteFile(f.b, []byte("alpha\nbeta"), 0644))
	return f
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestCheckCommand_Lifecycle(t *testing.T) {
	f := newFixture(t)

	// Без --write и без записи файл ревизий не создаётся
	out, err := run(t, "check", "-r", f.revision, f.a, f.b)
	require.NoError(t, err)
	assert.Contains(t, out, "[new]                "+f.a)
	assert.Contains(t, out, "[new]                "+f.b)
	assert.NoFileExists(t, f.revision)

	out, err = run(t, "check", "-r", f.revision, "--write", f.a, f.b)
	require.NoError(t, err)
	assert.Contains(t, out, "Version: "+md5Hex("one\ntwo\nthree\nalpha\nbeta"))
	assert.FileExists(t, f.revision)

	out, err = run(t, "check", "-r", f.revision, f.a, f.b)
	require.NoError(t, err)
	assert.Contains(t, out, "[unchanged]          "+f.a)
	assert.Contains(t, out, "[unchanged]          "+f.b)

	// Изменяем вторую строку и удаляем b.txt; запись уже есть, поэтому она обновляется
	require.NoError(t, os.WriteFile(f.a, []byte("one\nTWO\nthree\n"), 0644))
	require.NoError(t, os.Remove(f.b))

	out, err = run(t, "check", "-r", f.revision, "--show-unchanged=false", f.a, f.b)
	require.NoError(t, err)
	assert.Contains(t, out, "[modified]           "+f.a+"\n   Modified Lines: [2]\n   Missing Lines:  [2]\n")
	assert.Contains(t, out, "[missing]            "+f.b)
	assert.Contains(t, out, "Version: "+md5Hex("one\nTWO\nthree\n"))

	out, err = run(t, "check", "-r", f.revision, "--show-unchanged=false", f.a, f.b)
	require.NoError(t, err)
	assert.NotContains(t, out, f.a)
	assert.Contains(t, out, "[new & missing]      "+f.b)
}

func TestCheckCommand_FailOnChange(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, "check", "-r", f.revision, "--write", "--fail-on-change", f.a)
	assert.ErrorIs(t, err, cli.ErrVersionChanged)

	_, err = run(t, "check", "-r", f.revision, "--fail-on-change", f.a)
	assert.NoError(t, err)
}

func TestCheckCommand_ListFile(t *testing.T) {
	f := newFixture(t)
	list := filepath.Join(f.dir, "tracked.list")
	require.NoError(t, os.WriteFile(list, []byte("# tracked\n"+f.b+"\n"), 0644))

	out, err := run(t, "check", "-r", f.revision, "--list", list, f.a)
	require.NoError(t, err)
	assert.Contains(t, out, f.a)
	assert.Contains(t, out, f.b)
}

func TestCheckCommand_Dir(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "files", "-r", f.revision, "--dir", f.dir)
	require.NoError(t, err)
	assert.Equal(t, md5Hex("one\ntwo\nthree\n")+"  "+f.a+"\n"+md5Hex("alpha\nbeta")+"  "+f.b+"\n", out)
}

func TestFlagsOverrideInvalidEnv(t *testing.T) {
	f := newFixture(t)
	t.Setenv("FILEVERSION_HASH", "bogus")

	out, err := run(t, "-a", "sha256", "algorithms")
	require.NoError(t, err)
	assert.Contains(t, out, "sha256\n")

	out, err = run(t, "version", "-r", f.revision, "-a", "sha1", f.a)
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 40)

	_, err = run(t, "version", "-r", f.revision, f.a)
	assert.ErrorIs(t, err, hasher.ErrUnsupportedAlgorithm)
}

func TestCheckCommand_Errors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "No paths", args: []string{"check", "-r", f.revision}, wantErr: cli.ErrNoPaths},
		{name: "Unknown algorithm", args: []string{"check", "-a", "lookup3", f.a}},
		{name: "Unknown store", args: []string{"check", "--store", "s3", f.a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "version", "-r", f.revision, f.b, f.a)
	require.NoError(t, err)
	assert.Equal(t, md5Hex("one\ntwo\nthree\nalpha\nbeta")+"\n", out)
	assert.NoFileExists(t, f.revision)

	out, err = run(t, "version", "-r", f.revision, "-a", "sha1", "--write", f.a)
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 40)
	assert.FileExists(t, f.revision)
}

func TestFilesCommand(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		format string
		want   []string
	}{
		{name: "Text", format: "text", want: []string{md5Hex("one\ntwo\nthree\n") + "  " + f.a}},
		{name: "JSON", format: "json", want: []string{`"` + f.a + `": "` + md5Hex("one\ntwo\nthree\n") + `"`}},
		{name: "YAML", format: "yaml", want: []string{f.a + ":", md5Hex("alpha\nbeta")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "files", "-r", f.revision, "--format", tt.format, f.a, f.b)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}

	_, err := run(t, "files", "-r", f.revision, "--format", "xml", f.a)
	assert.Error(t, err)
}

func TestAlgorithmsCommand(t *testing.T) {
	out, err := run(t, "algorithms")
	require.NoError(t, err)
	assert.Contains(t, out, "md5 (default)\n")
	assert.Contains(t, out, "sha256\n")
	assert.Contains(t, out, "xxh3\n")
}

func TestHistoryCommand(t *testing.T) {
	f := newFixture(t)
	bolt := []string{"--store", "bolt", "--bolt-path", filepath.Join(f.dir, "db", "records.db"), "--name", "web"}

	_, err := run(t, append([]string{"check", "--write", f.a}, bolt...)...)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(f.a, []byte("changed\n"), 0644))
	_, err = run(t, append([]string{"check", f.a}, bolt...)...)
	require.NoError(t, err)

	out, err := run(t, append([]string{"history"}, bolt...)...)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], md5Hex("one\ntwo\nthree\n"))
	assert.Contains(t, lines[1], md5Hex("changed\n"))

	out, err = run(t, append([]string{"history", "--names"}, bolt...)...)
	require.NoError(t, err)
	assert.Equal(t, "web\n", out)

	_, err = run(t, append([]string{"reset"}, bolt...)...)
	require.NoError(t, err)
	out, err = run(t, append([]string{"history", "--names"}, bolt...)...)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "history", "-r", f.revision)
	assert.ErrorIs(t, err, cli.ErrNotBoltStore)
}

func TestHistoryCommand_GobSerializer(t *testing.T) {
	f := newFixture(t)
	dbPath := filepath.Join(f.dir, "records.db")
	bolt := []string{"--store", "bolt", "--bolt-path", dbPath, "--name", "web", "--serializer", "gob"}

	_, err := run(t, append([]string{"check", "--write", f.a}, bolt...)...)
	require.NoError(t, err)

	out, err := run(t, append([]string{"check", f.a}, bolt...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "[unchanged]")

	out, err = run(t, append([]string{"history"}, bolt...)...)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)

	// Записи в gob не читаются как JSON
	_, err = run(t, "check", "--store", "bolt", "--bolt-path", dbPath, "--name", "web", f.a)
	assert.Error(t, err)

	_, err = run(t, append([]string{"check", f.a}, "--store", "bolt", "--bolt-path", dbPath, "--serializer", "yaml")...)
	assert.ErrorIs(t, err, db.ErrUnknownSerializer)
}

func TestResetCommand_RevisionFile(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, "check", "-r", f.revision, "--write", f.a)
	require.NoError(t, err)
	require.FileExists(t, f.revision)

	_, err = run(t, "reset", "-r", f.revision)
	require.NoError(t, err)
	assert.NoFileExists(t, f.revision)

	_, err = run(t, "reset", "-r", f.revision)
	assert.NoError(t, err)
}

func TestWatchCommand(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var out string
	var err error
	go func() {
		defer close(done)
		out, err = runContext(t, ctx, "watch", "-r", f.revision, "--write", "--debounce", "50ms", f.a)
	}()

	assert.Eventually(t, func() bool {
		_, statErr := os.Stat(f.revision)
		return statErr == nil
	}, 2*time.Second, 20*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(f.a, []byte("one\ntwo\nthree\nfour\n"), 0644))

	assert.Eventually(t, func() bool {
		data, readErr := os.ReadFile(f.revision)
		return readErr == nil && strings.Contains(string(data), md5Hex("one\ntwo\nthree\nfour\n"))
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
	require.NoError(t, err)
	assert.Contains(t, out, "[new]                "+f.a)
}
