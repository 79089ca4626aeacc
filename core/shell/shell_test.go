package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/rshell-sh/rshell/core/config"
	"github.com/rshell-sh/rshell/core/history"
	"github.com/rshell-sh/rshell/core/logger"
)

// testShell is a Shell with captured streams and an in-memory history
// store. It has no readline instance; tests drive Execute and the builtins
// directly.
type testShell struct {
	*Shell
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	fs     afero.Fs
}

func newTestShell(t *testing.T, env map[string]string) *testShell {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	fs := afero.NewMemMapFs()
	cfg := config.Default()

	sh := &Shell{
		config:  cfg,
		history: history.NewStore(fs, "/hist", cfg.HistorySize, cfg.HistoryFileSize),
		log:     logger.NewNop(),
		stdin:   strings.NewReader(""),
		stdout:  stdout,
		stderr:  stderr,
		getenv: func(key string) string {
			return env[key]
		},
	}

	return &testShell{Shell: sh, stdout: stdout, stderr: stderr, fs: fs}
}

// chdirTemp moves the process into a fresh temp directory for the duration
// of the test and returns its symlink-resolved path.
func chdirTemp(t *testing.T) string {
	t.Helper()

	orig, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return dir
}

func mkdirAt(t *testing.T, base, name string) string {
	t.Helper()

	dir := filepath.Join(base, name)
	require.NoError(t, os.Mkdir(dir, 0755))

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return resolved
}
