package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshell-sh/rshell/core/history"
)

func TestCdRecordsPreviousAndSwapsBack(t *testing.T) {
	base := chdirTemp(t)
	dirA := mkdirAt(t, base, "a")
	dirB := mkdirAt(t, base, "b")

	require.NoError(t, os.Chdir(dirA))
	ts := newTestShell(t, nil)

	assert.Equal(t, 0, Cd(ts.Shell, []string{"cd", dirB}))
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, dirB, wd)

	// cd - swaps back and prints the destination.
	assert.Equal(t, 0, Cd(ts.Shell, []string{"cd", "-"}))
	wd, err = os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, dirA, wd)
	assert.Contains(t, ts.stdout.String(), dirA)
}

func TestCdDashWithoutPrevious(t *testing.T) {
	base := chdirTemp(t)
	ts := newTestShell(t, nil)

	assert.Equal(t, 1, Cd(ts.Shell, []string{"cd", "-"}))
	assert.Contains(t, ts.stderr.String(), "previous directory")

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, base, wd, "failed cd must leave the directory alone")
}

func TestCdNoArgsGoesHome(t *testing.T) {
	base := chdirTemp(t)
	home := mkdirAt(t, base, "home")
	ts := newTestShell(t, map[string]string{"HOME": home})

	assert.Equal(t, 0, Cd(ts.Shell, []string{"cd"}))
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, home, wd)
}

func TestCdNoArgsAtHomeIsNoop(t *testing.T) {
	home := chdirTemp(t)
	ts := newTestShell(t, map[string]string{"HOME": home})

	assert.Equal(t, 0, Cd(ts.Shell, []string{"cd"}))
	assert.False(t, ts.dirs.hasPrev, "a no-op cd must not record a previous directory")
}

func TestCdTildeExpansion(t *testing.T) {
	home := chdirTemp(t)
	sub := mkdirAt(t, home, "x")
	ts := newTestShell(t, map[string]string{"HOME": home})

	assert.Equal(t, 0, Cd(ts.Shell, []string{"cd", "~/x"}))
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, sub, wd)
}

func TestCdBadTarget(t *testing.T) {
	base := chdirTemp(t)
	ts := newTestShell(t, nil)

	assert.Equal(t, 1, Cd(ts.Shell, []string{"cd", filepath.Join(base, "missing")}))
	assert.NotEmpty(t, ts.stderr.String())
	assert.False(t, ts.dirs.hasPrev)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, base, wd)
}

func TestCdTooManyArguments(t *testing.T) {
	ts := newTestShell(t, nil)
	assert.Equal(t, 1, Cd(ts.Shell, []string{"cd", "a", "b"}))
	assert.Contains(t, ts.stderr.String(), "too many arguments")
}

func TestExpandTilde(t *testing.T) {
	cases := []struct {
		path     string
		expected string
	}{
		{"~", "/home/u"},
		{"~/", "/home/u"},
		{"~/x", "/home/u/x"},
		{"~/x/y", "/home/u/x/y"},
		{"~x", "/home/u/x"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.expected, expandTilde(tc.path, "/home/u"))
		})
	}
}

func TestPwdDefaultQueriesOS(t *testing.T) {
	ts := newTestShell(t, map[string]string{"PWD": "/stale"})

	assert.Equal(t, 0, Pwd(ts.Shell, []string{"pwd"}))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd+"\n", ts.stdout.String())
}

func TestPwdLogicalPrefersEnvironment(t *testing.T) {
	ts := newTestShell(t, map[string]string{"PWD": "/fake/logical"})

	assert.Equal(t, 0, Pwd(ts.Shell, []string{"pwd", "-L"}))
	assert.Equal(t, "/fake/logical\n", ts.stdout.String())
}

func TestPwdLogicalFallsBackWhenUnset(t *testing.T) {
	ts := newTestShell(t, nil)

	assert.Equal(t, 0, Pwd(ts.Shell, []string{"pwd", "-L"}))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd+"\n", ts.stdout.String())
}

func TestPwdPhysicalBeatsLogical(t *testing.T) {
	ts := newTestShell(t, map[string]string{"PWD": "/fake/logical"})

	assert.Equal(t, 0, Pwd(ts.Shell, []string{"pwd", "-L", "-P"}))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd+"\n", ts.stdout.String())
}

func TestPwdUnknownFlag(t *testing.T) {
	ts := newTestShell(t, nil)

	assert.Equal(t, 1, Pwd(ts.Shell, []string{"pwd", "-z"}))
	assert.Empty(t, ts.stdout.String(), "a usage error must produce no path output")
	assert.NotEmpty(t, ts.stderr.String())
}

func TestPwdRejectsPositionalArgs(t *testing.T) {
	ts := newTestShell(t, nil)

	assert.Equal(t, 1, Pwd(ts.Shell, []string{"pwd", "foo"}))
	assert.Empty(t, ts.stdout.String(), "a usage error must produce no path output")
	assert.Contains(t, ts.stderr.String(), "foo")
}

func TestPwdHelpPrintsNoPath(t *testing.T) {
	ts := newTestShell(t, nil)

	assert.Equal(t, 0, Pwd(ts.Shell, []string{"pwd", "-h"}))
	assert.Contains(t, ts.stdout.String(), "usage: pwd")

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.NotContains(t, ts.stdout.String(), wd+"\n")
}

func TestHelp(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = noColor
	})

	ts := newTestShell(t, nil)
	assert.Equal(t, 0, Help(ts.Shell, []string{"help"}))

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithTestNameForDir(true),
	)
	g.Assert(t, "help", ts.stdout.Bytes())
}

func TestExit(t *testing.T) {
	ts := newTestShell(t, nil)
	assert.Equal(t, 0, Exit(ts.Shell, []string{"exit"}))
	assert.True(t, ts.quit)
}

func TestHistoryList(t *testing.T) {
	ts := newTestShell(t, nil)
	ts.history.Accept("echo one")
	ts.history.Accept("echo two")

	assert.Equal(t, 0, History(ts.Shell, []string{"history"}))

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithTestNameForDir(true),
	)
	g.Assert(t, "listing", ts.stdout.Bytes())
}

func TestHistoryUnknownFlag(t *testing.T) {
	ts := newTestShell(t, nil)
	ts.history.Accept("kept")

	assert.Equal(t, 1, History(ts.Shell, []string{"history", "-x"}))
	assert.Empty(t, ts.stdout.String())
	assert.Equal(t, []string{"kept"}, ts.history.List(), "a usage error must not change state")
}

func TestHistoryHelpFlagIsUsageError(t *testing.T) {
	ts := newTestShell(t, nil)
	ts.history.Accept("kept")

	// history takes only -c and -w; even -h is an unrecognized input.
	assert.Equal(t, 1, History(ts.Shell, []string{"history", "-h"}))
	assert.Empty(t, ts.stdout.String())
	assert.Contains(t, ts.stderr.String(), "usage: history")
	assert.Equal(t, []string{"kept"}, ts.history.List())
}

func TestHistoryRejectsPositionalArgs(t *testing.T) {
	ts := newTestShell(t, nil)

	assert.Equal(t, 1, History(ts.Shell, []string{"history", "bogus"}))
	assert.Contains(t, ts.stderr.String(), "usage: history")
}

func TestHistoryClearPersistsImmediately(t *testing.T) {
	ts := newTestShell(t, nil)
	ts.history.Accept("doomed")
	require.NoError(t, ts.history.Persist())

	assert.Equal(t, 0, History(ts.Shell, []string{"history", "-c"}))
	assert.Equal(t, 0, ts.history.Len())

	fresh := history.NewStore(ts.fs, "/hist", 10, 10)
	require.NoError(t, fresh.Load())
	assert.Empty(t, fresh.List())
}

func TestHistoryWrite(t *testing.T) {
	ts := newTestShell(t, nil)
	ts.history.Accept("persist me")

	assert.Equal(t, 0, History(ts.Shell, []string{"history", "-w"}))

	fresh := history.NewStore(ts.fs, "/hist", 10, 10)
	require.NoError(t, fresh.Load())
	assert.Equal(t, []string{"persist me"}, fresh.List())
}
