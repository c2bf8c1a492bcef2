package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/bzharness/internal/config"
	"github.com/harrison/bzharness/internal/executor"
	"github.com/harrison/bzharness/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testsDir creates a tests directory holding the given fixtures.
func testsDir(t *testing.T, files map[string]string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "tests")
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(helperEnv, "1")

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	root := NewRootCommand()
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml")))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

var passing = map[string]string{
	"success/ok.bz":   "",
	"warning/warn.bz": "#stderr // warning: unused variable\n",
	"error/x.bz":      "// error: undeclared identifier 'x'\n#stderr error: undeclared identifier 'x'\n#exit 3\n",
}

func TestRunAllPass(t *testing.T) {
	dir := testsDir(t, passing)

	out, _, err := execute(t, "run", "--compiler", os.Args[0], "--tests-dir", dir, "-j", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "running tests in "+filepath.ToSlash(dir)+"/success:")
	assert.Equal(t, 3, strings.Count(out, "OK\n"))
	assert.Contains(t, out, "total: 3/3 (100.00%) tests passed")
	assert.NotContains(t, out, "\x1b[", "color is off for non-terminals")
}

func TestRunReportsFailures(t *testing.T) {
	dir := testsDir(t, map[string]string{
		"success/ok.bz": "",
		"error/y.bz":    "// error: undeclared identifier 'x'\n#stderr error: undeclared identifier 'y'\n#exit 3\n",
	})

	out, _, err := execute(t, "run", "--compiler", os.Args[0], "--tests-dir", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFixturesFailed))
	assert.Contains(t, err.Error(), "1 of 2")

	assert.Contains(t, out, "total: 1/2 (50.00%) tests passed")
	assert.Contains(t, out, "FAILED: "+filepath.ToSlash(dir)+"/error/y.bz:")
}

func TestRunCategorySelection(t *testing.T) {
	dir := testsDir(t, map[string]string{
		"success/bad.bz": "#exit 1\n",
		"error/x.bz":     passing["error/x.bz"],
	})

	out, _, err := execute(t, "run", "--compiler", os.Args[0], "--tests-dir", dir, "--tests", "error")
	require.NoError(t, err)
	assert.NotContains(t, out, "bad.bz")
	assert.Contains(t, out, "total: 1/1")
}

func TestRunMissingCompiler(t *testing.T) {
	dir := testsDir(t, passing)

	_, _, err := execute(t, "run", "--compiler", filepath.Join(t.TempDir(), "bozon"), "--tests-dir", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, executor.ErrSpawn))
	assert.False(t, errors.Is(err, ErrFixturesFailed))
}

func TestRunInvalidConfig(t *testing.T) {
	_, _, err := execute(t, "run", "--tests", "behavior")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalid))
}

func TestRunNoFixtures(t *testing.T) {
	out, _, err := execute(t, "run", "--compiler", os.Args[0], "--tests-dir", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "no fixtures found\n", out)
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	dir := testsDir(t, map[string]string{"success/ok.bz": ""})

	out, errOut, err := execute(t, "run", "--compiler", os.Args[0], "--tests-dir", dir, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, errOut, "[DEBUG] Starting success phase: 1 fixture, 1 commands, concurrency 1")
	assert.Contains(t, errOut, "launched [1/1]")
	assert.NotContains(t, out, "[DEBUG]")
}

func TestRunWritesLogDir(t *testing.T) {
	dir := testsDir(t, passing)
	logDir := filepath.Join(t.TempDir(), "logs")

	_, errOut, err := execute(t, "run", "--compiler", os.Args[0], "--tests-dir", dir, "--log-dir", logDir, "--log-level", "info")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Run log: "+filepath.Join(logDir, "run-"))

	data, err := os.ReadFile(filepath.Join(logDir, logger.LatestLogName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "=== Run Summary ===")
	assert.Contains(t, string(data), "Total: 3/3 (100.00%)")
}

func TestRunHelpDocumentsExitStatus(t *testing.T) {
	out, _, err := execute(t, "run", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "the harness itself could not run")
}

func TestListCommand(t *testing.T) {
	dir := testsDir(t, map[string]string{
		"success/ok.bz":     "",
		"error/x.bz":        "// error: A\n// note: B\nbody\n",
		"error/bare.bz":     "body\n",
		"warning/ignore.md": "not a fixture",
	})

	out, _, err := execute(t, "list", "--tests-dir", dir)
	require.NoError(t, err)

	slash := filepath.ToSlash(dir)
	assert.Contains(t, out, "success (1):\n    "+slash+"/success/ok.bz\n")
	assert.Contains(t, out, "warning (0):\n")
	assert.Contains(t, out, "    "+slash+"/error/bare.bz\n        (no expected diagnostics)\n")
	assert.Contains(t, out, "    "+slash+"/error/x.bz\n        error: A\n        note: B\n")
	assert.Contains(t, out, "3 fixture(s)\n")
}
