package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "bzharness")
	assert.Contains(t, buf.String(), "bozon compiler")
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "bzharness", cmd.Use)

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["run"], "run subcommand missing")
	assert.True(t, names["list"], "list subcommand missing")
}

func TestRunCommandFlags(t *testing.T) {
	cmd := NewRunCommand()

	for _, name := range []string{"config", "compiler", "tests-dir", "tests", "concurrency", "color", "log-level", "verbose", "log-dir"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag --%s missing", name)
	}
	assert.Equal(t, "j", cmd.Flags().Lookup("concurrency").Shorthand)
}
