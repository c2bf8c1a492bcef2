package executor

import (
	"testing"

	"github.com/harrison/bzharness/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommands(t *testing.T) {
	flags := []string{"--stdlib-dir", "bozon-stdlib", "-Wall"}
	fixtures := []models.Fixture{{Path: "tests/success/a.bz"}, {Path: "tests/success/b.bz"}}

	commands := BuildCommands("bozon", flags, fixtures)
	require.Len(t, commands, 2)
	assert.Equal(t, []string{"bozon", "--stdlib-dir", "bozon-stdlib", "-Wall", "tests/success/a.bz"}, commands[0].Args)
	assert.Equal(t, "tests/success/b.bz", commands[1].Args[len(commands[1].Args)-1])

	// The flag slice is not shared between commands.
	commands[0].Args[1] = "changed"
	assert.Equal(t, "--stdlib-dir", commands[1].Args[1])
	assert.Equal(t, "--stdlib-dir", flags[0])
}

func TestBuildPairsAndFlatten(t *testing.T) {
	fixtures := []models.Fixture{{Path: "e1.bz"}, {Path: "e2.bz"}}

	pairs := BuildPairs("bozon", []string{"-Wall"}, "--return-zero-on-error", fixtures)
	require.Len(t, pairs, 2)
	assert.Equal(t, []string{"bozon", "-Wall", "e1.bz"}, pairs[0].Primary.Args)
	assert.Equal(t, []string{"bozon", "-Wall", "--return-zero-on-error", "e1.bz"}, pairs[0].Rerun.Args)

	flat := FlattenPairs(pairs)
	require.Len(t, flat, 2*len(fixtures))
	assert.Equal(t, pairs[0].Primary, flat[0])
	assert.Equal(t, pairs[0].Rerun, flat[1])
	assert.Equal(t, pairs[1].Primary, flat[2])
	assert.Equal(t, pairs[1].Rerun, flat[3])
}

func TestBuildCommandsEmpty(t *testing.T) {
	assert.Empty(t, BuildCommands("bozon", nil, nil))
	assert.Empty(t, FlattenPairs(BuildPairs("bozon", nil, "--force", nil)))
}
