package executor

import "github.com/harrison/bzharness/internal/models"

// BuildCommands returns one compiler invocation per fixture:
// binary, the fixed flags, then the fixture path.
func BuildCommands(binary string, flags []string, fixtures []models.Fixture) []models.Command {
	commands := make([]models.Command, 0, len(fixtures))
	for _, f := range fixtures {
		commands = append(commands, fixtureCommand(binary, flags, "", f.Path))
	}
	return commands
}

// BuildPairs returns the two-run protocol for each fixture: the normal
// invocation and the same invocation with forceFlag added before the path.
func BuildPairs(binary string, flags []string, forceFlag string, fixtures []models.Fixture) []models.CommandPair {
	pairs := make([]models.CommandPair, 0, len(fixtures))
	for _, f := range fixtures {
		pairs = append(pairs, models.CommandPair{
			Primary: fixtureCommand(binary, flags, "", f.Path),
			Rerun:   fixtureCommand(binary, flags, forceFlag, f.Path),
		})
	}
	return pairs
}

// FlattenPairs interleaves pairs as primary, rerun, primary, rerun, ...
func FlattenPairs(pairs []models.CommandPair) []models.Command {
	commands := make([]models.Command, 0, 2*len(pairs))
	for _, pair := range pairs {
		commands = append(commands, pair.Primary, pair.Rerun)
	}
	return commands
}

func fixtureCommand(binary string, flags []string, extra string, path string) models.Command {
	args := make([]string, 0, len(flags)+2)
	args = append(args, flags...)
	if extra != "" {
		args = append(args, extra)
	}
	args = append(args, path)
	return models.NewCommand(binary, args...)
}
