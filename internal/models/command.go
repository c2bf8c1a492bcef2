package models

import "strings"

// Command is a single compiler invocation: binary path followed by its arguments.
type Command struct {
	Args []string
}

// NewCommand builds a Command from a binary and its arguments.
// The argument slice is copied so callers may reuse their flag slices.
func NewCommand(binary string, args ...string) Command {
	full := make([]string, 0, len(args)+1)
	full = append(full, binary)
	full = append(full, args...)
	return Command{Args: full}
}

// Binary returns the executable of the command, or "" for an empty command.
func (c Command) Binary() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// Arguments returns everything after the binary.
func (c Command) Arguments() []string {
	if len(c.Args) < 2 {
		return nil
	}
	return c.Args[1:]
}

// String renders the command the way it would be typed in a shell.
func (c Command) String() string {
	parts := make([]string, len(c.Args))
	for i, arg := range c.Args {
		parts[i] = quoteArg(arg)
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if arg == "" {
		return `""`
	}
	if !strings.ContainsAny(arg, " \t\n\"'\\$`") {
		return arg
	}
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`").Replace(arg) + `"`
}

// CommandPair is the two-run protocol of an error fixture: the normal
// invocation followed by the same invocation with the force-success flag.
type CommandPair struct {
	Primary Command
	Rerun   Command
}
