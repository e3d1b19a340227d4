package process

import (
	"io"
	"strings"
	"time"

	"github.com/Jonathas-Conceicao/pipers/errors"
)

// DefaultGracePeriod is how long Kill and context cancellation wait after
// SIGTERM before escalating to SIGKILL.
const DefaultGracePeriod = 5 * time.Second

// Command configures a subprocess to spawn.
type Command struct {
	// Binary is the executable path or name (resolved via PATH).
	Binary string
	// Args are the command-line arguments, passed verbatim.
	Args []string
	// Dir is the working directory. If empty, uses the current directory.
	Dir string
	// Env is additional environment variables (key=value). Merged with os.Environ.
	Env []string
	// Stdin provides input to the process. May be nil (inherits the default).
	Stdin io.Reader
	// Stderr receives standard error. May be nil (inherits the default).
	Stderr io.Writer
	// GracePeriod is how long to wait after SIGTERM before SIGKILL.
	// Defaults to DefaultGracePeriod if zero.
	GracePeriod time.Duration
}

// Parse splits a command line on whitespace into a binary and its arguments.
// The first token is the executable name, the rest are positional arguments.
// There is no quoting or escaping support, so an argument containing spaces
// cannot be expressed. Empty or all-whitespace input yields an EmptyCommand
// error.
func Parse(commandLine string) (Command, error) {
	tokens := strings.Fields(commandLine)
	if len(tokens) == 0 {
		return Command{}, errors.EmptyCommand()
	}
	return Command{Binary: tokens[0], Args: tokens[1:]}, nil
}

// String returns the command as a single line, for logging.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Binary
	}
	return c.Binary + " " + strings.Join(c.Args, " ")
}
