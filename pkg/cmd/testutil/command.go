package testutil

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
)

// RunCommand executes a command with the given arguments and returns
// everything it wrote
func RunCommand(t *testing.T, command *cli.Command, args ...string) (string, error) {
	t.Helper()
	return RunCommandWithInput(t, command, "", args...)
}

// RunCommandWithInput executes a command reading stdin from input
func RunCommandWithInput(t *testing.T, command *cli.Command, input string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := run(t.Context(), command, strings.NewReader(input), &out, args)
	return out.String(), err
}

func run(ctx context.Context, command *cli.Command, r io.Reader, w io.Writer, args []string) error {
	// Create a test CLI app
	app := &cli.Command{
		Name:     "test",
		Commands: []*cli.Command{command},
		Reader:   r,
		Writer:   w,
	}

	// Prepend command name to args
	fullArgs := append([]string{"test", command.Name}, args...)

	return app.Run(ctx, fullArgs)
}
