package responder

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/rs/zerolog/log"
)

// DefaultCommand is the external command invoked by the CLI responder.
const DefaultCommand = "claude"

// CLI is a Responder that runs an external command in print mode and
// returns its stdout.
type CLI struct {
	// Command is the executable to run. Empty means DefaultCommand.
	Command string
}

var _ Responder = (*CLI)(nil)

// NewCLI creates a CLI responder with the default command.
func NewCLI() *CLI {
	return &CLI{Command: DefaultCommand}
}

// Respond runs the external command with the request's prompt, model,
// working directory, and resume token. A nonzero exit or empty output is
// returned as a *Failure, never as a panic.
func (c *CLI) Respond(ctx context.Context, req Request) (string, error) {
	command := c.Command
	if command == "" {
		command = DefaultCommand
	}

	args := []string{"-p", req.Prompt}
	if req.Model != "" {
		args = append(args, "--model", req.Model)
	}
	if req.ResumeToken != "" {
		args = append(args, "--resume", req.ResumeToken)
	}

	log.Debug().
		Str("dir", req.Dir).
		Str("command", shellescape.QuoteCommand(append([]string{command}, args...))).
		Msg("invoking responder")

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = req.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &Failure{
				Reason:   "nonzero exit",
				ExitCode: exitErr.ExitCode(),
				Detail:   strings.TrimSpace(stderr.String()),
			}
		}
		return "", &Failure{Reason: "failed to start command", Detail: err.Error()}
	}

	text := strings.TrimSpace(stdout.String())
	if text == "" {
		return "", &Failure{Reason: "empty output", Detail: strings.TrimSpace(stderr.String())}
	}

	return text, nil
}
