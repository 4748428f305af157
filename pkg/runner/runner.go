// Package runner spawns external commands for install steps.
//
// Commands are waited on to completion with their output streamed to the
// user's terminal. A non-zero exit becomes a COMMAND_FAILED error carrying
// the exit status.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	dserrors "github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/rs/zerolog"
)

// Command describes one external process invocation
type Command struct {
	Name string
	Args []string

	// Dir is the working directory; empty means the current one
	Dir string

	// Env is added on top of the current process environment
	Env map[string]string
}

// String renders the command line the way a user would type it
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes commands and resolves executables
type Runner interface {
	Run(ctx context.Context, cmd Command) error
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	logger zerolog.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewExecRunner creates a runner streaming child output to the given writers.
// Nil writers default to os.Stdout and os.Stderr.
func NewExecRunner(stdout, stderr io.Writer) *ExecRunner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &ExecRunner{
		logger: logging.GetLogger("runner"),
		stdout: stdout,
		stderr: stderr,
	}
}

// Run starts the command and waits for it
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	if c.Name == "" {
		return dserrors.New(dserrors.ErrInvalidInput, "command name is required")
	}

	logging.LogCommand(r.logger, c.Name, c.Args)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	if c.Dir != "" {
		if _, err := os.Stat(c.Dir); err != nil {
			return dserrors.Wrapf(err, dserrors.ErrFileAccess, "working directory does not exist: %s", c.Dir)
		}
		cmd.Dir = c.Dir
	}
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), envList(c.Env)...)
	}
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.logger.Error().
				Str("command", c.String()).
				Int("exitCode", exitErr.ExitCode()).
				Msg("Command failed")
			cmdErr := dserrors.Newf(dserrors.ErrCommandFailed,
				"%s exited with status %d", c.String(), exitErr.ExitCode()).
				WithDetail("exitCode", exitErr.ExitCode())
			cmdErr.Wrapped = err
			return cmdErr
		}
		return dserrors.Wrapf(err, dserrors.ErrCommandFailed, "%s failed", c.String())
	}

	r.logger.Debug().Str("command", c.String()).Msg("Command executed successfully")
	return nil
}

// LookPath resolves an executable on PATH
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func envList(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s=%s", k, env[k]))
	}
	return out
}
