package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/dotstrap/pkg/runner"
)

// FakeRunner records commands and returns scripted results
type FakeRunner struct {
	mu       sync.Mutex
	commands []runner.Command

	// Errors maps a command name, or a full command line, to the error
	// Run returns for it. The full command line wins.
	Errors map[string]error

	// Paths maps executable names to LookPath results. Missing names
	// are reported as not found.
	Paths map[string]string

	// OnRun is invoked for every command before the scripted error is
	// returned; tests use it to simulate side effects.
	OnRun func(cmd runner.Command)
}

var _ runner.Runner = (*FakeRunner)(nil)

// NewFakeRunner creates a runner where every command succeeds
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Errors: make(map[string]error),
		Paths:  make(map[string]string),
	}
}

// Run records cmd
func (f *FakeRunner) Run(ctx context.Context, cmd runner.Command) error {
	f.mu.Lock()
	f.commands = append(f.commands, cmd)
	f.mu.Unlock()

	if f.OnRun != nil {
		f.OnRun(cmd)
	}
	if err, ok := f.Errors[cmd.String()]; ok {
		return err
	}
	if err, ok := f.Errors[cmd.Name]; ok {
		return err
	}
	return ctx.Err()
}

// LookPath resolves name from Paths
func (f *FakeRunner) LookPath(name string) (string, error) {
	if p, ok := f.Paths[name]; ok {
		return p, nil
	}
	return "", &notFoundError{name: name}
}

// Commands returns the recorded commands in order
func (f *FakeRunner) Commands() []runner.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]runner.Command, len(f.commands))
	copy(out, f.commands)
	return out
}

// CommandLines returns the recorded commands rendered as strings
func (f *FakeRunner) CommandLines() []string {
	var lines []string
	for _, c := range f.Commands() {
		lines = append(lines, c.String())
	}
	return lines
}

// Ran reports whether a command line containing substr was recorded
func (f *FakeRunner) Ran(substr string) bool {
	for _, line := range f.CommandLines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
