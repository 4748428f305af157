package style

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// Reporter prints user-facing progress lines. Diagnostic detail goes to the
// logger instead.
type Reporter interface {
	Heading(msg string)
	Info(msg string)
	Warning(msg string)
	Success(msg string)
}

// TerminalReporter prints pterm-prefixed lines whose text is colored with
// the matching lipgloss style
type TerminalReporter struct {
	w io.Writer
}

// NewTerminalReporter creates a reporter writing to w (os.Stdout if nil)
func NewTerminalReporter(w io.Writer) *TerminalReporter {
	if w == nil {
		w = os.Stdout
	}
	return &TerminalReporter{w: w}
}

func (r *TerminalReporter) Heading(msg string) {
	_, _ = fmt.Fprintln(r.w, TitleStyle.Render(msg))
}

func (r *TerminalReporter) Info(msg string) {
	pterm.Info.WithWriter(r.w).Println(InfoStyle.Render(msg))
}

func (r *TerminalReporter) Warning(msg string) {
	pterm.Warning.WithWriter(r.w).Println(WarningStyle.Render(msg))
}

func (r *TerminalReporter) Success(msg string) {
	pterm.Success.WithWriter(r.w).Println(SuccessStyle.Render(msg))
}

// Level identifies a recorded message kind
type Level string

const (
	LevelHeading Level = "heading"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelSuccess Level = "success"
)

// Message is one line captured by Recorder
type Message struct {
	Level Level
	Text  string
}

// Recorder keeps messages in memory; used by tests and non-interactive callers
type Recorder struct {
	Messages []Message
}

func (r *Recorder) Heading(msg string) { r.add(LevelHeading, msg) }
func (r *Recorder) Info(msg string)    { r.add(LevelInfo, msg) }
func (r *Recorder) Warning(msg string) { r.add(LevelWarning, msg) }
func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.Messages = append(r.Messages, Message{Level: level, Text: msg})
}

// Texts returns the recorded messages of the given level
func (r *Recorder) Texts(level Level) []string {
	var out []string
	for _, m := range r.Messages {
		if m.Level == level {
			out = append(out, m.Text)
		}
	}
	return out
}

// Contains reports whether any recorded message contains substr
func (r *Recorder) Contains(substr string) bool {
	for _, m := range r.Messages {
		if strings.Contains(m.Text, substr) {
			return true
		}
	}
	return false
}
