package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ColorEnabled reports whether styled output should be written to f
func ColorEnabled(f *os.File) bool {
	// Check if NO_COLOR is set
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check if we're being piped or redirected
	if !IsTerminal(f) {
		return false
	}

	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

// Configure turns styling off for both pterm and lipgloss when f cannot
// show colors
func Configure(f *os.File) {
	if ColorEnabled(f) {
		return
	}
	pterm.DisableStyling()
	lipgloss.SetColorProfile(termenv.Ascii)
}
