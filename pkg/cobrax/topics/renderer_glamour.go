package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown with glamour. Other formats pass through.
type GlamourRenderer struct {
	Style string // "dark", "light", "notty", "auto", or path to a custom style
	Width int    // 0 keeps glamour's default
}

// NewGlamourRenderer picks the style from the terminal. Plain output gets
// the notty style so no escape codes leak into pipes.
func NewGlamourRenderer(styled bool) *GlamourRenderer {
	r := &GlamourRenderer{Style: "auto"}
	if !styled {
		r.Style = "notty"
	}
	return r
}

// Render converts markdown to terminal output, falling back to the raw
// content when glamour fails
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	case "dark", "light", "notty", "dracula", "pink", "ascii":
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
