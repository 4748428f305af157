package dotstrap

import (
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/dotstrap/pkg/style"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// templateFuncs are the helpers available to the usage template. Styling is
// applied only when stdout can show it.
func templateFuncs(styled bool) template.FuncMap {
	bold := func(s string) string {
		if !styled {
			return s
		}
		return pterm.Bold.Sprint(s)
	}
	section := func(s string) string {
		s = strings.ToUpper(s)
		if !styled {
			return s
		}
		return style.TitleStyle.Render(s)
	}
	return template.FuncMap{
		"bold":    bold,
		"section": section,
	}
}

func initTemplateFormatting() {
	cobra.AddTemplateFuncs(templateFuncs(style.ColorEnabled(os.Stdout)))
}
