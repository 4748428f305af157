package style

import (
	"github.com/pterm/pterm"
)

// Table renders rows with the first row as header
func Table(rows [][]string) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}
	return pterm.DefaultTable.
		WithHasHeader().
		WithData(pterm.TableData(rows)).
		Srender()
}
