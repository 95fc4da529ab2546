package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	centeredStyle = cellStyle.Align(lipgloss.Center)
	headerStyle   = cellStyle.Bold(true).Align(lipgloss.Center)
)

// renderGrid prints rows as a bordered grid with a rule under every row.
// Columns listed in centered are centre-aligned.
func renderGrid(w io.Writer, headers []string, rows [][]string, centered map[int]bool) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case centered[col]:
				return centeredStyle
			default:
				return cellStyle
			}
		})
	fmt.Fprintln(w, t.Render())
}

// formatCell renders a stored value for display. Ratings keep one decimal
// place.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', 1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
