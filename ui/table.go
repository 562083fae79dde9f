package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/spektr-org/statview/engine"
)

// DrawTable draws a table with the column alignment of the data.
func DrawTable(data *engine.TableData, styles Styles) string {
	if data == nil || len(data.Columns) == 0 {
		return ""
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Theme.Border)).
		Headers(data.Headers()...).
		Rows(data.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			if col < len(data.Columns) && data.Columns[col].Align == "right" {
				return cell.Align(lipgloss.Right)
			}
			return cell
		})

	return t.Render()
}

// DrawText draws one line per text row.
func DrawText(data *engine.TextData, styles Styles) string {
	if data == nil {
		return ""
	}
	lines := make([]string, len(data.Lines))
	for i, l := range data.Lines {
		lines[i] = styles.Body.Render(l)
	}
	return strings.Join(lines, "\n")
}
