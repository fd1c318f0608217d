package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aip-heidelberg/codeeval/internal/bop"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	cellStyle   = lipgloss.NewStyle()
	nullStyle   = lipgloss.NewStyle().Faint(true)
	footerStyle = lipgloss.NewStyle().Faint(true).MarginTop(1)
)

// maxCellWidth bounds a rendered cell; longer values are truncated with an
// ellipsis so wide text columns (source code, error messages) stay readable.
const maxCellWidth = 48

// RenderBag renders up to limit rows of a bag as an aligned text table.
// A limit of 0 renders every row.
func RenderBag(bag *bop.Bag, limit int) string {
	cols := bag.Schema().Columns()

	shown := bag.Len()
	if limit > 0 && shown > limit {
		shown = limit
	}

	// column widths from header and visible cells, in display cells
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c.Name())
	}

	cells := make([][]string, shown)

	for r := 0; r < shown; r++ {
		rec := bag.Record(r)
		row := make([]string, len(cols))

		for i, c := range cols {
			row[i] = formatValue(rec[c.Name()])
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}

		cells[r] = row
	}

	var sb strings.Builder

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = headerStyle.Render(pad(c.Name(), widths[i]))
	}

	sb.WriteString(strings.Join(header, "  "))
	sb.WriteString("\n")

	for _, row := range cells {
		rendered := make([]string, len(row))

		for i, cell := range row {
			style := cellStyle
			if cell == "<null>" {
				style = nullStyle
			}

			rendered[i] = style.Render(pad(cell, widths[i]))
		}

		sb.WriteString(strings.Join(rendered, "  "))
		sb.WriteString("\n")
	}

	if shown < bag.Len() {
		sb.WriteString(footerStyle.Render(fmt.Sprintf("... %d of %d rows shown", shown, bag.Len())))
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatValue(v any) string {
	if v == nil {
		return "<null>"
	}

	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\n", "\\n")

	// truncate on rune boundaries so multi-byte text stays valid
	if r := []rune(s); len(r) > maxCellWidth {
		s = string(r[:maxCellWidth-3]) + "..."
	}

	return s
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}

	return s
}
