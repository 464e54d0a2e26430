package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders a simple aligned table with a header separator line.
// Headers are rendered with the Header style. Columns are padded to the
// maximum visible width found in each column across both headers and rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)

	// Column widths are measured on visible width so styled cells count
	// their text, not their ANSI escapes.
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2

	cell := func(b *strings.Builder, text string, col int, last bool) {
		b.WriteString(text)
		if !last {
			pad := widths[col] - lipgloss.Width(text)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}

	var b strings.Builder
	for i, h := range headers {
		pad := widths[i] - lipgloss.Width(h)
		b.WriteString(StyleHeader.Render(h))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}
	b.WriteString("\n")
	for i, w := range widths {
		cell(&b, StyleDim.Render(strings.Repeat("─", w)), i, i == cols-1)
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i := 0; i < cols; i++ {
			text := ""
			if i < len(row) {
				text = row[i]
			}
			cell(&b, text, i, i == cols-1)
		}
		b.WriteString("\n")
	}

	return b.String()
}
