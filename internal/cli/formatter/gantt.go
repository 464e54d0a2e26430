package formatter

import (
	"fmt"
	"strings"

	"github.com/PicoEvanZhu/workdeck/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

const (
	// GanttLabelWidth is the fixed left column holding "#id title".
	GanttLabelWidth = 26

	ganttBarRune   = '█'
	ganttTodayRune = '┊'
)

// RenderGantt paints a timeline grid into terminal cells. The horizontal
// window starts at scrollX canvas cells and is viewWidth cells wide
// including the label column. Day width comes from the grid itself.
func RenderGantt(g timeline.Grid, viewWidth, scrollX int) string {
	canvasWidth := viewWidth - GanttLabelWidth - 1
	if canvasWidth < 10 {
		canvasWidth = 10
	}

	span := 0
	if n := len(g.Ticks); n > 0 {
		span = g.Ticks[n-1].Offset + g.DayWidth
	}
	if scrollX < 0 {
		scrollX = 0
	}
	if max := span - canvasWidth; max > 0 && scrollX > max {
		scrollX = max
	} else if max <= 0 {
		scrollX = 0
	}

	var b strings.Builder

	dates := newCanvas(span)
	days := newCanvas(span)
	for _, tick := range g.Ticks {
		if tick.DateLabel != "" {
			dates.write(tick.Offset, tick.DateLabel)
		}
		if g.DayWidth >= len(tick.Weekday)+1 {
			days.write(tick.Offset, tick.Weekday)
		} else {
			days.write(tick.Offset, tick.Weekday[:1])
		}
	}
	days.write(g.TodayOffset, string(ganttTodayRune))

	b.WriteString(strings.Repeat(" ", GanttLabelWidth+1))
	b.WriteString(StyleHeader.Render(dates.window(scrollX, canvasWidth)))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", GanttLabelWidth+1))
	b.WriteString(StyleDim.Render(days.window(scrollX, canvasWidth)))
	b.WriteString("\n")

	for _, row := range g.Rows {
		b.WriteString(ganttRowLabel(row))
		b.WriteString(" ")
		b.WriteString(ganttRowCanvas(row, g.TodayOffset, span, scrollX, canvasWidth))
		b.WriteString("\n")
	}

	if len(g.Rows) == 0 {
		b.WriteString("\n" + StyleDim.Render("  No items with a planned start date."))
	}
	return b.String()
}

func ganttRowLabel(row timeline.PositionedRow) string {
	id := fmt.Sprintf("#%d ", row.Item.ID)
	title := TruncTitle(row.Item.Title, GanttLabelWidth-lipgloss.Width(id))
	pad := GanttLabelWidth - lipgloss.Width(id) - lipgloss.Width(title)
	if pad < 0 {
		pad = 0
	}
	return StyleDim.Render(id) + title + strings.Repeat(" ", pad)
}

// ganttRowCanvas renders one bar row clipped to the scroll window, with
// the today marker overlaid on empty cells.
func ganttRowCanvas(row timeline.PositionedRow, todayOffset, span, scrollX, width int) string {
	barStart := row.X
	barEnd := row.X + row.Width
	winEnd := scrollX + width

	segment := func(from, to int) string {
		cells := make([]rune, 0, to-from)
		for x := from; x < to; x++ {
			if x == todayOffset {
				cells = append(cells, ganttTodayRune)
			} else {
				cells = append(cells, ' ')
			}
		}
		return StyleDim.Render(string(cells))
	}

	visStart := barStart
	if visStart < scrollX {
		visStart = scrollX
	}
	visEnd := barEnd
	if visEnd > winEnd {
		visEnd = winEnd
	}

	if visEnd <= visStart {
		// Bar is entirely off-window.
		return segment(scrollX, winEnd)
	}

	var b strings.Builder
	b.WriteString(segment(scrollX, visStart))
	b.WriteString(BarStyle(row.Status).Render(strings.Repeat(string(ganttBarRune), visEnd-visStart)))
	b.WriteString(segment(visEnd, winEnd))
	return b.String()
}

// GanttLegend is the one-line status color key shown under the grid.
func GanttLegend() string {
	parts := []string{
		StyleGreen.Render("█ done"),
		StyleRed.Render("█ overdue"),
		StyleYellow.Render("█ in progress"),
		StyleBlue.Render("█ not started"),
	}
	return StyleDim.Render("  ") + strings.Join(parts, StyleDim.Render("  "))
}

// canvas is a fixed-width rune buffer for positional text placement.
type canvas struct {
	cells []rune
}

func newCanvas(width int) *canvas {
	c := &canvas{cells: make([]rune, width)}
	for i := range c.cells {
		c.cells[i] = ' '
	}
	return c
}

func (c *canvas) write(offset int, text string) {
	for i, r := range []rune(text) {
		if offset+i < 0 || offset+i >= len(c.cells) {
			return
		}
		c.cells[offset+i] = r
	}
}

func (c *canvas) window(from, width int) string {
	if from < 0 {
		from = 0
	}
	var b strings.Builder
	for x := from; x < from+width; x++ {
		if x < len(c.cells) {
			b.WriteRune(c.cells[x])
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}
