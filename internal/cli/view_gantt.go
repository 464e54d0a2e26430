package cli

import (
	"context"
	"time"

	"github.com/PicoEvanZhu/workdeck/internal/cli/formatter"
	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/PicoEvanZhu/workdeck/internal/viewport"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ganttDataMsg signals that the backing record fetch finished. The grid
// itself is recomputed from the store on every render.
type ganttDataMsg struct {
	err error
}

// ganttView renders the planned-date timeline with pan and zoom.
type ganttView struct {
	state   *SharedState
	loading bool
	err     error

	zoom    viewport.Zoom
	dragger viewport.Dragger
}

func newGanttView(state *SharedState) *ganttView {
	return &ganttView{state: state, loading: true}
}

func (v *ganttView) sharedState() *SharedState { return v.state }

func (v *ganttView) ID() ViewID    { return ViewGantt }
func (v *ganttView) Title() string { return "Timeline" }

func (v *ganttView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "zoom")),
		key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset zoom")),
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "pan")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *ganttView) Init() tea.Cmd {
	return v.loadData()
}

// loadData pulls the current page into the record store so the grid has
// rows to project.
func (v *ganttView) loadData() tea.Cmd {
	v.loading = true
	app := v.state.App
	return func() tea.Msg {
		_, err := app.Board.Load(context.Background(), domain.TabAll)
		return ganttDataMsg{err: err}
	}
}

// dayWidth scales the configured cell-per-day base by the zoom factor.
func (v *ganttView) dayWidth() int {
	base := v.state.App.Config.DayWidth
	if base <= 0 {
		base = 4
	}
	w := int(float64(base) * v.zoom.Factor())
	if w < 2 {
		w = 2
	}
	return w
}

func (v *ganttView) canvasWidth() int {
	w := v.state.Width
	if w <= 0 {
		w = 100
	}
	return w - formatter.GanttLabelWidth - 1
}

func (v *ganttView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ganttDataMsg:
		v.loading = false
		v.err = msg.err
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.MouseMsg:
		v.handleMouse(msg)
		return v, nil

	case tea.KeyMsg:
		step := v.dayWidth()
		scroll := v.dragger.Scroll()
		switch msg.String() {
		case "+", "=":
			v.zoom.In()
		case "-", "_":
			v.zoom.Out()
		case "0":
			v.zoom.Reset()
		case "left", "h":
			scroll.X -= step
			if scroll.X < 0 {
				scroll.X = 0
			}
			v.dragger.SetScroll(scroll)
		case "right", "l":
			scroll.X += step
			v.dragger.SetScroll(scroll)
		case "t":
			grid := v.state.App.Timeline.Grid(time.Now(), v.dayWidth())
			scroll.X = grid.TodayOffset - v.canvasWidth()/2
			if scroll.X < 0 {
				scroll.X = 0
			}
			v.dragger.SetScroll(scroll)
		case "r":
			return v, v.loadData()
		}
	}
	return v, nil
}

// handleMouse maps terminal mouse events onto the drag state machine.
// Wheel events pan a day at a time.
func (v *ganttView) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			// The label column is not a drag surface.
			v.dragger.PointerDown(viewport.Point{X: msg.X, Y: msg.Y}, msg.X > formatter.GanttLabelWidth)
		case tea.MouseButtonWheelUp:
			scroll := v.dragger.Scroll()
			scroll.X -= v.dayWidth()
			if scroll.X < 0 {
				scroll.X = 0
			}
			v.dragger.SetScroll(scroll)
		case tea.MouseButtonWheelDown:
			scroll := v.dragger.Scroll()
			scroll.X += v.dayWidth()
			v.dragger.SetScroll(scroll)
		}
	case tea.MouseActionMotion:
		v.dragger.PointerMove(viewport.Point{X: msg.X, Y: msg.Y})
	case tea.MouseActionRelease:
		v.dragger.PointerUp()
	}
}

func (v *ganttView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading timeline...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	grid := v.state.App.Timeline.Grid(time.Now(), v.dayWidth())
	scrollX := v.dragger.Scroll().X
	if scrollX < 0 {
		scrollX = 0
	}

	width := v.state.Width
	if width <= 0 {
		width = 100
	}
	out := "\n" + formatter.RenderGantt(grid, width, scrollX)
	out += "\n\n" + formatter.GanttLegend()
	return out
}
