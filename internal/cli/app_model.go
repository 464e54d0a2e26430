package cli

import (
	"strings"

	"github.com/PicoEvanZhu/workdeck/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack and renders the header and key-hint bar.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
}

func newAppModel(app *App, home View) appModel {
	return appModel{
		state:     homeState(app, home),
		viewStack: []View{home},
	}
}

// homeState extracts the SharedState the home view was built with. Views
// are constructed against a state pointer before the model exists.
func homeState(app *App, home View) *SharedState {
	type stateful interface{ sharedState() *SharedState }
	if s, ok := home.(stateful); ok {
		return s.sharedState()
	}
	return &SharedState{App: app}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		// Views holding text input (filters, wizard forms) see every key.
		if v, ok := m.activeView().(interface{ capturesKeys() bool }); !ok || !v.capturesKeys() {
			switch msg.String() {
			case "q":
				if len(m.viewStack) > 1 {
					m.viewStack = m.viewStack[:len(m.viewStack)-1]
					return m, nil
				}
				m.quitting = true
				return m, tea.Quit
			case "esc":
				if len(m.viewStack) > 1 {
					m.viewStack = m.viewStack[:len(m.viewStack)-1]
					return m, nil
				}
			}
		}

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case wizardCompleteMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, msg.nextCmd

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case refreshViewMsg:
		// Broadcast so views under the top (e.g. the board under an item
		// detail) reload after mutations made above them.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	v := m.activeView()
	if v == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(" " + formatter.StyleHeader.Render(m.breadcrumb()) + "\n")
	b.WriteString(formatter.StyleDim.Render(strings.Repeat("─", m.lineWidth())) + "\n")
	b.WriteString(v.View())
	b.WriteString("\n" + formatter.StyleDim.Render(strings.Repeat("─", m.lineWidth())) + "\n")
	b.WriteString(" " + m.helpLine(v))
	return b.String()
}

func (m appModel) lineWidth() int {
	if m.state.Width > 0 {
		return m.state.Width
	}
	return 80
}

func (m appModel) breadcrumb() string {
	parts := make([]string, 0, len(m.viewStack))
	for _, v := range m.viewStack {
		parts = append(parts, v.Title())
	}
	return strings.Join(parts, " › ")
}

func (m appModel) helpLine(v View) string {
	hints := make([]string, 0, len(v.ShortHelp())+1)
	for _, binding := range v.ShortHelp() {
		h := binding.Help()
		hints = append(hints, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
	}
	hints = append(hints, formatter.Bold("q")+" "+formatter.Dim("quit"))
	return strings.Join(hints, formatter.Dim("  ·  "))
}
