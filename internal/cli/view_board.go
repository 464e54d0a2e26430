package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/PicoEvanZhu/workdeck/internal/cli/formatter"
	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/PicoEvanZhu/workdeck/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// boardTabs is the fixed tab order of the dashboard.
var boardTabs = []domain.TabKey{
	domain.TabAll,
	domain.TabNotStarted,
	domain.TabInProgress,
	domain.TabCompleted,
}

var boardTabLabels = map[domain.TabKey]string{
	domain.TabAll:        "All",
	domain.TabNotStarted: "Not Started",
	domain.TabInProgress: "In Progress",
	domain.TabCompleted:  "Completed",
}

// boardLoadedMsg signals that a page load finished. seq identifies which
// load; results from superseded loads are ignored.
type boardLoadedMsg struct {
	seq  int
	page service.BoardPage
	err  error
}

// boardView is the filtered, paginated work item dashboard.
type boardView struct {
	state   *SharedState
	tab     domain.TabKey
	page    service.BoardPage
	cursor  int
	loading bool
	err     error
	loadSeq int // incremented per load; stale results are ignored

	filterInput textinput.Model
	filtering   bool
}

func newBoardView(state *SharedState) *boardView {
	ti := textinput.New()
	ti.Placeholder = "keyword, #id, or bug-/task-/story- shorthand"
	ti.CharLimit = 120
	return &boardView{
		state:       state,
		tab:         domain.TabAll,
		loading:     true,
		filterInput: ti,
	}
}

func (v *boardView) sharedState() *SharedState { return v.state }

// capturesKeys keeps global key handling away from the filter input.
func (v *boardView) capturesKeys() bool { return v.filtering }

func (v *boardView) ID() ViewID { return ViewBoard }
func (v *boardView) Title() string {
	if v.state.ActiveProjectName != "" {
		return "Board · " + v.state.ActiveProjectName
	}
	return "Board"
}

func (v *boardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "page")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *boardView) Init() tea.Cmd {
	return v.load()
}

func (v *boardView) load() tea.Cmd {
	v.loading = true
	v.loadSeq++
	seq := v.loadSeq
	app := v.state.App
	tab := v.tab
	return func() tea.Msg {
		page, err := app.Board.Load(context.Background(), tab)
		return boardLoadedMsg{seq: seq, page: page, err: err}
	}
}

func (v *boardView) applyFilter(keyword string) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		f := app.Board.Filters()
		f.Keyword = keyword
		if err := app.Board.SetFilters(context.Background(), f); err != nil {
			return boardLoadedMsg{seq: -1, err: err}
		}
		return refreshViewMsg{}
	}
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		if msg.seq >= 0 && msg.seq != v.loadSeq {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.page = msg.page
		if v.cursor >= len(v.page.Items) {
			v.cursor = 0
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFiltering(msg)
		}
		switch msg.String() {
		case "tab":
			v.tab = nextTab(v.tab)
			v.cursor = 0
			v.state.App.Board.SetPage(1)
			return v, v.load()
		case "shift+tab":
			v.tab = prevTab(v.tab)
			v.cursor = 0
			v.state.App.Board.SetPage(1)
			return v, v.load()
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.page.Items)-1 {
				v.cursor++
			}
		case "left", "h":
			f := v.state.App.Board.Filters()
			if f.Page > 1 {
				v.state.App.Board.SetPage(f.Page - 1)
				return v, v.load()
			}
		case "right", "l":
			if v.page.HasMore {
				v.state.App.Board.SetPage(v.state.App.Board.Filters().Page + 1)
				return v, v.load()
			}
		case "enter":
			if v.cursor < len(v.page.Items) {
				item := v.page.Items[v.cursor]
				return v, pushView(newItemDetailView(v.state, item.ProjectID, item.ID))
			}
		case "/":
			v.filtering = true
			v.filterInput.SetValue(v.state.App.Board.Filters().Keyword)
			v.filterInput.Focus()
			return v, textinput.Blink
		case "r":
			return v, v.load()
		}
	}
	return v, nil
}

func (v *boardView) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.filtering = false
		v.filterInput.Blur()
		return v, v.applyFilter(strings.TrimSpace(v.filterInput.Value()))
	case "esc":
		v.filtering = false
		v.filterInput.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.filterInput, cmd = v.filterInput.Update(msg)
	return v, cmd
}

func (v *boardView) View() string {
	var b strings.Builder
	b.WriteString("\n " + v.renderTabs() + "\n\n")

	if v.filtering {
		b.WriteString(" " + formatter.Bold("Filter: ") + v.filterInput.View() + "\n\n")
	} else if kw := v.state.App.Board.Filters().Keyword; kw != "" {
		b.WriteString(" " + formatter.Dim("filter: ") + formatter.StyleYellow.Render(kw) + "\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(" " + formatter.Dim("Loading work items..."))
	case v.err != nil:
		b.WriteString(" " + formatter.StyleRed.Render("Error: "+v.err.Error()))
	default:
		b.WriteString(v.renderTable())
		f := v.state.App.Board.Filters()
		b.WriteString("\n " + formatter.FormatPageFooter(f.Page, f.PageSize, v.page.Total, v.page.HasMore))
	}
	return b.String()
}

func (v *boardView) renderTabs() string {
	parts := make([]string, 0, len(boardTabs))
	for _, tab := range boardTabs {
		label := boardTabLabels[tab]
		if tab == v.tab {
			parts = append(parts, formatter.StyleHeader.Render("["+label+"]"))
		} else {
			parts = append(parts, formatter.Dim(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (v *boardView) renderTable() string {
	if len(v.page.Items) == 0 {
		return " " + formatter.Dim("No work items match the current filters.")
	}
	headers := []string{"", "ID", "Title", "Type", "State", "Assigned", "Target"}
	rows := make([][]string, 0, len(v.page.Items))
	for i, it := range v.page.Items {
		marker := " "
		if i == v.cursor {
			marker = formatter.StyleHeader.Render("❯")
		}
		assigned := it.AssignedTo
		if assigned == "" {
			assigned = formatter.Dim("--")
		}
		rows = append(rows, []string{
			marker,
			formatter.Dim(strconv.Itoa(it.ID)),
			formatter.TruncTitle(it.Title, 48),
			formatter.TypeBadge(it.Type),
			formatter.StatePill(it.State),
			assigned,
			formatter.ShortDate(it.TargetDate),
		})
	}
	return formatter.RenderTable(headers, rows)
}

func nextTab(tab domain.TabKey) domain.TabKey {
	for i, t := range boardTabs {
		if t == tab {
			return boardTabs[(i+1)%len(boardTabs)]
		}
	}
	return boardTabs[0]
}

func prevTab(tab domain.TabKey) domain.TabKey {
	for i, t := range boardTabs {
		if t == tab {
			return boardTabs[(i+len(boardTabs)-1)%len(boardTabs)]
		}
	}
	return boardTabs[0]
}
