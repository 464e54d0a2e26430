package cli

import (
	"context"

	"github.com/PicoEvanZhu/workdeck/internal/cli/formatter"
	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// itemLoadedMsg carries a work item and its discussion thread.
type itemLoadedMsg struct {
	item     domain.WorkItem
	parent   string
	comments []domain.Comment
	err      error
}

// itemMutatedMsg signals that an edit or comment round-trip finished.
type itemMutatedMsg struct {
	err error
}

// itemDetailView shows one work item with its comments and offers edit
// and comment actions via forms.
type itemDetailView struct {
	state     *SharedState
	projectID string
	itemID    int

	item     domain.WorkItem
	parent   string
	comments []domain.Comment
	loading  bool
	err      error
}

func newItemDetailView(state *SharedState, projectID string, itemID int) *itemDetailView {
	return &itemDetailView{
		state:     state,
		projectID: projectID,
		itemID:    itemID,
		loading:   true,
	}
}

func (v *itemDetailView) sharedState() *SharedState { return v.state }

func (v *itemDetailView) ID() ViewID    { return ViewItemDetail }
func (v *itemDetailView) Title() string { return "Item" }

func (v *itemDetailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *itemDetailView) Init() tea.Cmd {
	return v.loadItem()
}

func (v *itemDetailView) loadItem() tea.Cmd {
	app := v.state.App
	projectID, itemID := v.projectID, v.itemID
	return func() tea.Msg {
		ctx := context.Background()
		item, err := app.Items.Get(ctx, projectID, itemID)
		if err != nil {
			return itemLoadedMsg{err: err}
		}
		parent := ""
		if item.ParentID != nil {
			if p, err := app.Items.Get(ctx, projectID, *item.ParentID); err == nil {
				parent = p.Title
			}
		}
		comments, err := app.Items.Comments(ctx, projectID, itemID)
		if err != nil {
			return itemLoadedMsg{err: err}
		}
		return itemLoadedMsg{item: item, parent: parent, comments: comments}
	}
}

func (v *itemDetailView) edit() tea.Cmd {
	app := v.state.App
	item := v.item
	prev := itemFormValuesFrom(item)
	vals := prev
	form := newItemForm(&vals)
	done := func() tea.Cmd {
		return func() tea.Msg {
			fields := vals.fields(prev)
			_, err := app.Items.Update(context.Background(), item.ProjectID, item.ID, fields)
			if err != nil {
				return itemMutatedMsg{err: err}
			}
			return refreshViewMsg{}
		}
	}
	return pushView(newWizardView(v.state, "Edit Item", form, done))
}

func (v *itemDetailView) comment() tea.Cmd {
	app := v.state.App
	projectID, itemID := v.projectID, v.itemID
	var text string
	form := newCommentForm(&text)
	done := func() tea.Cmd {
		return func() tea.Msg {
			_, err := app.Items.Comment(context.Background(), projectID, itemID, text)
			if err != nil {
				return itemMutatedMsg{err: err}
			}
			return refreshViewMsg{}
		}
	}
	return pushView(newWizardView(v.state, "Add Comment", form, done))
}

func (v *itemDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case itemLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.item = msg.item
		v.parent = msg.parent
		v.comments = msg.comments
		return v, nil

	case itemMutatedMsg:
		if msg.err != nil {
			v.err = msg.err
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadItem()

	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			if !v.loading && v.err == nil {
				return v, v.edit()
			}
		case "c":
			return v, v.comment()
		case "r":
			v.loading = true
			return v, v.loadItem()
		}
	}
	return v, nil
}

func (v *itemDetailView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading item...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	out := "\n" + formatter.FormatItemDetail(v.item, v.parent) + "\n\n"
	out += formatter.Header("Discussion") + "\n"
	out += formatter.FormatComments(v.comments)
	return out
}
