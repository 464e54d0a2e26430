package cli

import (
	"context"
	"fmt"

	"github.com/PicoEvanZhu/workdeck/internal/cli/formatter"
	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/PicoEvanZhu/workdeck/internal/hierarchy"
	"github.com/PicoEvanZhu/workdeck/internal/viewport"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// treeLoadedMsg signals that a subtree load finished.
type treeLoadedMsg struct {
	tree *hierarchy.Node
	err  error
}

// previewLoadedMsg carries a hover comment prefetch. A nil slice with a
// nil error means the prefetch was superseded.
type previewLoadedMsg struct {
	itemID   int
	comments []domain.Comment
	err      error
}

// flatNode is one row of the depth-first flattened tree.
type flatNode struct {
	node   *hierarchy.Node
	depth  int
	isLast bool
}

// alignView is the parent/child alignment tree rooted at one work item.
type alignView struct {
	state     *SharedState
	projectID string
	rootID    int

	tree    *hierarchy.Node
	flat    []flatNode
	cursor  int
	loading bool
	err     error

	previewFor int
	preview    []domain.Comment
	previewErr error

	dragger viewport.Dragger
}

func newAlignView(state *SharedState, projectID string, rootID int) *alignView {
	return &alignView{
		state:     state,
		projectID: projectID,
		rootID:    rootID,
		loading:   true,
	}
}

func (v *alignView) sharedState() *SharedState { return v.state }

func (v *alignView) ID() ViewID    { return ViewAlign }
func (v *alignView) Title() string { return fmt.Sprintf("Align · #%d", v.rootID) }

func (v *alignView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "re-root")),
		key.NewBinding(key.WithKeys("backspace"), key.WithHelp("bksp", "up to parent")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "comments")),
		key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open item")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *alignView) Init() tea.Cmd {
	return v.switchRoot(v.rootID)
}

func (v *alignView) switchRoot(rootID int) tea.Cmd {
	v.loading = true
	v.rootID = rootID
	v.previewFor = 0
	v.preview = nil
	v.dragger.SetScroll(viewport.Offset{})
	app := v.state.App
	projectID := v.projectID
	return func() tea.Msg {
		tree, err := app.Alignment.SwitchRoot(context.Background(), projectID, rootID)
		return treeLoadedMsg{tree: tree, err: err}
	}
}

func (v *alignView) refresh() tea.Cmd {
	v.loading = true
	app := v.state.App
	return func() tea.Msg {
		tree, err := app.Alignment.Refresh(context.Background())
		return treeLoadedMsg{tree: tree, err: err}
	}
}

func (v *alignView) loadPreview(itemID int) tea.Cmd {
	app := v.state.App
	projectID := v.projectID
	return func() tea.Msg {
		comments, err := app.Alignment.PreviewComments(context.Background(), projectID, itemID)
		return previewLoadedMsg{itemID: itemID, comments: comments, err: err}
	}
}

func (v *alignView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case treeLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.tree = msg.tree
		v.flat = flattenTree(msg.tree)
		if v.tree != nil {
			v.rootID = v.tree.Item.ID
		}
		if v.cursor >= len(v.flat) {
			v.cursor = 0
		}
		return v, nil

	case previewLoadedMsg:
		if msg.err != nil {
			v.previewErr = msg.err
			return v, nil
		}
		if msg.comments == nil {
			// Superseded prefetch; a newer one is in flight.
			return v, nil
		}
		v.previewErr = nil
		v.previewFor = msg.itemID
		v.preview = msg.comments
		return v, nil

	case refreshViewMsg:
		return v, v.refresh()

	case tea.MouseMsg:
		v.handleMouse(msg)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
				v.ensureCursorVisible()
			}
		case "down", "j":
			if v.cursor < len(v.flat)-1 {
				v.cursor++
				v.ensureCursorVisible()
			}
		case "enter":
			if v.cursor < len(v.flat) {
				selected := v.flat[v.cursor].node.Item
				if selected.ID != v.rootID {
					v.cursor = 0
					return v, v.switchRoot(selected.ID)
				}
			}
		case "backspace":
			if v.tree != nil && v.tree.Item.ParentID != nil {
				v.cursor = 0
				return v, v.switchRoot(*v.tree.Item.ParentID)
			}
		case "p":
			if v.cursor < len(v.flat) {
				return v, v.loadPreview(v.flat[v.cursor].node.Item.ID)
			}
		case "o":
			if v.cursor < len(v.flat) {
				item := v.flat[v.cursor].node.Item
				return v, pushView(newItemDetailView(v.state, item.ProjectID, item.ID))
			}
		case "r":
			return v, v.refresh()
		}
	}
	return v, nil
}

// handleMouse maps terminal mouse events onto the drag state machine.
// Wheel events pan a row at a time.
func (v *alignView) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			v.dragger.PointerDown(viewport.Point{X: msg.X, Y: msg.Y}, len(v.flat) > 0)
		case tea.MouseButtonWheelUp:
			v.panRows(-1)
		case tea.MouseButtonWheelDown:
			v.panRows(1)
		}
	case tea.MouseActionMotion:
		v.dragger.PointerMove(viewport.Point{X: msg.X, Y: msg.Y})
	case tea.MouseActionRelease:
		v.dragger.PointerUp()
	}
}

func (v *alignView) visibleRows() int {
	return v.state.ContentHeight()
}

func (v *alignView) panRows(delta int) {
	scroll := v.dragger.Scroll()
	scroll.Y = clampScroll(scroll.Y+delta, len(v.flat), v.visibleRows())
	v.dragger.SetScroll(scroll)
}

// ensureCursorVisible keeps the cursor row inside the scrolled window
// after keyboard movement.
func (v *alignView) ensureCursorVisible() {
	scroll := v.dragger.Scroll()
	visible := v.visibleRows()
	if v.cursor < scroll.Y {
		scroll.Y = v.cursor
	}
	if v.cursor >= scroll.Y+visible {
		scroll.Y = v.cursor - visible + 1
	}
	v.dragger.SetScroll(scroll)
}

func clampScroll(offset, rows, visible int) int {
	max := rows - visible
	if max < 0 {
		max = 0
	}
	if offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func (v *alignView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading subtree...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if v.tree == nil {
		return "\n  " + formatter.Dim(fmt.Sprintf("Item #%d was not found.", v.rootID))
	}

	items := make([]formatter.TreeItem, 0, len(v.flat))
	for i, fn := range v.flat {
		badge := fn.node.Item.AssignedTo
		if fn.node.Item.TargetDate != nil {
			badge = fn.node.Item.TargetDate.Format("01-02")
		}
		items = append(items, formatter.TreeItem{
			ID:       fn.node.Item.ID,
			Title:    fn.node.Item.Title,
			Type:     fn.node.Item.Type,
			State:    fn.node.Item.State,
			Level:    fn.depth,
			IsLast:   fn.isLast,
			Selected: i == v.cursor,
			Badge:    badge,
		})
	}

	// Window the rows to the drag scroll offset so tall trees stay
	// reachable.
	scrollY := clampScroll(v.dragger.Scroll().Y, len(items), v.visibleRows())
	end := scrollY + v.visibleRows()
	if end > len(items) {
		end = len(items)
	}
	out := "\n" + formatter.RenderTree(items[scrollY:end])
	if v.previewErr != nil {
		out += "\n" + formatter.StyleRed.Render("Comments: "+v.previewErr.Error())
	} else if v.previewFor != 0 {
		title := fmt.Sprintf("Comments · #%d", v.previewFor)
		out += "\n" + formatter.RenderBox(title, formatter.FormatComments(v.preview))
	}
	return out
}

// flattenTree walks the tree depth-first, recording depth and whether each
// node is its parent's last child for connector rendering.
func flattenTree(root *hierarchy.Node) []flatNode {
	if root == nil {
		return nil
	}
	var flat []flatNode
	var walk func(n *hierarchy.Node, depth int, isLast bool)
	walk = func(n *hierarchy.Node, depth int, isLast bool) {
		flat = append(flat, flatNode{node: n, depth: depth, isLast: isLast})
		for i, c := range n.Children {
			walk(c, depth+1, i == len(n.Children)-1)
		}
	}
	walk(root, 0, true)
	return flat
}
