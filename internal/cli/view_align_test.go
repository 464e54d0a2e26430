package cli

import (
	"fmt"
	"testing"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/PicoEvanZhu/workdeck/internal/hierarchy"
	"github.com/PicoEvanZhu/workdeck/internal/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alignNode(id int, children ...*hierarchy.Node) *hierarchy.Node {
	return &hierarchy.Node{
		Item:     domain.WorkItem{ProjectID: "proj", ID: id},
		Children: children,
	}
}

func TestFlattenTree_DepthsAndLastMarkers(t *testing.T) {
	tree := alignNode(1,
		alignNode(2, alignNode(4)),
		alignNode(3),
	)

	flat := flattenTree(tree)
	require.Len(t, flat, 4)

	ids := make([]int, len(flat))
	depths := make([]int, len(flat))
	lasts := make([]bool, len(flat))
	for i, fn := range flat {
		ids[i] = fn.node.Item.ID
		depths[i] = fn.depth
		lasts[i] = fn.isLast
	}

	assert.Equal(t, []int{1, 2, 4, 3}, ids, "depth-first, children in order")
	assert.Equal(t, []int{0, 1, 2, 1}, depths)
	assert.Equal(t, []bool{true, false, true, true}, lasts)
}

func TestFlattenTree_Nil(t *testing.T) {
	assert.Nil(t, flattenTree(nil))
}

// newAlignFixture builds an alignView over a loaded chain of rows nodes,
// inside a terminal whose content area shows 6 rows.
func newAlignFixture(t *testing.T, rows int) *alignView {
	t.Helper()
	var tree *hierarchy.Node
	for id := rows; id >= 1; id-- {
		n := alignNode(id)
		n.Item.Title = fmt.Sprintf("node%02d", id)
		if tree != nil {
			n.Children = []*hierarchy.Node{tree}
		}
		tree = n
	}

	state := &SharedState{Width: 80, Height: 10}
	v := newAlignView(state, "proj", 1)
	model, _ := v.Update(treeLoadedMsg{tree: tree})
	next, ok := model.(*alignView)
	require.True(t, ok)
	require.Len(t, next.flat, rows)
	return next
}

func TestAlignView_WheelPansWindow(t *testing.T) {
	v := newAlignFixture(t, 12)
	assert.Contains(t, v.View(), "node01")

	wheel := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
	for i := 0; i < 3; i++ {
		model, _ := v.Update(wheel)
		v = model.(*alignView)
	}

	assert.Equal(t, 3, v.dragger.Scroll().Y)
	out := v.View()
	assert.NotContains(t, out, "node01")
	assert.Contains(t, out, "node04")
}

func TestAlignView_DragPansWindow(t *testing.T) {
	v := newAlignFixture(t, 12)

	press := tea.MouseMsg{X: 10, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	move := tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion}
	release := tea.MouseMsg{Action: tea.MouseActionRelease}
	for _, msg := range []tea.Msg{press, move, release} {
		model, _ := v.Update(msg)
		v = model.(*alignView)
	}

	assert.Equal(t, 3, v.dragger.Scroll().Y)
	assert.NotContains(t, v.View(), "node01")
}

func TestAlignView_CursorMovementKeepsRowVisible(t *testing.T) {
	v := newAlignFixture(t, 12)

	for i := 0; i < 8; i++ {
		model, _ := v.Update(tea.KeyMsg{Type: tea.KeyDown})
		v = model.(*alignView)
	}

	assert.Equal(t, 8, v.cursor)
	assert.Equal(t, 3, v.dragger.Scroll().Y, "window follows the cursor past the bottom edge")
	assert.Contains(t, v.View(), "node09")
}

func TestAlignView_ScrollClampsToRowCount(t *testing.T) {
	v := newAlignFixture(t, 12)
	v.dragger.SetScroll(viewport.Offset{Y: 100})

	out := v.View()
	assert.Contains(t, out, "node12", "over-scroll clamps to the last window")
	assert.Contains(t, out, "node07")
}
