package hierarchy

import (
	"testing"
	"time"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id int, parentID *int, created string) domain.WorkItem {
	w := domain.WorkItem{
		ProjectID: "proj",
		ID:        id,
		Title:     "item",
		ParentID:  parentID,
	}
	if created != "" {
		t, err := time.Parse("2006-01-02", created)
		if err != nil {
			panic(err)
		}
		w.CreatedDate = &t
	}
	return w
}

func ptr(v int) *int { return &v }

func key(id int) domain.ItemKey {
	return domain.ItemKey{ProjectID: "proj", ID: id}
}

func TestBuild_LinearChain(t *testing.T) {
	snapshot := []domain.WorkItem{
		item(10, nil, "2024-01-01"),
		item(11, ptr(10), "2024-02-01"),
		item(12, ptr(11), "2024-03-01"),
	}

	root := Build(key(10), snapshot)
	require.NotNil(t, root)
	assert.Equal(t, 10, root.Item.ID)

	require.Len(t, root.Children, 1)
	assert.Equal(t, 11, root.Children[0].Item.ID)

	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, 12, root.Children[0].Children[0].Item.ID)
	assert.Empty(t, root.Children[0].Children[0].Children)
}

func TestBuild_MissingRoot(t *testing.T) {
	snapshot := []domain.WorkItem{item(1, nil, "2024-01-01")}
	assert.Nil(t, Build(key(99), snapshot))
}

func TestBuild_CycleIsPruned(t *testing.T) {
	// 10 -> 11 -> 12 -> 10 closes a cycle; the back edge must be pruned,
	// not recursed into.
	snapshot := []domain.WorkItem{
		item(10, ptr(12), "2024-01-01"),
		item(11, ptr(10), "2024-02-01"),
		item(12, ptr(11), "2024-03-01"),
	}

	root := Build(key(10), snapshot)
	require.NotNil(t, root)

	require.Len(t, root.Children, 1)
	child := root.Children[0]
	assert.Equal(t, 11, child.Item.ID)

	require.Len(t, child.Children, 1)
	grandchild := child.Children[0]
	assert.Equal(t, 12, grandchild.Item.ID)
	assert.Empty(t, grandchild.Children, "edge back to 10 should be pruned")

	assert.Equal(t, 3, Size(root))
}

func TestBuild_SelfParentDoesNotRecurse(t *testing.T) {
	snapshot := []domain.WorkItem{item(5, ptr(5), "2024-01-01")}

	root := Build(key(5), snapshot)
	require.NotNil(t, root)
	assert.Empty(t, root.Children)
}

func TestBuild_ChildrenNewestFirst(t *testing.T) {
	snapshot := []domain.WorkItem{
		item(1, nil, "2024-01-01"),
		item(2, ptr(1), "2024-01-10"),
		item(3, ptr(1), "2024-02-10"),
		item(4, ptr(1), "2024-03-10"),
	}

	root := Build(key(1), snapshot)
	require.NotNil(t, root)
	require.Len(t, root.Children, 3)

	assert.Equal(t, 4, root.Children[0].Item.ID)
	assert.Equal(t, 3, root.Children[1].Item.ID)
	assert.Equal(t, 2, root.Children[2].Item.ID)
}

func TestBuild_TieBrokenByDescendingID(t *testing.T) {
	snapshot := []domain.WorkItem{
		item(1, nil, "2024-01-01"),
		item(20, ptr(1), "2024-02-01"),
		item(30, ptr(1), "2024-02-01"),
	}

	root := Build(key(1), snapshot)
	require.Len(t, root.Children, 2)
	assert.Equal(t, 30, root.Children[0].Item.ID)
	assert.Equal(t, 20, root.Children[1].Item.ID)
}

func TestBuild_NilCreatedDateSortsLast(t *testing.T) {
	snapshot := []domain.WorkItem{
		item(1, nil, "2024-01-01"),
		item(2, ptr(1), ""),
		item(3, ptr(1), "2024-02-01"),
	}

	root := Build(key(1), snapshot)
	require.Len(t, root.Children, 2)
	assert.Equal(t, 3, root.Children[0].Item.ID)
	assert.Equal(t, 2, root.Children[1].Item.ID)
}

func TestBuild_SharedSubtreeExpandsUnderEachParent(t *testing.T) {
	// Items from another branch that merely repeat an id elsewhere in the
	// forest must still expand; only the current ancestor chain prunes.
	snapshot := []domain.WorkItem{
		item(1, nil, "2024-01-01"),
		item(2, ptr(1), "2024-01-02"),
		item(3, ptr(1), "2024-01-03"),
		item(4, ptr(2), "2024-01-04"),
	}

	root := Build(key(1), snapshot)
	require.Len(t, root.Children, 2)
	// Child 3 (newer) first, then 2 carrying 4.
	assert.Equal(t, 3, root.Children[0].Item.ID)
	assert.Equal(t, 2, root.Children[1].Item.ID)
	require.Len(t, root.Children[1].Children, 1)
	assert.Equal(t, 4, root.Children[1].Children[0].Item.ID)
}

func TestWalk_DepthFirstParentBeforeChild(t *testing.T) {
	snapshot := []domain.WorkItem{
		item(1, nil, "2024-01-01"),
		item(2, ptr(1), "2024-01-02"),
		item(3, ptr(2), "2024-01-03"),
	}

	var order []int
	var depths []int
	Walk(Build(key(1), snapshot), func(n *Node, depth int) {
		order = append(order, n.Item.ID)
		depths = append(depths, depth)
	})

	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, []int{0, 1, 2}, depths)
}
