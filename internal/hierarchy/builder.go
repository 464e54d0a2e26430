// Package hierarchy derives the alignment view's rooted tree from the
// record store's parent links. The tracker's parent/child graph is not
// trusted to be acyclic; cycle edges are pruned, never raised.
package hierarchy

import (
	"sort"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
)

// Node is a derived view, rebuilt from the record snapshot on every
// relevant change; it is never stored.
type Node struct {
	Item     domain.WorkItem
	Children []*Node
}

// Build returns the tree rooted at root, or nil when the root record is
// absent from the snapshot. The result is always a finite, acyclic tree:
// a child already present on its own root-to-node path is pruned.
func Build(root domain.ItemKey, snapshot []domain.WorkItem) *Node {
	byKey := make(map[domain.ItemKey]domain.WorkItem, len(snapshot))
	children := make(map[domain.ItemKey][]domain.WorkItem)
	for _, it := range snapshot {
		byKey[it.Key()] = it
		if it.ParentID != nil {
			// Bare parent ids are scoped to the child's own project.
			parent := domain.ItemKey{ProjectID: it.ProjectID, ID: *it.ParentID}
			children[parent] = append(children[parent], it)
		}
	}

	rootItem, ok := byKey[root]
	if !ok {
		return nil
	}

	b := &builder{children: children, onPath: make(map[domain.ItemKey]bool)}
	return b.expand(rootItem)
}

type builder struct {
	children map[domain.ItemKey][]domain.WorkItem
	// onPath holds the ancestor chain of the node currently being
	// expanded. Entries are removed on the way back up, so the guard is
	// per root-to-node path, not global: the same item may legitimately
	// appear under several siblings elsewhere in the forest.
	onPath map[domain.ItemKey]bool
}

func (b *builder) expand(item domain.WorkItem) *Node {
	key := item.Key()
	b.onPath[key] = true
	defer delete(b.onPath, key)

	node := &Node{Item: item}
	kids := append([]domain.WorkItem(nil), b.children[key]...)
	sortChildren(kids)
	for _, kid := range kids {
		if b.onPath[kid.Key()] {
			// Cycle edge back into the ancestor chain; prune the branch.
			continue
		}
		node.Children = append(node.Children, b.expand(kid))
	}
	return node
}

// sortChildren orders siblings newest-first:
// 1. CreatedDate: descending (nil last)
// 2. ID: descending
func sortChildren(items []domain.WorkItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		// 1. CreatedDate descending, nil last
		if (a.CreatedDate == nil) != (b.CreatedDate == nil) {
			return a.CreatedDate != nil
		}
		if a.CreatedDate != nil && b.CreatedDate != nil && !a.CreatedDate.Equal(*b.CreatedDate) {
			return a.CreatedDate.After(*b.CreatedDate)
		}

		// 2. ID descending
		return a.ID > b.ID
	})
}

// Walk visits the tree depth-first, parents before children, calling fn
// with each node and its depth from the root.
func Walk(root *Node, fn func(n *Node, depth int)) {
	if root == nil {
		return
	}
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		fn(n, depth)
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	visit(root, 0)
}

// Size returns the number of nodes in the tree.
func Size(root *Node) int {
	n := 0
	Walk(root, func(*Node, int) { n++ })
	return n
}
