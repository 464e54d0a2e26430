package service

import (
	"context"
	"time"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/PicoEvanZhu/workdeck/internal/hierarchy"
	"github.com/PicoEvanZhu/workdeck/internal/query"
	"github.com/PicoEvanZhu/workdeck/internal/relay"
	"github.com/PicoEvanZhu/workdeck/internal/timeline"
)

// Fetcher is the slice of the relay client the services consume.
// *relay.Client satisfies it.
type Fetcher interface {
	ListItems(ctx context.Context, projectID string, f relay.ListFilters, page, pageSize int) ([]domain.WorkItem, bool, error)
	ListDescendants(ctx context.Context, projectID string, rootID int) ([]domain.WorkItem, error)
	GetItem(ctx context.Context, projectID string, id int) (domain.WorkItem, error)
	CreateItem(ctx context.Context, projectID string, fields relay.ItemFields) (domain.WorkItem, error)
	UpdateItem(ctx context.Context, projectID string, id int, fields relay.ItemFields) (domain.WorkItem, error)
	DeleteItem(ctx context.Context, projectID string, id int) error
	ListComments(ctx context.Context, projectID string, id int) ([]domain.Comment, error)
	AddComment(ctx context.Context, projectID string, id int, text string) (domain.Comment, error)
}

// AlignmentService drives the mind-map view: it owns the current root,
// loads its subtree into the record store, and exposes the derived tree.
type AlignmentService interface {
	// SwitchRoot resets the store, loads rootID's subtree, and returns
	// the rebuilt tree. A call superseded by a newer SwitchRoot leaves
	// the newer result in place and returns it.
	SwitchRoot(ctx context.Context, projectID string, rootID int) (*hierarchy.Node, error)
	// Refresh reloads the current root's subtree.
	Refresh(ctx context.Context) (*hierarchy.Node, error)
	// Tree returns the last successfully built tree, or nil.
	Tree() *hierarchy.Node
	// PreviewComments prefetches an item's discussion for the hover
	// preview; superseded prefetches resolve to nil.
	PreviewComments(ctx context.Context, projectID string, id int) ([]domain.Comment, error)
}

// BoardPage is one rendered page of the filtered dashboard.
type BoardPage struct {
	Items   []domain.WorkItem
	Total   int
	HasMore bool
	Tab     domain.TabKey
}

// BoardService drives the dashboard list: filters, tabs, pagination.
type BoardService interface {
	// Load fetches the current page for the tab, merges results into the
	// record store, and applies the client-side post-filter. On failure
	// the previously loaded page stays current.
	Load(ctx context.Context, tab domain.TabKey) (BoardPage, error)
	// Current returns the last successfully loaded page.
	Current() BoardPage
	Filters() query.FilterState
	// SetFilters persists the new facets and resets to page 1.
	SetFilters(ctx context.Context, f query.FilterState) error
	SetPage(page int)
}

// TimelineService projects the record store onto the Gantt grid.
type TimelineService interface {
	Grid(now time.Time, dayWidth int) timeline.Grid
}

// WorkItemService covers single-item reads and mutations. Mutation
// responses are authoritative whole records and are merged back into the
// record store.
type WorkItemService interface {
	// Get returns the store's copy when present, fetching and caching it
	// otherwise (parent label resolution uses this path).
	Get(ctx context.Context, projectID string, id int) (domain.WorkItem, error)
	Create(ctx context.Context, projectID string, fields relay.ItemFields) (domain.WorkItem, error)
	Update(ctx context.Context, projectID string, id int, fields relay.ItemFields) (domain.WorkItem, error)
	// Delete removes the item remotely and evicts the local copy.
	Delete(ctx context.Context, projectID string, id int) error
	Comments(ctx context.Context, projectID string, id int) ([]domain.Comment, error)
	Comment(ctx context.Context, projectID string, id int, text string) (domain.Comment, error)
}
