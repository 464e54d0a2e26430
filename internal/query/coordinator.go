package query

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
)

// EffectiveQuery is the result of combining a filter state with the active
// tab: the parameters sent to the relay plus the residual post-filter
// applied to whatever comes back.
type EffectiveQuery struct {
	ProjectID  string
	Keyword    string
	AssignedTo string
	// States is the advisory server-side filter derived from the tab.
	States []string
	Types  []string
	// ExcludeEpics carries the relay's exclude-Epic sentinel.
	ExcludeEpics bool
	PlannedFrom  *time.Time
	PlannedTo    *time.Time
	Page         int
	PageSize     int

	// Post-filter facets the relay cannot express.
	stateAllow  []string // tab states, checked exactly
	facetStates []string // user-selected states, checked exactly
	closedFrom  *time.Time
	closedTo    *time.Time
}

// Build combines a filter state and tab into the effective query. Keyword
// shorthand is resolved here, so "bug-login" becomes a Bug type filter
// with residual keyword "login".
func Build(f FilterState, tab domain.TabKey) EffectiveQuery {
	f = f.Normalized()

	types := append([]string(nil), f.Types...)
	shorthandType, keyword := ParseShorthand(f.Keyword)
	if shorthandType != "" && !containsFold(types, shorthandType) {
		types = append(types, shorthandType)
	}

	q := EffectiveQuery{
		ProjectID:   f.ProjectID,
		Keyword:     keyword,
		AssignedTo:  f.AssignedTo,
		States:      TabStates(tab),
		Types:       types,
		PlannedFrom: f.PlannedFrom,
		PlannedTo:   f.PlannedTo,
		Page:        f.Page,
		PageSize:    f.PageSize,

		facetStates: append([]string(nil), f.States...),
		closedFrom:  f.ClosedFrom,
		closedTo:    f.ClosedTo,
	}
	q.stateAllow = q.States
	// No explicit type selection means Epics stay out of the dashboard
	// unless the user broadened the selection.
	q.ExcludeEpics = len(types) == 0 && !f.AllTypes
	return q
}

// Match applies the client-side post-filter to one fetched item. The
// relay's filters are advisory, so everything is re-checked exactly here.
func (q EffectiveQuery) Match(item domain.WorkItem) bool {
	if q.ProjectID != "" && item.ProjectID != q.ProjectID {
		return false
	}
	if len(q.stateAllow) > 0 && !containsFold(q.stateAllow, item.State) {
		return false
	}
	if len(q.facetStates) > 0 && !containsFold(q.facetStates, item.State) {
		return false
	}
	if len(q.Types) > 0 && !containsFold(q.Types, item.Type) {
		return false
	}
	if q.ExcludeEpics && strings.EqualFold(item.Type, domain.TypeEpic) {
		return false
	}
	if q.AssignedTo != "" && !strings.Contains(strings.ToLower(item.AssignedTo), strings.ToLower(q.AssignedTo)) {
		return false
	}
	if !q.matchKeyword(item) {
		return false
	}
	if !q.matchClosedRange(item) {
		return false
	}
	if !q.matchPlannedRange(item) {
		return false
	}
	return true
}

func (q EffectiveQuery) matchKeyword(item domain.WorkItem) bool {
	if q.Keyword == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.Title), strings.ToLower(q.Keyword)) {
		return true
	}
	// A purely numeric keyword also matches the item id.
	if _, err := strconv.Atoi(q.Keyword); err == nil {
		return strconv.Itoa(item.ID) == q.Keyword
	}
	return false
}

// matchClosedRange checks the closed-date facet, falling back from
// ClosedDate through ChangedDate to CreatedDate.
func (q EffectiveQuery) matchClosedRange(item domain.WorkItem) bool {
	if q.closedFrom == nil && q.closedTo == nil {
		return true
	}
	when := domain.CoalesceTime(item.ClosedDate, item.ChangedDate, item.CreatedDate)
	if when == nil {
		return false
	}
	if q.closedFrom != nil && when.Before(*q.closedFrom) {
		return false
	}
	if q.closedTo != nil && when.After(*q.closedTo) {
		return false
	}
	return true
}

// matchPlannedRange requires the item's [plannedStart, target] interval to
// overlap the requested range.
func (q EffectiveQuery) matchPlannedRange(item domain.WorkItem) bool {
	if q.PlannedFrom == nil && q.PlannedTo == nil {
		return true
	}
	if item.PlannedStartDate == nil {
		return false
	}
	start := *item.PlannedStartDate
	end := start
	if item.TargetDate != nil && item.TargetDate.After(start) {
		end = *item.TargetDate
	}
	if q.PlannedTo != nil && start.After(*q.PlannedTo) {
		return false
	}
	if q.PlannedFrom != nil && end.Before(*q.PlannedFrom) {
		return false
	}
	return true
}

// EstimateTotal reports the dashboard's total count. When the relay
// signals more pages the value is the intentional "at least this many"
// sentinel page*pageSize+1; otherwise it is the exact count seen.
func EstimateTotal(page, pageSize, seen int, hasMore bool) int {
	if hasMore {
		return page*pageSize + 1
	}
	return seen
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

// Storage is the injected key-value persistence boundary for filter
// state; the sqlite prefs repository satisfies it in production.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// Coordinator owns one logical view's filter state and its persistence.
// The "all items" dashboard and each forced single-project view construct
// their own coordinator with a distinct view key.
type Coordinator struct {
	storage Storage
	viewKey string
	state   FilterState
}

func NewCoordinator(storage Storage, viewKey string, defaults FilterState) *Coordinator {
	return &Coordinator{storage: storage, viewKey: viewKey, state: defaults.Normalized()}
}

// Restore loads the persisted filter state for this view, if any.
// Pagination always resets to page 1.
func (c *Coordinator) Restore(ctx context.Context) error {
	loaded, ok, err := loadFilters(ctx, c.storage, c.viewKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	loaded.Page = 1
	loaded.PageSize = c.state.PageSize
	c.state = loaded.Normalized()
	return nil
}

// State returns the current filter state.
func (c *Coordinator) State() FilterState {
	return c.state
}

// SetState replaces the filter state and persists it (minus pagination).
func (c *Coordinator) SetState(ctx context.Context, f FilterState) error {
	c.state = f.Normalized()
	return saveFilters(ctx, c.storage, c.viewKey, c.state)
}

// SetPage moves pagination without touching the persisted facets.
func (c *Coordinator) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.state.Page = page
}

// Apply builds the effective query for the current state and tab.
func (c *Coordinator) Apply(tab domain.TabKey) EffectiveQuery {
	return Build(c.state, tab)
}
