package query

import (
	"context"
	"testing"
	"time"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapStorage is an in-memory Storage for tests.
type mapStorage struct {
	data map[string]string
}

func newMapStorage() *mapStorage {
	return &mapStorage{data: make(map[string]string)}
}

func (m *mapStorage) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapStorage) Set(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func datePtr(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestTabStates(t *testing.T) {
	assert.Equal(t, []string{"New"}, TabStates(domain.TabNotStarted))
	assert.Equal(t, []string{"Active", "Validate"}, TabStates(domain.TabInProgress))
	assert.Equal(t, []string{"Closed", "Resolved"}, TabStates(domain.TabCompleted))
	assert.Nil(t, TabStates(domain.TabAll))
}

func TestParseShorthand(t *testing.T) {
	typ, residual := ParseShorthand("bug-123")
	assert.Equal(t, domain.TypeBug, typ)
	assert.Equal(t, "123", residual)

	typ, residual = ParseShorthand("US-login page")
	assert.Equal(t, domain.TypeUserStory, typ)
	assert.Equal(t, "login page", residual)

	typ, residual = ParseShorthand("weird-thing")
	assert.Empty(t, typ)
	assert.Equal(t, "weird-thing", residual)

	typ, residual = ParseShorthand("plain keyword")
	assert.Empty(t, typ)
	assert.Equal(t, "plain keyword", residual)

	typ, residual = ParseShorthand("#123")
	assert.Empty(t, typ)
	assert.Equal(t, "123", residual)

	typ, residual = ParseShorthand("bug-#123")
	assert.Equal(t, domain.TypeBug, typ)
	assert.Equal(t, "123", residual)
}

func TestBuild_ShorthandAddsTypeFilter(t *testing.T) {
	q := Build(FilterState{Keyword: "bug-login"}, domain.TabAll)

	assert.Equal(t, []string{domain.TypeBug}, q.Types)
	assert.Equal(t, "login", q.Keyword)
	assert.False(t, q.ExcludeEpics, "an explicit type filter replaces the epic sentinel")
}

func TestBuild_ExcludeEpicDefault(t *testing.T) {
	q := Build(FilterState{}, domain.TabAll)
	assert.True(t, q.ExcludeEpics)

	q = Build(FilterState{AllTypes: true}, domain.TabAll)
	assert.False(t, q.ExcludeEpics)

	q = Build(FilterState{Types: []string{domain.TypeTask}}, domain.TabAll)
	assert.False(t, q.ExcludeEpics)
}

func TestMatch_TabStateAllowList(t *testing.T) {
	q := Build(FilterState{AllTypes: true}, domain.TabInProgress)

	active := domain.WorkItem{ProjectID: "p", ID: 1, State: "active", Type: domain.TypeTask}
	closed := domain.WorkItem{ProjectID: "p", ID: 2, State: "Closed", Type: domain.TypeTask}

	assert.True(t, q.Match(active), "state comparison is case-insensitive")
	assert.False(t, q.Match(closed), "server-side filters are advisory; the post-filter rejects strays")
}

func TestMatch_ProjectEquality(t *testing.T) {
	q := Build(FilterState{ProjectID: "alpha", AllTypes: true}, domain.TabAll)

	assert.True(t, q.Match(domain.WorkItem{ProjectID: "alpha", ID: 1, State: "New"}))
	assert.False(t, q.Match(domain.WorkItem{ProjectID: "beta", ID: 1, State: "New"}))
}

func TestMatch_EpicSentinel(t *testing.T) {
	q := Build(FilterState{}, domain.TabAll)

	assert.False(t, q.Match(domain.WorkItem{ProjectID: "p", ID: 1, State: "New", Type: "Epic"}))
	assert.True(t, q.Match(domain.WorkItem{ProjectID: "p", ID: 2, State: "New", Type: "Task"}))
}

func TestMatch_KeywordTitleAndID(t *testing.T) {
	q := Build(FilterState{Keyword: "123", AllTypes: true}, domain.TabAll)

	assert.True(t, q.Match(domain.WorkItem{ProjectID: "p", ID: 123, State: "New", Title: "other"}))
	assert.True(t, q.Match(domain.WorkItem{ProjectID: "p", ID: 9, State: "New", Title: "fix 1234 overflow"}))
	assert.False(t, q.Match(domain.WorkItem{ProjectID: "p", ID: 9, State: "New", Title: "unrelated"}))
}

func TestMatch_HashPrefixedIDKeyword(t *testing.T) {
	q := Build(FilterState{Keyword: "#123", AllTypes: true}, domain.TabAll)

	assert.Equal(t, "123", q.Keyword, "the id marker stays out of the relay keyword")
	assert.True(t, q.Match(domain.WorkItem{ProjectID: "p", ID: 123, State: "New", Title: "other"}))
	assert.False(t, q.Match(domain.WorkItem{ProjectID: "p", ID: 9, State: "New", Title: "unrelated"}))
}

func TestMatch_AssigneeSubstring(t *testing.T) {
	q := Build(FilterState{AssignedTo: "chen", AllTypes: true}, domain.TabAll)

	assert.True(t, q.Match(domain.WorkItem{ProjectID: "p", ID: 1, State: "New", AssignedTo: "Wei Chen"}))
	assert.False(t, q.Match(domain.WorkItem{ProjectID: "p", ID: 2, State: "New", AssignedTo: "Ada"}))
}

func TestMatch_ClosedRangeFallback(t *testing.T) {
	q := Build(FilterState{
		ClosedFrom: datePtr("2024-03-01"),
		ClosedTo:   datePtr("2024-03-31"),
		AllTypes:   true,
	}, domain.TabAll)

	inRange := domain.WorkItem{ProjectID: "p", ID: 1, State: "Closed", ClosedDate: datePtr("2024-03-10")}
	assert.True(t, q.Match(inRange))

	// No closed date: falls back to changed date.
	changedOnly := domain.WorkItem{ProjectID: "p", ID: 2, State: "Active", ChangedDate: datePtr("2024-03-20")}
	assert.True(t, q.Match(changedOnly))

	// Falls back further to created date, out of range here.
	createdOnly := domain.WorkItem{ProjectID: "p", ID: 3, State: "New", CreatedDate: datePtr("2024-01-01")}
	assert.False(t, q.Match(createdOnly))

	noDates := domain.WorkItem{ProjectID: "p", ID: 4, State: "New"}
	assert.False(t, q.Match(noDates))
}

func TestMatch_PlannedRangeOverlap(t *testing.T) {
	q := Build(FilterState{
		PlannedFrom: datePtr("2024-05-10"),
		PlannedTo:   datePtr("2024-05-20"),
		AllTypes:    true,
	}, domain.TabAll)

	overlapping := domain.WorkItem{
		ProjectID: "p", ID: 1, State: "New",
		PlannedStartDate: datePtr("2024-05-01"),
		TargetDate:       datePtr("2024-05-12"),
	}
	assert.True(t, q.Match(overlapping))

	before := domain.WorkItem{
		ProjectID: "p", ID: 2, State: "New",
		PlannedStartDate: datePtr("2024-04-01"),
		TargetDate:       datePtr("2024-04-20"),
	}
	assert.False(t, q.Match(before))

	after := domain.WorkItem{
		ProjectID: "p", ID: 3, State: "New",
		PlannedStartDate: datePtr("2024-06-01"),
	}
	assert.False(t, q.Match(after))

	unplanned := domain.WorkItem{ProjectID: "p", ID: 4, State: "New"}
	assert.False(t, q.Match(unplanned), "items without a planned start are excluded when a planned filter is set")
}

func TestEstimateTotal(t *testing.T) {
	// More pages: intentionally inexact "at least this many" sentinel.
	assert.Equal(t, 41, EstimateTotal(2, 20, 40, true))
	// Last page: exact count of everything seen.
	assert.Equal(t, 37, EstimateTotal(2, 20, 37, false))
}

func TestCoordinator_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := newMapStorage()

	first := NewCoordinator(storage, "board:all", FilterState{PageSize: 20})
	state := FilterState{
		Keyword:     "bug-auth",
		AssignedTo:  "chen",
		States:      []string{"Active"},
		ProjectID:   "alpha",
		PlannedFrom: datePtr("2024-05-01"),
		Page:        4,
		PageSize:    20,
	}
	require.NoError(t, first.SetState(ctx, state))

	// A fresh session restores everything except pagination.
	second := NewCoordinator(storage, "board:all", FilterState{PageSize: 20})
	require.NoError(t, second.Restore(ctx))

	restored := second.State()
	assert.Equal(t, 1, restored.Page, "pagination always resets to page 1")

	want := Build(state, domain.TabInProgress)
	got := Build(restored, domain.TabInProgress)
	want.Page = 1
	assert.Equal(t, want, got)
}

func TestCoordinator_ViewsAreIsolated(t *testing.T) {
	ctx := context.Background()
	storage := newMapStorage()

	all := NewCoordinator(storage, "board:all", FilterState{})
	require.NoError(t, all.SetState(ctx, FilterState{Keyword: "dashboard"}))

	scoped := NewCoordinator(storage, "board:project:alpha", FilterState{})
	require.NoError(t, scoped.Restore(ctx))

	assert.Empty(t, scoped.State().Keyword, "per-view filter sets must not leak into each other")
}

func TestCoordinator_RestoreWithNothingPersisted(t *testing.T) {
	c := NewCoordinator(newMapStorage(), "board:all", FilterState{Keyword: "default"})
	require.NoError(t, c.Restore(context.Background()))

	assert.Equal(t, "default", c.State().Keyword)
}

func TestCoordinator_SetPageDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	storage := newMapStorage()

	c := NewCoordinator(storage, "board:all", FilterState{})
	require.NoError(t, c.SetState(ctx, FilterState{Keyword: "k"}))
	c.SetPage(7)
	assert.Equal(t, 7, c.State().Page)

	fresh := NewCoordinator(storage, "board:all", FilterState{})
	require.NoError(t, fresh.Restore(ctx))
	assert.Equal(t, 1, fresh.State().Page)
}
