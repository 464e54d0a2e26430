package service

import (
	"context"
	"testing"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/PicoEvanZhu/workdeck/internal/query"
	"github.com/PicoEvanZhu/workdeck/internal/relay"
	"github.com/PicoEvanZhu/workdeck/internal/repository"
	"github.com/PicoEvanZhu/workdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(fetcher Fetcher, rs *store.RecordStore) BoardService {
	coord := query.NewCoordinator(repository.NewMemoryPrefsRepo(), "board:test", query.FilterState{PageSize: 20})
	return NewBoardService(fetcher, rs, coord)
}

func TestBoardLoad_PostFilterAndMerge(t *testing.T) {
	rs := store.NewRecordStore()

	stray := testItem("proj", 2, nil)
	stray.State = "Closed" // server filters are advisory; this one leaked
	epic := testItem("proj", 3, nil)
	epic.Type = domain.TypeEpic

	fetcher := &fakeFetcher{
		listItems: func(_ context.Context, _ string, f relay.ListFilters, _, _ int) ([]domain.WorkItem, bool, error) {
			assert.Equal(t, []string{"Active", "Validate"}, f.States)
			assert.True(t, f.ExcludeEpics)
			return []domain.WorkItem{testItem("proj", 1, nil), stray, epic}, false, nil
		},
	}
	svc := newBoard(fetcher, rs)

	page, err := svc.Load(context.Background(), domain.TabInProgress)
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Items[0].ID)

	// Raw rows still land in the record store for other projections.
	assert.Equal(t, 3, rs.Len())
	// ...and still count toward the total heuristic.
	assert.Equal(t, 3, page.Total)
}

func TestBoardLoad_TotalHeuristicWithMorePages(t *testing.T) {
	fetcher := &fakeFetcher{
		listItems: func(_ context.Context, _ string, _ relay.ListFilters, page, pageSize int) ([]domain.WorkItem, bool, error) {
			items := make([]domain.WorkItem, pageSize)
			for i := range items {
				items[i] = testItem("proj", page*1000+i, nil)
			}
			return items, true, nil
		},
	}
	svc := newBoard(fetcher, store.NewRecordStore())
	svc.SetPage(2)

	page, err := svc.Load(context.Background(), domain.TabAll)
	require.NoError(t, err)

	assert.True(t, page.HasMore)
	assert.Equal(t, 2*20+1, page.Total, `"at least this many" sentinel`)
}

func TestBoardLoad_FailureKeepsPriorPage(t *testing.T) {
	ok := true
	fetcher := &fakeFetcher{
		listItems: func(context.Context, string, relay.ListFilters, int, int) ([]domain.WorkItem, bool, error) {
			if !ok {
				return nil, false, &relay.APIError{StatusCode: 502, Message: "tracker down"}
			}
			return []domain.WorkItem{testItem("proj", 1, nil)}, false, nil
		},
	}
	svc := newBoard(fetcher, store.NewRecordStore())

	first, err := svc.Load(context.Background(), domain.TabAll)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)

	ok = false
	got, err := svc.Load(context.Background(), domain.TabAll)
	require.Error(t, err)
	assert.Equal(t, first, got, "failed fetch leaves the previous result set visible")
	assert.Equal(t, first, svc.Current())
}

func TestBoardLoad_StaleResponseDropped(t *testing.T) {
	var svc BoardService
	nested := false
	fetcher := &fakeFetcher{}
	fetcher.listItems = func(ctx context.Context, _ string, f relay.ListFilters, _, _ int) ([]domain.WorkItem, bool, error) {
		if !nested {
			nested = true
			// A tab change fires before the first load resolves.
			if _, err := svc.Load(ctx, domain.TabCompleted); err != nil {
				return nil, false, err
			}
			return []domain.WorkItem{testItem("proj", 1, nil)}, false, nil
		}
		done := testItem("proj", 2, nil)
		done.State = domain.StateClosed
		return []domain.WorkItem{done}, false, nil
	}
	svc = newBoard(fetcher, store.NewRecordStore())

	page, err := svc.Load(context.Background(), domain.TabAll)
	require.NoError(t, err)

	assert.Equal(t, domain.TabCompleted, page.Tab, "only the newest load's result is applied")
	require.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Items[0].ID)
}

func TestBoardSetFilters_ResetsToPageOne(t *testing.T) {
	svc := newBoard(&fakeFetcher{}, store.NewRecordStore())
	svc.SetPage(5)

	require.NoError(t, svc.SetFilters(context.Background(), query.FilterState{Keyword: "auth", PageSize: 20, Page: 5}))
	assert.Equal(t, 1, svc.Filters().Page)
	assert.Equal(t, "auth", svc.Filters().Keyword)
}
