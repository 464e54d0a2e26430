package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/PicoEvanZhu/workdeck/internal/fence"
	"github.com/PicoEvanZhu/workdeck/internal/query"
	"github.com/PicoEvanZhu/workdeck/internal/relay"
	"github.com/PicoEvanZhu/workdeck/internal/store"
)

type boardService struct {
	fetcher Fetcher
	store   *store.RecordStore
	coord   *query.Coordinator
	guard   fence.Guard

	mu   sync.Mutex
	page BoardPage
}

// NewBoardService creates the dashboard orchestrator around one view's
// filter coordinator.
func NewBoardService(fetcher Fetcher, recordStore *store.RecordStore, coord *query.Coordinator) BoardService {
	return &boardService{fetcher: fetcher, store: recordStore, coord: coord}
}

func (s *boardService) Load(ctx context.Context, tab domain.TabKey) (BoardPage, error) {
	q := s.coord.Apply(tab)
	tok := s.guard.Next()

	items, hasMore, err := s.fetcher.ListItems(ctx, q.ProjectID, relay.ListFilters{
		States:       q.States,
		Types:        q.Types,
		ExcludeEpics: q.ExcludeEpics,
		Keyword:      q.Keyword,
		AssignedTo:   q.AssignedTo,
	}, q.Page, q.PageSize)
	if err != nil {
		// No partial updates: the previous page and filter state stand.
		return s.Current(), fmt.Errorf("loading work items: %w", err)
	}
	if !s.guard.IsCurrent(tok) {
		return s.Current(), nil
	}

	s.store.Merge(items)

	filtered := make([]domain.WorkItem, 0, len(items))
	for _, it := range items {
		if q.Match(it) {
			filtered = append(filtered, it)
		}
	}

	// The total heuristic counts raw server rows, not post-filtered ones.
	seen := (q.Page-1)*q.PageSize + len(items)
	page := BoardPage{
		Items:   filtered,
		Total:   query.EstimateTotal(q.Page, q.PageSize, seen, hasMore),
		HasMore: hasMore,
		Tab:     tab,
	}

	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
	return page, nil
}

func (s *boardService) Current() BoardPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *boardService) Filters() query.FilterState {
	return s.coord.State()
}

func (s *boardService) SetFilters(ctx context.Context, f query.FilterState) error {
	f.Page = 1
	if err := s.coord.SetState(ctx, f); err != nil {
		return err
	}
	return nil
}

func (s *boardService) SetPage(page int) {
	s.coord.SetPage(page)
}
