package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/PicoEvanZhu/workdeck/internal/fence"
	"github.com/PicoEvanZhu/workdeck/internal/hierarchy"
	"github.com/PicoEvanZhu/workdeck/internal/relay"
	"github.com/PicoEvanZhu/workdeck/internal/store"
)

type alignmentService struct {
	fetcher  Fetcher
	store    *store.RecordStore
	pageSize int

	treeGuard    fence.Guard
	previewGuard fence.Guard

	mu   sync.Mutex
	root *domain.ItemKey
	tree *hierarchy.Node
}

// NewAlignmentService creates the alignment view orchestrator. pageSize
// bounds the fallback paging when the relay has no descendants endpoint.
func NewAlignmentService(fetcher Fetcher, recordStore *store.RecordStore, pageSize int) AlignmentService {
	if pageSize < 1 {
		pageSize = 50
	}
	return &alignmentService{fetcher: fetcher, store: recordStore, pageSize: pageSize}
}

func (s *alignmentService) SwitchRoot(ctx context.Context, projectID string, rootID int) (*hierarchy.Node, error) {
	tok := s.treeGuard.Next()

	rootItem, err := s.fetcher.GetItem(ctx, projectID, rootID)
	if err != nil {
		// Prior tree stays in place; the caller reports the failure.
		return s.Tree(), fmt.Errorf("loading root item %d: %w", rootID, err)
	}
	if !s.treeGuard.IsCurrent(tok) {
		return s.Tree(), nil
	}

	// Switching roots resets the store before the subtree lands.
	s.store.Reset()
	s.store.Merge([]domain.WorkItem{rootItem})

	if err := s.loadSubtree(ctx, tok, projectID, rootID); err != nil {
		return s.Tree(), err
	}

	if !s.treeGuard.IsCurrent(tok) {
		return s.Tree(), nil
	}

	key := rootItem.Key()
	tree := hierarchy.Build(key, s.store.List())

	s.mu.Lock()
	s.root = &key
	s.tree = tree
	s.mu.Unlock()
	return tree, nil
}

// loadSubtree tries the single-shot descendants fetch, falling back to
// manually paged list calls merged page by page until the relay reports
// no more pages.
func (s *alignmentService) loadSubtree(ctx context.Context, tok fence.Token, projectID string, rootID int) error {
	items, err := s.fetcher.ListDescendants(ctx, projectID, rootID)
	if err == nil {
		if s.treeGuard.IsCurrent(tok) {
			s.store.Merge(items)
		}
		return nil
	}
	if !relay.IsNotFound(err) && ctx.Err() != nil {
		return ctx.Err()
	}

	for page := 1; ; page++ {
		pageItems, hasMore, err := s.fetcher.ListItems(ctx, projectID, relay.ListFilters{}, page, s.pageSize)
		if err != nil {
			return fmt.Errorf("paging project %s (page %d): %w", projectID, page, err)
		}
		if !s.treeGuard.IsCurrent(tok) {
			return nil
		}
		s.store.Merge(pageItems)
		if !hasMore {
			return nil
		}
	}
}

func (s *alignmentService) Refresh(ctx context.Context) (*hierarchy.Node, error) {
	s.mu.Lock()
	root := s.root
	s.mu.Unlock()
	if root == nil {
		return nil, nil
	}
	return s.SwitchRoot(ctx, root.ProjectID, root.ID)
}

func (s *alignmentService) Tree() *hierarchy.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

func (s *alignmentService) PreviewComments(ctx context.Context, projectID string, id int) ([]domain.Comment, error) {
	tok := s.previewGuard.Next()

	comments, err := s.fetcher.ListComments(ctx, projectID, id)
	if err != nil {
		return nil, fmt.Errorf("loading comments for %d: %w", id, err)
	}
	if !s.previewGuard.IsCurrent(tok) {
		// A newer prefetch is in flight; this result is stale.
		return nil, nil
	}
	return comments, nil
}
