package service

import (
	"context"
	"fmt"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/PicoEvanZhu/workdeck/internal/relay"
	"github.com/PicoEvanZhu/workdeck/internal/store"
)

type workItemService struct {
	fetcher Fetcher
	store   *store.RecordStore
}

// NewWorkItemService creates the single-item read/mutation service.
func NewWorkItemService(fetcher Fetcher, recordStore *store.RecordStore) WorkItemService {
	return &workItemService{fetcher: fetcher, store: recordStore}
}

func (s *workItemService) Get(ctx context.Context, projectID string, id int) (domain.WorkItem, error) {
	if item, ok := s.store.Get(projectID, id); ok {
		return item, nil
	}
	item, err := s.fetcher.GetItem(ctx, projectID, id)
	if err != nil {
		return domain.WorkItem{}, fmt.Errorf("fetching item %d: %w", id, err)
	}
	s.store.Merge([]domain.WorkItem{item})
	return item, nil
}

func (s *workItemService) Create(ctx context.Context, projectID string, fields relay.ItemFields) (domain.WorkItem, error) {
	item, err := s.fetcher.CreateItem(ctx, projectID, fields)
	if err != nil {
		return domain.WorkItem{}, fmt.Errorf("creating item: %w", err)
	}
	// The relay echoes the complete post-mutation record; merging it
	// whole is safe under the store's last-write-wins policy.
	s.store.Merge([]domain.WorkItem{item})
	return item, nil
}

func (s *workItemService) Update(ctx context.Context, projectID string, id int, fields relay.ItemFields) (domain.WorkItem, error) {
	item, err := s.fetcher.UpdateItem(ctx, projectID, id, fields)
	if err != nil {
		return domain.WorkItem{}, fmt.Errorf("updating item %d: %w", id, err)
	}
	s.store.Merge([]domain.WorkItem{item})
	return item, nil
}

func (s *workItemService) Delete(ctx context.Context, projectID string, id int) error {
	if err := s.fetcher.DeleteItem(ctx, projectID, id); err != nil {
		return fmt.Errorf("deleting item %d: %w", id, err)
	}
	s.store.Remove(projectID, id)
	return nil
}

func (s *workItemService) Comments(ctx context.Context, projectID string, id int) ([]domain.Comment, error) {
	comments, err := s.fetcher.ListComments(ctx, projectID, id)
	if err != nil {
		return nil, fmt.Errorf("loading comments for %d: %w", id, err)
	}
	return comments, nil
}

func (s *workItemService) Comment(ctx context.Context, projectID string, id int, text string) (domain.Comment, error) {
	comment, err := s.fetcher.AddComment(ctx, projectID, id, text)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("adding comment to %d: %w", id, err)
	}
	return comment, nil
}
