package service

import (
	"context"
	"errors"
	"time"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/PicoEvanZhu/workdeck/internal/relay"
)

// fakeFetcher scripts relay responses per method. Unset methods fail, so
// tests only wire what they exercise.
type fakeFetcher struct {
	listItems       func(ctx context.Context, projectID string, f relay.ListFilters, page, pageSize int) ([]domain.WorkItem, bool, error)
	listDescendants func(ctx context.Context, projectID string, rootID int) ([]domain.WorkItem, error)
	getItem         func(ctx context.Context, projectID string, id int) (domain.WorkItem, error)
	createItem      func(ctx context.Context, projectID string, fields relay.ItemFields) (domain.WorkItem, error)
	updateItem      func(ctx context.Context, projectID string, id int, fields relay.ItemFields) (domain.WorkItem, error)
	deleteItem      func(ctx context.Context, projectID string, id int) error
	listComments    func(ctx context.Context, projectID string, id int) ([]domain.Comment, error)
	addComment      func(ctx context.Context, projectID string, id int, text string) (domain.Comment, error)
}

var errNotScripted = errors.New("fakeFetcher: method not scripted")

func (f *fakeFetcher) ListItems(ctx context.Context, projectID string, lf relay.ListFilters, page, pageSize int) ([]domain.WorkItem, bool, error) {
	if f.listItems == nil {
		return nil, false, errNotScripted
	}
	return f.listItems(ctx, projectID, lf, page, pageSize)
}

func (f *fakeFetcher) ListDescendants(ctx context.Context, projectID string, rootID int) ([]domain.WorkItem, error) {
	if f.listDescendants == nil {
		return nil, errNotScripted
	}
	return f.listDescendants(ctx, projectID, rootID)
}

func (f *fakeFetcher) GetItem(ctx context.Context, projectID string, id int) (domain.WorkItem, error) {
	if f.getItem == nil {
		return domain.WorkItem{}, errNotScripted
	}
	return f.getItem(ctx, projectID, id)
}

func (f *fakeFetcher) CreateItem(ctx context.Context, projectID string, fields relay.ItemFields) (domain.WorkItem, error) {
	if f.createItem == nil {
		return domain.WorkItem{}, errNotScripted
	}
	return f.createItem(ctx, projectID, fields)
}

func (f *fakeFetcher) UpdateItem(ctx context.Context, projectID string, id int, fields relay.ItemFields) (domain.WorkItem, error) {
	if f.updateItem == nil {
		return domain.WorkItem{}, errNotScripted
	}
	return f.updateItem(ctx, projectID, id, fields)
}

func (f *fakeFetcher) DeleteItem(ctx context.Context, projectID string, id int) error {
	if f.deleteItem == nil {
		return errNotScripted
	}
	return f.deleteItem(ctx, projectID, id)
}

func (f *fakeFetcher) ListComments(ctx context.Context, projectID string, id int) ([]domain.Comment, error) {
	if f.listComments == nil {
		return nil, errNotScripted
	}
	return f.listComments(ctx, projectID, id)
}

func (f *fakeFetcher) AddComment(ctx context.Context, projectID string, id int, text string) (domain.Comment, error) {
	if f.addComment == nil {
		return domain.Comment{}, errNotScripted
	}
	return f.addComment(ctx, projectID, id, text)
}

func testItem(projectID string, id int, parentID *int) domain.WorkItem {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, id)
	return domain.WorkItem{
		ProjectID:   projectID,
		ID:          id,
		Title:       "item",
		Type:        domain.TypeTask,
		State:       domain.StateActive,
		CreatedDate: &created,
		ParentID:    parentID,
	}
}

func intPtr(v int) *int { return &v }
