// Package store holds the in-memory record store: the identity-keyed table
// of the latest known state of each work item. Fetch results are merged in
// whole-record, last-write-wins; derived views (tree, timeline, filters)
// only ever read it.
package store

import (
	"sync"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
)

type RecordStore struct {
	mu    sync.RWMutex
	items map[domain.ItemKey]domain.WorkItem
}

func NewRecordStore() *RecordStore {
	return &RecordStore{items: make(map[domain.ItemKey]domain.WorkItem)}
}

// Merge inserts or overwrites each item keyed by (projectID, id). The whole
// record is replaced; no field-level reconciliation happens here, so callers
// must only merge complete, freshest-known copies.
func (s *RecordStore) Merge(items []domain.WorkItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		s.items[it.Key()] = it
	}
}

// Get returns the current record for the key, if present.
func (s *RecordStore) Get(projectID string, id int) (domain.WorkItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[domain.ItemKey{ProjectID: projectID, ID: id}]
	return it, ok
}

// List returns a snapshot of all records, in unspecified order.
func (s *RecordStore) List() []domain.WorkItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.WorkItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	return out
}

// Len returns the number of live records.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Remove evicts one record, e.g. after a remote delete succeeds.
func (s *RecordStore) Remove(projectID string, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, domain.ItemKey{ProjectID: projectID, ID: id})
}

// Reset drops every record. Used when the alignment root changes or the
// user navigates away; records are otherwise evicted only on delete.
func (s *RecordStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[domain.ItemKey]domain.WorkItem)
}
