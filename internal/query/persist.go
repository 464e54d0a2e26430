package query

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// persistedFilters is the stored shape of a filter state. Pagination is
// deliberately absent: every session starts on page 1.
type persistedFilters struct {
	Keyword     string   `json:"keyword,omitempty"`
	AssignedTo  string   `json:"assignedTo,omitempty"`
	States      []string `json:"states,omitempty"`
	Types       []string `json:"types,omitempty"`
	ProjectID   string   `json:"projectId,omitempty"`
	ClosedFrom  *string  `json:"closedFrom,omitempty"`
	ClosedTo    *string  `json:"closedTo,omitempty"`
	PlannedFrom *string  `json:"plannedFrom,omitempty"`
	PlannedTo   *string  `json:"plannedTo,omitempty"`
	AllTypes    bool     `json:"allTypes,omitempty"`
}

func filterKey(viewKey string) string {
	return "filters/" + viewKey
}

func saveFilters(ctx context.Context, storage Storage, viewKey string, f FilterState) error {
	p := persistedFilters{
		Keyword:     f.Keyword,
		AssignedTo:  f.AssignedTo,
		States:      f.States,
		Types:       f.Types,
		ProjectID:   f.ProjectID,
		ClosedFrom:  encodeTime(f.ClosedFrom),
		ClosedTo:    encodeTime(f.ClosedTo),
		PlannedFrom: encodeTime(f.PlannedFrom),
		PlannedTo:   encodeTime(f.PlannedTo),
		AllTypes:    f.AllTypes,
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding filters: %w", err)
	}
	if err := storage.Set(ctx, filterKey(viewKey), string(raw)); err != nil {
		return fmt.Errorf("persisting filters: %w", err)
	}
	return nil
}

func loadFilters(ctx context.Context, storage Storage, viewKey string) (FilterState, bool, error) {
	raw, ok, err := storage.Get(ctx, filterKey(viewKey))
	if err != nil {
		return FilterState{}, false, fmt.Errorf("loading filters: %w", err)
	}
	if !ok {
		return FilterState{}, false, nil
	}
	var p persistedFilters
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return FilterState{}, false, fmt.Errorf("decoding filters: %w", err)
	}
	f := FilterState{
		Keyword:     p.Keyword,
		AssignedTo:  p.AssignedTo,
		States:      p.States,
		Types:       p.Types,
		ProjectID:   p.ProjectID,
		ClosedFrom:  decodeTime(p.ClosedFrom),
		ClosedTo:    decodeTime(p.ClosedTo),
		PlannedFrom: decodeTime(p.PlannedFrom),
		PlannedTo:   decodeTime(p.PlannedTo),
		AllTypes:    p.AllTypes,
	}
	return f, true, nil
}

func encodeTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func decodeTime(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	return &t
}
