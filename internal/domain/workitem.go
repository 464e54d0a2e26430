package domain

import "time"

// ItemKey is the composite identity of a work item. The remote tracker
// assigns integer ids that are unique only within a project.
type ItemKey struct {
	ProjectID string
	ID        int
}

type WorkItem struct {
	ProjectID string
	ID        int
	Title     string
	Type      string
	State     string

	AssignedTo string
	Priority   int

	// Effort (hours, non-negative)
	OriginalEstimate float64
	Remaining        float64

	Tags          []string
	AreaPath      string
	IterationPath string
	Description   string

	// Scheduling
	PlannedStartDate *time.Time
	TargetDate       *time.Time

	CreatedDate *time.Time
	ChangedDate *time.Time
	ClosedDate  *time.Time

	// Bare id of the parent item, same project unless the tracker says
	// otherwise. Nil for roots.
	ParentID *int
}

// Key returns the composite identity used by the record store.
func (w WorkItem) Key() ItemKey {
	return ItemKey{ProjectID: w.ProjectID, ID: w.ID}
}

// Closed reports whether the item's state falls in the closed/resolved
// class, compared case-insensitively.
func (w WorkItem) Closed() bool {
	return IsClosedState(w.State)
}
