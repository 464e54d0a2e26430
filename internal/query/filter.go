// Package query combines filter facets and tab selections into effective
// remote-query parameters plus the residual client-side post-filter the
// relay cannot express, and persists the combination across sessions.
package query

import (
	"time"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
)

// FilterState is the value object of optional filter facets plus
// pagination. Pagination is never persisted.
type FilterState struct {
	Keyword    string
	AssignedTo string
	States     []string
	Types      []string
	ProjectID  string

	ClosedFrom  *time.Time
	ClosedTo    *time.Time
	PlannedFrom *time.Time
	PlannedTo   *time.Time

	// AllTypes is set when the user explicitly broadens the type
	// selection; until then the exclude-Epic default applies.
	AllTypes bool

	Page     int
	PageSize int
}

// DefaultPageSize matches the relay's default page size.
const DefaultPageSize = 20

// Normalized returns a copy with pagination forced into valid range.
func (f FilterState) Normalized() FilterState {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	return f
}

// TabStates maps a dashboard tab to the coarse server-side state filter.
// The relay treats it as advisory; the post-filter re-checks exactly.
func TabStates(tab domain.TabKey) []string {
	switch tab {
	case domain.TabNotStarted:
		return []string{domain.StateNew}
	case domain.TabInProgress:
		return []string{domain.StateActive, domain.StateValidate}
	case domain.TabCompleted:
		return []string{domain.StateClosed, domain.StateResolved}
	default:
		return nil
	}
}
