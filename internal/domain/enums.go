package domain

import "strings"

// Remote tracker states are free-form strings; all comparisons against this
// vocabulary are case-insensitive.
const (
	StateNew      = "New"
	StateActive   = "Active"
	StateValidate = "Validate"
	StateResolved = "Resolved"
	StateClosed   = "Closed"
	StateRemoved  = "Removed"
)

// closedStates is the closed/resolved class used for status classification
// and the closed-date post-filter.
var closedStates = map[string]bool{
	"closed":   true,
	"resolved": true,
}

// IsClosedState reports whether state belongs to the closed/resolved class.
func IsClosedState(state string) bool {
	return closedStates[strings.ToLower(state)]
}

// Work item types recognized by the tracker process.
const (
	TypeEpic      = "Epic"
	TypeFeature   = "Feature"
	TypeUserStory = "User Story"
	TypeTask      = "Task"
	TypeBug       = "Bug"
)

// ValidWorkItemTypes is the canonical set of accepted work item type strings.
var ValidWorkItemTypes = map[string]bool{
	TypeEpic: true, TypeFeature: true, TypeUserStory: true,
	TypeTask: true, TypeBug: true,
}

// TabKey selects the coarse dashboard tab mapped to server-side state
// filters by the query coordinator.
type TabKey string

const (
	TabAll        TabKey = "all"
	TabNotStarted TabKey = "not_started"
	TabInProgress TabKey = "in_progress"
	TabCompleted  TabKey = "completed"
)
