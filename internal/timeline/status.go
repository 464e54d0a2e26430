package timeline

import (
	"time"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
)

// Status classifies a timeline bar for rendering.
type Status string

const (
	StatusDone       Status = "done"
	StatusOverdue    Status = "overdue"
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusNone       Status = ""
)

// Classify buckets a row into exactly one status. Precedence matters: a
// closed item with a past target date is done, never overdue.
// 1. done: state in the closed/resolved class
// 2. overdue: target date's end-of-day strictly before the start of today
// 3. not_started: today strictly before the row's start day
// 4. in_progress: today inside [start, end] at day granularity
// 5. none otherwise
func Classify(r Row, now time.Time) Status {
	if domain.IsClosedState(r.Item.State) {
		return StatusDone
	}

	today := StartOfDay(now)
	if r.Item.TargetDate != nil && EndOfDay(*r.Item.TargetDate).Before(today) {
		return StatusOverdue
	}

	if today.Before(StartOfDay(r.Start)) {
		return StatusNotStarted
	}

	if !today.After(StartOfDay(r.End)) {
		return StatusInProgress
	}

	return StatusNone
}
