package domain

import "time"

// Comment is a discussion entry on a work item. Text is an HTML blob as
// returned by the tracker; rendering strips it down for terminal display.
type Comment struct {
	ID          int
	CreatedBy   string
	CreatedDate *time.Time
	Text        string
}
