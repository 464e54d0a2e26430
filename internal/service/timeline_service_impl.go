package service

import (
	"time"

	"github.com/PicoEvanZhu/workdeck/internal/store"
	"github.com/PicoEvanZhu/workdeck/internal/timeline"
)

type timelineService struct {
	store *store.RecordStore
}

// NewTimelineService projects the shared record store onto the Gantt
// grid. It holds no state of its own; every call re-derives the layout.
func NewTimelineService(recordStore *store.RecordStore) TimelineService {
	return &timelineService{store: recordStore}
}

func (s *timelineService) Grid(now time.Time, dayWidth int) timeline.Grid {
	return timeline.Layout(timeline.Rows(s.store.List()), now, dayWidth)
}
