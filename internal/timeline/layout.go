// Package timeline derives the Gantt view's pixel grid and bar geometry
// from the record store's planned/target dates. Everything here is a pure
// projection; nothing is persisted.
package timeline

import (
	"sort"
	"time"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
)

// DefaultDayWidth is the per-day pixel allocation used when the caller has
// no zoomed preference.
const DefaultDayWidth = 32

// MinBarWidth keeps very short bars clickable.
const MinBarWidth = 12

// Row pairs a work item with its resolved date interval. Only items with a
// planned start date appear; there is no well-defined anchor for the rest.
type Row struct {
	Item  domain.WorkItem
	Start time.Time
	End   time.Time
}

// Rows projects items onto timeline rows. End defaults to one day after
// Start when the target date is absent, and is clamped to land strictly
// after Start.
func Rows(items []domain.WorkItem) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		if it.PlannedStartDate == nil {
			continue
		}
		start := *it.PlannedStartDate
		var end time.Time
		if it.TargetDate != nil {
			end = *it.TargetDate
		} else {
			end = start.AddDate(0, 0, 1)
		}
		if !end.After(start) {
			end = start.AddDate(0, 0, 1)
		}
		rows = append(rows, Row{Item: it, Start: start, End: end})
	}
	// Stable display order: earliest start first, then id ascending.
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Start.Equal(rows[j].Start) {
			return rows[i].Start.Before(rows[j].Start)
		}
		return rows[i].Item.ID < rows[j].Item.ID
	})
	return rows
}

// Tick is a one-per-day grid line. Mondays additionally carry a date label.
type Tick struct {
	Offset    int
	Day       time.Time
	Weekday   string
	DateLabel string
}

// PositionedRow is a row with its computed horizontal geometry.
type PositionedRow struct {
	Row
	X      int
	Width  int
	Status Status
}

// Grid is the computed layout for one render of the timeline.
type Grid struct {
	MinStart    time.Time
	MaxEnd      time.Time
	DayWidth    int
	Ticks       []Tick
	Rows        []PositionedRow
	TodayOffset int
}

// Layout computes the grid for rows at the given day width. The span covers
// the earliest start (day-truncated) through the latest end (day-ceiled),
// never less than one day. With no rows the grid anchors on today.
func Layout(rows []Row, now time.Time, dayWidth int) Grid {
	if dayWidth <= 0 {
		dayWidth = DefaultDayWidth
	}

	minStart := StartOfDay(now)
	maxEnd := minStart.AddDate(0, 0, 1)
	if len(rows) > 0 {
		minStart = StartOfDay(rows[0].Start)
		maxEnd = CeilToDay(rows[0].End)
		for _, r := range rows[1:] {
			if s := StartOfDay(r.Start); s.Before(minStart) {
				minStart = s
			}
			if e := CeilToDay(r.End); e.After(maxEnd) {
				maxEnd = e
			}
		}
		if !maxEnd.After(minStart) {
			maxEnd = minStart.AddDate(0, 0, 1)
		}
	}

	g := Grid{
		MinStart:    minStart,
		MaxEnd:      maxEnd,
		DayWidth:    dayWidth,
		TodayOffset: DaysBetween(minStart, now) * dayWidth,
	}

	days := DaysBetween(minStart, maxEnd)
	g.Ticks = make([]Tick, 0, days+1)
	for d := 0; d <= days; d++ {
		day := minStart.AddDate(0, 0, d)
		tick := Tick{
			Offset:  d * dayWidth,
			Day:     day,
			Weekday: day.Format("Mon"),
		}
		if day.Weekday() == time.Monday {
			tick.DateLabel = day.Format("01-02")
		}
		g.Ticks = append(g.Ticks, tick)
	}

	g.Rows = make([]PositionedRow, 0, len(rows))
	for _, r := range rows {
		startDays := DaysBetween(minStart, r.Start)
		endDays := DaysBetween(minStart, r.End)
		width := (endDays - startDays + 1) * dayWidth
		if width < MinBarWidth {
			width = MinBarWidth
		}
		g.Rows = append(g.Rows, PositionedRow{
			Row:    r,
			X:      startDays * dayWidth,
			Width:  width,
			Status: Classify(r, now),
		})
	}
	return g
}
