package timeline

import (
	"testing"
	"time"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func plannedItem(id int, start, target string) domain.WorkItem {
	w := domain.WorkItem{ProjectID: "proj", ID: id, State: domain.StateActive}
	if start != "" {
		w.PlannedStartDate = datePtr(start)
	}
	if target != "" {
		w.TargetDate = datePtr(target)
	}
	return w
}

func TestRows_ExcludesItemsWithoutPlannedStart(t *testing.T) {
	rows := Rows([]domain.WorkItem{
		plannedItem(1, "2024-05-01", "2024-05-03"),
		plannedItem(2, "", "2024-05-03"),
	})

	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Item.ID)
}

func TestRows_EndDefaultsToStartPlusOneDay(t *testing.T) {
	rows := Rows([]domain.WorkItem{plannedItem(1, "2024-05-01", "")})

	require.Len(t, rows, 1)
	assert.Equal(t, date("2024-05-02"), rows[0].End)
}

func TestRows_EndClampedStrictlyAfterStart(t *testing.T) {
	// Target before start is a data error; the bar still gets a valid span.
	rows := Rows([]domain.WorkItem{plannedItem(1, "2024-05-10", "2024-05-01")})

	require.Len(t, rows, 1)
	assert.True(t, rows[0].End.After(rows[0].Start))
	assert.Equal(t, date("2024-05-11"), rows[0].End)
}

func TestRows_SortedByStartThenID(t *testing.T) {
	rows := Rows([]domain.WorkItem{
		plannedItem(3, "2024-05-02", ""),
		plannedItem(2, "2024-05-01", ""),
		plannedItem(1, "2024-05-02", ""),
	})

	require.Len(t, rows, 3)
	assert.Equal(t, 2, rows[0].Item.ID)
	assert.Equal(t, 1, rows[1].Item.ID)
	assert.Equal(t, 3, rows[2].Item.ID)
}

func TestLayout_ThreeDaySpanHasFourTicks(t *testing.T) {
	rows := Rows([]domain.WorkItem{plannedItem(1, "2024-05-01", "2024-05-04")})
	now := date("2024-05-02")

	g := Layout(rows, now, 10)

	assert.Equal(t, date("2024-05-01"), g.MinStart)
	assert.Equal(t, date("2024-05-04"), g.MaxEnd)
	assert.Equal(t, 3, DaysBetween(g.MinStart, g.MaxEnd))
	assert.Len(t, g.Ticks, 4)
}

func TestLayout_TickLabels(t *testing.T) {
	// 2024-05-06 is a Monday.
	rows := Rows([]domain.WorkItem{plannedItem(1, "2024-05-05", "2024-05-07")})

	g := Layout(rows, date("2024-05-05"), 10)

	require.Len(t, g.Ticks, 3)
	assert.Equal(t, "Sun", g.Ticks[0].Weekday)
	assert.Empty(t, g.Ticks[0].DateLabel)
	assert.Equal(t, "Mon", g.Ticks[1].Weekday)
	assert.Equal(t, "05-06", g.Ticks[1].DateLabel)
	assert.Equal(t, 10, g.Ticks[1].Offset)
}

func TestLayout_RowGeometry(t *testing.T) {
	rows := Rows([]domain.WorkItem{
		plannedItem(1, "2024-05-01", "2024-05-03"),
		plannedItem(2, "2024-05-02", "2024-05-02"),
	})

	g := Layout(rows, date("2024-05-01"), 20)

	require.Len(t, g.Rows, 2)
	first := g.Rows[0]
	assert.Equal(t, 0, first.X)
	assert.Equal(t, 60, first.Width) // 3 days inclusive

	second := g.Rows[1]
	assert.Equal(t, 20, second.X)
	// Clamped end lands a day later; 2 days inclusive.
	assert.Equal(t, 40, second.Width)
}

func TestLayout_MinimumBarWidth(t *testing.T) {
	rows := Rows([]domain.WorkItem{plannedItem(1, "2024-05-01", "")})

	g := Layout(rows, date("2024-05-01"), 5)

	require.Len(t, g.Rows, 1)
	assert.Equal(t, MinBarWidth, g.Rows[0].Width)
}

func TestLayout_TodayOffset(t *testing.T) {
	rows := Rows([]domain.WorkItem{plannedItem(1, "2024-05-01", "2024-05-10")})

	g := Layout(rows, date("2024-05-04").Add(13*time.Hour), 10)

	assert.Equal(t, 30, g.TodayOffset)
}

func TestLayout_EmptyAnchorsOnToday(t *testing.T) {
	g := Layout(nil, date("2024-05-04"), 10)

	assert.Equal(t, date("2024-05-04"), g.MinStart)
	assert.Equal(t, date("2024-05-05"), g.MaxEnd)
	assert.Len(t, g.Ticks, 2)
	assert.Empty(t, g.Rows)
}

func TestClassify_DonePrecedesOverdue(t *testing.T) {
	item := plannedItem(1, "2024-04-01", "2024-04-05")
	item.State = "Closed"
	rows := Rows([]domain.WorkItem{item})

	// Target long past, but closed wins.
	assert.Equal(t, StatusDone, Classify(rows[0], date("2024-06-01")))
}

func TestClassify_CaseInsensitiveDone(t *testing.T) {
	item := plannedItem(1, "2024-04-01", "2024-04-05")
	item.State = "rEsOlVeD"
	rows := Rows([]domain.WorkItem{item})

	assert.Equal(t, StatusDone, Classify(rows[0], date("2024-06-01")))
}

func TestClassify_Overdue(t *testing.T) {
	rows := Rows([]domain.WorkItem{plannedItem(1, "2024-04-01", "2024-04-05")})

	assert.Equal(t, StatusOverdue, Classify(rows[0], date("2024-04-06")))
}

func TestClassify_TargetEndOfDayNotOverdueSameDay(t *testing.T) {
	// Due today is not overdue: the target's end-of-day is not before the
	// start of today.
	rows := Rows([]domain.WorkItem{plannedItem(1, "2024-04-01", "2024-04-05")})

	assert.Equal(t, StatusInProgress, Classify(rows[0], date("2024-04-05").Add(9*time.Hour)))
}

func TestClassify_NotStarted(t *testing.T) {
	rows := Rows([]domain.WorkItem{plannedItem(1, "2024-04-10", "2024-04-15")})

	assert.Equal(t, StatusNotStarted, Classify(rows[0], date("2024-04-01")))
}

func TestClassify_InProgress(t *testing.T) {
	rows := Rows([]domain.WorkItem{plannedItem(1, "2024-04-01", "2024-04-10")})

	assert.Equal(t, StatusInProgress, Classify(rows[0], date("2024-04-05")))
}

func TestClassify_NeutralAfterEndWithoutTarget(t *testing.T) {
	// No target date means no overdue; past the default one-day span the
	// bar renders neutrally.
	rows := Rows([]domain.WorkItem{plannedItem(1, "2024-04-01", "")})

	assert.Equal(t, StatusNone, Classify(rows[0], date("2024-04-20")))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 3, DaysBetween(date("2024-05-01"), date("2024-05-04")))
	assert.Equal(t, -2, DaysBetween(date("2024-05-04"), date("2024-05-02")))
	assert.Equal(t, 0, DaysBetween(date("2024-05-01").Add(2*time.Hour), date("2024-05-01").Add(20*time.Hour)))
}

func TestDaysBetween_MixedZones(t *testing.T) {
	west := time.FixedZone("W", -10*3600)
	utc := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	dayBefore := time.Date(2024, 3, 9, 8, 0, 0, 0, west)

	// The instants are under 24h apart, but the calendar days differ.
	assert.Equal(t, -1, DaysBetween(utc, dayBefore))
	assert.Equal(t, 1, DaysBetween(dayBefore, utc))
	assert.Equal(t, 0, DaysBetween(utc, time.Date(2024, 3, 10, 23, 0, 0, 0, west)))
}

func TestCeilToDay(t *testing.T) {
	assert.Equal(t, date("2024-05-01"), CeilToDay(date("2024-05-01")))
	assert.Equal(t, date("2024-05-02"), CeilToDay(date("2024-05-01").Add(time.Minute)))
}
