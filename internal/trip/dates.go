package trip

import (
	"fmt"
	"time"
)

// DayFormat is the wire format for calendar days.
const DayFormat = "2006-01-02"

// DateSelection is the outcome of a sequence of calendar taps: an ordered
// (start, end) pair plus every marked day in between.
//
// Invariants: EndsAt is only set when StartsAt is, and never precedes it.
// Marked always equals the inclusive day range (empty while EndsAt is
// unset). Display is empty until both ends are chosen.
type DateSelection struct {
	StartsAt *time.Time
	EndsAt   *time.Time
	Marked   []time.Time
	Display  string
}

// Complete reports whether both ends of the range are chosen.
func (s DateSelection) Complete() bool {
	return s.StartsAt != nil && s.EndsAt != nil
}

// IsMarked reports whether day falls inside the selected range.
func (s DateSelection) IsMarked(day time.Time) bool {
	day = Day(day)
	for _, d := range s.Marked {
		if d.Equal(day) {
			return true
		}
	}
	return false
}

// Day normalizes t to midnight UTC, the canonical calendar-day value used
// throughout the selection logic.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SelectDay folds one calendar tap into the current selection.
//
// The first tap sets the start. A second tap on an earlier day swaps the
// pair rather than rejecting it; a tap on the same or a later day sets the
// end. Repeated later taps simply move the end. Pure: the input selection
// is not mutated.
func SelectDay(current DateSelection, tapped time.Time) DateSelection {
	tapped = Day(tapped)

	var next DateSelection
	switch {
	case current.StartsAt == nil:
		next.StartsAt = &tapped
	case tapped.Before(*current.StartsAt):
		start := Day(*current.StartsAt)
		next.StartsAt = &tapped
		next.EndsAt = &start
	default:
		start := Day(*current.StartsAt)
		next.StartsAt = &start
		next.EndsAt = &tapped
	}

	if next.Complete() {
		next.Marked = markRange(*next.StartsAt, *next.EndsAt)
		next.Display = RangeLabel(*next.StartsAt, *next.EndsAt)
	}
	return next
}

// RangeLabel renders a selected pair as "10 to 12 of March". The month is
// taken from the start of the range.
func RangeLabel(start, end time.Time) string {
	return fmt.Sprintf("%d to %d of %s", start.Day(), end.Day(), start.Month())
}

// markRange returns every day from start to end inclusive.
func markRange(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
