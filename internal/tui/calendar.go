package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/kmcrae/tripdeck/internal/trip"
)

// calendar is the month-grid date picker shown in the calendar overlay.
// The cursor moves day by day; enter taps the day under the cursor into
// the selection. Days before min cannot be tapped.
type calendar struct {
	month  time.Time // first day of the visible month
	cursor time.Time
	sel    trip.DateSelection
	min    time.Time
}

func newCalendar(sel trip.DateSelection, now time.Time) calendar {
	today := trip.Day(now)
	cursor := today
	if sel.StartsAt != nil {
		cursor = *sel.StartsAt
	}
	return calendar{
		month:  time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.UTC),
		cursor: cursor,
		sel:    sel,
		min:    today,
	}
}

func (c *calendar) moveDays(n int) {
	next := c.cursor.AddDate(0, 0, n)
	if next.Before(c.min) {
		next = c.min
	}
	c.cursor = next
	c.month = time.Date(next.Year(), next.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (c *calendar) moveMonth(n int) {
	c.month = c.month.AddDate(0, n, 0)
	day := c.cursor.Day()
	if last := c.month.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	next := time.Date(c.month.Year(), c.month.Month(), day, 0, 0, 0, 0, time.UTC)
	if next.Before(c.min) {
		next = c.min
		c.month = time.Date(next.Year(), next.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	c.cursor = next
}

// tap selects the day under the cursor. Past days are ignored.
func (c *calendar) tap() {
	if c.cursor.Before(c.min) {
		return
	}
	c.sel = trip.SelectDay(c.sel, c.cursor)
}

func (c calendar) view() string {
	var b strings.Builder
	b.WriteString(calHeaderStyle.Render(c.month.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(calWeekdayStyle.Render("Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")

	first := c.month
	last := c.month.AddDate(0, 1, -1)
	col := int(first.Weekday())
	b.WriteString(strings.Repeat("   ", col))
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		cell := fmt.Sprintf("%2d", day.Day())
		switch {
		case day.Equal(c.cursor):
			cell = calCursorStyle.Render(cell)
		case c.sel.IsMarked(day):
			cell = calMarkedStyle.Render(cell)
		case day.Before(c.min):
			cell = calDisabledStyle.Render(cell)
		default:
			cell = calDayStyle.Render(cell)
		}
		b.WriteString(cell)
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		} else {
			b.WriteString(" ")
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}

	label := "pick a start day"
	switch {
	case c.sel.Complete():
		label = c.sel.Display
	case c.sel.StartsAt != nil:
		label = fmt.Sprintf("from %s, pick an end day", c.sel.StartsAt.Format("Jan 2"))
	}
	b.WriteString(subtitleStyle.Render(label))
	return b.String()
}
