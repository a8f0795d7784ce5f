package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/kmcrae/tripdeck/internal/trip"
)

func TestOverlayAtReplacesCells(t *testing.T) {
	base := strings.Join([]string{
		"..........",
		"..........",
		"..........",
	}, "\n")
	out := overlayAt(base, "XX\nXX", 4, 1, 10, 3)
	lines := strings.Split(out, "\n")

	require.Equal(t, "..........", ansi.Strip(lines[0]))
	require.Equal(t, "....XX....", ansi.Strip(lines[1]))
	require.Equal(t, "....XX....", ansi.Strip(lines[2]))
}

func TestCenterOverlayWithoutSizeAppends(t *testing.T) {
	out := centerOverlay("base", "modal", 0, 0)
	require.Equal(t, "base\n\nmodal", out)
}

func TestCalendarSelectsRangeAcrossMonths(t *testing.T) {
	now := time.Date(2026, 3, 30, 10, 0, 0, 0, time.UTC)
	c := newCalendar(trip.DateSelection{}, now)

	c.tap()
	c.moveDays(3) // into April
	require.Equal(t, time.April, c.month.Month())
	c.tap()

	require.True(t, c.sel.Complete())
	require.Equal(t, "30 to 2 of March", c.sel.Display)
	require.Len(t, c.sel.Marked, 4)
}

func TestCalendarRefusesPastDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	c := newCalendar(trip.DateSelection{}, now)

	c.moveDays(-5)
	require.Equal(t, trip.Day(now), c.cursor)

	c.moveMonth(-1)
	require.Equal(t, trip.Day(now), c.cursor)
	require.Equal(t, time.March, c.month.Month())
}

func TestCalendarViewMarksSelection(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	sel := trip.SelectDay(trip.DateSelection{}, trip.Day(now))
	sel = trip.SelectDay(sel, trip.Day(now).AddDate(0, 0, 2))
	c := newCalendar(sel, now)

	view := ansi.Strip(c.view())
	require.Contains(t, view, "March 2026")
	require.Contains(t, view, "10 to 12 of March")
}
