// Package trip holds the core data types and pure planning logic:
// date-range selection, activity scheduling and input validation.
// It has no I/O; every other internal package imports it.
package trip

import (
	"fmt"
	"time"
)

// headerDestinationMax is the longest destination shown in the trip header
// before truncation.
const headerDestinationMax = 14

// Trip is the client's working copy of a remote trip. The authoritative
// record lives in the directory service.
type Trip struct {
	ID          string
	Destination string
	StartsAt    time.Time
	EndsAt      time.Time
}

// Header returns the one-line trip label shown above the trip screen,
// e.g. "Rio de Janeiro, 10 to 12 of March".
func (t Trip) Header() string {
	dest := t.Destination
	if r := []rune(dest); len(r) > headerDestinationMax {
		dest = string(r[:headerDestinationMax]) + "..."
	}
	return fmt.Sprintf("%s, %s", dest, RangeLabel(t.StartsAt, t.EndsAt))
}

// Activity is a scheduled item within a trip day.
type Activity struct {
	ID       string
	Title    string
	OccursAt time.Time
}

// DayActivities is one calendar day of activities as delivered by the
// directory service. Activity order within a day is the server's.
type DayActivities struct {
	Date       time.Time
	Activities []Activity
}

// ActivityView is an Activity prepared for display. IsPast is derived at
// build time, never stored.
type ActivityView struct {
	ID     string
	Title  string
	Hour   string
	IsPast bool
}

// DaySection groups a day's activities under a day header.
type DaySection struct {
	DayNumber  int
	DayName    string
	Activities []ActivityView
}

// Participant is a trip guest as known to the directory service.
type Participant struct {
	ID          string
	Name        string
	Email       string
	IsConfirmed bool
}

// Link is a reference URL attached to a trip.
type Link struct {
	ID    string
	Title string
	URL   string
}
