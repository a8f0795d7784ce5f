package planner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/kmcrae/tripdeck/internal/directory"
	"github.com/kmcrae/tripdeck/internal/trip"
)

var errBoom = errors.New("boom")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeDirectory implements directory.Service with pluggable behavior and
// call counters.
type fakeDirectory struct {
	createTrip  func(directory.CreateTripParams) (string, error)
	getTrip     func(string) (trip.Trip, error)
	updateTrip  func(string, directory.UpdateTripParams) error
	deleteTrip  func(string) error
	confirm     func(participantID, name, email string) error
	createCalls int
	getCalls    int
	updateCalls int
	deleteCalls int
}

func (f *fakeDirectory) CreateTrip(_ context.Context, p directory.CreateTripParams) (string, error) {
	f.createCalls++
	if f.createTrip == nil {
		return "trip-1", nil
	}
	return f.createTrip(p)
}

func (f *fakeDirectory) GetTrip(_ context.Context, id string) (trip.Trip, error) {
	f.getCalls++
	if f.getTrip == nil {
		return trip.Trip{ID: id}, nil
	}
	return f.getTrip(id)
}

func (f *fakeDirectory) UpdateTrip(_ context.Context, id string, p directory.UpdateTripParams) error {
	f.updateCalls++
	if f.updateTrip == nil {
		return nil
	}
	return f.updateTrip(id, p)
}

func (f *fakeDirectory) DeleteTrip(_ context.Context, id string) error {
	f.deleteCalls++
	if f.deleteTrip == nil {
		return nil
	}
	return f.deleteTrip(id)
}

func (f *fakeDirectory) CreateActivity(context.Context, string, string, time.Time) (string, error) {
	return "act-1", nil
}

func (f *fakeDirectory) ActivitiesByTrip(context.Context, string) ([]trip.DayActivities, error) {
	return nil, nil
}

func (f *fakeDirectory) CreateLink(context.Context, string, string, string) (string, error) {
	return "link-1", nil
}

func (f *fakeDirectory) LinksByTrip(context.Context, string) ([]trip.Link, error) {
	return nil, nil
}

func (f *fakeDirectory) ParticipantsByTrip(context.Context, string) ([]trip.Participant, error) {
	return nil, nil
}

func (f *fakeDirectory) ConfirmParticipant(_ context.Context, participantID, name, email string) error {
	if f.confirm == nil {
		return nil
	}
	return f.confirm(participantID, name, email)
}

// fakeCache is an in-memory TripCache.
type fakeCache struct {
	id       string
	saveErr  error
	clearErr error
	readErr  error
}

func (c *fakeCache) CurrentTrip() (string, bool, error) {
	if c.readErr != nil {
		return "", false, c.readErr
	}
	return c.id, c.id != "", nil
}

func (c *fakeCache) SaveCurrentTrip(id string) error {
	if c.saveErr != nil {
		return c.saveErr
	}
	c.id = id
	return nil
}

func (c *fakeCache) ClearCurrentTrip() error {
	if c.clearErr != nil {
		return c.clearErr
	}
	c.id = ""
	return nil
}

// fakeNav records navigation effects.
type fakeNav struct {
	paths []string
	backs int
}

func (n *fakeNav) NavigateTo(path string) { n.paths = append(n.paths, path) }
func (n *fakeNav) Back()                  { n.backs++ }

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, _ := time.ParseInLocation(trip.DayFormat, s, time.UTC)
	return d
}

// completeDates is a helper building a finished selection.
func completeDates(start, end string) trip.DateSelection {
	s, _ := time.ParseInLocation(trip.DayFormat, start, time.UTC)
	e, _ := time.ParseInLocation(trip.DayFormat, end, time.UTC)
	sel := trip.SelectDay(trip.DateSelection{}, s)
	return trip.SelectDay(sel, e)
}
