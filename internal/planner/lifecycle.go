package planner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kmcrae/tripdeck/internal/directory"
	"github.com/kmcrae/tripdeck/internal/trip"
)

// TripCache is the device preference store slot for the single cached trip
// id. prefs.Store satisfies it.
type TripCache interface {
	CurrentTrip() (id string, ok bool, err error)
	SaveCurrentTrip(id string) error
	ClearCurrentTrip() error
}

// Navigator receives the abstract navigation effects the core emits.
type Navigator interface {
	NavigateTo(path string)
	Back()
}

// TripPath is the navigation target for a trip screen.
func TripPath(tripID string) string { return "/trip/" + tripID }

// EntryPath is the navigation target for the creation entry screen.
const EntryPath = "/"

// Lifecycle drives trip create/fetch/update/delete against the directory
// service while keeping the device's cached trip id consistent. Methods
// block and are meant to run off the event loop; results come back to the
// loop as messages.
type Lifecycle struct {
	dir   directory.Service
	cache TripCache
	nav   Navigator
	log   *slog.Logger
}

func NewLifecycle(dir directory.Service, cache TripCache, nav Navigator, log *slog.Logger) *Lifecycle {
	return &Lifecycle{dir: dir, cache: cache, nav: nav, log: log}
}

// Create validates the draft, creates the trip remotely, claims this device
// for it and navigates there. Validation failures happen before any
// network call; remote failures leave the draft untouched for manual
// retry.
func (l *Lifecycle) Create(ctx context.Context, destination string, dates trip.DateSelection, invitees []string) (string, error) {
	if err := ValidateTripDetails(destination, dates); err != nil {
		return "", err
	}
	id, err := l.dir.CreateTrip(ctx, directory.CreateTripParams{
		Destination:    destination,
		StartsAt:       *dates.StartsAt,
		EndsAt:         *dates.EndsAt,
		EmailsToInvite: invitees,
	})
	if err != nil {
		return "", err
	}
	if err := l.cache.SaveCurrentTrip(id); err != nil {
		return "", fmt.Errorf("trip created but device cache failed: %w", err)
	}
	l.nav.NavigateTo(TripPath(id))
	return id, nil
}

// Resume reads the cached trip id and, when it still resolves remotely,
// navigates to the trip. A missing cache entry or any fetch failure
// degrades to "no active trip": the cache is a hint, not a guarantee.
func (l *Lifecycle) Resume(ctx context.Context) (resumed bool, err error) {
	id, ok, err := l.cache.CurrentTrip()
	if err != nil {
		l.log.Warn("reading cached trip failed", "err", err)
		return false, nil
	}
	if !ok {
		return false, nil
	}
	if _, err := l.dir.GetTrip(ctx, id); err != nil {
		l.log.Warn("cached trip did not resolve, falling back to entry", "trip", id, "err", err)
		return false, nil
	}
	l.nav.NavigateTo(TripPath(id))
	return true, nil
}

// Update applies the same validation as Create and pushes the new details.
// Refetching and closing the edit overlay on success are the caller's
// moves.
func (l *Lifecycle) Update(ctx context.Context, tripID, destination string, dates trip.DateSelection) error {
	if err := ValidateTripDetails(destination, dates); err != nil {
		return err
	}
	return l.dir.UpdateTrip(ctx, tripID, directory.UpdateTripParams{
		Destination: destination,
		StartsAt:    *dates.StartsAt,
		EndsAt:      *dates.EndsAt,
	})
}

// Remove deletes the trip with local-first semantics: the cached id is
// cleared and navigation returns to the entry screen even when the remote
// delete fails. A non-nil return is a report of that remote inconsistency,
// not a failure of the removal itself. The caller is responsible for having
// asked the user first.
func (l *Lifecycle) Remove(ctx context.Context, tripID string) error {
	remoteErr := l.dir.DeleteTrip(ctx, tripID)
	if err := l.cache.ClearCurrentTrip(); err != nil {
		return fmt.Errorf("clear cached trip: %w", err)
	}
	l.nav.NavigateTo(EntryPath)
	if remoteErr != nil {
		l.log.Warn("remote delete failed, local cache cleared anyway", "trip", tripID, "err", remoteErr)
		return fmt.Errorf("trip removed locally, but the directory service failed to delete it: %w", remoteErr)
	}
	return nil
}
