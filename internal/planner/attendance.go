package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kmcrae/tripdeck/internal/directory"
	"github.com/kmcrae/tripdeck/internal/trip"
)

// Attendance consumes a deep-link participant id: the invited guest fills
// in name and email, the confirmation is sent, and the device is claimed
// for the trip the same way a creator's device is.
type Attendance struct {
	dir   directory.Service
	cache TripCache
	log   *slog.Logger
}

func NewAttendance(dir directory.Service, cache TripCache, log *slog.Logger) *Attendance {
	return &Attendance{dir: dir, cache: cache, log: log}
}

// Begin forces the non-cancelable confirmation overlay. Called when
// navigation parameters carry a participant id.
func (a *Attendance) Begin(w *Workflow) {
	w.OpenOverlay(OverlayConfirmAttendance)
}

// Confirm validates locally, confirms attendance remotely, then persists
// the trip id into the device cache. Validation failures are
// trip.ErrValidation; anything else is a remote failure. The terminal
// layer shows the same message for both, but callers can tell them apart.
// On success the caller releases the overlay (on the event loop) via
// Workflow.FinishAttendance.
func (a *Attendance) Confirm(ctx context.Context, tripID, participantID, name, email string) error {
	email = strings.TrimSpace(email)
	if strings.TrimSpace(name) == "" || email == "" {
		return fmt.Errorf("%w: fill in name and email", trip.ErrValidation)
	}
	if !trip.ValidEmail(email) {
		return fmt.Errorf("%w: invalid email", trip.ErrValidation)
	}
	if err := a.dir.ConfirmParticipant(ctx, participantID, name, email); err != nil {
		return err
	}
	if err := a.cache.SaveCurrentTrip(tripID); err != nil {
		a.log.Warn("attendance confirmed but device cache failed", "trip", tripID, "err", err)
		return err
	}
	return nil
}
