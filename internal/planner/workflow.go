// Package planner is the UI-agnostic core of the client: the trip creation
// workflow, the trip lifecycle against the directory service, and the guest
// attendance confirmation flow. The terminal layer translates key presses
// into calls here and renders the resulting state; everything in this
// package is synchronous and deterministic.
package planner

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/kmcrae/tripdeck/internal/trip"
)

// Step is the position in the linear creation workflow.
type Step int

const (
	StepDetails Step = iota
	StepInvite
)

// Overlay identifies the modal surface shown atop the current screen. At
// most one is active; None is a real state, not an absence.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayCalendar
	OverlayGuestList
	OverlayEditTrip
	OverlayConfirmAttendance
)

// AdvanceResult tells the caller what Advance decided.
type AdvanceResult int

const (
	// AdvancedToInvite: details validated, workflow moved to the invite step.
	AdvancedToInvite AdvanceResult = iota
	// NeedsCreateDecision: the invite step is complete; the caller must get
	// an explicit yes/no from the user before delegating to Lifecycle.Create.
	NeedsCreateDecision
)

// nearInviteeMax is the largest levenshtein distance still reported as a
// near-duplicate invitee.
const nearInviteeMax = 2

// Workflow is the step/overlay state machine for trip creation. The draft
// fields live here so that moving between steps never discards input.
type Workflow struct {
	step    Step
	overlay Overlay

	Destination string
	Dates       trip.DateSelection
	invitees    []string
}

func NewWorkflow() *Workflow {
	return &Workflow{step: StepDetails, overlay: OverlayNone}
}

func (w *Workflow) Step() Step       { return w.step }
func (w *Workflow) Overlay() Overlay { return w.overlay }

// OpenOverlay makes kind the active overlay, implicitly replacing any
// other.
func (w *Workflow) OpenOverlay(kind Overlay) {
	w.overlay = kind
}

// CloseOverlay dismisses the active overlay. The attendance confirmation
// overlay is non-cancelable (the trip is not cached locally yet); it is
// only closed by the flow itself. Returns false when the close was refused.
func (w *Workflow) CloseOverlay() bool {
	if w.overlay == OverlayConfirmAttendance {
		return false
	}
	w.overlay = OverlayNone
	return true
}

// FinishAttendance releases the confirmation overlay once the attendance
// flow has succeeded. This is the only way it closes.
func (w *Workflow) FinishAttendance() {
	w.overlay = OverlayNone
}

// Advance validates the draft and moves the workflow forward. Validation
// runs on every submit, so a draft edited back into an invalid state cannot
// be created from the invite step either.
func (w *Workflow) Advance() (AdvanceResult, error) {
	if err := ValidateTripDetails(w.Destination, w.Dates); err != nil {
		return 0, err
	}
	if w.step == StepDetails {
		w.step = StepInvite
		return AdvancedToInvite, nil
	}
	return NeedsCreateDecision, nil
}

// BackToDetails returns from the invite step without discarding anything.
func (w *Workflow) BackToDetails() {
	w.step = StepDetails
}

// AddInvitee appends a guest email, preserving insertion order. Duplicate
// matching is case-sensitive exact, as is removal.
func (w *Workflow) AddInvitee(email string) error {
	if !trip.ValidEmail(email) {
		return fmt.Errorf("%w: invalid email", trip.ErrValidation)
	}
	for _, existing := range w.invitees {
		if existing == email {
			return fmt.Errorf("%w: %s is already invited", trip.ErrValidation, email)
		}
	}
	w.invitees = append(w.invitees, email)
	return nil
}

// RemoveInvitee removes by exact match; removing an absent email is a
// no-op.
func (w *Workflow) RemoveInvitee(email string) {
	for i, existing := range w.invitees {
		if existing == email {
			w.invitees = append(w.invitees[:i], w.invitees[i+1:]...)
			return
		}
	}
}

// Invitees returns a copy of the guest list in insertion order.
func (w *Workflow) Invitees() []string {
	out := make([]string, len(w.invitees))
	copy(out, w.invitees)
	return out
}

// NearInvitee returns the closest existing invitee within edit distance
// nearInviteeMax of email, excluding exact matches. Used for a "did you
// mean" hint; never blocks an add.
func (w *Workflow) NearInvitee(email string) (string, bool) {
	best, bestDist := "", nearInviteeMax+1
	for _, existing := range w.invitees {
		if existing == email {
			continue
		}
		if d := levenshtein.ComputeDistance(existing, email); d < bestDist {
			best, bestDist = existing, d
		}
	}
	return best, best != ""
}

// Reset discards the draft after a successful creation.
func (w *Workflow) Reset() {
	*w = Workflow{step: StepDetails, overlay: OverlayNone}
}

// ValidateTripDetails applies the shared create/update rules: a non-blank
// destination of at least four characters and a complete date range.
func ValidateTripDetails(destination string, dates trip.DateSelection) error {
	if strings.TrimSpace(destination) == "" || !dates.Complete() {
		return fmt.Errorf("%w: fill in destination and travel dates", trip.ErrValidation)
	}
	if len([]rune(destination)) < 4 {
		return fmt.Errorf("%w: destination needs at least 4 characters", trip.ErrValidation)
	}
	return nil
}
