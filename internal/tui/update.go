package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmcrae/tripdeck/internal/planner"
	"github.com/kmcrae/tripdeck/internal/trip"
)

// result messages

func (a App) handleResumeDone(msg resumeDoneMsg) (tea.Model, tea.Cmd) {
	a.resumeOp = planner.OpIdle
	cmd := a.applyNavigation()
	if !msg.resumed {
		a.setStatus("plan a new trip")
	}
	return a, cmd
}

func (a App) handleTripCreated(msg tripCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.createOp = planner.OpFailed
		if errors.Is(msg.err, trip.ErrValidation) {
			a.setError(msg.err.Error())
		} else {
			a.setError("could not create the trip, try again")
		}
		return a, nil
	}
	a.createOp = planner.OpIdle
	a.wf.Reset()
	a.resetDraftInputs()
	a.setStatus("trip created")
	return a, a.applyNavigation()
}

func (a App) handleTripLoaded(msg tripLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, trip.ErrNotFound) {
			a.setError("trip not found")
		} else {
			a.setError("could not load the trip")
		}
		return a, nil
	}
	a.trip = msg.trip
	a.tripLoaded = true
	return a, nil
}

func (a App) handleTripUpdated(msg tripUpdatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.updateOp = planner.OpFailed
		if errors.Is(msg.err, trip.ErrValidation) {
			a.setError(msg.err.Error())
		} else {
			a.setError("could not save the trip, try again")
		}
		return a, nil
	}
	a.updateOp = planner.OpIdle
	a.wf.CloseOverlay()
	a.setStatus("trip updated")
	return a, tea.Batch(a.loadTripCmd(), a.loadActivitiesCmd())
}

func (a App) handleTripRemoved(msg tripRemovedMsg) (tea.Model, tea.Cmd) {
	a.removeOp = planner.OpIdle
	if msg.report != nil {
		a.setStatus("trip removed from this device; the server copy could not be deleted")
	} else {
		a.setStatus("trip removed")
	}
	return a, a.applyNavigation()
}

func (a App) handleActivitiesLoaded(msg activitiesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.setError("could not load activities")
		return a, nil
	}
	a.sections = msg.sections
	if a.actCursor >= a.activityCount() {
		a.actCursor = 0
	}
	return a, nil
}

func (a App) handleActivityCreated(msg activityCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.activityOp = planner.OpFailed
		// keep the modal and the draft so nothing typed is lost
		if errors.Is(msg.err, trip.ErrValidation) {
			a.setError(msg.err.Error())
		} else {
			a.setError("could not save the activity, try again")
		}
		return a, nil
	}
	a.activityOp = planner.OpIdle
	a.tripModal = tripModalNone
	a.actTitle.Reset()
	a.actHour.Reset()
	a.actDate = ""
	a.setStatus("activity added")
	return a, a.loadActivitiesCmd()
}

func (a App) handleLinksLoaded(msg linksLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.setError("could not load links")
		return a, nil
	}
	a.links = msg.links
	return a, nil
}

func (a App) handleLinkCreated(msg linkCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.linkOp = planner.OpFailed
		if errors.Is(msg.err, trip.ErrValidation) {
			a.setError(msg.err.Error())
		} else {
			a.setError("could not save the link, try again")
		}
		return a, nil
	}
	a.linkOp = planner.OpIdle
	a.tripModal = tripModalNone
	a.linkTitle.Reset()
	a.linkURL.Reset()
	a.setStatus("link saved")
	return a, a.loadLinksCmd()
}

func (a App) handleParticipantsLoaded(msg participantsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.setError("could not load guests")
		return a, nil
	}
	a.participants = msg.people
	return a, nil
}

func (a App) handleAttendanceConfirmed(msg attendanceConfirmedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.confirmOp = planner.OpFailed
		// one merged message for every failure kind; the overlay stays up
		a.setError("could not confirm attendance, check your details and connection")
		return a, nil
	}
	a.confirmOp = planner.OpIdle
	a.wf.FinishAttendance()
	a.participantID = ""
	a.setStatus("you are confirmed, enjoy the trip")
	return a, a.loadParticipantsCmd()
}

// key routing

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}
	if a.decision != decisionNone {
		return a.handleDecisionKey(msg)
	}
	switch a.wf.Overlay() {
	case planner.OverlayCalendar:
		return a.handleCalendarKey(msg)
	case planner.OverlayGuestList:
		return a.handleGuestListKey(msg)
	case planner.OverlayEditTrip:
		return a.handleEditTripKey(msg)
	case planner.OverlayConfirmAttendance:
		return a.handleConfirmKey(msg)
	}
	if a.tripModal != tripModalNone {
		return a.handleTripModalKey(msg)
	}
	if a.screen == screenTrip {
		return a.handleTripKey(msg)
	}
	return a.handleEntryKey(msg)
}

func (a App) handleDecisionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	yes := msg.String() == "y" || msg.String() == "Y"
	no := msg.String() == "n" || msg.String() == "N" || msg.Type == tea.KeyEsc
	switch a.decision {
	case decisionCreateTrip:
		if yes {
			a.decision = decisionNone
			a.createOp = planner.OpInFlight
			a.setStatus("creating trip...")
			return a, a.createTripCmd()
		}
		if no {
			a.decision = decisionNone
			a.setStatus("")
		}
	case decisionRemoveTrip:
		if yes {
			a.decision = decisionNone
			a.removeOp = planner.OpInFlight
			a.setStatus("removing trip...")
			return a, a.removeTripCmd()
		}
		if no {
			a.decision = decisionNone
			a.setStatus("")
		}
	}
	return a, nil
}

func (a App) handleEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.resumeOp.Busy() {
		return a, nil
	}
	switch {
	case key.Matches(msg, a.keys.Continue):
		res, err := a.wf.Advance()
		if err != nil {
			a.setError(err.Error())
			return a, nil
		}
		a.setStatus("")
		switch res {
		case planner.AdvancedToInvite:
			a.wf.OpenOverlay(planner.OverlayGuestList)
			a.guestInput.Focus()
			a.destInput.Blur()
		case planner.NeedsCreateDecision:
			a.decision = decisionCreateTrip
		}
		return a, nil

	case key.Matches(msg, a.keys.Calendar):
		a.calTarget = calTargetWizard
		a.cal = newCalendar(a.wf.Dates, a.now())
		a.wf.OpenOverlay(planner.OverlayCalendar)
		a.destInput.Blur()
		return a, nil

	case key.Matches(msg, a.keys.Guests):
		if a.wf.Step() == planner.StepInvite {
			a.wf.OpenOverlay(planner.OverlayGuestList)
			a.guestInput.Focus()
			a.destInput.Blur()
		}
		return a, nil

	case key.Matches(msg, a.keys.Back):
		a.wf.BackToDetails()
		a.destInput.Focus()
		return a, nil
	}

	if a.wf.Step() == planner.StepDetails {
		var cmd tea.Cmd
		a.destInput, cmd = a.destInput.Update(msg)
		a.wf.Destination = a.destInput.Value()
		return a, cmd
	}
	return a, nil
}

func (a App) handleCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left":
		a.cal.moveDays(-1)
	case "right":
		a.cal.moveDays(1)
	case "up":
		a.cal.moveDays(-7)
	case "down":
		a.cal.moveDays(7)
	case "pgup":
		a.cal.moveMonth(-1)
	case "pgdown":
		a.cal.moveMonth(1)
	case "enter":
		a.cal.tap()
	case "esc":
		if a.calTarget == calTargetEdit {
			a.editDates = a.cal.sel
			// the edit overlay the calendar was opened from comes back
			a.wf.OpenOverlay(planner.OverlayEditTrip)
			a.editDest.Focus()
		} else {
			a.wf.Dates = a.cal.sel
			a.wf.CloseOverlay()
			a.destInput.Focus()
		}
	}
	return a, nil
}

func (a App) handleGuestListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	invitees := a.wf.Invitees()
	switch {
	case msg.Type == tea.KeyEsc:
		// dismissing the modal stays on the invite step; going back to
		// details is its own explicit action
		a.wf.CloseOverlay()
		return a, nil

	case key.Matches(msg, a.keys.Continue):
		email := strings.TrimSpace(strings.ToLower(a.guestInput.Value()))
		if email == "" {
			// empty submit means done inviting
			res, err := a.wf.Advance()
			if err != nil {
				a.setError(err.Error())
				return a, nil
			}
			if res == planner.NeedsCreateDecision {
				a.decision = decisionCreateTrip
			}
			return a, nil
		}
		if err := a.wf.AddInvitee(email); err != nil {
			a.setError(err.Error())
			return a, nil
		}
		a.guestInput.Reset()
		if near, ok := a.wf.NearInvitee(email); ok {
			a.setStatus(fmt.Sprintf("added %s (close to %s, remove one if that was a typo)", email, near))
		} else {
			a.setStatus("added " + email)
		}
		return a, nil

	case msg.String() == "up":
		if a.guestCursor > 0 {
			a.guestCursor--
		}
		return a, nil

	case msg.String() == "down":
		if a.guestCursor < len(invitees)-1 {
			a.guestCursor++
		}
		return a, nil

	case key.Matches(msg, a.keys.Remove):
		if len(invitees) > 0 {
			if a.guestCursor >= len(invitees) {
				a.guestCursor = len(invitees) - 1
			}
			a.wf.RemoveInvitee(invitees[a.guestCursor])
			if a.guestCursor >= len(invitees)-1 && a.guestCursor > 0 {
				a.guestCursor--
			}
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.guestInput, cmd = a.guestInput.Update(msg)
	return a, cmd
}

func (a App) handleEditTripKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.updateOp.Busy() {
		return a, nil
	}
	switch {
	case msg.Type == tea.KeyEsc:
		a.wf.CloseOverlay()
		return a, nil

	case key.Matches(msg, a.keys.Calendar):
		a.calTarget = calTargetEdit
		a.cal = newCalendar(a.editDates, a.now())
		a.wf.OpenOverlay(planner.OverlayCalendar)
		a.editDest.Blur()
		return a, nil

	case key.Matches(msg, a.keys.Continue):
		dest := a.editDest.Value()
		if err := planner.ValidateTripDetails(dest, a.editDates); err != nil {
			a.setError(err.Error())
			return a, nil
		}
		a.updateOp = planner.OpInFlight
		a.setStatus("saving trip...")
		return a, a.updateTripCmd(dest, a.editDates)
	}

	var cmd tea.Cmd
	a.editDest, cmd = a.editDest.Update(msg)
	return a, cmd
}

func (a App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirmOp.Busy() {
		return a, nil
	}
	switch {
	case msg.Type == tea.KeyEsc:
		// the overlay refuses to close until attendance is answered
		a.wf.CloseOverlay()
		a.setStatus("confirm your attendance to continue")
		return a, nil

	case msg.Type == tea.KeyTab || msg.String() == "up" || msg.String() == "down":
		a.confirmFocus = 1 - a.confirmFocus
		if a.confirmFocus == 0 {
			a.nameInput.Focus()
			a.emailInput.Blur()
		} else {
			a.emailInput.Focus()
			a.nameInput.Blur()
		}
		return a, nil

	case key.Matches(msg, a.keys.Continue):
		a.confirmOp = planner.OpInFlight
		a.setStatus("confirming...")
		return a, a.confirmAttendanceCmd(a.nameInput.Value(), a.emailInput.Value())
	}

	var cmd tea.Cmd
	if a.confirmFocus == 0 {
		a.nameInput, cmd = a.nameInput.Update(msg)
	} else {
		a.emailInput, cmd = a.emailInput.Update(msg)
	}
	return a, cmd
}

func (a App) handleTripKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Pane):
		if a.pane == paneActivities {
			a.pane = paneDetails
		} else {
			a.pane = paneActivities
		}
		return a, nil

	case key.Matches(msg, a.keys.Edit):
		a.openEditOverlay()
		return a, nil

	case key.Matches(msg, a.keys.New):
		if a.pane == paneActivities {
			a.tripModal = tripModalNewActivity
			a.actFocus = 0
			a.actTitle.Focus()
			a.actHour.Blur()
			if a.actDate == "" && a.tripLoaded {
				a.actDate = a.trip.StartsAt.Format(trip.DayFormat)
			}
		} else {
			a.tripModal = tripModalNewLink
			a.linkFocus = 0
			a.linkTitle.Focus()
			a.linkURL.Blur()
		}
		return a, nil

	case key.Matches(msg, a.keys.Refresh):
		a.setStatus("refreshing...")
		return a, a.loadTripDataCmd()

	case key.Matches(msg, a.keys.Remove):
		if !a.removeOp.Busy() {
			a.decision = decisionRemoveTrip
		}
		return a, nil

	case msg.String() == "up":
		if a.pane == paneActivities && a.actCursor > 0 {
			a.actCursor--
		}
		return a, nil

	case msg.String() == "down":
		if a.pane == paneActivities && a.actCursor < a.activityCount()-1 {
			a.actCursor++
		}
		return a, nil
	}
	return a, nil
}

func (a App) handleTripModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.tripModal {
	case tripModalNewActivity:
		return a.handleNewActivityKey(msg)
	case tripModalActivityDate:
		return a.handleActivityDateKey(msg)
	case tripModalNewLink:
		return a.handleNewLinkKey(msg)
	}
	return a, nil
}

func (a App) handleNewActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.activityOp.Busy() {
		return a, nil
	}
	switch {
	case msg.Type == tea.KeyEsc:
		a.tripModal = tripModalNone
		a.actTitle.Reset()
		a.actHour.Reset()
		a.actDate = ""
		return a, nil

	case msg.Type == tea.KeyTab:
		a.actFocus = 1 - a.actFocus
		if a.actFocus == 0 {
			a.actTitle.Focus()
			a.actHour.Blur()
		} else {
			a.actHour.Focus()
			a.actTitle.Blur()
		}
		return a, nil

	case key.Matches(msg, a.keys.Calendar):
		a.tripModal = tripModalActivityDate
		return a, nil

	case key.Matches(msg, a.keys.Continue):
		draft := trip.ActivityDraft{
			Title: a.actTitle.Value(),
			Date:  a.actDate,
			Hour:  a.actHour.Value(),
		}
		a.activityOp = planner.OpInFlight
		a.setStatus("saving activity...")
		return a, a.createActivityCmd(draft)
	}

	var cmd tea.Cmd
	if a.actFocus == 0 {
		a.actTitle, cmd = a.actTitle.Update(msg)
	} else {
		a.actHour, cmd = a.actHour.Update(msg)
	}
	return a, cmd
}

func (a App) handleActivityDateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	days := a.tripDays()
	idx := 0
	for i, d := range days {
		if d.Format(trip.DayFormat) == a.actDate {
			idx = i
			break
		}
	}
	switch msg.String() {
	case "up", "left":
		if idx > 0 {
			a.actDate = days[idx-1].Format(trip.DayFormat)
		}
	case "down", "right":
		if idx < len(days)-1 {
			a.actDate = days[idx+1].Format(trip.DayFormat)
		}
	case "enter", "esc":
		a.tripModal = tripModalNewActivity
	}
	return a, nil
}

func (a App) handleNewLinkKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.linkOp.Busy() {
		return a, nil
	}
	switch {
	case msg.Type == tea.KeyEsc:
		a.tripModal = tripModalNone
		a.linkTitle.Reset()
		a.linkURL.Reset()
		return a, nil

	case msg.Type == tea.KeyTab:
		a.linkFocus = 1 - a.linkFocus
		if a.linkFocus == 0 {
			a.linkTitle.Focus()
			a.linkURL.Blur()
		} else {
			a.linkURL.Focus()
			a.linkTitle.Blur()
		}
		return a, nil

	case key.Matches(msg, a.keys.Continue):
		title := strings.TrimSpace(a.linkTitle.Value())
		url := strings.TrimSpace(a.linkURL.Value())
		if title == "" || !trip.ValidURL(url) {
			a.setError("link needs a title and a full URL")
			return a, nil
		}
		a.linkOp = planner.OpInFlight
		a.setStatus("saving link...")
		return a, a.createLinkCmd(title, url)
	}

	var cmd tea.Cmd
	if a.linkFocus == 0 {
		a.linkTitle, cmd = a.linkTitle.Update(msg)
	} else {
		a.linkURL, cmd = a.linkURL.Update(msg)
	}
	return a, cmd
}

// openEditOverlay seeds the edit draft from the loaded trip.
func (a *App) openEditOverlay() {
	if !a.tripLoaded {
		a.setError("trip still loading")
		return
	}
	a.editDest.SetValue(a.trip.Destination)
	a.editDest.Focus()
	var sel trip.DateSelection
	sel = trip.SelectDay(sel, a.trip.StartsAt)
	sel = trip.SelectDay(sel, a.trip.EndsAt)
	a.editDates = sel
	a.wf.OpenOverlay(planner.OverlayEditTrip)
}

// tripDays lists each day of the trip's range.
func (a App) tripDays() []time.Time {
	if !a.tripLoaded {
		return nil
	}
	var days []time.Time
	for d := trip.Day(a.trip.StartsAt); !d.After(trip.Day(a.trip.EndsAt)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (a App) activityCount() int {
	n := 0
	for _, s := range a.sections {
		n += len(s.Activities)
	}
	return n
}
