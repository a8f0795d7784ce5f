package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmcrae/tripdeck/internal/trip"
)

// Commands close over the values they need at dispatch time so the model
// copy they came from can be discarded safely.

func (a App) resumeCmd() tea.Cmd {
	lc := a.lifecycle
	return func() tea.Msg {
		resumed, _ := lc.Resume(context.Background())
		return resumeDoneMsg{resumed: resumed}
	}
}

func (a App) createTripCmd() tea.Cmd {
	lc := a.lifecycle
	destination := a.wf.Destination
	dates := a.wf.Dates
	invitees := a.wf.Invitees()
	return func() tea.Msg {
		id, err := lc.Create(context.Background(), destination, dates, invitees)
		return tripCreatedMsg{id: id, err: err}
	}
}

func (a App) updateTripCmd(destination string, dates trip.DateSelection) tea.Cmd {
	lc := a.lifecycle
	tripID := a.tripID
	return func() tea.Msg {
		return tripUpdatedMsg{err: lc.Update(context.Background(), tripID, destination, dates)}
	}
}

func (a App) removeTripCmd() tea.Cmd {
	lc := a.lifecycle
	tripID := a.tripID
	return func() tea.Msg {
		return tripRemovedMsg{report: lc.Remove(context.Background(), tripID)}
	}
}

func (a App) confirmAttendanceCmd(name, email string) tea.Cmd {
	att := a.attendance
	tripID, participantID := a.tripID, a.participantID
	return func() tea.Msg {
		err := att.Confirm(context.Background(), tripID, participantID, name, email)
		return attendanceConfirmedMsg{err: err}
	}
}

func (a App) loadTripCmd() tea.Cmd {
	dir := a.dir
	tripID := a.tripID
	return func() tea.Msg {
		t, err := dir.GetTrip(context.Background(), tripID)
		return tripLoadedMsg{trip: t, err: err}
	}
}

func (a App) loadActivitiesCmd() tea.Cmd {
	dir := a.dir
	tripID := a.tripID
	now := a.now
	return func() tea.Msg {
		days, err := dir.ActivitiesByTrip(context.Background(), tripID)
		if err != nil {
			return activitiesLoadedMsg{err: err}
		}
		return activitiesLoadedMsg{sections: trip.BuildSections(days, now())}
	}
}

func (a App) createActivityCmd(draft trip.ActivityDraft) tea.Cmd {
	dir := a.dir
	tripID := a.tripID
	return func() tea.Msg {
		occursAt, err := draft.OccursAt()
		if err != nil {
			return activityCreatedMsg{err: err}
		}
		_, err = dir.CreateActivity(context.Background(), tripID, draft.Title, occursAt)
		return activityCreatedMsg{err: err}
	}
}

func (a App) loadLinksCmd() tea.Cmd {
	dir := a.dir
	tripID := a.tripID
	return func() tea.Msg {
		links, err := dir.LinksByTrip(context.Background(), tripID)
		return linksLoadedMsg{links: links, err: err}
	}
}

func (a App) createLinkCmd(title, url string) tea.Cmd {
	dir := a.dir
	tripID := a.tripID
	return func() tea.Msg {
		_, err := dir.CreateLink(context.Background(), tripID, title, url)
		return linkCreatedMsg{err: err}
	}
}

func (a App) loadParticipantsCmd() tea.Cmd {
	dir := a.dir
	tripID := a.tripID
	return func() tea.Msg {
		people, err := dir.ParticipantsByTrip(context.Background(), tripID)
		return participantsLoadedMsg{people: people, err: err}
	}
}

// loadTripDataCmd fetches everything the trip screen shows.
func (a App) loadTripDataCmd() tea.Cmd {
	return tea.Batch(a.loadTripCmd(), a.loadActivitiesCmd(), a.loadLinksCmd(), a.loadParticipantsCmd())
}
