package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/kmcrae/tripdeck/internal/config"
	"github.com/kmcrae/tripdeck/internal/directory"
	"github.com/kmcrae/tripdeck/internal/planner"
	"github.com/kmcrae/tripdeck/internal/trip"
)

var errNetwork = errors.New("connection refused")

// fakeService implements directory.Service with pluggable behavior and
// call counters.
type fakeService struct {
	createTrip   func(directory.CreateTripParams) (string, error)
	getTrip      func(string) (trip.Trip, error)
	deleteTrip   func(string) error
	confirm      func(participantID, name, email string) error
	activities   func(string) ([]trip.DayActivities, error)
	createCalls  int
	deleteCalls  int
	confirmCalls int
}

func (f *fakeService) CreateTrip(_ context.Context, p directory.CreateTripParams) (string, error) {
	f.createCalls++
	if f.createTrip == nil {
		return "trip-1", nil
	}
	return f.createTrip(p)
}

func (f *fakeService) GetTrip(_ context.Context, id string) (trip.Trip, error) {
	if f.getTrip == nil {
		return trip.Trip{
			ID:          id,
			Destination: "Florianopolis",
			StartsAt:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			EndsAt:      time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		}, nil
	}
	return f.getTrip(id)
}

func (f *fakeService) UpdateTrip(context.Context, string, directory.UpdateTripParams) error {
	return nil
}

func (f *fakeService) DeleteTrip(_ context.Context, id string) error {
	f.deleteCalls++
	if f.deleteTrip == nil {
		return nil
	}
	return f.deleteTrip(id)
}

func (f *fakeService) CreateActivity(context.Context, string, string, time.Time) (string, error) {
	return "act-1", nil
}

func (f *fakeService) ActivitiesByTrip(_ context.Context, id string) ([]trip.DayActivities, error) {
	if f.activities == nil {
		return nil, nil
	}
	return f.activities(id)
}

func (f *fakeService) CreateLink(context.Context, string, string, string) (string, error) {
	return "link-1", nil
}

func (f *fakeService) LinksByTrip(context.Context, string) ([]trip.Link, error) {
	return nil, nil
}

func (f *fakeService) ParticipantsByTrip(context.Context, string) ([]trip.Participant, error) {
	return nil, nil
}

func (f *fakeService) ConfirmParticipant(_ context.Context, participantID, name, email string) error {
	f.confirmCalls++
	if f.confirm == nil {
		return nil
	}
	return f.confirm(participantID, name, email)
}

// memCache is an in-memory planner.TripCache.
type memCache struct {
	id string
}

func (c *memCache) CurrentTrip() (string, bool, error) { return c.id, c.id != "", nil }
func (c *memCache) SaveCurrentTrip(id string) error    { c.id = id; return nil }
func (c *memCache) ClearCurrentTrip() error            { c.id = ""; return nil }

func newTestApp(t *testing.T, svc directory.Service, cache planner.TripCache, params Params) App {
	t.Helper()
	if cache == nil {
		cache = &memCache{}
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := New(config.Config{}, svc, cache, log, params)
	a.width = 100
	a.height = 36
	// start past the resume step so keys reach the workflow; the resume
	// tests drive Init explicitly instead
	a.resumeOp = planner.OpIdle
	a.now = func() time.Time {
		return time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	}
	return a
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func applyMsg(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	next, cmd := a.Update(msg)
	got, ok := next.(App)
	require.True(t, ok, "Update returned %T, want App", next)
	return drainCmd(t, got, cmd)
}

func press(t *testing.T, a App, key string) App {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+k":
		msg = tea.KeyMsg{Type: tea.KeyCtrlK}
	case "ctrl+e":
		msg = tea.KeyMsg{Type: tea.KeyCtrlE}
	case "ctrl+x":
		msg = tea.KeyMsg{Type: tea.KeyCtrlX}
	case "ctrl+n":
		msg = tea.KeyMsg{Type: tea.KeyCtrlN}
	default:
		msg = keyRunes(key)
	}
	return applyMsg(t, a, msg)
}

func typeText(t *testing.T, a App, s string) App {
	t.Helper()
	return applyMsg(t, a, keyRunes(s))
}

// drainCmd runs returned commands synchronously, feeding their messages
// back through Update, batches included.
func drainCmd(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	if cmd == nil {
		return a
	}
	msg := cmd()
	if msg == nil {
		return a
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			a = drainCmd(t, a, sub)
		}
		return a
	}
	if _, ok := msg.(tea.QuitMsg); ok {
		return a
	}
	return applyMsg(t, a, msg)
}

// pickDates drives the calendar overlay: open, tap the cursor day twice
// offset days apart, close.
func pickDates(t *testing.T, a App, length int) App {
	t.Helper()
	a = press(t, a, "ctrl+k")
	require.Equal(t, planner.OverlayCalendar, a.wf.Overlay())
	a = press(t, a, "enter")
	for i := 0; i < length-1; i++ {
		a = applyMsg(t, a, tea.KeyMsg{Type: tea.KeyRight})
	}
	a = press(t, a, "enter")
	a = press(t, a, "esc")
	return a
}

func TestEntryValidationBlocksContinue(t *testing.T) {
	svc := &fakeService{}
	a := newTestApp(t, svc, nil, Params{})

	a = typeText(t, a, "Rio")
	a = press(t, a, "enter")

	require.Equal(t, planner.StepDetails, a.wf.Step())
	require.True(t, a.statErr)
	require.Zero(t, svc.createCalls)
}

func TestEntryFlowCreatesTrip(t *testing.T) {
	var created directory.CreateTripParams
	svc := &fakeService{
		createTrip: func(p directory.CreateTripParams) (string, error) {
			created = p
			return "trip-42", nil
		},
	}
	cache := &memCache{}
	a := newTestApp(t, svc, cache, Params{})

	a = typeText(t, a, "Florianopolis")
	a = pickDates(t, a, 3)
	require.True(t, a.wf.Dates.Complete())

	a = press(t, a, "enter")
	require.Equal(t, planner.OverlayGuestList, a.wf.Overlay())

	a = typeText(t, a, "ana@example.com")
	a = press(t, a, "enter")
	require.Equal(t, []string{"ana@example.com"}, a.wf.Invitees())

	// empty submit finishes inviting, then y answers the prompt
	a = press(t, a, "enter")
	require.Equal(t, decisionCreateTrip, a.decision)
	a = press(t, a, "y")

	require.Equal(t, 1, svc.createCalls)
	require.Equal(t, "Florianopolis", created.Destination)
	require.Equal(t, []string{"ana@example.com"}, created.EmailsToInvite)
	require.Equal(t, "trip-42", cache.id)
	require.Equal(t, screenTrip, a.screen)
	require.Equal(t, "trip-42", a.tripID)
	// draft is gone after a successful create
	require.Empty(t, a.wf.Destination)
}

func TestCreateFailureKeepsDraft(t *testing.T) {
	svc := &fakeService{
		createTrip: func(directory.CreateTripParams) (string, error) {
			return "", errNetwork
		},
	}
	a := newTestApp(t, svc, nil, Params{})

	a = typeText(t, a, "Florianopolis")
	a = pickDates(t, a, 2)
	a = press(t, a, "enter")
	a = press(t, a, "enter")
	a = press(t, a, "y")

	require.Equal(t, screenEntry, a.screen)
	require.Equal(t, planner.OpFailed, a.createOp)
	require.True(t, a.statErr)
	require.Equal(t, "Florianopolis", a.wf.Destination)
}

func TestDuplicateGuestRejected(t *testing.T) {
	a := newTestApp(t, &fakeService{}, nil, Params{})
	a = typeText(t, a, "Florianopolis")
	a = pickDates(t, a, 2)
	a = press(t, a, "enter")

	a = typeText(t, a, "ana@example.com")
	a = press(t, a, "enter")
	a = typeText(t, a, "ana@example.com")
	a = press(t, a, "enter")

	require.Len(t, a.wf.Invitees(), 1)
	require.True(t, a.statErr)
}

func TestResumeLandsOnCachedTrip(t *testing.T) {
	svc := &fakeService{}
	cache := &memCache{id: "trip-7"}
	a := newTestApp(t, svc, cache, Params{})

	a = drainCmd(t, a, a.Init())

	require.Equal(t, screenTrip, a.screen)
	require.Equal(t, "trip-7", a.tripID)
	require.True(t, a.tripLoaded)
}

func TestResumeStaleCacheStaysOnEntry(t *testing.T) {
	svc := &fakeService{
		getTrip: func(string) (trip.Trip, error) {
			return trip.Trip{}, errNetwork
		},
	}
	cache := &memCache{id: "trip-7"}
	a := newTestApp(t, svc, cache, Params{})

	a = drainCmd(t, a, a.Init())

	require.Equal(t, screenEntry, a.screen)
	// the cached id survives for the next launch
	require.Equal(t, "trip-7", cache.id)
}

func TestRemoveTripIsLocalFirst(t *testing.T) {
	svc := &fakeService{
		deleteTrip: func(string) error { return errNetwork },
	}
	cache := &memCache{id: "trip-7"}
	a := newTestApp(t, svc, cache, Params{})
	a = drainCmd(t, a, a.Init())
	require.Equal(t, screenTrip, a.screen)

	a = press(t, a, "ctrl+x")
	require.Equal(t, decisionRemoveTrip, a.decision)
	a = press(t, a, "y")

	require.Equal(t, 1, svc.deleteCalls)
	require.Empty(t, cache.id)
	require.Equal(t, screenEntry, a.screen)
	require.False(t, a.statErr)
	require.Contains(t, a.status, "removed")
}

func TestRemoveTripDeclined(t *testing.T) {
	svc := &fakeService{}
	cache := &memCache{id: "trip-7"}
	a := newTestApp(t, svc, cache, Params{})
	a = drainCmd(t, a, a.Init())

	a = press(t, a, "ctrl+x")
	a = press(t, a, "n")

	require.Zero(t, svc.deleteCalls)
	require.Equal(t, screenTrip, a.screen)
	require.Equal(t, "trip-7", cache.id)
}

func TestAttendanceOverlayCannotBeDismissed(t *testing.T) {
	a := newTestApp(t, &fakeService{}, nil, Params{TripID: "trip-7", ParticipantID: "guest-1"})

	require.Equal(t, planner.OverlayConfirmAttendance, a.wf.Overlay())
	a = press(t, a, "esc")
	require.Equal(t, planner.OverlayConfirmAttendance, a.wf.Overlay())
}

func TestAttendanceConfirmHappyPath(t *testing.T) {
	var gotName, gotEmail string
	svc := &fakeService{
		confirm: func(_, name, email string) error {
			gotName, gotEmail = name, email
			return nil
		},
	}
	cache := &memCache{}
	a := newTestApp(t, svc, cache, Params{TripID: "trip-7", ParticipantID: "guest-1"})

	a = typeText(t, a, "Ana Souza")
	a = press(t, a, "tab")
	a = typeText(t, a, "ana@example.com")
	a = press(t, a, "enter")

	require.Equal(t, 1, svc.confirmCalls)
	require.Equal(t, "Ana Souza", gotName)
	require.Equal(t, "ana@example.com", gotEmail)
	require.Equal(t, planner.OverlayNone, a.wf.Overlay())
	// confirming claims the trip for this device
	require.Equal(t, "trip-7", cache.id)
}

func TestAttendanceFailureKeepsOverlayWithOneMessage(t *testing.T) {
	svc := &fakeService{
		confirm: func(_, _, _ string) error { return errNetwork },
	}
	a := newTestApp(t, svc, nil, Params{TripID: "trip-7", ParticipantID: "guest-1"})

	a = typeText(t, a, "Ana Souza")
	a = press(t, a, "tab")
	a = typeText(t, a, "ana@example.com")
	a = press(t, a, "enter")

	require.Equal(t, planner.OverlayConfirmAttendance, a.wf.Overlay())
	require.True(t, a.statErr)
	netMsg := a.status

	// a validation failure reads exactly the same
	a2 := newTestApp(t, &fakeService{}, nil, Params{TripID: "trip-7", ParticipantID: "guest-1"})
	a2 = press(t, a2, "enter")
	require.Equal(t, netMsg, a2.status)
}

func TestConfirmIgnoredWhileInFlight(t *testing.T) {
	svc := &fakeService{}
	a := newTestApp(t, svc, nil, Params{TripID: "trip-7", ParticipantID: "guest-1"})
	a.confirmOp = planner.OpInFlight

	next, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = next.(App)
	require.Nil(t, cmd)
	require.Zero(t, svc.confirmCalls)
}

func TestActivitiesRenderPastAndUpcoming(t *testing.T) {
	svc := &fakeService{
		activities: func(string) ([]trip.DayActivities, error) {
			d := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
			return []trip.DayActivities{{
				Date: d,
				Activities: []trip.Activity{
					{ID: "a1", Title: "City tour", OccursAt: d.Add(9 * time.Hour)},
				},
			}}, nil
		},
	}
	cache := &memCache{id: "trip-7"}
	a := newTestApp(t, svc, cache, Params{})
	a = drainCmd(t, a, a.Init())

	require.Len(t, a.sections, 1)
	require.Equal(t, 10, a.sections[0].DayNumber)
	require.Len(t, a.sections[0].Activities, 1)
	require.Equal(t, "09:00h", a.sections[0].Activities[0].Hour)
	require.Contains(t, a.View(), "City tour")
}

func TestNewDraftAfterRemoveResetsGuestState(t *testing.T) {
	svc := &fakeService{}
	cache := &memCache{}
	a := newTestApp(t, svc, cache, Params{})

	// first trip: three guests, cursor parked on the last one
	a = typeText(t, a, "Florianopolis")
	a = pickDates(t, a, 2)
	a = press(t, a, "enter")
	for _, g := range []string{"ana@example.com", "bia@example.com", "carla@example.com"} {
		a = typeText(t, a, g)
		a = press(t, a, "enter")
	}
	a = press(t, a, "down")
	a = press(t, a, "down")
	require.Equal(t, 2, a.guestCursor)
	a = press(t, a, "enter")
	a = press(t, a, "y")
	require.Equal(t, screenTrip, a.screen)
	require.Empty(t, a.destInput.Value())

	// remove the trip and start a fresh draft with a single guest
	a = press(t, a, "ctrl+x")
	a = press(t, a, "y")
	require.Equal(t, screenEntry, a.screen)
	require.Zero(t, a.guestCursor)
	require.Empty(t, a.destInput.Value())

	a = typeText(t, a, "Porto Alegre")
	require.Equal(t, "Porto Alegre", a.wf.Destination)
	a = pickDates(t, a, 2)
	a = press(t, a, "enter")
	a = typeText(t, a, "duda@example.com")
	a = press(t, a, "enter")
	require.Len(t, a.wf.Invitees(), 1)

	// removing with a cursor that outlived the previous three-guest list
	// must hit the only remaining guest, not an index
	a = press(t, a, "ctrl+x")
	require.Empty(t, a.wf.Invitees())
}

func TestGuestOverlayEscKeepsInviteStep(t *testing.T) {
	a := newTestApp(t, &fakeService{}, nil, Params{})
	a = typeText(t, a, "Florianopolis")
	a = pickDates(t, a, 2)
	a = press(t, a, "enter")
	require.Equal(t, planner.OverlayGuestList, a.wf.Overlay())

	a = press(t, a, "esc")
	require.Equal(t, planner.OverlayNone, a.wf.Overlay())
	require.Equal(t, planner.StepInvite, a.wf.Step())

	// reopening keeps everything; ctrl+b is the way back to details
	a = applyMsg(t, a, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.Equal(t, planner.OverlayGuestList, a.wf.Overlay())
	a = press(t, a, "esc")
	a = applyMsg(t, a, tea.KeyMsg{Type: tea.KeyCtrlB})
	require.Equal(t, planner.StepDetails, a.wf.Step())
}

func TestQuitFromAnywhere(t *testing.T) {
	a := newTestApp(t, &fakeService{}, nil, Params{})
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
