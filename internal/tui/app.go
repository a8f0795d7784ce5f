// Package tui is the terminal front end: a Bubble Tea program that turns
// key presses into planner calls and renders the resulting state. All state
// mutation happens on the event loop; remote work runs as commands that
// report back through typed result messages.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmcrae/tripdeck/internal/config"
	"github.com/kmcrae/tripdeck/internal/directory"
	"github.com/kmcrae/tripdeck/internal/planner"
	"github.com/kmcrae/tripdeck/internal/trip"
)

const appName = "Tripdeck"

type screen int

const (
	screenEntry screen = iota
	screenTrip
)

type pane int

const (
	paneActivities pane = iota
	paneDetails
)

// decision is a pending yes/no prompt answered on the status line. While
// one is pending all other input is ignored.
type decision int

const (
	decisionNone decision = iota
	decisionCreateTrip
	decisionRemoveTrip
)

// tripModal is the trip screen's own modal surface for creation drafts.
// At most one is up at a time, same as the workflow overlays.
type tripModal int

const (
	tripModalNone tripModal = iota
	tripModalNewActivity
	tripModalActivityDate
	tripModalNewLink
)

// calTarget tells calendar selections where to land when the overlay
// closes.
type calTarget int

const (
	calTargetWizard calTarget = iota
	calTargetEdit
)

// messages

type resumeDoneMsg struct{ resumed bool }

type tripCreatedMsg struct {
	id  string
	err error
}

type tripLoadedMsg struct {
	trip trip.Trip
	err  error
}

type tripUpdatedMsg struct{ err error }

// report is non-nil when the remote delete failed; removal succeeded
// locally either way.
type tripRemovedMsg struct{ report error }

type activitiesLoadedMsg struct {
	sections []trip.DaySection
	err      error
}

type activityCreatedMsg struct{ err error }

type linksLoadedMsg struct {
	links []trip.Link
	err   error
}

type linkCreatedMsg struct{ err error }

type participantsLoadedMsg struct {
	people []trip.Participant
	err    error
}

type attendanceConfirmedMsg struct{ err error }

// navQueue collects the planner's navigation effects. Planner methods run
// inside command goroutines, so the queue is locked; the event loop drains
// it when the operation's result message arrives.
type navQueue struct {
	mu    sync.Mutex
	paths []string
}

func (q *navQueue) NavigateTo(path string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.paths = append(q.paths, path)
}

// Back returns to the entry screen, the only screen behind a trip.
func (q *navQueue) Back() {
	q.NavigateTo(planner.EntryPath)
}

func (q *navQueue) drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	paths := q.paths
	q.paths = nil
	return paths
}

// App is the Bubble Tea model.
type App struct {
	cfg config.Config
	dir directory.Service
	log *slog.Logger

	wf         *planner.Workflow
	lifecycle  *planner.Lifecycle
	attendance *planner.Attendance
	nav        *navQueue
	now        func() time.Time

	keys    keyMap
	screen  screen
	width   int
	height  int
	status  string
	statErr bool

	decision decision

	// per-operation states; the only concurrency control
	resumeOp   planner.OpState
	createOp   planner.OpState
	updateOp   planner.OpState
	removeOp   planner.OpState
	confirmOp  planner.OpState
	activityOp planner.OpState
	linkOp     planner.OpState

	// entry screen
	destInput textinput.Model

	// guest-list overlay
	guestInput  textinput.Model
	guestCursor int

	// calendar overlay
	cal       calendar
	calTarget calTarget

	// trip screen
	tripID        string
	participantID string
	trip          trip.Trip
	tripLoaded    bool
	pane          pane
	actCursor     int
	sections      []trip.DaySection
	links         []trip.Link
	participants  []trip.Participant
	tripModal     tripModal

	// edit-trip overlay draft
	editDest  textinput.Model
	editDates trip.DateSelection

	// attendance confirmation inputs
	nameInput    textinput.Model
	emailInput   textinput.Model
	confirmFocus int

	// new-activity draft
	actTitle textinput.Model
	actHour  textinput.Model
	actDate  string
	actFocus int

	// new-link draft
	linkTitle textinput.Model
	linkURL   textinput.Model
	linkFocus int
}

// Params carries the parsed deep-link flags. A non-empty ParticipantID
// means the user arrived through an invite link.
type Params struct {
	TripID        string
	ParticipantID string
}

// New wires the app. cache is the device preference store, dir the
// directory service client.
func New(cfg config.Config, dir directory.Service, cache planner.TripCache, log *slog.Logger, params Params) App {
	nav := &navQueue{}
	wf := planner.NewWorkflow()
	att := planner.NewAttendance(dir, cache, log)

	a := App{
		cfg:        cfg,
		dir:        dir,
		log:        log,
		wf:         wf,
		lifecycle:  planner.NewLifecycle(dir, cache, nav, log),
		attendance: att,
		nav:        nav,
		now:        time.Now,
		keys:       newKeyMap(),
		destInput:  newInput("Where to?", 64),
		guestInput: newInput("Guest email", 64),
		editDest:   newInput("Where to?", 64),
		nameInput:  newInput("Your full name", 64),
		emailInput: newInput("Your confirmation email", 64),
		actTitle:   newInput("Which activity?", 64),
		actHour:    newDigitInput("Hour (0-23)", 2),
		linkTitle:  newInput("Link title", 64),
		linkURL:    newInput("URL", 128),
	}
	a.destInput.Focus()

	if params.ParticipantID != "" && params.TripID != "" {
		// invite deep link: land on the trip with the confirmation
		// overlay up; it cannot be dismissed without answering
		a.screen = screenTrip
		a.tripID = params.TripID
		a.participantID = params.ParticipantID
		att.Begin(wf)
		a.nameInput.Focus()
	} else if params.TripID != "" {
		a.screen = screenTrip
		a.tripID = params.TripID
	} else {
		a.resumeOp = planner.OpInFlight
	}
	return a
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Prompt = "> "
	in.PromptStyle = promptStyle
	in.Cursor.Style = cursorStyle
	return in
}

// newDigitInput rejects anything that is not a digit, so signs and dots
// never reach hour parsing.
func newDigitInput(placeholder string, limit int) textinput.Model {
	in := newInput(placeholder, limit)
	in.Validate = func(s string) error {
		for _, r := range s {
			if r < '0' || r > '9' {
				return fmt.Errorf("digits only")
			}
		}
		return nil
	}
	return in
}

// Init starts either the deep-linked trip load or the cached-trip resume.
func (a App) Init() tea.Cmd {
	if a.screen == screenTrip {
		return a.loadTripDataCmd()
	}
	return a.resumeCmd()
}

// Update is the single dispatch point for every event.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case resumeDoneMsg:
		return a.handleResumeDone(msg)
	case tripCreatedMsg:
		return a.handleTripCreated(msg)
	case tripLoadedMsg:
		return a.handleTripLoaded(msg)
	case tripUpdatedMsg:
		return a.handleTripUpdated(msg)
	case tripRemovedMsg:
		return a.handleTripRemoved(msg)
	case activitiesLoadedMsg:
		return a.handleActivitiesLoaded(msg)
	case activityCreatedMsg:
		return a.handleActivityCreated(msg)
	case linksLoadedMsg:
		return a.handleLinksLoaded(msg)
	case linkCreatedMsg:
		return a.handleLinkCreated(msg)
	case participantsLoadedMsg:
		return a.handleParticipantsLoaded(msg)
	case attendanceConfirmedMsg:
		return a.handleAttendanceConfirmed(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

// resetDraftInputs clears the UI side of a discarded creation draft.
// Workflow.Reset clears the workflow fields but knows nothing about the
// text inputs or the guest cursor, which would otherwise go stale.
func (a *App) resetDraftInputs() {
	a.destInput.Reset()
	a.guestInput.Reset()
	a.guestCursor = 0
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statErr = false
}

func (a *App) setError(s string) {
	a.status = s
	a.statErr = true
}

// applyNavigation reacts to the planner's queued navigation effects and
// returns the data loads the target screen needs.
func (a *App) applyNavigation() tea.Cmd {
	var cmds []tea.Cmd
	for _, path := range a.nav.drain() {
		switch {
		case path == planner.EntryPath:
			a.screen = screenEntry
			a.tripID = ""
			a.tripLoaded = false
			a.sections = nil
			a.links = nil
			a.participants = nil
			a.tripModal = tripModalNone
			a.resetDraftInputs()
			a.destInput.Focus()
		case strings.HasPrefix(path, "/trip/"):
			a.screen = screenTrip
			a.tripID = strings.TrimPrefix(path, "/trip/")
			a.pane = paneActivities
			a.actCursor = 0
			cmds = append(cmds, a.loadTripDataCmd())
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
