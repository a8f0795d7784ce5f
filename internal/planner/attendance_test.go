package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kmcrae/tripdeck/internal/trip"
)

func TestBeginForcesConfirmOverlay(t *testing.T) {
	w := NewWorkflow()
	w.OpenOverlay(OverlayCalendar)

	NewAttendance(&fakeDirectory{}, &fakeCache{}, testLogger()).Begin(w)
	require.Equal(t, OverlayConfirmAttendance, w.Overlay())
	require.False(t, w.CloseOverlay())
}

func TestConfirmValidation(t *testing.T) {
	called := false
	dir := &fakeDirectory{confirm: func(string, string, string) error {
		called = true
		return nil
	}}
	a := NewAttendance(dir, &fakeCache{}, testLogger())

	cases := []struct {
		name, guestName, email string
	}{
		{"empty name", "", "maria@b.com"},
		{"blank name", "   ", "maria@b.com"},
		{"empty email", "Maria", ""},
		{"invalid email", "Maria", "not-an-email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := a.Confirm(context.Background(), "trip-42", "p1", tc.guestName, tc.email)
			require.ErrorIs(t, err, trip.ErrValidation)
		})
	}
	require.False(t, called, "validation failures must not reach the network")
}

func TestConfirmHappyPathClaimsDevice(t *testing.T) {
	var gotID, gotName, gotEmail string
	dir := &fakeDirectory{confirm: func(id, name, email string) error {
		gotID, gotName, gotEmail = id, name, email
		return nil
	}}
	cache := &fakeCache{}
	a := NewAttendance(dir, cache, testLogger())
	w := NewWorkflow()
	a.Begin(w)

	err := a.Confirm(context.Background(), "trip-42", "p1", "Maria", "  maria@b.com  ")
	require.NoError(t, err)
	require.Equal(t, "p1", gotID)
	require.Equal(t, "Maria", gotName)
	require.Equal(t, "maria@b.com", gotEmail, "email is trimmed before submission")
	require.Equal(t, "trip-42", cache.id, "confirmation claims the device for the trip")

	w.FinishAttendance()
	require.Equal(t, OverlayNone, w.Overlay())
}

func TestConfirmRemoteFailureIsNotValidation(t *testing.T) {
	dir := &fakeDirectory{confirm: func(string, string, string) error { return errBoom }}
	cache := &fakeCache{}
	a := NewAttendance(dir, cache, testLogger())

	err := a.Confirm(context.Background(), "trip-42", "p1", "Maria", "maria@b.com")
	require.ErrorIs(t, err, errBoom)
	require.NotErrorIs(t, err, trip.ErrValidation)
	require.Empty(t, cache.id, "device is not claimed on failure")
}

func TestConfirmCacheFailureSurfaces(t *testing.T) {
	a := NewAttendance(&fakeDirectory{}, &fakeCache{saveErr: errBoom}, testLogger())

	err := a.Confirm(context.Background(), "trip-42", "p1", "Maria", "maria@b.com")
	require.ErrorIs(t, err, errBoom)
}
