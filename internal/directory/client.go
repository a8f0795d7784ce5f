// Package directory is the client for the Trip Directory Service, the
// remote authoritative store for trips, activities, links and participants.
// The planner consumes the Service interface; Client is the HTTP
// implementation.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kmcrae/tripdeck/internal/trip"
)

// Service is the remote contract the planner depends on. All calls are
// blocking; callers run them off the event loop and honor ctx deadlines.
type Service interface {
	CreateTrip(ctx context.Context, p CreateTripParams) (string, error)
	GetTrip(ctx context.Context, tripID string) (trip.Trip, error)
	UpdateTrip(ctx context.Context, tripID string, p UpdateTripParams) error
	DeleteTrip(ctx context.Context, tripID string) error

	CreateActivity(ctx context.Context, tripID, title string, occursAt time.Time) (string, error)
	ActivitiesByTrip(ctx context.Context, tripID string) ([]trip.DayActivities, error)

	CreateLink(ctx context.Context, tripID, title, url string) (string, error)
	LinksByTrip(ctx context.Context, tripID string) ([]trip.Link, error)

	ParticipantsByTrip(ctx context.Context, tripID string) ([]trip.Participant, error)
	ConfirmParticipant(ctx context.Context, participantID, name, email string) error
}

// CreateTripParams is the payload for trip creation.
type CreateTripParams struct {
	Destination    string
	StartsAt       time.Time
	EndsAt         time.Time
	EmailsToInvite []string
}

// UpdateTripParams is the payload for trip updates.
type UpdateTripParams struct {
	Destination string
	StartsAt    time.Time
	EndsAt      time.Time
}

// RequestError is a transport or remote failure that is not a plain 404.
// The wrapped cause may be a network error or a *StatusError.
type RequestError struct {
	Method string
	Path   string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("directory: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response from the directory service.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Client talks JSON over HTTP to the directory service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for baseURL (no trailing slash) with a
// client-wide request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) CreateTrip(ctx context.Context, p CreateTripParams) (string, error) {
	body := map[string]any{
		"destination":      p.Destination,
		"starts_at":        p.StartsAt.Format(time.RFC3339),
		"ends_at":          p.EndsAt.Format(time.RFC3339),
		"emails_to_invite": p.EmailsToInvite,
	}
	var out struct {
		TripID string `json:"tripId"`
	}
	if err := c.do(ctx, http.MethodPost, "/trips", body, &out); err != nil {
		return "", err
	}
	return out.TripID, nil
}

func (c *Client) GetTrip(ctx context.Context, tripID string) (trip.Trip, error) {
	var out struct {
		Trip struct {
			ID          string    `json:"id"`
			Destination string    `json:"destination"`
			StartsAt    time.Time `json:"starts_at"`
			EndsAt      time.Time `json:"ends_at"`
		} `json:"trip"`
	}
	if err := c.do(ctx, http.MethodGet, "/trips/"+tripID, nil, &out); err != nil {
		return trip.Trip{}, err
	}
	return trip.Trip{
		ID:          out.Trip.ID,
		Destination: out.Trip.Destination,
		StartsAt:    out.Trip.StartsAt,
		EndsAt:      out.Trip.EndsAt,
	}, nil
}

func (c *Client) UpdateTrip(ctx context.Context, tripID string, p UpdateTripParams) error {
	body := map[string]any{
		"destination": p.Destination,
		"starts_at":   p.StartsAt.Format(time.RFC3339),
		"ends_at":     p.EndsAt.Format(time.RFC3339),
	}
	return c.do(ctx, http.MethodPut, "/trips/"+tripID, body, nil)
}

func (c *Client) DeleteTrip(ctx context.Context, tripID string) error {
	return c.do(ctx, http.MethodDelete, "/trips/"+tripID, nil, nil)
}

func (c *Client) CreateActivity(ctx context.Context, tripID, title string, occursAt time.Time) (string, error) {
	body := map[string]any{
		"title":     title,
		"occurs_at": occursAt.Format(time.RFC3339),
	}
	var out struct {
		ActivityID string `json:"activityId"`
	}
	if err := c.do(ctx, http.MethodPost, "/trips/"+tripID+"/activities", body, &out); err != nil {
		return "", err
	}
	return out.ActivityID, nil
}

func (c *Client) ActivitiesByTrip(ctx context.Context, tripID string) ([]trip.DayActivities, error) {
	var out struct {
		Activities []struct {
			Date       time.Time `json:"date"`
			Activities []struct {
				ID       string    `json:"id"`
				Title    string    `json:"title"`
				OccursAt time.Time `json:"occurs_at"`
			} `json:"activities"`
		} `json:"activities"`
	}
	if err := c.do(ctx, http.MethodGet, "/trips/"+tripID+"/activities", nil, &out); err != nil {
		return nil, err
	}
	days := make([]trip.DayActivities, 0, len(out.Activities))
	for _, d := range out.Activities {
		day := trip.DayActivities{Date: d.Date, Activities: make([]trip.Activity, 0, len(d.Activities))}
		for _, a := range d.Activities {
			day.Activities = append(day.Activities, trip.Activity{ID: a.ID, Title: a.Title, OccursAt: a.OccursAt})
		}
		days = append(days, day)
	}
	return days, nil
}

func (c *Client) CreateLink(ctx context.Context, tripID, title, url string) (string, error) {
	body := map[string]any{"title": title, "url": url}
	var out struct {
		LinkID string `json:"linkId"`
	}
	if err := c.do(ctx, http.MethodPost, "/trips/"+tripID+"/links", body, &out); err != nil {
		return "", err
	}
	return out.LinkID, nil
}

func (c *Client) LinksByTrip(ctx context.Context, tripID string) ([]trip.Link, error) {
	var out struct {
		Links []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"links"`
	}
	if err := c.do(ctx, http.MethodGet, "/trips/"+tripID+"/links", nil, &out); err != nil {
		return nil, err
	}
	links := make([]trip.Link, 0, len(out.Links))
	for _, l := range out.Links {
		links = append(links, trip.Link{ID: l.ID, Title: l.Title, URL: l.URL})
	}
	return links, nil
}

func (c *Client) ParticipantsByTrip(ctx context.Context, tripID string) ([]trip.Participant, error) {
	var out struct {
		Participants []struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Email       string `json:"email"`
			IsConfirmed bool   `json:"is_confirmed"`
		} `json:"participants"`
	}
	if err := c.do(ctx, http.MethodGet, "/trips/"+tripID+"/participants", nil, &out); err != nil {
		return nil, err
	}
	people := make([]trip.Participant, 0, len(out.Participants))
	for _, p := range out.Participants {
		people = append(people, trip.Participant{ID: p.ID, Name: p.Name, Email: p.Email, IsConfirmed: p.IsConfirmed})
	}
	return people, nil
}

func (c *Client) ConfirmParticipant(ctx context.Context, participantID, name, email string) error {
	body := map[string]any{"name": name, "email": email}
	return c.do(ctx, http.MethodPatch, "/participants/"+participantID+"/confirm", body, nil)
}

// do performs one request. 404 maps to trip.ErrNotFound; any other failure
// becomes a *RequestError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Method: method, Path: path, Err: err}
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, trip.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &RequestError{Method: method, Path: path, Err: &StatusError{Code: resp.StatusCode}}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Method: method, Path: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
