package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"timevents/internal/delivery/http/helpers"
	"timevents/internal/delivery/http/middleware"
	"timevents/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	aliceID = "11111111-1111-4111-8111-111111111111"
	eventID = "22222222-2222-4222-8222-222222222222"
	otherID = "33333333-3333-4333-8333-333333333333"
)

var alice = &domain.User{ID: aliceID, Username: "alice", Email: "alice@example.com", HashedPassword: "secret-hash", IsActive: true, IsOrganizer: true}

// withUser returns req carrying user as the authenticated caller.
func withUser(req *http.Request, user *domain.User) *http.Request {
	if user == nil {
		return req
	}
	return req.WithContext(middleware.SetUser(req.Context(), user))
}

// decodeEnvelope decodes the response envelope and re-decodes data into out when out is non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, out any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	if out != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return envelope
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	registerUser *domain.User
	registerErr  error
	lastRegister domain.RegisterInput
	loginToken   string
	loginErr     error
	lastUsername string
	lastPassword string
}

func (f *fakeAuthService) Register(_ context.Context, in domain.RegisterInput) (*domain.User, error) {
	f.lastRegister = in
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerUser, nil
}

func (f *fakeAuthService) Authenticate(_ context.Context, _, _ string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func (f *fakeAuthService) Login(_ context.Context, username, password string) (string, error) {
	f.lastUsername, f.lastPassword = username, password
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeAuthService) Resolve(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUnauthorized
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	user       *domain.User
	users      []*domain.User
	events     []*domain.Event
	err        error
	lastID     string
	lastPage   domain.PaginationParams
	lastUpdate domain.UserInput
	deleted    *domain.User
}

func (f *fakeUserService) Me(_ context.Context, actor *domain.User) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	me := *actor
	me.Events = f.events
	return &me, nil
}

func (f *fakeUserService) GetByID(_ context.Context, _ *domain.User, id string) (*domain.User, error) {
	f.lastID = id
	return f.user, f.err
}

func (f *fakeUserService) List(_ context.Context, _ *domain.User, page domain.PaginationParams) ([]*domain.User, error) {
	f.lastPage = page
	return f.users, f.err
}

func (f *fakeUserService) Update(_ context.Context, actor *domain.User, in domain.UserInput) (*domain.User, error) {
	f.lastUpdate = in
	if f.err != nil {
		return nil, f.err
	}
	u := *actor
	u.Apply(in, actor.UpdatedAt)
	return &u, nil
}

func (f *fakeUserService) Delete(_ context.Context, actor *domain.User) error {
	f.deleted = actor
	return f.err
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	event    *domain.Event
	events   []*domain.Event
	err      error
	lastID   string
	lastIn   domain.EventInput
	lastPage domain.PaginationParams
	deleted  string
}

func (f *fakeEventService) Create(_ context.Context, actor *domain.User, in domain.EventInput) (*domain.Event, error) {
	f.lastIn = in
	if f.err != nil {
		return nil, f.err
	}
	e := domain.NewEvent(in, actor.ID, in.StartTime, in.StartTime)
	e.ID = eventID
	return e, nil
}

func (f *fakeEventService) Get(_ context.Context, id string) (*domain.Event, error) {
	f.lastID = id
	return f.event, f.err
}

func (f *fakeEventService) ListMine(_ context.Context, _ *domain.User, page domain.PaginationParams) ([]*domain.Event, error) {
	f.lastPage = page
	return f.events, f.err
}

func (f *fakeEventService) Update(_ context.Context, _ *domain.User, id string, in domain.EventInput) (*domain.Event, error) {
	f.lastID, f.lastIn = id, in
	if f.err != nil {
		return nil, f.err
	}
	e := domain.NewEvent(in, aliceID, in.StartTime, in.StartTime)
	e.ID = id
	return e, nil
}

func (f *fakeEventService) Delete(_ context.Context, _ *domain.User, id string) error {
	f.deleted = id
	return f.err
}

// fakeSpeakerService implements domain.SpeakerService for handler tests.
type fakeSpeakerService struct {
	speaker     *domain.Speaker
	speakers    []*domain.Speaker
	err         error
	lastID      string
	lastEventID string
	lastIn      domain.SpeakerInput
	deleted     string
}

func (f *fakeSpeakerService) Create(_ context.Context, _ *domain.User, in domain.SpeakerInput) (*domain.Speaker, error) {
	f.lastIn = in
	if f.err != nil {
		return nil, f.err
	}
	s := domain.NewSpeaker(in, alice.CreatedAt, alice.CreatedAt)
	s.ID = otherID
	return s, nil
}

func (f *fakeSpeakerService) Get(_ context.Context, id string) (*domain.Speaker, error) {
	f.lastID = id
	return f.speaker, f.err
}

func (f *fakeSpeakerService) List(_ context.Context, _ *domain.User, eventID string, _ domain.PaginationParams) ([]*domain.Speaker, error) {
	f.lastEventID = eventID
	return f.speakers, f.err
}

func (f *fakeSpeakerService) Update(_ context.Context, _ *domain.User, id string, in domain.SpeakerInput) (*domain.Speaker, error) {
	f.lastID, f.lastIn = id, in
	if f.err != nil {
		return nil, f.err
	}
	s := domain.NewSpeaker(in, alice.CreatedAt, alice.CreatedAt)
	s.ID = id
	return s, nil
}

func (f *fakeSpeakerService) Delete(_ context.Context, _ *domain.User, id string) error {
	f.deleted = id
	return f.err
}

// fakeVenueService implements domain.VenueService for handler tests.
type fakeVenueService struct {
	venue    *domain.Venue
	venues   []*domain.Venue
	err      error
	lastID   string
	lastIn   domain.VenueInput
	lastPage domain.PaginationParams
	deleted  string
}

func (f *fakeVenueService) Create(_ context.Context, in domain.VenueInput) (*domain.Venue, error) {
	f.lastIn = in
	if f.err != nil {
		return nil, f.err
	}
	v := domain.NewVenue(in, alice.CreatedAt, alice.CreatedAt)
	v.ID = otherID
	return v, nil
}

func (f *fakeVenueService) Get(_ context.Context, id string) (*domain.Venue, error) {
	f.lastID = id
	return f.venue, f.err
}

func (f *fakeVenueService) List(_ context.Context, page domain.PaginationParams) ([]*domain.Venue, error) {
	f.lastPage = page
	return f.venues, f.err
}

func (f *fakeVenueService) Update(_ context.Context, id string, in domain.VenueInput) (*domain.Venue, error) {
	f.lastID, f.lastIn = id, in
	if f.err != nil {
		return nil, f.err
	}
	v := domain.NewVenue(in, alice.CreatedAt, alice.CreatedAt)
	v.ID = id
	return v, nil
}

func (f *fakeVenueService) Delete(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}
