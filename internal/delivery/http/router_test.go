package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authadapter "timevents/internal/adapters/auth"
	"timevents/internal/delivery/http/controllers"
	"timevents/internal/delivery/http/helpers"
	"timevents/internal/delivery/http/middleware"
	"timevents/internal/domain"
	"timevents/internal/repository/memory"
	"timevents/internal/services"
)

const testTokenTTL = 30 * time.Minute

// testServer is the full stack over the in-memory store with a settable token clock.
type testServer struct {
	handler http.Handler
	now     time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := &testServer{now: time.Now()}

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	eventRepo := memory.NewEventRepository(store)
	speakerRepo := memory.NewSpeakerRepository(store)
	venueRepo := memory.NewVenueRepository(store)

	tokenCfg := &authadapter.TokenConfig{Secret: "router-test-secret", Clock: func() time.Time { return ts.now }}
	issuer, err := authadapter.NewJWTIssuer(tokenCfg)
	require.NoError(t, err)
	verifier, err := authadapter.NewJWTVerifier(tokenCfg)
	require.NoError(t, err)
	hasher := authadapter.NewBcryptHasher(4)

	authService, err := services.NewAuthService(userRepo, hasher, issuer, verifier, nil, testTokenTTL, time.Second, logger)
	require.NoError(t, err)

	limiter := middleware.NewLoginLimiter(0, time.Minute)
	t.Cleanup(limiter.Stop)

	ts.handler = NewRouter(RouterDeps{
		Logger:         logger,
		AllowedOrigins: []string{"*"},
		Resolver:       authService,
		LoginLimiter:   limiter,
		Auth:           controllers.NewAuthController(logger, authService),
		Users:          controllers.NewUserController(logger, services.NewUserService(userRepo, eventRepo, time.Second)),
		Events:         controllers.NewEventController(logger, services.NewEventService(eventRepo, time.Second)),
		Speakers:       controllers.NewSpeakerController(logger, services.NewSpeakerService(speakerRepo, eventRepo, time.Second)),
		Venues:         controllers.NewVenueController(logger, services.NewVenueService(venueRepo, time.Second)),
		Health:         controllers.NewHealthController(logger, nil),
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) register(t *testing.T, username string) domain.User {
	t.Helper()
	body := `{"username":"` + username + `","email":"` + username + `@example.com","first_name":"` + username + `","password":"secret123"}`
	rr := ts.do(t, http.MethodPost, "/users", "", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var u domain.User
	decodeData(t, rr, &u)
	return u
}

func (ts *testServer) login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) token(t *testing.T, username string) string {
	t.Helper()
	rr := ts.login(t, username, "secret123")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp controllers.TokenResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, "bearer", resp.TokenType)
	return resp.AccessToken
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, out any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	if out != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return envelope
}

func TestRouter_register_login_me_and_expiry(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	rr := ts.login(t, "alice", "wrong-password")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
	unknown := ts.login(t, "mallory", "wrong-password")
	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, rr.Body.String(), unknown.Body.String(), "unknown user and wrong password must look the same")

	token := ts.token(t, "alice")

	rr = ts.do(t, http.MethodGet, "/users/me", token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "hashed_password")
	assert.NotContains(t, rr.Body.String(), "HashedPassword")
	var me domain.User
	decodeData(t, rr, &me)
	assert.Equal(t, "alice", me.Username)
	assert.True(t, me.IsActive)
	assert.False(t, me.IsAdmin)

	ts.now = ts.now.Add(testTokenTTL + time.Second)
	rr = ts.do(t, http.MethodGet, "/users/me", token, "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
}

func TestRouter_requires_bearer_token(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/users/me", "/users", "/users/me/events", "/users/me/speakers", "/venues"} {
		rr := ts.do(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
		rr = ts.do(t, http.MethodGet, path, "not-a-jwt", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestRouter_event_ownership(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")
	ts.register(t, "bob")
	aliceToken := ts.token(t, "alice")
	bobToken := ts.token(t, "bob")

	rr := ts.do(t, http.MethodPost, "/users/me/events", aliceToken,
		`{"name":"GopherCon","location":"Berlin","start_time":"2025-06-01T09:00:00Z","end_time":"2025-06-01T17:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var event domain.Event
	decodeData(t, rr, &event)

	update := `{"name":"GopherCon EU","location":"Berlin","start_time":"2025-06-01T09:00:00Z","end_time":"2025-06-02T17:00:00Z"}`
	rr = ts.do(t, http.MethodPut, "/users/me/events/"+event.ID, bobToken, update)
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.do(t, http.MethodDelete, "/users/me/events/"+event.ID, bobToken, "")
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.do(t, http.MethodPut, "/users/me/events/"+event.ID, aliceToken, update)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated domain.Event
	decodeData(t, rr, &updated)
	assert.Equal(t, "GopherCon EU", updated.Name)
	assert.Equal(t, time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC), updated.EndTime.UTC())

	rr = ts.do(t, http.MethodGet, "/users/me", aliceToken, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var me domain.User
	decodeData(t, rr, &me)
	require.Len(t, me.Events, 1)
	assert.Equal(t, event.ID, me.Events[0].ID)

	// Bob cannot attach speakers to alice's event either.
	speaker := `{"event_id":"` + event.ID + `","first_name":"Rob","last_name":"Pike"}`
	rr = ts.do(t, http.MethodPost, "/users/me/speakers", bobToken, speaker)
	require.Equal(t, http.StatusForbidden, rr.Code)
	rr = ts.do(t, http.MethodPost, "/users/me/speakers", aliceToken, speaker)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = ts.do(t, http.MethodGet, "/users/me/events/"+event.ID, bobToken, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var withSpeakers domain.Event
	decodeData(t, rr, &withSpeakers)
	require.Len(t, withSpeakers.Speakers, 1)
	assert.Equal(t, "Pike", withSpeakers.Speakers[0].LastName)
}

func TestRouter_duplicate_registration(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	rr := ts.do(t, http.MethodPost, "/users", "", `{"username":"alice2","email":"alice@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	envelope := decodeData(t, rr, nil)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "User with this Email Exists", envelope.Error.Message)

	rr = ts.do(t, http.MethodPost, "/users", "", `{"username":"alice","email":"other@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	envelope = decodeData(t, rr, nil)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "User with that Username already exists", envelope.Error.Message)
}

func TestRouter_deleted_user_token_rejected(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")
	token := ts.token(t, "alice")

	rr := ts.do(t, http.MethodDelete, "/users/me", token, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.do(t, http.MethodGet, "/users/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRouter_login_trims_username(t *testing.T) {
	ts := newTestServer(t)
	rr := ts.do(t, http.MethodPost, "/users", "", `{"username":"carol ","email":"carol@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var carol domain.User
	decodeData(t, rr, &carol)
	assert.Equal(t, "carol", carol.Username)

	for _, username := range []string{"carol ", "carol", " carol"} {
		rr = ts.login(t, username, "secret123")
		assert.Equal(t, http.StatusOK, rr.Code, "login as %q", username)
	}
}

func TestRouter_renamed_user_token_rejected(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")
	token := ts.token(t, "alice")

	rr := ts.do(t, http.MethodPut, "/users/me", token, `{"username":"alicia","email":"alice@example.com"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// The token names the old username.
	rr = ts.do(t, http.MethodGet, "/users/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.do(t, http.MethodGet, "/users/me", ts.token(t, "alicia"), "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_public_routes(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.do(t, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))

	rr = ts.do(t, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "timevents_http_requests_total")

	rr = ts.do(t, http.MethodGet, "/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
