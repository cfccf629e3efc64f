package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timevents/internal/delivery/http/helpers"
	"timevents/internal/domain"
)

const eventBody = `{"name":"GopherCon","description":"Go conference","location":"Berlin","start_time":"2025-06-01T09:00:00Z","end_time":"2025-06-01T17:00:00Z"}`

func TestEventController_Create(t *testing.T) {
	tests := []struct {
		name         string
		user         *domain.User
		body         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
		wantMessage  string
	}{
		{
			name:       "success",
			user:       alice,
			body:       eventBody,
			wantStatus: http.StatusCreated,
		},
		{
			name:         "unauthenticated",
			body:         eventBody,
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "missing name and times",
			user:         alice,
			body:         `{"description":"x"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
			wantMessage:  "name is required; start_time is required; end_time is required",
		},
		{
			name:         "ends before it starts",
			user:         alice,
			body:         `{"name":"x","start_time":"2025-06-02T09:00:00Z","end_time":"2025-06-01T09:00:00Z"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
			wantMessage:  "end_time must not be before start_time",
		},
		{
			name:         "organizer is not client controlled",
			user:         alice,
			body:         `{"name":"x","start_time":"2025-06-01T09:00:00Z","end_time":"2025-06-01T10:00:00Z","organizer_id":"` + otherID + `"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "service error",
			user:         alice,
			body:         eventBody,
			fakeErr:      assert.AnError,
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{err: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			req := withUser(httptest.NewRequest(http.MethodPost, "/users/me/events", strings.NewReader(tt.body)), tt.user)
			rr := httptest.NewRecorder()

			ctrl.Create(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var e domain.Event
			envelope := decodeEnvelope(t, rr, &e)
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
				if tt.wantMessage != "" {
					assert.Equal(t, tt.wantMessage, envelope.Error.Message)
				}
				return
			}
			assert.Equal(t, "GopherCon", e.Name)
			assert.Equal(t, aliceID, e.OrganizerID)
			assert.Equal(t, time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC), fake.lastIn.EndTime.UTC())
			assert.NotNil(t, e.Speakers)
		})
	}
}

func TestEventController_Update(t *testing.T) {
	tests := []struct {
		name         string
		pathID       string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{"owner updates", eventID, nil, http.StatusOK, ""},
		{"not the organizer", eventID, domain.ErrForbidden, http.StatusForbidden, helpers.ErrCodeForbidden},
		{"missing event", eventID, domain.ErrNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
		{"malformed id", "not-a-uuid", nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{err: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			req := withUser(httptest.NewRequest(http.MethodPut, "/users/me/events/"+tt.pathID, strings.NewReader(eventBody)), alice)
			req.SetPathValue("eventID", tt.pathID)
			rr := httptest.NewRecorder()

			ctrl.Update(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var e domain.Event
			envelope := decodeEnvelope(t, rr, &e)
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
				return
			}
			assert.Equal(t, eventID, fake.lastID)
			assert.Equal(t, "Berlin", e.Location)
		})
	}
}

func TestEventController_Get_and_List(t *testing.T) {
	event := &domain.Event{ID: eventID, Name: "GopherCon", OrganizerID: aliceID, Speakers: []*domain.Speaker{{ID: otherID, EventID: eventID, FirstName: "Rob"}}}
	fake := &fakeEventService{event: event, events: []*domain.Event{event}}
	ctrl := NewEventController(testLogger, fake)

	req := withUser(httptest.NewRequest(http.MethodGet, "/users/me/events/"+eventID, nil), alice)
	req.SetPathValue("eventID", eventID)
	rr := httptest.NewRecorder()
	ctrl.Get(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got domain.Event
	decodeEnvelope(t, rr, &got)
	require.Len(t, got.Speakers, 1)
	assert.Equal(t, "Rob", got.Speakers[0].FirstName)

	rr = httptest.NewRecorder()
	ctrl.List(rr, withUser(httptest.NewRequest(http.MethodGet, "/users/me/events?limit=2", nil), alice))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.PaginationParams{Skip: 0, Limit: 2}, fake.lastPage)
}

func TestEventController_Delete(t *testing.T) {
	for _, tt := range []struct {
		name       string
		fakeErr    error
		wantStatus int
	}{
		{"owner deletes", nil, http.StatusOK},
		{"not the organizer", domain.ErrForbidden, http.StatusForbidden},
	} {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{err: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			req := withUser(httptest.NewRequest(http.MethodDelete, "/users/me/events/"+eventID, nil), alice)
			req.SetPathValue("eventID", eventID)
			rr := httptest.NewRecorder()

			ctrl.Delete(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, eventID, fake.deleted)
		})
	}
}
