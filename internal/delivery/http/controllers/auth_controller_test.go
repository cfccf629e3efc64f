package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timevents/internal/delivery/http/helpers"
	"timevents/internal/domain"
)

func TestAuthController_Register(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
		wantMessage  string
	}{
		{
			name:       "success",
			body:       `{"username":"alice","email":"alice@example.com","first_name":"Alice","last_name":"Liddell","password":"secret123"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:         "short password",
			body:         `{"username":"alice","email":"alice@example.com","password":"short"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
			wantMessage:  "password must be at least 8",
		},
		{
			name:         "invalid email",
			body:         `{"username":"alice","email":"not-an-email","password":"secret123"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
			wantMessage:  "email must be a valid email",
		},
		{
			name:         "role flags are not accepted",
			body:         `{"username":"alice","email":"alice@example.com","password":"secret123","is_admin":true}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "duplicate email",
			body:         `{"username":"alice","email":"alice@example.com","password":"secret123"}`,
			fakeErr:      domain.ErrDuplicateEmail,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeConflict,
			wantMessage:  "User with this Email Exists",
		},
		{
			name:         "duplicate username",
			body:         `{"username":"alice","email":"alice@example.com","password":"secret123"}`,
			fakeErr:      domain.ErrDuplicateUsername,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeConflict,
			wantMessage:  "User with that Username already exists",
		},
		{
			name:         "service error",
			body:         `{"username":"alice","email":"alice@example.com","password":"secret123"}`,
			fakeErr:      assert.AnError,
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{registerUser: alice, registerErr: tt.fakeErr}
			ctrl := NewAuthController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			ctrl.Register(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.NotContains(t, rr.Body.String(), "secret-hash")
				assert.NotContains(t, rr.Body.String(), "hashed_password")
				var u domain.User
				envelope := decodeEnvelope(t, rr, &u)
				require.Nil(t, envelope.Error)
				assert.Equal(t, "alice", u.Username)
				assert.Equal(t, "Liddell", fake.lastRegister.LastName)
				assert.Equal(t, "secret123", fake.lastRegister.Password)
				return
			}
			envelope := decodeEnvelope(t, rr, nil)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			if tt.wantMessage != "" {
				assert.Contains(t, envelope.Error.Message, tt.wantMessage)
			}
		})
	}
}

func TestAuthController_Token(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		fakeErr    error
		wantStatus int
	}{
		{"success", url.Values{"username": {"alice"}, "password": {"secret123"}}, nil, http.StatusOK},
		{"invalid credentials", url.Values{"username": {"alice"}, "password": {"wrong"}}, domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"missing password", url.Values{"username": {"alice"}}, nil, http.StatusBadRequest},
		{"service error", url.Values{"username": {"alice"}, "password": {"secret123"}}, assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{loginToken: "signed-token", loginErr: tt.fakeErr}
			ctrl := NewAuthController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rr := httptest.NewRecorder()

			ctrl.Token(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			switch tt.wantStatus {
			case http.StatusOK:
				var resp TokenResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, TokenResponse{AccessToken: "signed-token", TokenType: "bearer"}, resp)
				assert.Equal(t, "alice", fake.lastUsername)
				assert.Equal(t, "secret123", fake.lastPassword)
			case http.StatusUnauthorized:
				assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
				envelope := decodeEnvelope(t, rr, nil)
				require.NotNil(t, envelope.Error)
				assert.Equal(t, "Incorrect username or password", envelope.Error.Message)
			}
		})
	}
}

func TestAuthController_Token_json_body_rejected(t *testing.T) {
	fake := &fakeAuthService{loginToken: "signed-token"}
	ctrl := NewAuthController(testLogger, fake)
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{"username":"alice","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	ctrl.Token(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, fake.lastUsername)
}
