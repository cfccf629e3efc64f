package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "timevents/internal/delivery/http/helpers"
	"timevents/internal/domain"
	"timevents/internal/metrics"
)

// RegisterRequest is the request body for POST /users
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
}

// Validate implements Validator.
func (r RegisterRequest) Validate() []string {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	return h.ValidateStruct(r)
}

// TokenResponse is the response body for POST /token. It is not wrapped in the envelope.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterSuccessResponse is the success response envelope for POST /users (201).
type RegisterSuccessResponse struct {
	Data  *domain.User `json:"data"`
	Error *h.APIError  `json:"error"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create an active organizer account. The password is stored hashed and never returned.
// @Tags users
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} controllers.RegisterSuccessResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.Register(r.Context(), domain.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	metrics.UsersRegistered.Inc()
	h.WriteJSONSuccess(w, http.StatusCreated, user)
}

// Token godoc
// @Summary Log in
// @Description OAuth2 password flow. Exchanges form-encoded username and password for a bearer token.
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} controllers.TokenResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /token [post]
func (c *AuthController) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid form body")
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "username and password are required")
		return
	}
	token, err := c.Service.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttempts.WithLabelValues(metrics.LoginInvalid).Inc()
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "Incorrect username or password")
			return
		}
		metrics.LoginAttempts.WithLabelValues(metrics.LoginError).Inc()
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	metrics.LoginAttempts.WithLabelValues(metrics.LoginSuccess).Inc()
	w.Header().Set("Cache-Control", "no-store")
	h.WriteJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
