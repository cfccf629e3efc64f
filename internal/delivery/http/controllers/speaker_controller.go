package controllers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	h "timevents/internal/delivery/http/helpers"
	"timevents/internal/domain"
)

// SpeakerRequest is the request body for POST and PUT on /users/me/speakers.
type SpeakerRequest struct {
	EventID        string `json:"event_id" validate:"omitempty,uuid"`
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	Bio            string `json:"bio" validate:"max=5000"`
	ProfilePicture string `json:"profile_picture" validate:"omitempty,url,max=2048"`
	ContactInfo    string `json:"contact_info" validate:"max=255"`
}

// Validate implements Validator.
func (s SpeakerRequest) Validate() []string {
	return h.ValidateStruct(s)
}

func (s SpeakerRequest) input() domain.SpeakerInput {
	return domain.SpeakerInput{
		EventID:        s.EventID,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Bio:            s.Bio,
		ProfilePicture: s.ProfilePicture,
		ContactInfo:    s.ContactInfo,
	}
}

// SpeakerSuccessResponse is the success response envelope for single-speaker endpoints.
type SpeakerSuccessResponse struct {
	Data  *domain.Speaker `json:"data"`
	Error *h.APIError     `json:"error"`
}

// SpeakerListSuccessResponse is the success response envelope for GET /users/me/speakers (200).
type SpeakerListSuccessResponse struct {
	Data  []*domain.Speaker `json:"data"`
	Error *h.APIError       `json:"error"`
}

// SpeakerController handles speakers of the caller's events.
type SpeakerController struct {
	Logger  *slog.Logger
	Service domain.SpeakerService
}

func NewSpeakerController(logger *slog.Logger, svc domain.SpeakerService) *SpeakerController {
	return &SpeakerController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a speaker
// @Description The caller must be allowed to modify the speaker's event. A speaker without an event can only be created by an admin.
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param speaker body SpeakerRequest true "Speaker data"
// @Success 201 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/me/speakers [post]
func (c *SpeakerController) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req SpeakerRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	speaker, err := c.Service.Create(r.Context(), actor, req.input())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, speaker)
}

// List godoc
// @Summary List speakers
// @Description Speakers of the given event, or of every event the caller organizes when event_id is omitted.
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param event_id query string false "Event ID (UUID)"
// @Param skip query int false "Number of speakers to skip" default(0)
// @Param limit query int false "Maximum number of speakers" default(100)
// @Success 200 {object} controllers.SpeakerListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/me/speakers [get]
func (c *SpeakerController) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	eventID := r.URL.Query().Get("event_id")
	if eventID != "" {
		if _, err := uuid.Parse(eventID); err != nil {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid event_id")
			return
		}
	}
	speakers, err := c.Service.List(r.Context(), actor, eventID, h.ParsePagination(r))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, speakers)
}

// Get godoc
// @Summary Get a speaker by ID
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param speakerID path string true "Speaker ID (UUID)"
// @Success 200 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/me/speakers/{speakerID} [get]
func (c *SpeakerController) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	id, ok := h.PathID(w, r, "speakerID")
	if !ok {
		return
	}
	speaker, err := c.Service.Get(r.Context(), id)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// Update godoc
// @Summary Update a speaker
// @Description Full replacement. The caller must be allowed to modify both the current and the new event.
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param speakerID path string true "Speaker ID (UUID)"
// @Param speaker body SpeakerRequest true "Speaker data"
// @Success 200 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/me/speakers/{speakerID} [put]
func (c *SpeakerController) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r, "speakerID")
	if !ok {
		return
	}
	var req SpeakerRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	speaker, err := c.Service.Update(r.Context(), actor, id, req.input())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// Delete godoc
// @Summary Delete a speaker
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param speakerID path string true "Speaker ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is an empty object"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/me/speakers/{speakerID} [delete]
func (c *SpeakerController) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r, "speakerID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), actor, id); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, h.Empty{})
}
