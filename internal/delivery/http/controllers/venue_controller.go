package controllers

import (
	"log/slog"
	"net/http"

	h "timevents/internal/delivery/http/helpers"
	"timevents/internal/domain"
)

// VenueRequest is the request body for POST and PUT on /venues.
type VenueRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Location    string `json:"location" validate:"max=255"`
	Capacity    int    `json:"capacity" validate:"gte=0,max=2147483647"`
	Description string `json:"description" validate:"max=5000"`
}

// Validate implements Validator.
func (v VenueRequest) Validate() []string {
	return h.ValidateStruct(v)
}

func (v VenueRequest) input() domain.VenueInput {
	return domain.VenueInput{
		Name:        v.Name,
		Location:    v.Location,
		Capacity:    v.Capacity,
		Description: v.Description,
	}
}

// VenueSuccessResponse is the success response envelope for single-venue endpoints.
type VenueSuccessResponse struct {
	Data  *domain.Venue `json:"data"`
	Error *h.APIError   `json:"error"`
}

// VenueListSuccessResponse is the success response envelope for GET /venues (200).
type VenueListSuccessResponse struct {
	Data  []*domain.Venue `json:"data"`
	Error *h.APIError     `json:"error"`
}

// VenueController handles venues. Venues have no owner; any authenticated user may change them.
type VenueController struct {
	Logger  *slog.Logger
	Service domain.VenueService
}

func NewVenueController(logger *slog.Logger, svc domain.VenueService) *VenueController {
	return &VenueController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venue body VenueRequest true "Venue data"
// @Success 201 {object} controllers.VenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [post]
func (c *VenueController) Create(w http.ResponseWriter, r *http.Request) {
	var req VenueRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	venue, err := c.Service.Create(r.Context(), req.input())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, venue)
}

// List godoc
// @Summary List venues
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Number of venues to skip" default(0)
// @Param limit query int false "Maximum number of venues" default(100)
// @Success 200 {object} controllers.VenueListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [get]
func (c *VenueController) List(w http.ResponseWriter, r *http.Request) {
	venues, err := c.Service.List(r.Context(), h.ParsePagination(r))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, venues)
}

// Get godoc
// @Summary Get a venue by ID
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Success 200 {object} controllers.VenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /venues/{venueID} [get]
func (c *VenueController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathID(w, r, "venueID")
	if !ok {
		return
	}
	venue, err := c.Service.Get(r.Context(), id)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, venue)
}

// Update godoc
// @Summary Update a venue
// @Description Full replacement.
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Param venue body VenueRequest true "Venue data"
// @Success 200 {object} controllers.VenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /venues/{venueID} [put]
func (c *VenueController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathID(w, r, "venueID")
	if !ok {
		return
	}
	var req VenueRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	venue, err := c.Service.Update(r.Context(), id, req.input())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, venue)
}

// Delete godoc
// @Summary Delete a venue
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is an empty object"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /venues/{venueID} [delete]
func (c *VenueController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathID(w, r, "venueID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, h.Empty{})
}
