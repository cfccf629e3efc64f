// Package controllers holds the HTTP handlers for the Tim Events API.
package controllers

import (
	"net/http"

	h "timevents/internal/delivery/http/helpers"
	"timevents/internal/delivery/http/middleware"
	"timevents/internal/domain"
)

// currentUser returns the user set by RequireAuth, writing a 401 when absent.
func currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "Not authenticated")
		return nil, false
	}
	return user, true
}
