package helpers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"timevents/internal/domain"
)

// WriteServiceError maps a service error onto the matching HTTP status and
// error code. Unexpected errors are logged and reported as 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Could not validate credentials")
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, "not allowed to modify this resource")
	case errors.Is(err, domain.ErrConflict):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeConflict, sentinelDetail(err, domain.ErrConflict))
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, sentinelDetail(err, domain.ErrInvalidInput))
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}

// sentinelDetail returns the text following "<sentinel>: " in a wrapped
// error message, dropping any outer context.
func sentinelDetail(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
