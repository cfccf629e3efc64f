package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "timevents/internal/delivery/http/helpers"
	"timevents/internal/domain"
	"timevents/internal/metrics"
)

type contextKey string

const userKey contextKey = "user"

// SessionResolver maps a bearer token to the user it was issued for.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// SetUser returns a context carrying the authenticated user. Used by auth middleware.
func SetUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user from the context, if present.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok && user != nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAuth returns a wrapper that resolves the Bearer token to an active user and sets it in the request context.
// If the token is missing or rejected, it responds with 401 and does not call next.
func RequireAuth(resolver SessionResolver, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				metrics.TokenRejections.WithLabelValues(metrics.TokenMissing).Inc()
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "Not authenticated")
				return
			}
			user, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					logger.ErrorContext(r.Context(), "resolve session", "path", r.URL.Path, "err", err)
					h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "internal server error")
					return
				}
				reason := rejectionReason(err)
				metrics.TokenRejections.WithLabelValues(reason).Inc()
				logger.DebugContext(r.Context(), "token rejected", "reason", reason, "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "Could not validate credentials")
				return
			}
			next(w, r.WithContext(SetUser(r.Context(), user)))
		}
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return metrics.TokenExpired
	case errors.Is(err, domain.ErrInvalidToken):
		return metrics.TokenInvalid
	default:
		return metrics.TokenUser
	}
}
