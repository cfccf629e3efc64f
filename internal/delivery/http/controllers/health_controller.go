package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	h "timevents/internal/delivery/http/helpers"
)

// Pinger reports whether a backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthStatus is the data payload of the health endpoints.
type HealthStatus struct {
	Status string `json:"status"`
}

// HealthController serves liveness, readiness and the welcome page.
type HealthController struct {
	Logger *slog.Logger
	DB     Pinger
}

// NewHealthController creates a HealthController. db may be nil when no database is used.
func NewHealthController(logger *slog.Logger, db Pinger) *HealthController {
	return &HealthController{Logger: logger, DB: db}
}

// Welcome godoc
// @Summary Welcome
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router / [get]
func (c *HealthController) Welcome(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "Welcome to the app"})
}

// Live godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /healthz [get]
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONSuccess(w, http.StatusOK, HealthStatus{Status: "ok"})
}

// Ready godoc
// @Summary Readiness probe
// @Description Pings the database when one is configured.
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /readyz [get]
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	if c.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := c.DB.PingContext(ctx); err != nil {
			c.Logger.WarnContext(r.Context(), "readiness check failed", "err", err)
			h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeUnavailable, "database unreachable")
			return
		}
	}
	h.WriteJSONSuccess(w, http.StatusOK, HealthStatus{Status: "ready"})
}
