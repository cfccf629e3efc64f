package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"timevents/internal/delivery/http/controllers"
	"timevents/internal/delivery/http/middleware"
	"timevents/internal/metrics"
)

// RouterDeps collects everything NewRouter wires together.
type RouterDeps struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	Resolver       middleware.SessionResolver
	LoginLimiter   *middleware.LoginLimiter

	Auth     *controllers.AuthController
	Users    *controllers.UserController
	Events   *controllers.EventController
	Speakers *controllers.SpeakerController
	Venues   *controllers.VenueController
	Health   *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes and
// wraps it in the request id, logging, CORS and metrics middleware.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(d.Resolver, d.Logger)

	// Public
	mux.HandleFunc("GET /{$}", d.Health.Welcome)
	mux.HandleFunc("GET /healthz", d.Health.Live)
	mux.HandleFunc("GET /readyz", d.Health.Ready)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("POST /token", d.LoginLimiter.Wrap(d.Auth.Token))
	mux.HandleFunc("POST /users", d.Auth.Register)

	// Users
	mux.HandleFunc("GET /users", auth(d.Users.List))
	mux.HandleFunc("GET /users/me", auth(d.Users.GetMe))
	mux.HandleFunc("PUT /users/me", auth(d.Users.UpdateMe))
	mux.HandleFunc("DELETE /users/me", auth(d.Users.DeleteMe))
	mux.HandleFunc("GET /users/{userID}", auth(d.Users.GetByID))

	// Events
	mux.HandleFunc("POST /users/me/events", auth(d.Events.Create))
	mux.HandleFunc("GET /users/me/events", auth(d.Events.List))
	mux.HandleFunc("GET /users/me/events/{eventID}", auth(d.Events.Get))
	mux.HandleFunc("PUT /users/me/events/{eventID}", auth(d.Events.Update))
	mux.HandleFunc("DELETE /users/me/events/{eventID}", auth(d.Events.Delete))

	// Speakers
	mux.HandleFunc("POST /users/me/speakers", auth(d.Speakers.Create))
	mux.HandleFunc("GET /users/me/speakers", auth(d.Speakers.List))
	mux.HandleFunc("GET /users/me/speakers/{speakerID}", auth(d.Speakers.Get))
	mux.HandleFunc("PUT /users/me/speakers/{speakerID}", auth(d.Speakers.Update))
	mux.HandleFunc("DELETE /users/me/speakers/{speakerID}", auth(d.Speakers.Delete))

	// Venues
	mux.HandleFunc("POST /venues", auth(d.Venues.Create))
	mux.HandleFunc("GET /venues", auth(d.Venues.List))
	mux.HandleFunc("GET /venues/{venueID}", auth(d.Venues.Get))
	mux.HandleFunc("PUT /venues/{venueID}", auth(d.Venues.Update))
	mux.HandleFunc("DELETE /venues/{venueID}", auth(d.Venues.Delete))

	// Swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = metrics.HTTPMiddleware(mux)
	handler = middleware.CORS(d.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(d.Logger, handler)
	return middleware.RequestID(handler)
}
