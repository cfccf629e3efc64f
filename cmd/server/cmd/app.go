package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"timevents/config"
	_ "timevents/docs"
	"timevents/internal/adapters/auth"
	"timevents/internal/adapters/email"
	httpdelivery "timevents/internal/delivery/http"
	"timevents/internal/delivery/http/controllers"
	"timevents/internal/delivery/http/middleware"
	"timevents/internal/domain"
	"timevents/internal/repository/memory"
	"timevents/internal/repository/postgres"
	"timevents/internal/services"
)

// app holds the wired HTTP handler and the resources it owns.
type app struct {
	handler http.Handler
	db      *sql.DB
	limiter *middleware.LoginLimiter
}

type repositories struct {
	users    domain.UserRepository
	events   domain.EventRepository
	speakers domain.SpeakerRepository
	venues   domain.VenueRepository
}

// newApp builds storage, services and the router from cfg.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrate bool) (*app, error) {
	a := &app{}
	var repos repositories
	switch cfg.Storage {
	case "memory":
		logger.Warn("using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		repos = repositories{
			users:    memory.NewUserRepository(store),
			events:   memory.NewEventRepository(store),
			speakers: memory.NewSpeakerRepository(store),
			venues:   memory.NewVenueRepository(store),
		}
	default:
		if migrate {
			if err := postgres.MigrateUp(cfg.DBUrl); err != nil {
				return nil, err
			}
			logger.Info("migrations applied")
		}
		db, err := postgres.Open(ctx, cfg.DBUrl, cfg.DBMaxOpenConns)
		if err != nil {
			return nil, err
		}
		a.db = db
		repos = repositories{
			users:    postgres.NewUserRepository(db),
			events:   postgres.NewEventRepository(db),
			speakers: postgres.NewSpeakerRepository(db),
			venues:   postgres.NewVenueRepository(db),
		}
	}

	if err := a.wire(ctx, cfg, logger, repos); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(ctx context.Context, cfg *config.Config, logger *slog.Logger, repos repositories) error {
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokenCfg := &auth.TokenConfig{Secret: cfg.Auth.SecretKey, Algorithm: cfg.Auth.Algorithm}
	issuer, err := auth.NewJWTIssuer(tokenCfg)
	if err != nil {
		return fmt.Errorf("token issuer: %w", err)
	}
	verifier, err := auth.NewJWTVerifier(tokenCfg)
	if err != nil {
		return fmt.Errorf("token verifier: %w", err)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mail.AWSRegion,
			AccessKeyID:     cfg.Mail.AWSAccessKeyID,
			SecretAccessKey: cfg.Mail.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	if err := services.EnsureAdmin(ctx, repos.users, hasher, services.AdminAccount{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}, logger); err != nil {
		return fmt.Errorf("admin bootstrap: %w", err)
	}

	timeout := cfg.Server.RequestTimeout
	authService, err := services.NewAuthService(repos.users, hasher, issuer, verifier, emailService, cfg.Auth.TokenTTL, timeout, logger)
	if err != nil {
		return err
	}

	var pinger controllers.Pinger
	if a.db != nil {
		pinger = a.db
	}
	a.limiter = middleware.NewLoginLimiter(cfg.Auth.LoginLimit, cfg.Auth.LoginWindow)
	a.handler = httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Resolver:       authService,
		LoginLimiter:   a.limiter,
		Auth:           controllers.NewAuthController(logger, authService),
		Users:          controllers.NewUserController(logger, services.NewUserService(repos.users, repos.events, timeout)),
		Events:         controllers.NewEventController(logger, services.NewEventService(repos.events, timeout)),
		Speakers:       controllers.NewSpeakerController(logger, services.NewSpeakerService(repos.speakers, repos.events, timeout)),
		Venues:         controllers.NewVenueController(logger, services.NewVenueService(repos.venues, timeout)),
		Health:         controllers.NewHealthController(logger, pinger),
	})
	return nil
}

// Close releases the database pool and stops background work.
func (a *app) Close() {
	a.limiter.Stop()
	if a.db != nil {
		_ = a.db.Close()
	}
}
