package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"timevents/internal/domain"
)

// AdminAccount describes the administrator ensured at startup.
type AdminAccount struct {
	Username string
	Email    string
	Password string
}

// ErrAdminUsernameTaken is returned when ADMIN_USERNAME belongs to an account
// registered with a different email.
var ErrAdminUsernameTaken = fmt.Errorf("%w: admin username is held by another account", domain.ErrConflict)

// EnsureAdmin creates the admin account, or promotes and reactivates an
// existing user with the same username and email. The password of an
// existing user is left unchanged. A user holding the username under another
// email is never promoted.
func EnsureAdmin(ctx context.Context, userRepo domain.UserRepository, hasher domain.PasswordHasher, acct AdminAccount, logger *slog.Logger) error {
	if acct.Username == "" {
		return nil
	}
	email, err := normalizeEmail(acct.Email)
	if err != nil {
		return fmt.Errorf("admin email: %w", err)
	}

	existing, err := userRepo.GetByUsername(ctx, acct.Username)
	switch {
	case err == nil:
		if !strings.EqualFold(existing.Email, email) {
			logger.ErrorContext(ctx, "admin username is registered with another email", "username", acct.Username)
			return ErrAdminUsernameTaken
		}
		if existing.IsAdmin && existing.IsActive {
			return nil
		}
		existing.IsAdmin = true
		existing.IsActive = true
		existing.UpdatedAt = time.Now()
		if err := userRepo.Update(ctx, existing); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		logger.InfoContext(ctx, "promoted existing user to admin", "username", acct.Username)
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("look up admin: %w", err)
	}

	if acct.Password == "" {
		return invalidInput("admin password is required")
	}
	hash, err := hasher.Hash(acct.Password)
	if err != nil {
		return err
	}
	now := time.Now()
	admin := domain.NewUser(acct.Username, email, "", "", hash, now, now)
	admin.IsAdmin = true
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	logger.InfoContext(ctx, "created admin user", "username", acct.Username)
	return nil
}
