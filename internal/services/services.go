// Package services holds the business logic behind the HTTP controllers.
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"timevents/internal/domain"
)

// DefaultContextTimeout bounds repository calls when no timeout is configured.
const DefaultContextTimeout = 5 * time.Second

var validate = validator.New(validator.WithRequiredStructEnabled())

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultContextTimeout
	}
	return d
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Var(email, "required,email"); err != nil {
		return "", invalidInput("invalid email format")
	}
	return email, nil
}
