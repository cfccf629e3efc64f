package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services and controllers. Match with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials is the single negative outcome of a login attempt.
	// It is returned for unknown usernames and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned by the session resolver for any rejected token.
	ErrUnauthorized = errors.New("unauthorized")

	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Conflict variants for user registration and profile updates.
var (
	ErrDuplicateEmail    = fmt.Errorf("%w: User with this Email Exists", ErrConflict)
	ErrDuplicateUsername = fmt.Errorf("%w: User with that Username already exists", ErrConflict)
)
