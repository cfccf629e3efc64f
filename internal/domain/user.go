package domain

import (
	"context"
	"time"
)

// User represents a registered account. HashedPassword is never serialized.
// swagger:model User
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	HashedPassword string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	IsOrganizer    bool      `json:"is_organizer"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	// Events is only populated on the caller's own profile.
	Events         []*Event  `json:"events,omitempty"`
}

// NewUser returns an active organizer account. ID is set by the repository on create.
func NewUser(username, email, firstName, lastName, hashedPassword string, createdAt, updatedAt time.Time) *User {
	return &User{
		Username:       username,
		Email:          email,
		FirstName:      firstName,
		LastName:       lastName,
		HashedPassword: hashedPassword,
		IsActive:       true,
		IsOrganizer:    true,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}

// UserInput is the replacement payload for a profile update.
type UserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// Apply overwrites every profile field with the values in in.
// Role flags and the password hash are not part of the profile.
func (u *User) Apply(in UserInput, now time.Time) {
	u.Username = in.Username
	u.Email = in.Email
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.UpdatedAt = now
}

// RegisterInput carries the fields accepted on sign-up.
type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// PasswordHasher hashes and verifies passwords with a slow salted algorithm.
// Verify reports false for malformed hashes instead of failing.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer issues signed bearer tokens for a subject (the username).
// A non-positive ttl selects the issuer's fallback lifetime.
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
}

// TokenVerifier validates a bearer token and returns its subject.
// Failures are ErrInvalidToken or ErrTokenExpired.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, page PaginationParams) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
}

// AuthService covers registration, login and bearer-token resolution.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
	Login(ctx context.Context, username, password string) (token string, err error)
	Resolve(ctx context.Context, token string) (*User, error)
}

// UserService defines the business logic for user profiles.
type UserService interface {
	Me(ctx context.Context, actor *User) (*User, error)
	GetByID(ctx context.Context, actor *User, id string) (*User, error)
	List(ctx context.Context, actor *User, page PaginationParams) ([]*User, error)
	Update(ctx context.Context, actor *User, in UserInput) (*User, error)
	Delete(ctx context.Context, actor *User) error
}
