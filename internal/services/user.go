package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"timevents/internal/domain"
)

type userService struct {
	userRepo       domain.UserRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewUserService creates a UserService backed by userRepo. eventRepo supplies
// the events listed on the caller's own profile.
func NewUserService(userRepo domain.UserRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeoutOrDefault(timeout),
	}
}

// Me returns a copy of actor with the events they organize.
func (s *userService) Me(ctx context.Context, actor *domain.User) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOrganizerID(ctx, actor.ID, domain.PaginationParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to list user events: %w", err)
	}
	me := *actor
	me.Events = events
	return &me, nil
}

// GetByID returns the user with the given id. Only the user themself or an
// admin may read a profile.
func (s *userService) GetByID(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	if !domain.CanMutate(actor, id) {
		return nil, domain.ErrForbidden
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// List returns all users. Admin only.
func (s *userService) List(ctx context.Context, actor *domain.User, page domain.PaginationParams) ([]*domain.User, error) {
	if actor == nil || !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	users, err := s.userRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update replaces the actor's profile fields.
func (s *userService) Update(ctx context.Context, actor *domain.User, in domain.UserInput) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.Username == "" {
		return nil, invalidInput("username is required")
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	in.Email = email

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.Apply(in, time.Now())
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes the actor's own account. Their events are kept without an organizer.
func (s *userService) Delete(ctx context.Context, actor *domain.User) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.userRepo.Delete(ctx, actor.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
