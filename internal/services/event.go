package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"timevents/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeoutOrDefault(timeout),
	}
}

func validateEventInput(in *domain.EventInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalidInput("name is required")
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return invalidInput("start_time and end_time are required")
	}
	if in.EndTime.Before(in.StartTime) {
		return invalidInput("end_time must not be before start_time")
	}
	return nil
}

// Create stores a new event organized by actor.
func (s *eventService) Create(ctx context.Context, actor *domain.User, in domain.EventInput) (*domain.Event, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := validateEventInput(&in); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := time.Now()
	event := domain.NewEvent(in, actor.ID, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// ListMine returns the events organized by actor.
func (s *eventService) ListMine(ctx context.Context, actor *domain.User, page domain.PaginationParams) ([]*domain.Event, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOrganizerID(ctx, actor.ID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// Update replaces every editable field of the event. Only its organizer or an admin may do so.
func (s *eventService) Update(ctx context.Context, actor *domain.User, id string, in domain.EventInput) (*domain.Event, error) {
	if err := validateEventInput(&in); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if !domain.CanMutate(actor, event.OrganizerID) {
		return nil, domain.ErrForbidden
	}
	event.Apply(in, time.Now())
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

// Delete removes the event. Only its organizer or an admin may do so.
func (s *eventService) Delete(ctx context.Context, actor *domain.User, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if !domain.CanMutate(actor, event.OrganizerID) {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
