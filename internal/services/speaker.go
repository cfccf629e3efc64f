package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"timevents/internal/domain"
)

type speakerService struct {
	speakerRepo    domain.SpeakerRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewSpeakerService creates a SpeakerService. Speakers are authorized through
// the event they belong to, so the service needs the event repository too.
func NewSpeakerService(speakerRepo domain.SpeakerRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.SpeakerService {
	return &speakerService{
		speakerRepo:    speakerRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeoutOrDefault(timeout),
	}
}

func validateSpeakerInput(in *domain.SpeakerInput) error {
	in.EventID = strings.TrimSpace(in.EventID)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.EventID == "" {
		return invalidInput("event_id is required")
	}
	if in.FirstName == "" || in.LastName == "" {
		return invalidInput("first_name and last_name are required")
	}
	return nil
}

// authorizeEvent checks that actor may mutate the event with the given id.
// A speaker without an event can only be changed by an admin.
func (s *speakerService) authorizeEvent(ctx context.Context, actor *domain.User, eventID string) error {
	if eventID == "" {
		if !domain.CanMutate(actor, "") {
			return domain.ErrForbidden
		}
		return nil
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if !domain.CanMutate(actor, event.OrganizerID) {
		return domain.ErrForbidden
	}
	return nil
}

func (s *speakerService) Create(ctx context.Context, actor *domain.User, in domain.SpeakerInput) (*domain.Speaker, error) {
	if err := validateSpeakerInput(&in); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.authorizeEvent(ctx, actor, in.EventID); err != nil {
		return nil, err
	}
	now := time.Now()
	speaker := domain.NewSpeaker(in, now, now)
	if err := s.speakerRepo.Create(ctx, speaker); err != nil {
		return nil, fmt.Errorf("failed to create speaker: %w", err)
	}
	return speaker, nil
}

func (s *speakerService) Get(ctx context.Context, id string) (*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	speaker, err := s.speakerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get speaker: %w", err)
	}
	return speaker, nil
}

// List returns the speakers of eventID, or of every event organized by actor
// when eventID is empty.
func (s *speakerService) List(ctx context.Context, actor *domain.User, eventID string, page domain.PaginationParams) ([]*domain.Speaker, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if eventID == "" {
		speakers, err := s.speakerRepo.ListByOrganizerID(ctx, actor.ID, page)
		if err != nil {
			return nil, fmt.Errorf("failed to list speakers: %w", err)
		}
		return speakers, nil
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	speakers, err := s.speakerRepo.ListByEventID(ctx, eventID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list speakers: %w", err)
	}
	return speakers, nil
}

// Update replaces every editable field. Moving a speaker requires permission
// on both the current and the target event.
func (s *speakerService) Update(ctx context.Context, actor *domain.User, id string, in domain.SpeakerInput) (*domain.Speaker, error) {
	if err := validateSpeakerInput(&in); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	speaker, err := s.speakerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get speaker: %w", err)
	}
	if err := s.authorizeEvent(ctx, actor, speaker.EventID); err != nil {
		return nil, err
	}
	if in.EventID != speaker.EventID {
		if err := s.authorizeEvent(ctx, actor, in.EventID); err != nil {
			return nil, err
		}
	}
	speaker.Apply(in, time.Now())
	if err := s.speakerRepo.Update(ctx, speaker); err != nil {
		return nil, fmt.Errorf("failed to update speaker: %w", err)
	}
	return speaker, nil
}

func (s *speakerService) Delete(ctx context.Context, actor *domain.User, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	speaker, err := s.speakerRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get speaker: %w", err)
	}
	if err := s.authorizeEvent(ctx, actor, speaker.EventID); err != nil {
		return err
	}
	if err := s.speakerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete speaker: %w", err)
	}
	return nil
}
