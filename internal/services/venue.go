package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"timevents/internal/domain"
)

type venueService struct {
	venueRepo      domain.VenueRepository
	contextTimeout time.Duration
}

func NewVenueService(venueRepo domain.VenueRepository, timeout time.Duration) domain.VenueService {
	return &venueService{
		venueRepo:      venueRepo,
		contextTimeout: timeoutOrDefault(timeout),
	}
}

func validateVenueInput(in *domain.VenueInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalidInput("name is required")
	}
	if in.Capacity < 0 {
		return invalidInput("capacity must not be negative")
	}
	if in.Capacity > domain.MaxVenueCapacity {
		return invalidInput("capacity must be at most %d", domain.MaxVenueCapacity)
	}
	return nil
}

func (s *venueService) Create(ctx context.Context, in domain.VenueInput) (*domain.Venue, error) {
	if err := validateVenueInput(&in); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := time.Now()
	venue := domain.NewVenue(in, now, now)
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) Get(ctx context.Context, id string) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) List(ctx context.Context, page domain.PaginationParams) ([]*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	venues, err := s.venueRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return venues, nil
}

func (s *venueService) Update(ctx context.Context, id string, in domain.VenueInput) (*domain.Venue, error) {
	if err := validateVenueInput(&in); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	venue.Apply(in, time.Now())
	if err := s.venueRepo.Update(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.venueRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}
	return nil
}
