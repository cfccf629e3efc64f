package memory

import (
	"context"
	"strings"

	"timevents/internal/domain"
)

type venueRepository struct {
	store *Store
}

// NewVenueRepository returns a VenueRepository backed by store.
func NewVenueRepository(store *Store) domain.VenueRepository {
	return &venueRepository{store: store}
}

func (r *venueRepository) Create(_ context.Context, v *domain.Venue) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	v.ID = newID()
	cp := *v
	s.venues[v.ID] = &cp
	return nil
}

func (r *venueRepository) GetByID(_ context.Context, id string) (*domain.Venue, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.venues[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *venueRepository) List(_ context.Context, p domain.PaginationParams) ([]*domain.Venue, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	venues := make([]*domain.Venue, 0, len(s.venues))
	for _, v := range s.venues {
		cp := *v
		venues = append(venues, &cp)
	}
	return page(venues, p, func(a, b *domain.Venue) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	}), nil
}

func (r *venueRepository) Update(_ context.Context, v *domain.Venue) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.venues[v.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *v
	s.venues[v.ID] = &cp
	return nil
}

func (r *venueRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.venues[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.venues, id)
	return nil
}
