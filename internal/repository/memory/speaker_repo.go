package memory

import (
	"context"

	"timevents/internal/domain"
)

type speakerRepository struct {
	store *Store
}

// NewSpeakerRepository returns a SpeakerRepository backed by store.
func NewSpeakerRepository(store *Store) domain.SpeakerRepository {
	return &speakerRepository{store: store}
}

func (r *speakerRepository) Create(_ context.Context, sp *domain.Speaker) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEvent(sp.EventID); err != nil {
		return err
	}
	sp.ID = newID()
	cp := *sp
	s.speakers[sp.ID] = &cp
	return nil
}

func (r *speakerRepository) GetByID(_ context.Context, id string) (*domain.Speaker, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	sp, ok := s.speakers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sp
	return &cp, nil
}

func (r *speakerRepository) ListByEventID(_ context.Context, eventID string, p domain.PaginationParams) ([]*domain.Speaker, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.speakersOf(eventID, p), nil
}

func (r *speakerRepository) ListByOrganizerID(_ context.Context, organizerID string, p domain.PaginationParams) ([]*domain.Speaker, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	speakers := make([]*domain.Speaker, 0)
	for _, sp := range s.speakers {
		e, ok := s.events[sp.EventID]
		if !ok || organizerID == "" || e.OrganizerID != organizerID {
			continue
		}
		cp := *sp
		speakers = append(speakers, &cp)
	}
	return page(speakers, p, compareSpeakers), nil
}

func (r *speakerRepository) Update(_ context.Context, sp *domain.Speaker) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.speakers[sp.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := s.checkEvent(sp.EventID); err != nil {
		return err
	}
	cp := *sp
	s.speakers[sp.ID] = &cp
	return nil
}

func (r *speakerRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.speakers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.speakers, id)
	return nil
}

// speakersOf must be called with the lock held.
func (s *Store) speakersOf(eventID string, p domain.PaginationParams) []*domain.Speaker {
	speakers := make([]*domain.Speaker, 0)
	for _, sp := range s.speakers {
		if eventID != "" && sp.EventID == eventID {
			cp := *sp
			speakers = append(speakers, &cp)
		}
	}
	return page(speakers, p, compareSpeakers)
}

func (s *Store) checkEvent(id string) error {
	if id == "" {
		return nil
	}
	if _, ok := s.events[id]; !ok {
		return domain.ErrNotFound
	}
	return nil
}

func compareSpeakers(a, b *domain.Speaker) int {
	return compareByTime(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
}
