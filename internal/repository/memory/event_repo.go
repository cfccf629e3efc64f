package memory

import (
	"context"

	"timevents/internal/domain"
)

type eventRepository struct {
	store *Store
}

// NewEventRepository returns an EventRepository backed by store.
func NewEventRepository(store *Store) domain.EventRepository {
	return &eventRepository{store: store}
}

func (r *eventRepository) Create(_ context.Context, e *domain.Event) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOrganizer(e.OrganizerID); err != nil {
		return err
	}
	e.ID = newID()
	if e.Speakers == nil {
		e.Speakers = []*domain.Speaker{}
	}
	s.events[e.ID] = copyEvent(e)
	return nil
}

// GetByID returns the event together with its speakers.
func (r *eventRepository) GetByID(_ context.Context, id string) (*domain.Event, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copyEvent(e)
	out.Speakers = s.speakersOf(id, domain.PaginationParams{})
	return out, nil
}

func (r *eventRepository) ListByOrganizerID(_ context.Context, organizerID string, p domain.PaginationParams) ([]*domain.Event, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]*domain.Event, 0)
	for _, e := range s.events {
		if organizerID != "" && e.OrganizerID == organizerID {
			events = append(events, copyEvent(e))
		}
	}
	return page(events, p, func(a, b *domain.Event) int {
		return compareByTime(a.StartTime, b.StartTime, a.ID, b.ID)
	}), nil
}

func (r *eventRepository) Update(_ context.Context, e *domain.Event) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[e.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := s.checkOrganizer(e.OrganizerID); err != nil {
		return err
	}
	s.events[e.ID] = copyEvent(e)
	return nil
}

// Delete removes the event and detaches its speakers.
func (r *eventRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.events, id)
	for _, sp := range s.speakers {
		if sp.EventID == id {
			sp.EventID = ""
		}
	}
	return nil
}

func (s *Store) checkOrganizer(id string) error {
	if id == "" {
		return nil
	}
	if _, ok := s.users[id]; !ok {
		return domain.ErrNotFound
	}
	return nil
}

// copyEvent drops the speaker list; stored events never carry speakers.
func copyEvent(e *domain.Event) *domain.Event {
	cp := *e
	cp.Speakers = []*domain.Speaker{}
	return &cp
}
