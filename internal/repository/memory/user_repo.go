package memory

import (
	"context"

	"timevents/internal/domain"
)

type userRepository struct {
	store *Store
}

// NewUserRepository returns a UserRepository backed by store.
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(_ context.Context, u *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUserUnique(u, ""); err != nil {
		return err
	}
	u.ID = newID()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *userRepository) find(match func(*domain.User) bool) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepository) List(_ context.Context, p domain.PaginationParams) ([]*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		users = append(users, &cp)
	}
	return page(users, p, func(a, b *domain.User) int {
		return compareByTime(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	}), nil
}

func (r *userRepository) Update(_ context.Context, u *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := s.checkUserUnique(u, u.ID); err != nil {
		return err
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

// Delete removes the user and clears the organizer of their events.
func (r *userRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.users, id)
	for _, e := range s.events {
		if e.OrganizerID == id {
			e.OrganizerID = ""
		}
	}
	return nil
}

// checkUserUnique must be called with the write lock held.
func (s *Store) checkUserUnique(u *domain.User, selfID string) error {
	for id, other := range s.users {
		if id == selfID {
			continue
		}
		if other.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
		if other.Username == u.Username {
			return domain.ErrDuplicateUsername
		}
	}
	return nil
}
