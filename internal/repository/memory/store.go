// Package memory provides in-memory implementations of the domain repositories
// for tests and lightweight deployments. Data is lost when the process exits.
//
// The repositories share one Store so that references between entities behave
// like the Postgres schema: dangling references are rejected on write and
// deleting a user or event leaves its dependents with an empty owner.
package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"timevents/internal/domain"
)

// Store holds every entity behind a single lock.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*domain.User
	events   map[string]*domain.Event
	speakers map[string]*domain.Speaker
	venues   map[string]*domain.Venue
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]*domain.User),
		events:   make(map[string]*domain.Event),
		speakers: make(map[string]*domain.Speaker),
		venues:   make(map[string]*domain.Venue),
	}
}

func newID() string {
	return uuid.NewString()
}

// page sorts items with less and returns the requested window.
func page[T any](items []T, p domain.PaginationParams, less func(a, b T) int) []T {
	slices.SortFunc(items, less)
	start, end := p.Window(len(items))
	out := make([]T, 0, end-start)
	return append(out, items[start:end]...)
}

func compareByTime(aTime, bTime time.Time, aID, bID string) int {
	if c := aTime.Compare(bTime); c != 0 {
		return c
	}
	if aID < bID {
		return -1
	}
	if aID > bID {
		return 1
	}
	return 0
}
