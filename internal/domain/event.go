package domain

import (
	"context"
	"time"
)

// Event represents an event organized by a user.
// OrganizerID is empty once the organizing user has been deleted.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	OrganizerID string     `json:"organizer_id"`
	Speakers    []*Speaker `json:"speakers"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EventInput is the full payload for creating or replacing an event.
type EventInput struct {
	Name        string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
}

// NewEvent returns a new Event owned by organizerID. ID is typically set by the repository on create.
func NewEvent(in EventInput, organizerID string, createdAt, updatedAt time.Time) *Event {
	e := &Event{
		OrganizerID: organizerID,
		Speakers:    []*Speaker{},
		CreatedAt:   createdAt,
	}
	e.Apply(in, updatedAt)
	return e
}

// Apply overwrites every editable field with the values in in.
func (e *Event) Apply(in EventInput, now time.Time) {
	e.Name = in.Name
	e.Description = in.Description
	e.Location = in.Location
	e.StartTime = in.StartTime
	e.EndTime = in.EndTime
	e.UpdatedAt = now
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOrganizerID(ctx context.Context, organizerID string, page PaginationParams) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for events. Mutations check ownership.
type EventService interface {
	Create(ctx context.Context, actor *User, in EventInput) (*Event, error)
	Get(ctx context.Context, id string) (*Event, error)
	ListMine(ctx context.Context, actor *User, page PaginationParams) ([]*Event, error)
	Update(ctx context.Context, actor *User, id string, in EventInput) (*Event, error)
	Delete(ctx context.Context, actor *User, id string) error
}
