package domain

import (
	"context"
	"math"
	"time"
)

// MaxVenueCapacity is the largest capacity the venues.capacity column can hold.
const MaxVenueCapacity = math.MaxInt32

// Venue is a place events can be held. Venues have no owner.
// swagger:model Venue
type Venue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VenueInput is the full payload for creating or replacing a venue.
type VenueInput struct {
	Name        string
	Location    string
	Capacity    int
	Description string
}

// NewVenue returns a new Venue with the given fields. ID is typically set by the repository on create.
func NewVenue(in VenueInput, createdAt, updatedAt time.Time) *Venue {
	v := &Venue{CreatedAt: createdAt}
	v.Apply(in, updatedAt)
	return v
}

// Apply overwrites every editable field with the values in in.
func (v *Venue) Apply(in VenueInput, now time.Time) {
	v.Name = in.Name
	v.Location = in.Location
	v.Capacity = in.Capacity
	v.Description = in.Description
	v.UpdatedAt = now
}

// VenueRepository defines the interface for venue storage
type VenueRepository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context, page PaginationParams) ([]*Venue, error)
	Update(ctx context.Context, venue *Venue) error
	Delete(ctx context.Context, id string) error
}

// VenueService defines the business logic for venues.
// Any authenticated user may mutate any venue.
type VenueService interface {
	Create(ctx context.Context, in VenueInput) (*Venue, error)
	Get(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context, page PaginationParams) ([]*Venue, error)
	Update(ctx context.Context, id string, in VenueInput) (*Venue, error)
	Delete(ctx context.Context, id string) error
}
