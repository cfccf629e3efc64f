package domain

import (
	"context"
	"time"
)

// Speaker represents a speaker at an event.
// swagger:model Speaker
type Speaker struct {
	ID             string    `json:"id"`
	EventID        string    `json:"event_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profile_picture"`
	ContactInfo    string    `json:"contact_info"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SpeakerInput is the full payload for creating or replacing a speaker.
type SpeakerInput struct {
	EventID        string
	FirstName      string
	LastName       string
	Bio            string
	ProfilePicture string
	ContactInfo    string
}

// NewSpeaker returns a new Speaker with the given fields. ID is typically set by the repository on create.
func NewSpeaker(in SpeakerInput, createdAt, updatedAt time.Time) *Speaker {
	s := &Speaker{CreatedAt: createdAt}
	s.Apply(in, updatedAt)
	return s
}

// Apply overwrites every editable field with the values in in.
func (s *Speaker) Apply(in SpeakerInput, now time.Time) {
	s.EventID = in.EventID
	s.FirstName = in.FirstName
	s.LastName = in.LastName
	s.Bio = in.Bio
	s.ProfilePicture = in.ProfilePicture
	s.ContactInfo = in.ContactInfo
	s.UpdatedAt = now
}

// SpeakerRepository defines the interface for speaker storage
type SpeakerRepository interface {
	Create(ctx context.Context, speaker *Speaker) error
	GetByID(ctx context.Context, id string) (*Speaker, error)
	ListByEventID(ctx context.Context, eventID string, page PaginationParams) ([]*Speaker, error)
	ListByOrganizerID(ctx context.Context, organizerID string, page PaginationParams) ([]*Speaker, error)
	Update(ctx context.Context, speaker *Speaker) error
	Delete(ctx context.Context, id string) error
}

// SpeakerService defines the business logic for speakers. Mutations require
// the caller to be allowed to mutate the speaker's event.
type SpeakerService interface {
	Create(ctx context.Context, actor *User, in SpeakerInput) (*Speaker, error)
	Get(ctx context.Context, id string) (*Speaker, error)
	List(ctx context.Context, actor *User, eventID string, page PaginationParams) ([]*Speaker, error)
	Update(ctx context.Context, actor *User, id string, in SpeakerInput) (*Speaker, error)
	Delete(ctx context.Context, actor *User, id string) error
}
