package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"timevents/internal/domain"
)

const speakerColumns = `id, event_id, first_name, last_name, bio, profile_picture, contact_info, created_at, updated_at`

type speakerRepository struct {
	DB *sql.DB
}

func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{DB: db}
}

func (r *speakerRepository) Create(ctx context.Context, s *domain.Speaker) error {
	query := `
		INSERT INTO speakers (event_id, first_name, last_name, bio, profile_picture, contact_info, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		nullString(s.EventID), s.FirstName, s.LastName, s.Bio, s.ProfilePicture, s.ContactInfo,
		s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("create speaker: %w", mapError(err))
	}
	return nil
}

func (r *speakerRepository) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers WHERE id = $1`
	s, err := scanSpeaker(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

func (r *speakerRepository) ListByEventID(ctx context.Context, eventID string, page domain.PaginationParams) ([]*domain.Speaker, error) {
	query := `
		SELECT ` + speakerColumns + `
		FROM speakers
		WHERE event_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, eventID, limitArg(page), page.Offset())
}

// ListByOrganizerID returns the speakers of every event organized by organizerID.
func (r *speakerRepository) ListByOrganizerID(ctx context.Context, organizerID string, page domain.PaginationParams) ([]*domain.Speaker, error) {
	query := `
		SELECT s.id, s.event_id, s.first_name, s.last_name, s.bio, s.profile_picture, s.contact_info, s.created_at, s.updated_at
		FROM speakers s
		JOIN events e ON e.id = s.event_id
		WHERE e.organizer_id = $1
		ORDER BY s.created_at, s.id
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, organizerID, limitArg(page), page.Offset())
}

func (r *speakerRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Speaker, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	speakers := make([]*domain.Speaker, 0)
	for rows.Next() {
		s, err := scanSpeaker(rows)
		if err != nil {
			return nil, err
		}
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}

func (r *speakerRepository) Update(ctx context.Context, s *domain.Speaker) error {
	query := `
		UPDATE speakers
		SET event_id = $1, first_name = $2, last_name = $3, bio = $4, profile_picture = $5,
		    contact_info = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := r.DB.ExecContext(ctx, query,
		nullString(s.EventID), s.FirstName, s.LastName, s.Bio, s.ProfilePicture,
		s.ContactInfo, s.UpdatedAt, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update speaker: %w", mapError(err))
	}
	return checkAffected(result)
}

func (r *speakerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM speakers WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}

func scanSpeaker(row rowScanner) (*domain.Speaker, error) {
	s := &domain.Speaker{}
	var eventID sql.NullString
	err := row.Scan(
		&s.ID, &eventID, &s.FirstName, &s.LastName, &s.Bio, &s.ProfilePicture, &s.ContactInfo,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.EventID = eventID.String
	return s, nil
}
