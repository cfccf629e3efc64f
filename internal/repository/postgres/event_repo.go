package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"timevents/internal/domain"
)

const eventColumns = `id, name, description, location, start_time, end_time, organizer_id, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, location, start_time, end_time, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Name, e.Description, e.Location, e.StartTime, e.EndTime,
		nullString(e.OrganizerID), e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("create event: %w", mapError(err))
	}
	if e.Speakers == nil {
		e.Speakers = []*domain.Speaker{}
	}
	return nil
}

// GetByID returns the event together with its speakers.
func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+speakerColumns+`
		FROM speakers
		WHERE event_id = $1
		ORDER BY created_at, id
	`, e.ID)
	if err != nil {
		return nil, fmt.Errorf("list event speakers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanSpeaker(rows)
		if err != nil {
			return nil, err
		}
		e.Speakers = append(e.Speakers, s)
	}
	return e, rows.Err()
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string, page domain.PaginationParams) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE organizer_id = $1
		ORDER BY start_time, id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, organizerID, limitArg(page), page.Offset())
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $1, description = $2, location = $3, start_time = $4, end_time = $5,
		    organizer_id = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.Name, e.Description, e.Location, e.StartTime, e.EndTime,
		nullString(e.OrganizerID), e.UpdatedAt, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", mapError(err))
	}
	return checkAffected(result)
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{Speakers: []*domain.Speaker{}}
	var organizerID sql.NullString
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Location, &e.StartTime, &e.EndTime,
		&organizerID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.OrganizerID = organizerID.String
	return e, nil
}
