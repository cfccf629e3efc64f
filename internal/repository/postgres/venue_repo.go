package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"timevents/internal/domain"
)

const venueColumns = `id, name, location, capacity, description, created_at, updated_at`

type venueRepository struct {
	DB *sql.DB
}

func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{DB: db}
}

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	query := `
		INSERT INTO venues (name, location, capacity, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		v.Name, v.Location, v.Capacity, v.Description, v.CreatedAt, v.UpdatedAt,
	).Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("create venue: %w", mapError(err))
	}
	return nil
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`
	v := &domain.Venue{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.Location, &v.Capacity, &v.Description, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return v, nil
}

func (r *venueRepository) List(ctx context.Context, page domain.PaginationParams) ([]*domain.Venue, error) {
	query := `
		SELECT ` + venueColumns + `
		FROM venues
		ORDER BY name, id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, limitArg(page), page.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v := &domain.Venue{}
		if err := rows.Scan(&v.ID, &v.Name, &v.Location, &v.Capacity, &v.Description, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *venueRepository) Update(ctx context.Context, v *domain.Venue) error {
	query := `
		UPDATE venues
		SET name = $1, location = $2, capacity = $3, description = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := r.DB.ExecContext(ctx, query, v.Name, v.Location, v.Capacity, v.Description, v.UpdatedAt, v.ID)
	if err != nil {
		return fmt.Errorf("update venue: %w", mapError(err))
	}
	return checkAffected(result)
}

func (r *venueRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(result)
}
