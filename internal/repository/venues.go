package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prism/internal/database"
	apperrors "prism/internal/errors"
	"prism/internal/models"

	"github.com/lib/pq"
)

type VenueRepository struct {
	db *database.DB
}

func NewVenueRepository(db *database.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) Create(ctx context.Context, venue *models.Venue) error {
	query := `
		INSERT INTO venues (venue_id, name, location, image_path)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query,
		venue.ID,
		venue.Name,
		venue.Location,
		venue.ImagePath,
	)
	if isUniqueViolation(err) {
		return apperrors.ErrConstraintViolation
	}
	if err != nil {
		return fmt.Errorf("failed to create venue: %w", err)
	}
	return nil
}

func (r *VenueRepository) GetByID(ctx context.Context, id string) (*models.Venue, error) {
	venue := &models.Venue{}
	query := `
		SELECT venue_id, name, location, image_path
		FROM venues
		WHERE venue_id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Location,
		&venue.ImagePath,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return venue, nil
}

func (r *VenueRepository) List(ctx context.Context) ([]models.Venue, error) {
	query := `
		SELECT venue_id, name, location, image_path
		FROM venues
		ORDER BY venue_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	defer rows.Close()

	return scanVenues(rows)
}

// GetByIDs resolves a set of venue IDs, silently skipping IDs with no
// matching row. Used by the starred listing.
func (r *VenueRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Venue, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT venue_id, name, location, image_path
		FROM venues
		WHERE venue_id = ANY($1)
		ORDER BY venue_id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get venues by ids: %w", err)
	}
	defer rows.Close()

	return scanVenues(rows)
}

// Search matches venues by case-insensitive substring on name or
// location.
func (r *VenueRepository) Search(ctx context.Context, q string) ([]models.Venue, error) {
	query := `
		SELECT venue_id, name, location, image_path
		FROM venues
		WHERE name ILIKE '%' || $1 || '%' OR location ILIKE '%' || $1 || '%'
		ORDER BY venue_id`

	rows, err := r.db.QueryContext(ctx, query, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search venues: %w", err)
	}
	defer rows.Close()

	return scanVenues(rows)
}

func (r *VenueRepository) Update(ctx context.Context, venue *models.Venue) error {
	query := `
		UPDATE venues
		SET name = $1, location = $2, image_path = $3
		WHERE venue_id = $4`

	result, err := r.db.ExecContext(ctx, query,
		venue.Name,
		venue.Location,
		venue.ImagePath,
		venue.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update venue: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrVenueNotFound
	}
	return nil
}

// Delete removes a venue. Its events cascade, and their bookings cascade
// in turn.
func (r *VenueRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE venue_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrVenueNotFound
	}
	return nil
}

func scanVenues(rows *sql.Rows) ([]models.Venue, error) {
	var venues []models.Venue
	for rows.Next() {
		var venue models.Venue
		err := rows.Scan(
			&venue.ID,
			&venue.Name,
			&venue.Location,
			&venue.ImagePath,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}
		venues = append(venues, venue)
	}
	return venues, rows.Err()
}
