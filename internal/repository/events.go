package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"prism/internal/database"
	apperrors "prism/internal/errors"
	"prism/internal/models"

	"github.com/lib/pq"
)

// eventIDLockKey is the advisory lock key serializing event ID
// allocation across concurrent creations.
const eventIDLockKey = 815001

type EventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

// NextEventID computes the next sequential event ID from the existing
// ones: strip the "E" prefix, take the numeric maximum, increment,
// re-prefix. An empty set yields "E1". IDs that do not parse are
// ignored.
func NextEventID(ids []string) string {
	max := 0
	for _, id := range ids {
		num, err := strconv.Atoi(strings.TrimPrefix(id, "E"))
		if err != nil {
			continue
		}
		if num > max {
			max = num
		}
	}
	return "E" + strconv.Itoa(max+1)
}

// Create assigns the next sequential ID and inserts the event in one
// transaction. An advisory transaction lock serializes the max-scan
// against concurrent creations; the primary key constraint remains as a
// safety net. A missing venue surfaces as ErrVenueNotFound.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, eventIDLockKey); err != nil {
		return fmt.Errorf("failed to take event id lock: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `SELECT event_id FROM events`)
	if err != nil {
		return fmt.Errorf("failed to read event ids: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan event id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read event ids: %w", err)
	}

	event.ID = NextEventID(ids)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO events (event_id, name, date, venue_id) VALUES ($1, $2, $3, $4)`,
		event.ID, event.Name, event.Date, event.VenueID,
	)
	if isForeignKeyViolation(err) {
		return apperrors.ErrVenueNotFound
	}
	if isUniqueViolation(err) {
		return apperrors.ErrConstraintViolation
	}
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return tx.Commit()
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	event := &models.Event{Venue: &models.Venue{}}
	query := `
		SELECT e.event_id, e.name, e.date, e.venue_id,
		       v.venue_id, v.name, v.location, v.image_path
		FROM events e
		JOIN venues v ON v.venue_id = e.venue_id
		WHERE e.event_id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.Date,
		&event.VenueID,
		&event.Venue.ID,
		&event.Venue.Name,
		&event.Venue.Location,
		&event.Venue.ImagePath,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// List returns all events ordered by date, each with its venue.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT e.event_id, e.name, e.date, e.venue_id,
		       v.venue_id, v.name, v.location, v.image_path
		FROM events e
		JOIN venues v ON v.venue_id = e.venue_id
		ORDER BY e.date`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetByIDs resolves a set of event IDs, silently skipping IDs with no
// matching row. Used by the starred listing.
func (r *EventRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT e.event_id, e.name, e.date, e.venue_id,
		       v.venue_id, v.name, v.location, v.image_path
		FROM events e
		JOIN venues v ON v.venue_id = e.venue_id
		WHERE e.event_id = ANY($1)
		ORDER BY e.date`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get events by ids: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Search matches events by case-insensitive substring on the event name
// or the joined venue name.
func (r *EventRepository) Search(ctx context.Context, q string) ([]models.Event, error) {
	query := `
		SELECT e.event_id, e.name, e.date, e.venue_id,
		       v.venue_id, v.name, v.location, v.image_path
		FROM events e
		JOIN venues v ON v.venue_id = e.venue_id
		WHERE e.name ILIKE '%' || $1 || '%' OR v.name ILIKE '%' || $1 || '%'
		ORDER BY e.date`

	rows, err := r.db.QueryContext(ctx, query, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Update rewrites the mutable event fields. The event ID is assigned
// once at creation and never changes.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET name = $1, date = $2, venue_id = $3
		WHERE event_id = $4`

	result, err := r.db.ExecContext(ctx, query,
		event.Name,
		event.Date,
		event.VenueID,
		event.ID,
	)
	if isForeignKeyViolation(err) {
		return apperrors.ErrVenueNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE event_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func scanEvents(rows *sql.Rows) ([]models.Event, error) {
	var events []models.Event
	for rows.Next() {
		event := models.Event{Venue: &models.Venue{}}
		err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.Date,
			&event.VenueID,
			&event.Venue.ID,
			&event.Venue.Name,
			&event.Venue.Location,
			&event.Venue.ImagePath,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
