package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prism/internal/database"
	apperrors "prism/internal/errors"
	"prism/internal/models"
)

type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a booking with a server-assigned timestamp. A racing
// duplicate for the same (user, event) pair hits the unique constraint
// and surfaces as ErrAlreadyBooked; a vanished event surfaces as
// ErrEventNotFound.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (user_id, event_id)
		VALUES ($1, $2)
		RETURNING booking_id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		booking.UserID,
		booking.EventID,
	).Scan(&booking.ID, &booking.CreatedAt)

	if isUniqueViolation(err) {
		return apperrors.ErrAlreadyBooked
	}
	if isForeignKeyViolation(err) {
		return apperrors.ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	booking := &models.Booking{}
	query := `
		SELECT booking_id, user_id, event_id, created_at
		FROM bookings
		WHERE booking_id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.EventID,
		&booking.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// GetByIDForUser looks a booking up by ID and owner in one query, so a
// booking owned by someone else is indistinguishable from a missing one.
func (r *BookingRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*models.Booking, error) {
	booking := &models.Booking{}
	query := `
		SELECT booking_id, user_id, event_id, created_at
		FROM bookings
		WHERE booking_id = $1 AND user_id = $2`

	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.EventID,
		&booking.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// ExistsForUserEvent reports whether the user already booked the event.
func (r *BookingRepository) ExistsForUserEvent(ctx context.Context, userID int64, eventID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM bookings WHERE user_id = $1 AND event_id = $2)`

	if err := r.db.QueryRowContext(ctx, query, userID, eventID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check booking existence: %w", err)
	}
	return exists, nil
}

// ListByUser returns the user's bookings with event and venue joined
// for dashboard display, newest first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	query := `
		SELECT b.booking_id, b.user_id, b.event_id, b.created_at,
		       e.event_id, e.name, e.date, e.venue_id,
		       v.venue_id, v.name, v.location, v.image_path
		FROM bookings b
		JOIN events e ON e.event_id = b.event_id
		JOIN venues v ON v.venue_id = e.venue_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	defer rows.Close()

	return scanJoinedBookings(rows)
}

// List returns all bookings with event and venue joined, for the staff
// overview.
func (r *BookingRepository) List(ctx context.Context) ([]models.Booking, error) {
	query := `
		SELECT b.booking_id, b.user_id, b.event_id, b.created_at,
		       e.event_id, e.name, e.date, e.venue_id,
		       v.venue_id, v.name, v.location, v.image_path
		FROM bookings b
		JOIN events e ON e.event_id = b.event_id
		JOIN venues v ON v.venue_id = e.venue_id
		ORDER BY b.booking_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	return scanJoinedBookings(rows)
}

// Update reassigns the booking's user and event (admin edit). The
// creation timestamp is immutable.
func (r *BookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	query := `
		UPDATE bookings
		SET user_id = $1, event_id = $2
		WHERE booking_id = $3`

	result, err := r.db.ExecContext(ctx, query,
		booking.UserID,
		booking.EventID,
		booking.ID,
	)
	if isUniqueViolation(err) {
		return apperrors.ErrAlreadyBooked
	}
	if isForeignKeyViolation(err) {
		return apperrors.ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE booking_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrBookingNotFound
	}
	return nil
}

// DeleteForUser removes a booking only when the caller owns it.
func (r *BookingRepository) DeleteForUser(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM bookings WHERE booking_id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrBookingNotFound
	}
	return nil
}

func scanJoinedBookings(rows *sql.Rows) ([]models.Booking, error) {
	var bookings []models.Booking
	for rows.Next() {
		booking := models.Booking{Event: &models.Event{Venue: &models.Venue{}}}
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.EventID,
			&booking.CreatedAt,
			&booking.Event.ID,
			&booking.Event.Name,
			&booking.Event.Date,
			&booking.Event.VenueID,
			&booking.Event.Venue.ID,
			&booking.Event.Venue.Name,
			&booking.Event.Venue.Location,
			&booking.Event.Venue.ImagePath,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
