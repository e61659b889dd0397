package service

import (
	"context"
	"time"

	apperrors "prism/internal/errors"
	"prism/internal/logger"
	"prism/internal/metrics"
	"prism/internal/models"
)

// BookingService implements the booking workflow: one booking per
// (user, event) pair, ownership enforced on cancellation.
type BookingService struct {
	bookings  BookingStore
	events    EventStore
	publisher Publisher
}

func NewBookingService(bookings BookingStore, events EventStore, publisher Publisher) *BookingService {
	return &BookingService{
		bookings:  bookings,
		events:    events,
		publisher: publisher,
	}
}

// Book registers the user for the event. Fails with ErrEventNotFound
// when the event does not exist and ErrAlreadyBooked when a booking for
// the pair already exists. The unique constraint on (user_id, event_id)
// catches two requests racing past the pre-check.
func (s *BookingService) Book(ctx context.Context, userID int64, eventID string) (*models.Booking, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	booked, err := s.bookings.ExistsForUserEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, apperrors.ErrAlreadyBooked
	}

	booking := &models.Booking{
		UserID:  userID,
		EventID: event.ID,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()

	eventData := models.BookingCreatedEvent{
		BookingID: booking.ID,
		EventID:   booking.EventID,
		UserID:    booking.UserID,
		Timestamp: time.Now(),
	}
	if err := s.publisher.Publish(models.EventBookingCreated, eventData); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking created event",
			"error", err,
			"booking_id", booking.ID)
	}

	return booking, nil
}

// Cancel deletes the booking when the caller owns it. A booking owned
// by another user fails with ErrBookingNotFound, identical to a missing
// one, so cancellation never leaks foreign bookings.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID int64) error {
	booking, err := s.bookings.GetByIDForUser(ctx, bookingID, userID)
	if err != nil {
		return err
	}

	if err := s.bookings.DeleteForUser(ctx, bookingID, userID); err != nil {
		return err
	}

	metrics.IncBookingCancelled()

	eventData := models.BookingCancelledEvent{
		BookingID: booking.ID,
		EventID:   booking.EventID,
		UserID:    booking.UserID,
		Reason:    "user cancellation",
		Timestamp: time.Now(),
	}
	if err := s.publisher.Publish(models.EventBookingCancelled, eventData); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking cancelled event",
			"error", err,
			"booking_id", booking.ID)
	}

	return nil
}

// ListForUser returns the user's bookings joined with event and venue,
// newest first.
func (s *BookingService) ListForUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// ListAll returns every booking. Staff only.
func (s *BookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.List(ctx)
}

// AdminUpdate reassigns a booking to another user or event. The unique
// constraint still applies, so moving a booking onto a pair that is
// already booked fails with ErrAlreadyBooked.
func (s *BookingService) AdminUpdate(ctx context.Context, bookingID, userID int64, eventID string) error {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return err
	}

	booking.UserID = userID
	booking.EventID = eventID
	return s.bookings.Update(ctx, booking)
}

// AdminDelete removes a booking regardless of owner. Staff only.
func (s *BookingService) AdminDelete(ctx context.Context, bookingID int64) error {
	return s.bookings.Delete(ctx, bookingID)
}
