package models

import "time"

// NATS subjects for domain events.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventEventCreated     = "event.created"
	EventStarToggled      = "star.toggled"
)

// BookingCreatedEvent is published after a booking row is written.
type BookingCreatedEvent struct {
	BookingID int64     `json:"booking_id"`
	EventID   string    `json:"event_id"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// BookingCancelledEvent is published after a booking is deleted.
type BookingCancelledEvent struct {
	BookingID int64     `json:"booking_id"`
	EventID   string    `json:"event_id"`
	UserID    int64     `json:"user_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// EventCreatedEvent is published after the allocator assigns an ID and
// the event row is written.
type EventCreatedEvent struct {
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	VenueID   string    `json:"venue_id"`
	Timestamp time.Time `json:"timestamp"`
}

// StarToggledEvent is published after a star toggle. Starred reports the
// resulting state.
type StarToggledEvent struct {
	UserID      int64     `json:"user_id"`
	ContentType string    `json:"content_type"`
	ObjectID    string    `json:"object_id"`
	Starred     bool      `json:"starred"`
	Timestamp   time.Time `json:"timestamp"`
}
