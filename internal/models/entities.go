package models

import (
	"time"
)

// Content type tags for starred items.
const (
	ContentTypeVenue = "venue"
	ContentTypeEvent = "event"
)

// DefaultVenueImage is the sentinel path used when a venue has no upload.
const DefaultVenueImage = "default_venue_image.jpg"

// User represents a registered account. Staff accounts may use the
// admin management routes.
type User struct {
	ID           int64     `json:"user_id" db:"user_id"`
	FullName     string    `json:"full_name" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsStaff      bool      `json:"is_staff" db:"is_staff"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}

// Venue represents an event location. The ID is caller-supplied and
// stable for the lifetime of the venue.
type Venue struct {
	ID        string `json:"venue_id" db:"venue_id"`
	Name      string `json:"name" db:"name"`
	Location  string `json:"location" db:"location"`
	ImagePath string `json:"image_path" db:"image_path"`
}

// Event represents a scheduled event at a venue. IDs are system-assigned
// sequential strings of the form "E<n>" and never reassigned.
type Event struct {
	ID      string    `json:"event_id" db:"event_id"`
	Name    string    `json:"name" db:"name"`
	Date    time.Time `json:"date" db:"date"`
	VenueID string    `json:"venue_id" db:"venue_id"`

	// Venue is filled on joined reads, not stored on the row itself.
	Venue *Venue `json:"venue,omitempty"`
}

// StarredItem is a user's bookmark of a venue or event. ObjectID is a
// loose reference: deleting the target leaves the row in place and
// listings skip it.
type StarredItem struct {
	ID          int64  `json:"id" db:"id"`
	UserID      int64  `json:"user_id" db:"user_id"`
	ContentType string `json:"content_type" db:"content_type"`
	ObjectID    string `json:"object_id" db:"object_id"`
}

// Booking is a user's registration for an event. At most one booking
// exists per (user, event) pair.
type Booking struct {
	ID        int64     `json:"booking_id" db:"booking_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	EventID   string    `json:"event_id" db:"event_id"`
	CreatedAt time.Time `json:"booking_date" db:"created_at"`

	// Event (with its venue) is filled on joined reads for dashboards.
	Event *Event `json:"event,omitempty"`
}
