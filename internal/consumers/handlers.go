package consumers

import (
	"context"
	"encoding/json"
	"log/slog"

	"prism/internal/models"
	"prism/internal/repository"
	"prism/internal/search"

	"github.com/nats-io/stan.go"
)

type Handlers struct {
	repos    *repository.Repositories
	searcher *search.ElasticsearchClient
}

func NewHandlers(repos *repository.Repositories, searcher *search.ElasticsearchClient) *Handlers {
	return &Handlers{
		repos:    repos,
		searcher: searcher,
	}
}

func (h *Handlers) HandleBookingCreated(m *stan.Msg) {
	var event models.BookingCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking created event", "error", err)
		return
	}

	slog.Info("Booking created",
		"booking_id", event.BookingID,
		"event_id", event.EventID,
		"user_id", event.UserID)

	// Confirmation email delivery would hang off this subject.

	m.Ack()
}

func (h *Handlers) HandleBookingCancelled(m *stan.Msg) {
	var event models.BookingCancelledEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking cancelled event", "error", err)
		return
	}

	slog.Info("Booking cancelled",
		"booking_id", event.BookingID,
		"event_id", event.EventID,
		"user_id", event.UserID,
		"reason", event.Reason)

	m.Ack()
}

// HandleEventCreated re-indexes the event. The API indexes on write
// already, so this is the retry path when that indexing failed.
func (h *Handlers) HandleEventCreated(m *stan.Msg) {
	var event models.EventCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal event created event", "error", err)
		return
	}

	slog.Info("Event created", "event_id", event.EventID, "venue_id", event.VenueID)

	if h.searcher != nil {
		ctx := context.Background()
		stored, err := h.repos.Events.GetByID(ctx, event.EventID)
		if err != nil {
			slog.Error("Failed to load event for indexing", "event_id", event.EventID, "error", err)
			return
		}
		if err := h.searcher.IndexEvent(ctx, stored); err != nil {
			slog.Error("Failed to index event", "event_id", event.EventID, "error", err)
			return
		}
	}

	m.Ack()
}

func (h *Handlers) HandleStarToggled(m *stan.Msg) {
	var event models.StarToggledEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal star toggled event", "error", err)
		return
	}

	slog.Info("Star toggled",
		"user_id", event.UserID,
		"content_type", event.ContentType,
		"object_id", event.ObjectID,
		"starred", event.Starred)

	m.Ack()
}
