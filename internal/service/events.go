package service

import (
	"context"
	"fmt"
	"time"

	apperrors "prism/internal/errors"
	"prism/internal/logger"
	"prism/internal/models"
	"prism/internal/search"
)

// eventDateLayout matches the HTML date input format.
const eventDateLayout = "2006-01-02"

// EventService implements the event catalog and the staff event
// management operations.
type EventService struct {
	events    EventStore
	venues    VenueStore
	publisher Publisher
	searcher  *search.ElasticsearchClient
}

func NewEventService(events EventStore, venues VenueStore, publisher Publisher, searcher *search.ElasticsearchClient) *EventService {
	return &EventService{
		events:    events,
		venues:    venues,
		publisher: publisher,
		searcher:  searcher,
	}
}

// List returns all events ordered by date.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	return s.events.List(ctx)
}

// Get returns one event with its venue.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	return s.events.GetByID(ctx, id)
}

// SearchCatalog runs the /search query over both entity kinds: events
// match on event name or venue name, venues on name or location. With
// Elasticsearch configured the hits come from the index and are
// re-resolved against SQL; otherwise the match runs as ILIKE queries.
func (s *EventService) SearchCatalog(ctx context.Context, query string) (*models.SearchResponse, error) {
	resp := &models.SearchResponse{Query: query}
	if query == "" {
		return resp, nil
	}

	if s.searcher != nil {
		hits, err := s.searcher.Search(ctx, query)
		if err == nil {
			events, err := s.events.GetByIDs(ctx, hits.EventIDs)
			if err != nil {
				return nil, err
			}
			venues, err := s.venues.GetByIDs(ctx, hits.VenueIDs)
			if err != nil {
				return nil, err
			}
			resp.Events = events
			resp.Venues = venues
			return resp, nil
		}
		// Index trouble must not break search; fall through to SQL.
		logger.WithContext(ctx).Error("Elasticsearch query failed, falling back to SQL", "error", err)
	}

	events, err := s.events.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	venues, err := s.venues.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	resp.Events = events
	resp.Venues = venues
	return resp, nil
}

// Create allocates the next sequential event ID and inserts the event.
// The venue is checked first so a bad selection reports ErrVenueNotFound
// rather than a constraint error.
func (s *EventService) Create(ctx context.Context, req *models.CreateEventRequest) (*models.Event, error) {
	date, err := time.Parse(eventDateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event date", apperrors.ErrValidationFailed)
	}

	venue, err := s.venues.GetByID(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:    req.Name,
		Date:    date,
		VenueID: venue.ID,
		Venue:   venue,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	s.indexEvent(ctx, event)

	eventData := models.EventCreatedEvent{
		EventID:   event.ID,
		Name:      event.Name,
		VenueID:   event.VenueID,
		Timestamp: time.Now(),
	}
	if err := s.publisher.Publish(models.EventEventCreated, eventData); err != nil {
		logger.WithContext(ctx).Error("Failed to publish event created event",
			"error", err,
			"event_id", event.ID)
	}

	return event, nil
}

// Update rewrites name, date and venue. The event ID never changes.
func (s *EventService) Update(ctx context.Context, id string, req *models.UpdateEventRequest) (*models.Event, error) {
	date, err := time.Parse(eventDateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event date", apperrors.ErrValidationFailed)
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	venue, err := s.venues.GetByID(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	event.Name = req.Name
	event.Date = date
	event.VenueID = venue.ID
	event.Venue = venue

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	s.indexEvent(ctx, event)
	return event, nil
}

// Delete removes the event; its bookings cascade at the schema level.
// Starred items referencing it remain as orphans.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}

	if s.searcher != nil {
		if err := s.searcher.Delete(ctx, models.ContentTypeEvent, id); err != nil {
			logger.WithContext(ctx).Error("Failed to remove event from search index",
				"error", err,
				"event_id", id)
		}
	}
	return nil
}

func (s *EventService) indexEvent(ctx context.Context, event *models.Event) {
	if s.searcher == nil {
		return
	}
	if err := s.searcher.IndexEvent(ctx, event); err != nil {
		logger.WithContext(ctx).Error("Failed to index event",
			"error", err,
			"event_id", event.ID)
	}
}
