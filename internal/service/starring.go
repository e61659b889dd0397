package service

import (
	"context"
	"time"

	"prism/internal/logger"
	"prism/internal/metrics"
	"prism/internal/models"
)

// StarringService implements the star toggle and the starred listing.
type StarringService struct {
	starred   StarStore
	venues    VenueStore
	events    EventStore
	publisher Publisher
}

func NewStarringService(starred StarStore, venues VenueStore, events EventStore, publisher Publisher) *StarringService {
	return &StarringService{
		starred:   starred,
		venues:    venues,
		events:    events,
		publisher: publisher,
	}
}

// Toggle flips the starred state of the (user, contentType, objectID)
// triple and reports the resulting state. The content type is a loose
// tag; objectID is never validated against the target store here, so
// starring survives the target's later deletion.
func (s *StarringService) Toggle(ctx context.Context, userID int64, contentType, objectID string) (bool, error) {
	existing, err := s.starred.Get(ctx, userID, contentType, objectID)
	if err != nil {
		return false, err
	}

	var starred bool
	if existing != nil {
		if err := s.starred.Delete(ctx, userID, contentType, objectID); err != nil {
			return false, err
		}
		starred = false
	} else {
		item := &models.StarredItem{
			UserID:      userID,
			ContentType: contentType,
			ObjectID:    objectID,
		}
		if err := s.starred.Create(ctx, item); err != nil {
			return false, err
		}
		starred = true
	}

	metrics.IncStarToggled(contentType, starred)

	eventData := models.StarToggledEvent{
		UserID:      userID,
		ContentType: contentType,
		ObjectID:    objectID,
		Starred:     starred,
		Timestamp:   time.Now(),
	}
	if err := s.publisher.Publish(models.EventStarToggled, eventData); err != nil {
		logger.WithContext(ctx).Error("Failed to publish star toggled event",
			"error", err,
			"content_type", contentType,
			"object_id", objectID)
	}

	return starred, nil
}

// ListStarred partitions the user's starred items by content type and
// resolves them against the venue and event stores. Items whose target
// has been deleted are silently omitted; the orphaned rows stay until
// the user un-stars them.
func (s *StarringService) ListStarred(ctx context.Context, userID int64) (*models.StarredListResponse, error) {
	items, err := s.starred.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var venueIDs, eventIDs []string
	for _, item := range items {
		switch item.ContentType {
		case models.ContentTypeVenue:
			venueIDs = append(venueIDs, item.ObjectID)
		case models.ContentTypeEvent:
			eventIDs = append(eventIDs, item.ObjectID)
		}
	}

	venues, err := s.venues.GetByIDs(ctx, venueIDs)
	if err != nil {
		return nil, err
	}
	events, err := s.events.GetByIDs(ctx, eventIDs)
	if err != nil {
		return nil, err
	}

	return &models.StarredListResponse{Venues: venues, Events: events}, nil
}

// ObjectIDs returns the IDs the user has starred for one content type,
// for annotating the catalog listings. An anonymous caller (userID 0)
// gets an empty set.
func (s *StarringService) ObjectIDs(ctx context.Context, userID int64, contentType string) ([]string, error) {
	if userID == 0 {
		return nil, nil
	}
	return s.starred.ListObjectIDs(ctx, userID, contentType)
}
