package service

import (
	"context"

	"prism/internal/logger"
	"prism/internal/models"
	"prism/internal/search"
)

// VenueService implements the venue catalog and the staff venue
// management operations.
type VenueService struct {
	venues   VenueStore
	searcher *search.ElasticsearchClient
}

func NewVenueService(venues VenueStore, searcher *search.ElasticsearchClient) *VenueService {
	return &VenueService{venues: venues, searcher: searcher}
}

func (s *VenueService) List(ctx context.Context) ([]models.Venue, error) {
	return s.venues.List(ctx)
}

func (s *VenueService) Get(ctx context.Context, id string) (*models.Venue, error) {
	return s.venues.GetByID(ctx, id)
}

// Create inserts a venue with its caller-supplied ID. imagePath is the
// stored relative path, or the sentinel default when nothing was
// uploaded.
func (s *VenueService) Create(ctx context.Context, req *models.CreateVenueRequest, imagePath string) (*models.Venue, error) {
	if imagePath == "" {
		imagePath = models.DefaultVenueImage
	}

	venue := &models.Venue{
		ID:        req.VenueID,
		Name:      req.Name,
		Location:  req.Location,
		ImagePath: imagePath,
	}
	if err := s.venues.Create(ctx, venue); err != nil {
		return nil, err
	}

	s.indexVenue(ctx, venue)
	return venue, nil
}

// Update rewrites name and location; imagePath replaces the stored
// image only when non-empty.
func (s *VenueService) Update(ctx context.Context, id string, req *models.UpdateVenueRequest, imagePath string) (*models.Venue, error) {
	venue, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	venue.Name = req.Name
	venue.Location = req.Location
	if imagePath != "" {
		venue.ImagePath = imagePath
	}

	if err := s.venues.Update(ctx, venue); err != nil {
		return nil, err
	}

	s.indexVenue(ctx, venue)
	return venue, nil
}

// Delete removes the venue. Its events cascade, and their bookings with
// them; starred items referencing either remain as orphans.
func (s *VenueService) Delete(ctx context.Context, id string) error {
	if err := s.venues.Delete(ctx, id); err != nil {
		return err
	}

	if s.searcher != nil {
		if err := s.searcher.Delete(ctx, models.ContentTypeVenue, id); err != nil {
			logger.WithContext(ctx).Error("Failed to remove venue from search index",
				"error", err,
				"venue_id", id)
		}
	}
	return nil
}

func (s *VenueService) indexVenue(ctx context.Context, venue *models.Venue) {
	if s.searcher == nil {
		return
	}
	if err := s.searcher.IndexVenue(ctx, venue); err != nil {
		logger.WithContext(ctx).Error("Failed to index venue",
			"error", err,
			"venue_id", venue.ID)
	}
}
