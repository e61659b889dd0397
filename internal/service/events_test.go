package service

import (
	"context"
	"testing"

	apperrors "prism/internal/errors"
	"prism/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEventAssignsSequentialIDs(t *testing.T) {
	svc, mem := newTestServices(t)
	ctx := context.Background()

	seedCatalog(t, mem) // E1

	event, err := svc.Events.Create(ctx, &models.CreateEventRequest{
		Name:    "Food Festival",
		Date:    "2026-10-05",
		VenueID: "V1",
	})
	require.NoError(t, err)
	assert.Equal(t, "E2", event.ID)
}

func TestCreateEventBadDate(t *testing.T) {
	svc, mem := newTestServices(t)

	seedCatalog(t, mem)

	_, err := svc.Events.Create(context.Background(), &models.CreateEventRequest{
		Name:    "Food Festival",
		Date:    "05/10/2026",
		VenueID: "V1",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateEventMissingVenue(t *testing.T) {
	svc, mem := newTestServices(t)

	seedCatalog(t, mem)

	_, err := svc.Events.Create(context.Background(), &models.CreateEventRequest{
		Name:    "Food Festival",
		Date:    "2026-10-05",
		VenueID: "V999",
	})
	assert.ErrorIs(t, err, apperrors.ErrVenueNotFound)
}

func TestUpdateEventKeepsID(t *testing.T) {
	svc, mem := newTestServices(t)
	ctx := context.Background()

	event := seedCatalog(t, mem)

	updated, err := svc.Events.Update(ctx, event.ID, &models.UpdateEventRequest{
		Name:    "Jazz Night Extended",
		Date:    "2026-11-01",
		VenueID: "V1",
	})
	require.NoError(t, err)
	assert.Equal(t, event.ID, updated.ID)
	assert.Equal(t, "Jazz Night Extended", updated.Name)
}

func TestSearchCatalogSQLFallback(t *testing.T) {
	svc, mem := newTestServices(t)
	ctx := context.Background()

	seedCatalog(t, mem)

	// No search backend wired, so matching goes through the stores.
	resp, err := svc.Events.SearchCatalog(ctx, "jazz")
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "Jazz Night", resp.Events[0].Name)

	// Venue location matches surface venues.
	resp, err = svc.Events.SearchCatalog(ctx, "kuantan")
	require.NoError(t, err)
	require.Len(t, resp.Venues, 1)
	assert.Equal(t, "Grand Hall", resp.Venues[0].Name)

	// Venue name matches surface both the venue and its events.
	resp, err = svc.Events.SearchCatalog(ctx, "grand")
	require.NoError(t, err)
	assert.Len(t, resp.Venues, 1)
	assert.Len(t, resp.Events, 1)
}

func TestSearchCatalogEmptyQuery(t *testing.T) {
	svc, mem := newTestServices(t)

	seedCatalog(t, mem)

	resp, err := svc.Events.SearchCatalog(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, resp.Events)
	assert.Empty(t, resp.Venues)
}

func TestVenueCreateDefaultsImage(t *testing.T) {
	svc, _ := newTestServices(t)

	venue, err := svc.Venues.Create(context.Background(), &models.CreateVenueRequest{
		VenueID:  "V9",
		Name:     "Harbor Stage",
		Location: "Pekan",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultVenueImage, venue.ImagePath)
}

func TestVenueUpdateKeepsImageWhenNoUpload(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Venues.Create(ctx, &models.CreateVenueRequest{
		VenueID:  "V9",
		Name:     "Harbor Stage",
		Location: "Pekan",
	}, "venue_images/venue_V9_pic.jpg")
	require.NoError(t, err)

	updated, err := svc.Venues.Update(ctx, "V9", &models.UpdateVenueRequest{
		Name:     "Harbor Stage Renamed",
		Location: "Pekan",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "venue_images/venue_V9_pic.jpg", updated.ImagePath)
}
