package repository

import (
	"context"
	"testing"
	"time"

	apperrors "prism/internal/errors"
	"prism/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMemory(t *testing.T) (*MemoryStores, *models.User, *models.Event) {
	t.Helper()
	ctx := context.Background()
	m := NewMemoryStores()

	user := &models.User{FullName: "Test User", Email: "user@example.com", PasswordHash: "x"}
	require.NoError(t, m.Users.Create(ctx, user))

	venue := &models.Venue{ID: "V1", Name: "Grand Hall", Location: "Kuantan", ImagePath: models.DefaultVenueImage}
	require.NoError(t, m.Venues.Create(ctx, venue))

	event := &models.Event{Name: "Jazz Night", Date: time.Now().AddDate(0, 1, 0), VenueID: "V1"}
	require.NoError(t, m.Events.Create(ctx, event))

	return m, user, event
}

func TestMemoryVenueDeleteCascades(t *testing.T) {
	ctx := context.Background()
	m, user, event := seedMemory(t)

	booking := &models.Booking{UserID: user.ID, EventID: event.ID}
	require.NoError(t, m.Bookings.Create(ctx, booking))

	require.NoError(t, m.Venues.Delete(ctx, "V1"))

	_, err := m.Events.GetByID(ctx, event.ID)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	_, err = m.Bookings.GetByID(ctx, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
}

func TestMemoryUserDeleteCascades(t *testing.T) {
	ctx := context.Background()
	m, user, event := seedMemory(t)

	booking := &models.Booking{UserID: user.ID, EventID: event.ID}
	require.NoError(t, m.Bookings.Create(ctx, booking))
	require.NoError(t, m.Starred.Create(ctx, &models.StarredItem{
		UserID: user.ID, ContentType: models.ContentTypeEvent, ObjectID: event.ID,
	}))

	require.NoError(t, m.Users.Delete(ctx, user.ID))

	_, err := m.Bookings.GetByID(ctx, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)

	ids, err := m.Starred.ListObjectIDs(ctx, user.ID, models.ContentTypeEvent)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMemoryStarDeleteLeavesDanglingReference(t *testing.T) {
	ctx := context.Background()
	m, user, event := seedMemory(t)

	require.NoError(t, m.Starred.Create(ctx, &models.StarredItem{
		UserID: user.ID, ContentType: models.ContentTypeEvent, ObjectID: event.ID,
	}))

	// Removing the event leaves the star row behind; listings resolve and
	// skip it.
	require.NoError(t, m.Events.Delete(ctx, event.ID))

	ids, err := m.Starred.ListObjectIDs(ctx, user.ID, models.ContentTypeEvent)
	require.NoError(t, err)
	assert.Equal(t, []string{event.ID}, ids)

	events, err := m.Events.GetByIDs(ctx, ids)
	require.NoError(t, err)
	assert.Empty(t, events)
}
