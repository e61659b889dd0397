package service

import (
	"context"
	"testing"
	"time"

	"prism/internal/messaging"
	"prism/internal/models"
	"prism/internal/repository"

	"github.com/stretchr/testify/require"
)

// newTestServices wires the workflows against in-memory stores, a no-op
// publisher and no search backend.
func newTestServices(t *testing.T) (*Services, *repository.MemoryStores) {
	t.Helper()

	mem := repository.NewMemoryStores()
	stores := Stores{
		Users:    mem.Users,
		Venues:   mem.Venues,
		Events:   mem.Events,
		Starred:  mem.Starred,
		Bookings: mem.Bookings,
	}
	return NewServices(stores, messaging.NewNoop(), nil), mem
}

func seedCatalog(t *testing.T, mem *repository.MemoryStores) *models.Event {
	t.Helper()
	ctx := context.Background()

	venue := &models.Venue{ID: "V1", Name: "Grand Hall", Location: "Kuantan", ImagePath: models.DefaultVenueImage}
	require.NoError(t, mem.Venues.Create(ctx, venue))

	event := &models.Event{Name: "Jazz Night", Date: time.Now().AddDate(0, 1, 0), VenueID: "V1"}
	require.NoError(t, mem.Events.Create(ctx, event))
	return event
}

func registerUser(t *testing.T, svc *Services, email string) *models.User {
	t.Helper()

	user, err := svc.Identity.Register(context.Background(), &models.RegisterRequest{
		FullName: "Test User",
		Email:    email,
		Password: "secret-pass",
	})
	require.NoError(t, err)
	return user
}
