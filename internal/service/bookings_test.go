package service

import (
	"context"
	"testing"

	apperrors "prism/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBook(t *testing.T) {
	svc, mem := newTestServices(t)
	ctx := context.Background()

	event := seedCatalog(t, mem)
	user := registerUser(t, svc, "alice@example.com")

	booking, err := svc.Bookings.Book(ctx, user.ID, event.ID)
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
	assert.Equal(t, event.ID, booking.EventID)

	bookings, err := svc.Bookings.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	require.NotNil(t, bookings[0].Event)
	assert.Equal(t, "Jazz Night", bookings[0].Event.Name)
	require.NotNil(t, bookings[0].Event.Venue)
	assert.Equal(t, "Grand Hall", bookings[0].Event.Venue.Name)
}

func TestBookTwiceFails(t *testing.T) {
	svc, mem := newTestServices(t)
	ctx := context.Background()

	event := seedCatalog(t, mem)
	user := registerUser(t, svc, "alice@example.com")

	_, err := svc.Bookings.Book(ctx, user.ID, event.ID)
	require.NoError(t, err)

	_, err = svc.Bookings.Book(ctx, user.ID, event.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyBooked)
}

func TestBookMissingEvent(t *testing.T) {
	svc, mem := newTestServices(t)

	seedCatalog(t, mem)
	user := registerUser(t, svc, "alice@example.com")

	_, err := svc.Bookings.Book(context.Background(), user.ID, "E999")
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestCancel(t *testing.T) {
	svc, mem := newTestServices(t)
	ctx := context.Background()

	event := seedCatalog(t, mem)
	user := registerUser(t, svc, "alice@example.com")

	booking, err := svc.Bookings.Book(ctx, user.ID, event.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Bookings.Cancel(ctx, user.ID, booking.ID))

	bookings, err := svc.Bookings.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	// Cancelling again reports not found.
	err = svc.Bookings.Cancel(ctx, user.ID, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
}

func TestCancelForeignBookingLooksMissing(t *testing.T) {
	svc, mem := newTestServices(t)
	ctx := context.Background()

	event := seedCatalog(t, mem)
	alice := registerUser(t, svc, "alice@example.com")
	bob := registerUser(t, svc, "bob@example.com")

	booking, err := svc.Bookings.Book(ctx, alice.ID, event.ID)
	require.NoError(t, err)

	err = svc.Bookings.Cancel(ctx, bob.ID, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)

	// Alice's booking is untouched.
	bookings, err := svc.Bookings.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestCancelThenRebook(t *testing.T) {
	svc, mem := newTestServices(t)
	ctx := context.Background()

	event := seedCatalog(t, mem)
	user := registerUser(t, svc, "alice@example.com")

	booking, err := svc.Bookings.Book(ctx, user.ID, event.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Bookings.Cancel(ctx, user.ID, booking.ID))

	_, err = svc.Bookings.Book(ctx, user.ID, event.ID)
	assert.NoError(t, err)
}

func TestAdminUpdateBooking(t *testing.T) {
	svc, mem := newTestServices(t)
	ctx := context.Background()

	event := seedCatalog(t, mem)
	alice := registerUser(t, svc, "alice@example.com")
	bob := registerUser(t, svc, "bob@example.com")

	booking, err := svc.Bookings.Book(ctx, alice.ID, event.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Bookings.AdminUpdate(ctx, booking.ID, bob.ID, event.ID))

	bookings, err := svc.Bookings.ListForUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestAdminUpdateBookingOntoTakenPair(t *testing.T) {
	svc, mem := newTestServices(t)
	ctx := context.Background()

	event := seedCatalog(t, mem)
	alice := registerUser(t, svc, "alice@example.com")
	bob := registerUser(t, svc, "bob@example.com")

	_, err := svc.Bookings.Book(ctx, alice.ID, event.ID)
	require.NoError(t, err)
	bobBooking, err := svc.Bookings.Book(ctx, bob.ID, event.ID)
	require.NoError(t, err)

	err = svc.Bookings.AdminUpdate(ctx, bobBooking.ID, alice.ID, event.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyBooked)
}
