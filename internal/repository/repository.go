package repository

import (
	"errors"

	"prism/internal/database"

	"github.com/lib/pq"
)

type Repositories struct {
	Users    *UserRepository
	Venues   *VenueRepository
	Events   *EventRepository
	Starred  *StarredItemRepository
	Bookings *BookingRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Venues:   NewVenueRepository(db),
		Events:   NewEventRepository(db),
		Starred:  NewStarredItemRepository(db),
		Bookings: NewBookingRepository(db),
	}
}

// Postgres error codes relevant to the schema constraints.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation
}
