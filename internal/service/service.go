package service

import (
	"context"

	"prism/internal/models"
	"prism/internal/repository"
	"prism/internal/search"
)

// Store interfaces the workflows depend on. The Postgres repositories
// satisfy them; tests substitute in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

type VenueStore interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id string) (*models.Venue, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Venue, error)
	List(ctx context.Context) ([]models.Venue, error)
	Search(ctx context.Context, q string) ([]models.Venue, error)
	Update(ctx context.Context, venue *models.Venue) error
	Delete(ctx context.Context, id string) error
}

type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Search(ctx context.Context, q string) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

type StarStore interface {
	Get(ctx context.Context, userID int64, contentType, objectID string) (*models.StarredItem, error)
	Create(ctx context.Context, item *models.StarredItem) error
	Delete(ctx context.Context, userID int64, contentType, objectID string) error
	ListByUser(ctx context.Context, userID int64) ([]models.StarredItem, error)
	ListObjectIDs(ctx context.Context, userID int64, contentType string) ([]string, error)
}

type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	GetByIDForUser(ctx context.Context, id, userID int64) (*models.Booking, error)
	ExistsForUserEvent(ctx context.Context, userID int64, eventID string) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id int64) error
	DeleteForUser(ctx context.Context, id, userID int64) error
}

// Stores bundles the store interfaces a Services needs.
type Stores struct {
	Users    UserStore
	Venues   VenueStore
	Events   EventStore
	Starred  StarStore
	Bookings BookingStore
}

// NewStores adapts the Postgres repositories to the store interfaces.
func NewStores(repos *repository.Repositories) Stores {
	return Stores{
		Users:    repos.Users,
		Venues:   repos.Venues,
		Events:   repos.Events,
		Starred:  repos.Starred,
		Bookings: repos.Bookings,
	}
}

// Publisher is the slice of the messaging client the workflows use.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

type Services struct {
	Identity *IdentityService
	Bookings *BookingService
	Starring *StarringService
	Events   *EventService
	Venues   *VenueService
	Users    *UserService
}

// NewServices wires the workflows. searcher may be nil, in which case
// /search falls back to SQL substring matching.
func NewServices(stores Stores, publisher Publisher, searcher *search.ElasticsearchClient) *Services {
	return &Services{
		Identity: NewIdentityService(stores.Users),
		Bookings: NewBookingService(stores.Bookings, stores.Events, publisher),
		Starring: NewStarringService(stores.Starred, stores.Venues, stores.Events, publisher),
		Events:   NewEventService(stores.Events, stores.Venues, publisher, searcher),
		Venues:   NewVenueService(stores.Venues, searcher),
		Users:    NewUserService(stores.Users),
	}
}
