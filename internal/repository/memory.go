package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "prism/internal/errors"
	"prism/internal/models"
)

// MemoryStores is an in-memory implementation of the store interfaces
// with the same error semantics as the Postgres repositories, including
// the schema-level cascades. Used by tests and useful for local
// development without a database.
type MemoryStores struct {
	mu sync.RWMutex

	users     map[int64]*models.User
	venues    map[string]*models.Venue
	events    map[string]*models.Event
	starred   map[int64]*models.StarredItem
	bookings  map[int64]*models.Booking
	userSeq   int64
	starSeq   int64
	bookSeq   int64

	Users    *MemoryUserStore
	Venues   *MemoryVenueStore
	Events   *MemoryEventStore
	Starred  *MemoryStarStore
	Bookings *MemoryBookingStore
}

func NewMemoryStores() *MemoryStores {
	m := &MemoryStores{
		users:    make(map[int64]*models.User),
		venues:   make(map[string]*models.Venue),
		events:   make(map[string]*models.Event),
		starred:  make(map[int64]*models.StarredItem),
		bookings: make(map[int64]*models.Booking),
	}
	m.Users = &MemoryUserStore{m}
	m.Venues = &MemoryVenueStore{m}
	m.Events = &MemoryEventStore{m}
	m.Starred = &MemoryStarStore{m}
	m.Bookings = &MemoryBookingStore{m}
	return m
}

type MemoryUserStore struct{ m *MemoryStores }
type MemoryVenueStore struct{ m *MemoryStores }
type MemoryEventStore struct{ m *MemoryStores }
type MemoryStarStore struct{ m *MemoryStores }
type MemoryBookingStore struct{ m *MemoryStores }

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyVenue(v *models.Venue) *models.Venue {
	c := *v
	return &c
}

func (m *MemoryStores) joinedEvent(e *models.Event) *models.Event {
	c := *e
	if v, ok := m.venues[e.VenueID]; ok {
		c.Venue = copyVenue(v)
	}
	return &c
}

func (m *MemoryStores) joinedBooking(b *models.Booking) *models.Booking {
	c := *b
	if e, ok := m.events[b.EventID]; ok {
		c.Event = m.joinedEvent(e)
	}
	return &c
}

// Users

func (s *MemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, u := range s.m.users {
		if u.Email == user.Email {
			return apperrors.ErrDuplicateEmail
		}
	}

	s.m.userSeq++
	user.ID = s.m.userSeq
	user.RegisteredAt = time.Now()
	s.m.users[user.ID] = copyUser(user)
	return nil
}

func (s *MemoryUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	u, ok := s.m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	for _, u := range s.m.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *MemoryUserStore) List(_ context.Context) ([]models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	users := make([]models.User, 0, len(s.m.users))
	for _, u := range s.m.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *MemoryUserStore) Update(_ context.Context, user *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	for _, u := range s.m.users {
		if u.ID != user.ID && u.Email == user.Email {
			return apperrors.ErrDuplicateEmail
		}
	}
	s.m.users[user.ID] = copyUser(user)
	return nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(s.m.users, id)

	// Cascades
	for bid, b := range s.m.bookings {
		if b.UserID == id {
			delete(s.m.bookings, bid)
		}
	}
	for sid, item := range s.m.starred {
		if item.UserID == id {
			delete(s.m.starred, sid)
		}
	}
	return nil
}

// Venues

func (s *MemoryVenueStore) Create(_ context.Context, venue *models.Venue) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.venues[venue.ID]; ok {
		return apperrors.ErrConstraintViolation
	}
	s.m.venues[venue.ID] = copyVenue(venue)
	return nil
}

func (s *MemoryVenueStore) GetByID(_ context.Context, id string) (*models.Venue, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	v, ok := s.m.venues[id]
	if !ok {
		return nil, apperrors.ErrVenueNotFound
	}
	return copyVenue(v), nil
}

func (s *MemoryVenueStore) GetByIDs(_ context.Context, ids []string) ([]models.Venue, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var venues []models.Venue
	for _, id := range ids {
		if v, ok := s.m.venues[id]; ok {
			venues = append(venues, *v)
		}
	}
	return venues, nil
}

func (s *MemoryVenueStore) List(_ context.Context) ([]models.Venue, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	venues := make([]models.Venue, 0, len(s.m.venues))
	for _, v := range s.m.venues {
		venues = append(venues, *v)
	}
	sort.Slice(venues, func(i, j int) bool { return venues[i].ID < venues[j].ID })
	return venues, nil
}

func (s *MemoryVenueStore) Search(_ context.Context, q string) ([]models.Venue, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	needle := strings.ToLower(q)
	var venues []models.Venue
	for _, v := range s.m.venues {
		if strings.Contains(strings.ToLower(v.Name), needle) ||
			strings.Contains(strings.ToLower(v.Location), needle) {
			venues = append(venues, *v)
		}
	}
	sort.Slice(venues, func(i, j int) bool { return venues[i].ID < venues[j].ID })
	return venues, nil
}

func (s *MemoryVenueStore) Update(_ context.Context, venue *models.Venue) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.venues[venue.ID]; !ok {
		return apperrors.ErrVenueNotFound
	}
	s.m.venues[venue.ID] = copyVenue(venue)
	return nil
}

func (s *MemoryVenueStore) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.venues[id]; !ok {
		return apperrors.ErrVenueNotFound
	}
	delete(s.m.venues, id)

	// Cascades through the events to their bookings.
	for eid, e := range s.m.events {
		if e.VenueID != id {
			continue
		}
		delete(s.m.events, eid)
		for bid, b := range s.m.bookings {
			if b.EventID == eid {
				delete(s.m.bookings, bid)
			}
		}
	}
	return nil
}

// Events

func (s *MemoryEventStore) Create(_ context.Context, event *models.Event) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.venues[event.VenueID]; !ok {
		return apperrors.ErrVenueNotFound
	}

	ids := make([]string, 0, len(s.m.events))
	for id := range s.m.events {
		ids = append(ids, id)
	}
	event.ID = NextEventID(ids)

	c := *event
	c.Venue = nil
	s.m.events[event.ID] = &c
	return nil
}

func (s *MemoryEventStore) GetByID(_ context.Context, id string) (*models.Event, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	e, ok := s.m.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return s.m.joinedEvent(e), nil
}

func (s *MemoryEventStore) GetByIDs(_ context.Context, ids []string) ([]models.Event, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var events []models.Event
	for _, id := range ids {
		if e, ok := s.m.events[id]; ok {
			events = append(events, *s.m.joinedEvent(e))
		}
	}
	sortEventsByDate(events)
	return events, nil
}

func (s *MemoryEventStore) List(_ context.Context) ([]models.Event, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	events := make([]models.Event, 0, len(s.m.events))
	for _, e := range s.m.events {
		events = append(events, *s.m.joinedEvent(e))
	}
	sortEventsByDate(events)
	return events, nil
}

func (s *MemoryEventStore) Search(_ context.Context, q string) ([]models.Event, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	needle := strings.ToLower(q)
	var events []models.Event
	for _, e := range s.m.events {
		venueName := ""
		if v, ok := s.m.venues[e.VenueID]; ok {
			venueName = v.Name
		}
		if strings.Contains(strings.ToLower(e.Name), needle) ||
			strings.Contains(strings.ToLower(venueName), needle) {
			events = append(events, *s.m.joinedEvent(e))
		}
	}
	sortEventsByDate(events)
	return events, nil
}

func (s *MemoryEventStore) Update(_ context.Context, event *models.Event) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.events[event.ID]; !ok {
		return apperrors.ErrEventNotFound
	}
	if _, ok := s.m.venues[event.VenueID]; !ok {
		return apperrors.ErrVenueNotFound
	}

	c := *event
	c.Venue = nil
	s.m.events[event.ID] = &c
	return nil
}

func (s *MemoryEventStore) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(s.m.events, id)

	for bid, b := range s.m.bookings {
		if b.EventID == id {
			delete(s.m.bookings, bid)
		}
	}
	return nil
}

func sortEventsByDate(events []models.Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date.Equal(events[j].Date) {
			return events[i].ID < events[j].ID
		}
		return events[i].Date.Before(events[j].Date)
	})
}

// Starred items

func (s *MemoryStarStore) Get(_ context.Context, userID int64, contentType, objectID string) (*models.StarredItem, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	for _, item := range s.m.starred {
		if item.UserID == userID && item.ContentType == contentType && item.ObjectID == objectID {
			c := *item
			return &c, nil
		}
	}
	return nil, nil
}

func (s *MemoryStarStore) Create(_ context.Context, item *models.StarredItem) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, existing := range s.m.starred {
		if existing.UserID == item.UserID &&
			existing.ContentType == item.ContentType &&
			existing.ObjectID == item.ObjectID {
			return apperrors.ErrConstraintViolation
		}
	}

	s.m.starSeq++
	item.ID = s.m.starSeq
	c := *item
	s.m.starred[item.ID] = &c
	return nil
}

func (s *MemoryStarStore) Delete(_ context.Context, userID int64, contentType, objectID string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for id, item := range s.m.starred {
		if item.UserID == userID && item.ContentType == contentType && item.ObjectID == objectID {
			delete(s.m.starred, id)
			return nil
		}
	}
	return nil
}

func (s *MemoryStarStore) ListByUser(_ context.Context, userID int64) ([]models.StarredItem, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var items []models.StarredItem
	for _, item := range s.m.starred {
		if item.UserID == userID {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *MemoryStarStore) ListObjectIDs(_ context.Context, userID int64, contentType string) ([]string, error) {
	items, _ := s.ListByUser(context.Background(), userID)
	var ids []string
	for _, item := range items {
		if item.ContentType == contentType {
			ids = append(ids, item.ObjectID)
		}
	}
	return ids, nil
}

// Bookings

func (s *MemoryBookingStore) Create(_ context.Context, booking *models.Booking) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.events[booking.EventID]; !ok {
		return apperrors.ErrEventNotFound
	}
	for _, b := range s.m.bookings {
		if b.UserID == booking.UserID && b.EventID == booking.EventID {
			return apperrors.ErrAlreadyBooked
		}
	}

	s.m.bookSeq++
	booking.ID = s.m.bookSeq
	booking.CreatedAt = time.Now()
	c := *booking
	c.Event = nil
	s.m.bookings[booking.ID] = &c
	return nil
}

func (s *MemoryBookingStore) GetByID(_ context.Context, id int64) (*models.Booking, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	b, ok := s.m.bookings[id]
	if !ok {
		return nil, apperrors.ErrBookingNotFound
	}
	return s.m.joinedBooking(b), nil
}

func (s *MemoryBookingStore) GetByIDForUser(_ context.Context, id, userID int64) (*models.Booking, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	b, ok := s.m.bookings[id]
	if !ok || b.UserID != userID {
		return nil, apperrors.ErrBookingNotFound
	}
	return s.m.joinedBooking(b), nil
}

func (s *MemoryBookingStore) ExistsForUserEvent(_ context.Context, userID int64, eventID string) (bool, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	for _, b := range s.m.bookings {
		if b.UserID == userID && b.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryBookingStore) ListByUser(_ context.Context, userID int64) ([]models.Booking, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var bookings []models.Booking
	for _, b := range s.m.bookings {
		if b.UserID == userID {
			bookings = append(bookings, *s.m.joinedBooking(b))
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID > bookings[j].ID })
	return bookings, nil
}

func (s *MemoryBookingStore) List(_ context.Context) ([]models.Booking, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	bookings := make([]models.Booking, 0, len(s.m.bookings))
	for _, b := range s.m.bookings {
		bookings = append(bookings, *s.m.joinedBooking(b))
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
	return bookings, nil
}

func (s *MemoryBookingStore) Update(_ context.Context, booking *models.Booking) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.bookings[booking.ID]; !ok {
		return apperrors.ErrBookingNotFound
	}
	if _, ok := s.m.events[booking.EventID]; !ok {
		return apperrors.ErrEventNotFound
	}
	for _, b := range s.m.bookings {
		if b.ID != booking.ID && b.UserID == booking.UserID && b.EventID == booking.EventID {
			return apperrors.ErrAlreadyBooked
		}
	}

	c := *booking
	c.Event = nil
	s.m.bookings[booking.ID] = &c
	return nil
}

func (s *MemoryBookingStore) Delete(_ context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.bookings[id]; !ok {
		return apperrors.ErrBookingNotFound
	}
	delete(s.m.bookings, id)
	return nil
}

func (s *MemoryBookingStore) DeleteForUser(_ context.Context, id, userID int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	b, ok := s.m.bookings[id]
	if !ok || b.UserID != userID {
		return apperrors.ErrBookingNotFound
	}
	delete(s.m.bookings, id)
	return nil
}
