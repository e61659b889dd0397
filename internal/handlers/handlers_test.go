package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"prism/internal/messaging"
	"prism/internal/middleware"
	"prism/internal/models"
	"prism/internal/repository"
	"prism/internal/service"
	"prism/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp is a full router over in-memory stores with a cookie-carrying
// client, so tests drive the same flows a browser would.
type testApp struct {
	t       *testing.T
	router  *gin.Engine
	mem     *repository.MemoryStores
	svc     *service.Services
	cookies map[string]*http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := repository.NewMemoryStores()
	stores := service.Stores{
		Users:    mem.Users,
		Venues:   mem.Venues,
		Events:   mem.Events,
		Starred:  mem.Starred,
		Bookings: mem.Bookings,
	}
	svc := service.NewServices(stores, messaging.NewNoop(), nil)

	images, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)

	h := NewHandlers(svc, nil, images)

	r := gin.New()
	r.Use(middleware.Sessions("test-secret"))

	r.GET("/", h.Index)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/events", h.ListEvents)
	r.GET("/venues", h.ListVenues)
	r.GET("/search", h.Search)
	r.GET("/search-item", h.SearchItem)
	r.GET("/about", h.About)

	user := r.Group("/")
	user.Use(middleware.RequireUser())
	{
		user.POST("/logout", h.Logout)
		user.GET("/starred", h.StarredList)
		user.POST("/star-item/:contentType/:objectID", h.StarItem)
		user.POST("/book-event/:eventID", h.BookEvent)
		user.POST("/cancel-booking/:bookingID", h.CancelBooking)
		user.GET("/booked", h.BookedEvents)
		user.GET("/dashboard", h.Dashboard)
		user.POST("/update-profile", h.UpdateProfile)
	}

	staff := r.Group("/")
	staff.Use(middleware.RequireStaff())
	{
		staff.GET("/admin-dashboard", h.AdminDashboard)
		staff.POST("/admin-dashboard", h.AdminDashboardSubmit)
		staff.GET("/database-management", h.DatabaseManagement)
		staff.POST("/user/edit/:userID", h.EditUser)
		staff.POST("/user/delete/:userID", h.DeleteUser)
		staff.POST("/venue/edit/:venueID", h.EditVenue)
		staff.POST("/venue/delete/:venueID", h.DeleteVenue)
		staff.POST("/event/edit/:eventID", h.EditEvent)
		staff.POST("/event/delete/:eventID", h.DeleteEvent)
		staff.POST("/booking/edit/:bookingID", h.EditBooking)
		staff.POST("/booking/delete/:bookingID", h.DeleteBooking)
	}

	return &testApp{
		t:       t,
		router:  r,
		mem:     mem,
		svc:     svc,
		cookies: make(map[string]*http.Cookie),
	}
}

func (a *testApp) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	a.t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range a.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		a.cookies[c.Name] = c
	}
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(http.MethodGet, path, nil)
}

// flashes drains the queued messages via the index page.
func (a *testApp) flashes() []string {
	a.t.Helper()

	w := a.get("/")
	require.Equal(a.t, http.StatusOK, w.Code)

	var payload struct {
		Messages []string `json:"messages"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload.Messages
}

func (a *testApp) seedCatalog() *models.Event {
	a.t.Helper()
	ctx := context.Background()

	venue := &models.Venue{ID: "V1", Name: "Grand Hall", Location: "Kuantan", ImagePath: models.DefaultVenueImage}
	require.NoError(a.t, a.mem.Venues.Create(ctx, venue))

	event := &models.Event{Name: "Jazz Night", Date: time.Now().AddDate(0, 1, 0), VenueID: "V1"}
	require.NoError(a.t, a.mem.Events.Create(ctx, event))
	return event
}

func (a *testApp) registerAndLogin(email string, staff bool) {
	a.t.Helper()
	ctx := context.Background()

	user, err := a.svc.Identity.Register(ctx, &models.RegisterRequest{
		FullName: "Test User",
		Email:    email,
		Password: "secret-pass",
	})
	require.NoError(a.t, err)

	if staff {
		user.IsStaff = true
		require.NoError(a.t, a.mem.Users.Update(ctx, user))
	}

	w := a.do(http.MethodPost, "/login", url.Values{
		"email":    {email},
		"password": {"secret-pass"},
	})
	require.Equal(a.t, http.StatusFound, w.Code)
}

func TestRegisterRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/register", url.Values{
		"full_name": {"Alice"},
		"email":     {"alice@example.com"},
		"password":  {"secret-pass"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = app.get("/login")
	assert.Contains(t, w.Body.String(), "Account created successfully! Please log in.")
}

func TestRegisterDuplicateEmailFlashes(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{
		"full_name": {"Alice"},
		"email":     {"alice@example.com"},
		"password":  {"secret-pass"},
	}
	app.do(http.MethodPost, "/register", form)

	w := app.do(http.MethodPost, "/register", form)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/register", w.Header().Get("Location"))
	assert.Contains(t, app.flashes(), "Email already exists!")
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)
	app.registerAndLogin("alice@example.com", false)
	app.do(http.MethodPost, "/logout", nil)

	w := app.do(http.MethodPost, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = app.get("/login")
	assert.Contains(t, w.Body.String(), "Invalid email or password.")
}

func TestIndexGreetsSessionUser(t *testing.T) {
	app := newTestApp(t)
	app.registerAndLogin("alice@example.com", false)

	w := app.get("/")
	assert.Contains(t, w.Body.String(), "Test User")
}

func TestLogoutDropsSession(t *testing.T) {
	app := newTestApp(t)
	app.registerAndLogin("alice@example.com", false)

	w := app.do(http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusFound, w.Code)

	w = app.get("/dashboard")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestBookingFlow(t *testing.T) {
	app := newTestApp(t)
	event := app.seedCatalog()
	app.registerAndLogin("alice@example.com", false)

	w := app.do(http.MethodPost, "/book-event/"+event.ID, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/booked", w.Header().Get("Location"))

	w = app.get("/booked")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You have successfully booked the event.")
	assert.Contains(t, w.Body.String(), "Jazz Night")

	var booked struct {
		Bookings []models.Booking `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booked))
	require.Len(t, booked.Bookings, 1)

	w = app.do(http.MethodPost, "/cancel-booking/1", nil)
	assert.Equal(t, http.StatusFound, w.Code)

	w = app.get("/booked")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booked))
	assert.Empty(t, booked.Bookings)
}

func TestBookTwiceFlashesAlreadyBooked(t *testing.T) {
	app := newTestApp(t)
	event := app.seedCatalog()
	app.registerAndLogin("alice@example.com", false)

	app.do(http.MethodPost, "/book-event/"+event.ID, nil)

	w := app.do(http.MethodPost, "/book-event/"+event.ID, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/events", w.Header().Get("Location"))
	assert.Contains(t, app.flashes(), "You have already booked this event.")
}

func TestBookingRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	event := app.seedCatalog()

	w := app.do(http.MethodPost, "/book-event/"+event.ID, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestStarFlow(t *testing.T) {
	app := newTestApp(t)
	event := app.seedCatalog()
	app.registerAndLogin("alice@example.com", false)

	w := app.do(http.MethodPost, "/star-item/event/"+event.ID, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/starred", w.Header().Get("Location"))

	w = app.get("/starred")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jazz Night")

	// Toggling again removes the star.
	app.do(http.MethodPost, "/star-item/event/"+event.ID, nil)
	w = app.get("/starred")
	assert.NotContains(t, w.Body.String(), "Jazz Night")
}

func TestEventsAnnotatedWithStars(t *testing.T) {
	app := newTestApp(t)
	event := app.seedCatalog()
	app.registerAndLogin("alice@example.com", false)

	app.do(http.MethodPost, "/star-item/event/"+event.ID, nil)

	w := app.get("/events")
	var resp models.EventListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{event.ID}, resp.StarredEvents)
}

func TestSearchItem(t *testing.T) {
	app := newTestApp(t)
	event := app.seedCatalog()

	w := app.get("/search-item?id=" + event.ID + "&type=event")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jazz Night")

	w = app.get("/search-item?id=E999&type=event")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.get("/search-item?id=" + event.ID + "&type=seat")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfilePasswordMismatchFlashes(t *testing.T) {
	app := newTestApp(t)
	app.registerAndLogin("alice@example.com", false)

	w := app.do(http.MethodPost, "/update-profile", url.Values{
		"full_name":        {"Alice"},
		"email":            {"alice@example.com"},
		"new_password":     {"one"},
		"confirm_password": {"two"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, app.flashes(), "Passwords do not match.")
}

func TestAdminRoutesRejectNonStaff(t *testing.T) {
	app := newTestApp(t)
	app.registerAndLogin("alice@example.com", false)

	w := app.get("/database-management")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAdminAddVenueAndEvent(t *testing.T) {
	app := newTestApp(t)
	app.registerAndLogin("admin@example.com", true)

	w := app.do(http.MethodPost, "/admin-dashboard", url.Values{
		"add_venue":      {"1"},
		"venue_id":       {"V1"},
		"venue_name":     {"Grand Hall"},
		"venue_location": {"Kuantan"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, app.flashes(), "Venue added successfully!")

	w = app.do(http.MethodPost, "/admin-dashboard", url.Values{
		"add_event":   {"1"},
		"event_name":  {"Jazz Night"},
		"event_date":  {"2026-10-05"},
		"event_venue": {"V1"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, app.flashes(), "Event added successfully!")

	w = app.get("/database-management")
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.DatabaseManagementResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Venues, 1)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "E1", resp.Events[0].ID)
}

func TestAdminAddEventBadVenueFlashes(t *testing.T) {
	app := newTestApp(t)
	app.registerAndLogin("admin@example.com", true)

	w := app.do(http.MethodPost, "/admin-dashboard", url.Values{
		"add_event":   {"1"},
		"event_name":  {"Jazz Night"},
		"event_date":  {"2026-10-05"},
		"event_venue": {"V404"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, app.flashes(), "Selected venue does not exist. Please choose a valid venue.")
}

func TestAdminEditAndDeleteEvent(t *testing.T) {
	app := newTestApp(t)
	event := app.seedCatalog()
	app.registerAndLogin("admin@example.com", true)

	w := app.do(http.MethodPost, "/event/edit/"+event.ID, url.Values{
		"name":  {"Jazz Night Extended"},
		"date":  {"2026-12-01"},
		"venue": {"V1"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/database-management", w.Header().Get("Location"))

	updated, err := app.svc.Events.Get(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jazz Night Extended", updated.Name)

	w = app.do(http.MethodPost, "/event/delete/"+event.ID, nil)
	assert.Equal(t, http.StatusFound, w.Code)

	_, err = app.svc.Events.Get(context.Background(), event.ID)
	assert.Error(t, err)
}

func TestAdminDeleteMissingEventIs404(t *testing.T) {
	app := newTestApp(t)
	app.registerAndLogin("admin@example.com", true)

	w := app.do(http.MethodPost, "/event/delete/E999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminEditUserStaffFlag(t *testing.T) {
	app := newTestApp(t)
	app.registerAndLogin("admin@example.com", true)

	other, err := app.svc.Identity.Register(context.Background(), &models.RegisterRequest{
		FullName: "Bob",
		Email:    "bob@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	w := app.do(http.MethodPost, "/user/edit/2", url.Values{
		"full_name": {"Bob Promoted"},
		"email":     {"bob@example.com"},
		"is_staff":  {"on"},
	})
	assert.Equal(t, http.StatusFound, w.Code)

	updated, err := app.mem.Users.GetByID(context.Background(), other.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsStaff)
	assert.Equal(t, "Bob Promoted", updated.FullName)
}
