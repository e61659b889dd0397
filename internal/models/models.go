package models

// RegisterRequest is the /register form payload.
type RegisterRequest struct {
	FullName string `form:"full_name" json:"full_name" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
}

// LoginRequest is the /login form payload.
type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// UpdateProfileRequest is the /update-profile form payload. The password
// change is optional; when NewPassword is set it must match
// ConfirmPassword.
type UpdateProfileRequest struct {
	FullName        string `form:"full_name" json:"full_name" binding:"required"`
	Email           string `form:"email" json:"email" binding:"required,email"`
	NewPassword     string `form:"new_password" json:"new_password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

// CreateVenueRequest is the admin-dashboard add-venue payload. The image
// file travels as multipart alongside these fields.
type CreateVenueRequest struct {
	VenueID  string `form:"venue_id" json:"venue_id" binding:"required"`
	Name     string `form:"venue_name" json:"venue_name" binding:"required"`
	Location string `form:"venue_location" json:"venue_location" binding:"required"`
}

// UpdateVenueRequest is the admin edit-venue payload.
type UpdateVenueRequest struct {
	Name     string `form:"name" json:"name" binding:"required"`
	Location string `form:"location" json:"location" binding:"required"`
}

// CreateEventRequest is the admin-dashboard add-event payload. Date uses
// the HTML date input format (2006-01-02).
type CreateEventRequest struct {
	Name    string `form:"event_name" json:"event_name" binding:"required"`
	Date    string `form:"event_date" json:"event_date" binding:"required"`
	VenueID string `form:"event_venue" json:"event_venue" binding:"required"`
}

// UpdateEventRequest is the admin edit-event payload.
type UpdateEventRequest struct {
	Name    string `form:"name" json:"name" binding:"required"`
	Date    string `form:"date" json:"date" binding:"required"`
	VenueID string `form:"venue" json:"venue" binding:"required"`
}

// UpdateUserRequest is the admin edit-user payload. IsStaff arrives as
// the checkbox value "on" when checked.
type UpdateUserRequest struct {
	FullName string `form:"full_name" json:"full_name" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	IsStaff  string `form:"is_staff" json:"is_staff"`
}

// UpdateBookingRequest is the admin edit-booking payload.
type UpdateBookingRequest struct {
	UserID  int64  `form:"user" json:"user" binding:"required"`
	EventID string `form:"event" json:"event" binding:"required"`
}

// EventListResponse annotates the event catalog with the caller's
// starred event IDs (empty when anonymous).
type EventListResponse struct {
	Events        []Event  `json:"events"`
	StarredEvents []string `json:"starred_events"`
}

// VenueListResponse annotates the venue catalog with the caller's
// starred venue IDs (empty when anonymous).
type VenueListResponse struct {
	Venues        []Venue  `json:"venues"`
	StarredVenues []string `json:"starred_venues"`
}

// SearchResponse carries matches for both entity kinds of a /search
// query.
type SearchResponse struct {
	Query  string  `json:"query"`
	Events []Event `json:"events"`
	Venues []Venue `json:"venues"`
}

// StarredListResponse partitions a user's starred items into resolved
// venues and events. Orphaned references are omitted.
type StarredListResponse struct {
	Venues []Venue `json:"venues"`
	Events []Event `json:"events"`
}

// DashboardResponse is the logged-in user's profile plus bookings.
type DashboardResponse struct {
	User     User      `json:"user"`
	Bookings []Booking `json:"bookings"`
}

// DatabaseManagementResponse is the staff overview of all entities.
type DatabaseManagementResponse struct {
	Users    []User    `json:"users"`
	Venues   []Venue   `json:"venues"`
	Events   []Event   `json:"events"`
	Bookings []Booking `json:"bookings"`
}
