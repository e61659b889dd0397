package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "prism/internal/errors"
	"prism/internal/models"

	"github.com/gin-gonic/gin"
)

// AdminDashboard - GET /admin-dashboard
// Venue inventory for the add-event and add-venue forms.
func (h *Handlers) AdminDashboard(c *gin.Context) {
	venues, err := h.services.Venues.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list venues", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"venues": venues})
}

// AdminDashboardSubmit - POST /admin-dashboard
// The original dashboard multiplexes two forms on one action; the
// submitted button name picks the operation.
func (h *Handlers) AdminDashboardSubmit(c *gin.Context) {
	switch {
	case c.PostForm("add_event") != "":
		h.addEvent(c)
	case c.PostForm("add_venue") != "":
		h.addVenue(c)
	default:
		redirectWithFlash(c, "Unknown form submission.", "/admin-dashboard")
	}
}

func (h *Handlers) addEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithFlash(c, "Please fill in the event name, date and venue.", "/admin-dashboard")
		return
	}

	event, err := h.services.Events.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidationFailed) {
			redirectWithFlash(c, "Invalid event date. Please use YYYY-MM-DD.", "/admin-dashboard")
			return
		}
		slog.Error("Failed to create event", "error", err, "venue_id", req.VenueID)
		redirectWithFlash(c, flashMessage(err), "/admin-dashboard")
		return
	}

	if h.cache != nil {
		h.cache.InvalidateEventsList(c.Request.Context())
	}

	slog.Info("Event created", "event_id", event.ID, "venue_id", event.VenueID)
	redirectWithFlash(c, "Event added successfully!", "/admin-dashboard")
}

func (h *Handlers) addVenue(c *gin.Context) {
	var req models.CreateVenueRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithFlash(c, "Please fill in the venue ID, name and location.", "/admin-dashboard")
		return
	}

	imagePath := ""
	if file, err := c.FormFile("venue_image"); err == nil && file != nil {
		imagePath, err = h.images.SaveVenueImage(req.VenueID, file)
		if err != nil {
			slog.Error("Failed to store venue image", "error", err, "venue_id", req.VenueID)
			redirectWithFlash(c, "Failed to store the venue image.", "/admin-dashboard")
			return
		}
	}

	if _, err := h.services.Venues.Create(c.Request.Context(), &req, imagePath); err != nil {
		slog.Error("Failed to create venue", "error", err, "venue_id", req.VenueID)
		redirectWithFlash(c, flashMessage(err), "/admin-dashboard")
		return
	}

	redirectWithFlash(c, "Venue added successfully!", "/admin-dashboard")
}

// DatabaseManagement - GET /database-management
// The staff overview of every entity.
func (h *Handlers) DatabaseManagement(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.services.Users.List(ctx)
	if err != nil {
		slog.Error("Failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load overview"})
		return
	}
	venues, err := h.services.Venues.List(ctx)
	if err != nil {
		slog.Error("Failed to list venues", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load overview"})
		return
	}
	events, err := h.services.Events.List(ctx)
	if err != nil {
		slog.Error("Failed to list events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load overview"})
		return
	}
	bookings, err := h.services.Bookings.ListAll(ctx)
	if err != nil {
		slog.Error("Failed to list bookings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load overview"})
		return
	}

	c.JSON(http.StatusOK, models.DatabaseManagementResponse{
		Users:    users,
		Venues:   venues,
		Events:   events,
		Bookings: bookings,
	})
}

// EditUser - POST /user/edit/:userID
func (h *Handlers) EditUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithFlash(c, "Please provide a full name and a valid email.", "/database-management")
		return
	}

	user, err := h.services.Users.Update(c.Request.Context(), userID, &req)
	if err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		slog.Error("Failed to update user", "error", err, "user_id", userID)
		redirectWithFlash(c, flashMessage(err), "/database-management")
		return
	}

	redirectWithFlash(c, "User "+user.FullName+" has been updated successfully.", "/database-management")
}

// DeleteUser - POST /user/delete/:userID
func (h *Handlers) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.services.Users.Delete(c.Request.Context(), userID); err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		slog.Error("Failed to delete user", "error", err, "user_id", userID)
		redirectWithFlash(c, flashMessage(err), "/database-management")
		return
	}

	redirectWithFlash(c, "User has been deleted successfully.", "/database-management")
}

// EditVenue - POST /venue/edit/:venueID
func (h *Handlers) EditVenue(c *gin.Context) {
	venueID := c.Param("venueID")

	var req models.UpdateVenueRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithFlash(c, "Please provide a venue name and location.", "/database-management")
		return
	}

	imagePath := ""
	if file, err := c.FormFile("image"); err == nil && file != nil {
		// Drop the previous upload before storing the replacement.
		if venue, err := h.services.Venues.Get(c.Request.Context(), venueID); err == nil {
			if err := h.images.RemoveVenueImage(venue.ImagePath); err != nil {
				slog.Error("Failed to remove old venue image", "error", err, "venue_id", venueID)
			}
		}
		imagePath, err = h.images.SaveVenueImage(venueID, file)
		if err != nil {
			slog.Error("Failed to store venue image", "error", err, "venue_id", venueID)
			redirectWithFlash(c, "Failed to store the venue image.", "/database-management")
			return
		}
	}

	venue, err := h.services.Venues.Update(c.Request.Context(), venueID, &req, imagePath)
	if err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
			return
		}
		slog.Error("Failed to update venue", "error", err, "venue_id", venueID)
		redirectWithFlash(c, flashMessage(err), "/database-management")
		return
	}

	redirectWithFlash(c, "Venue "+venue.Name+" has been updated successfully.", "/database-management")
}

// DeleteVenue - POST /venue/delete/:venueID
// Deleting a venue cascades to its events and their bookings.
func (h *Handlers) DeleteVenue(c *gin.Context) {
	venueID := c.Param("venueID")

	if err := h.services.Venues.Delete(c.Request.Context(), venueID); err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
			return
		}
		slog.Error("Failed to delete venue", "error", err, "venue_id", venueID)
		redirectWithFlash(c, flashMessage(err), "/database-management")
		return
	}

	if h.cache != nil {
		h.cache.InvalidateEventsList(c.Request.Context())
	}

	redirectWithFlash(c, "Venue has been deleted successfully.", "/database-management")
}

// EditEvent - POST /event/edit/:eventID
func (h *Handlers) EditEvent(c *gin.Context) {
	eventID := c.Param("eventID")

	var req models.UpdateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithFlash(c, "Please provide an event name, date and venue.", "/database-management")
		return
	}

	event, err := h.services.Events.Update(c.Request.Context(), eventID, &req)
	if err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidationFailed) {
			redirectWithFlash(c, "Invalid event date. Please use YYYY-MM-DD.", "/database-management")
			return
		}
		slog.Error("Failed to update event", "error", err, "event_id", eventID)
		redirectWithFlash(c, flashMessage(err), "/database-management")
		return
	}

	if h.cache != nil {
		h.cache.InvalidateEventsList(c.Request.Context())
	}

	redirectWithFlash(c, "Event "+event.Name+" has been updated successfully.", "/database-management")
}

// DeleteEvent - POST /event/delete/:eventID
func (h *Handlers) DeleteEvent(c *gin.Context) {
	eventID := c.Param("eventID")

	if err := h.services.Events.Delete(c.Request.Context(), eventID); err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		slog.Error("Failed to delete event", "error", err, "event_id", eventID)
		redirectWithFlash(c, flashMessage(err), "/database-management")
		return
	}

	if h.cache != nil {
		h.cache.InvalidateEventsList(c.Request.Context())
	}

	redirectWithFlash(c, "Event has been deleted successfully.", "/database-management")
}

// EditBooking - POST /booking/edit/:bookingID
func (h *Handlers) EditBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("bookingID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	var req models.UpdateBookingRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithFlash(c, "Please select a user and an event.", "/database-management")
		return
	}

	if err := h.services.Bookings.AdminUpdate(c.Request.Context(), bookingID, req.UserID, req.EventID); err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		slog.Error("Failed to update booking", "error", err, "booking_id", bookingID)
		redirectWithFlash(c, flashMessage(err), "/database-management")
		return
	}

	redirectWithFlash(c, "Booking "+strconv.FormatInt(bookingID, 10)+" has been updated successfully.", "/database-management")
}

// DeleteBooking - POST /booking/delete/:bookingID
func (h *Handlers) DeleteBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("bookingID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if err := h.services.Bookings.AdminDelete(c.Request.Context(), bookingID); err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		slog.Error("Failed to delete booking", "error", err, "booking_id", bookingID)
		redirectWithFlash(c, flashMessage(err), "/database-management")
		return
	}

	redirectWithFlash(c, "Booking has been deleted successfully.", "/database-management")
}
