package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"prism/internal/middleware"
	"prism/internal/models"

	"github.com/gin-gonic/gin"
)

// BookEvent - POST /book-event/:eventID
func (h *Handlers) BookEvent(c *gin.Context) {
	userID := currentUserID(c)
	eventID := c.Param("eventID")

	booking, err := h.services.Bookings.Book(c.Request.Context(), userID, eventID)
	if err != nil {
		slog.Error("Failed to book event", "error", err, "user_id", userID, "event_id", eventID)
		redirectWithFlash(c, flashMessage(err), "/events")
		return
	}

	slog.Info("Event booked", "booking_id", booking.ID, "user_id", userID, "event_id", eventID)
	redirectWithFlash(c, "You have successfully booked the event.", "/booked")
}

// CancelBooking - POST /cancel-booking/:bookingID
// Ownership is part of the lookup: cancelling someone else's booking
// reads as "booking not found".
func (h *Handlers) CancelBooking(c *gin.Context) {
	userID := currentUserID(c)

	bookingID, err := strconv.ParseInt(c.Param("bookingID"), 10, 64)
	if err != nil {
		redirectWithFlash(c, "Booking not found.", "/booked")
		return
	}

	if err := h.services.Bookings.Cancel(c.Request.Context(), userID, bookingID); err != nil {
		slog.Error("Failed to cancel booking", "error", err, "user_id", userID, "booking_id", bookingID)
		redirectWithFlash(c, flashMessage(err), "/booked")
		return
	}

	redirectWithFlash(c, "Your booking has been cancelled.", "/booked")
}

// BookedEvents - GET /booked
func (h *Handlers) BookedEvents(c *gin.Context) {
	userID := currentUserID(c)

	bookings, err := h.services.Bookings.ListForUser(c.Request.Context(), userID)
	if err != nil {
		slog.Error("Failed to list bookings", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"messages": middleware.TakeFlashes(c),
	})
}

// Dashboard - GET /dashboard
// The caller's profile plus bookings joined with event and venue.
func (h *Handlers) Dashboard(c *gin.Context) {
	userID := currentUserID(c)

	user, err := h.services.Identity.GetProfile(c.Request.Context(), userID)
	if err != nil {
		slog.Error("Failed to load profile", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	bookings, err := h.services.Bookings.ListForUser(c.Request.Context(), userID)
	if err != nil {
		slog.Error("Failed to list bookings", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, models.DashboardResponse{User: *user, Bookings: bookings})
}
