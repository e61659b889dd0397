package handlers

import (
	"errors"
	"net/http"

	apperrors "prism/internal/errors"
	"prism/internal/cache"
	"prism/internal/middleware"
	"prism/internal/service"
	"prism/internal/storage"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services *service.Services
	cache    *cache.Client
	images   *storage.ImageStore
}

// NewHandlers builds the handler set. cacheClient may be nil when
// caching is disabled.
func NewHandlers(services *service.Services, cacheClient *cache.Client, images *storage.ImageStore) *Handlers {
	return &Handlers{
		services: services,
		cache:    cacheClient,
		images:   images,
	}
}

// currentUserID returns the session user, or 0 for anonymous callers.
func currentUserID(c *gin.Context) int64 {
	id, _ := middleware.SessionUserID(c)
	return id
}

// redirectWithFlash queues a message and sends the browser on. Every
// form POST ends this way, success or failure.
func redirectWithFlash(c *gin.Context, message, target string) {
	middleware.Flash(c, message)
	c.Redirect(http.StatusFound, target)
}

// flashMessage maps a workflow error to the user-visible text the
// original pages showed.
func flashMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		return "Email already exists!"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, apperrors.ErrEventNotFound):
		return "Event not found."
	case errors.Is(err, apperrors.ErrVenueNotFound):
		return "Selected venue does not exist. Please choose a valid venue."
	case errors.Is(err, apperrors.ErrBookingNotFound):
		return "Booking not found."
	case errors.Is(err, apperrors.ErrUserNotFound):
		return "User not found."
	case errors.Is(err, apperrors.ErrAlreadyBooked):
		return "You have already booked this event."
	case errors.Is(err, apperrors.ErrValidationFailed):
		return "Passwords do not match."
	case errors.Is(err, apperrors.ErrConstraintViolation):
		return "A record with that identifier already exists."
	default:
		return "Something went wrong. Please try again."
	}
}

// notFound distinguishes missing-entity errors for detail routes, which
// degrade to a 404 instead of a redirect.
func notFound(err error) bool {
	return errors.Is(err, apperrors.ErrEventNotFound) ||
		errors.Is(err, apperrors.ErrVenueNotFound) ||
		errors.Is(err, apperrors.ErrBookingNotFound) ||
		errors.Is(err, apperrors.ErrUserNotFound)
}
