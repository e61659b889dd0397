package handlers

import (
	"log/slog"
	"net/http"

	"prism/internal/models"

	"github.com/gin-gonic/gin"
)

// ListEvents - GET /events
// All events ordered by date, annotated with the caller's starred event
// IDs. Anonymous listings are served from cache when available.
func (h *Handlers) ListEvents(c *gin.Context) {
	userID := currentUserID(c)

	// Only the anonymous listing is cacheable: logged-in responses
	// carry per-user starred annotations.
	if userID == 0 && h.cache != nil {
		if raw, err := h.cache.GetEventsListRaw(c.Request.Context()); err == nil {
			c.Data(http.StatusOK, "application/json", raw)
			return
		}
	}

	events, err := h.services.Events.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
		return
	}

	starred, err := h.services.Starring.ObjectIDs(c.Request.Context(), userID, models.ContentTypeEvent)
	if err != nil {
		slog.Error("Failed to load starred events", "error", err, "user_id", userID)
		starred = nil
	}

	response := models.EventListResponse{Events: events, StarredEvents: starred}

	if userID == 0 && h.cache != nil {
		h.cache.SetEventsList(c.Request.Context(), response)
	}

	c.JSON(http.StatusOK, response)
}

// ListVenues - GET /venues
// All venues, annotated with the caller's starred venue IDs.
func (h *Handlers) ListVenues(c *gin.Context) {
	venues, err := h.services.Venues.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list venues", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list venues"})
		return
	}

	userID := currentUserID(c)
	starred, err := h.services.Starring.ObjectIDs(c.Request.Context(), userID, models.ContentTypeVenue)
	if err != nil {
		slog.Error("Failed to load starred venues", "error", err, "user_id", userID)
		starred = nil
	}

	c.JSON(http.StatusOK, models.VenueListResponse{Venues: venues, StarredVenues: starred})
}

// Search - GET /search?q=
// Case-insensitive substring match over events (name, venue name) and
// venues (name, location).
func (h *Handlers) Search(c *gin.Context) {
	query := c.Query("q")

	response, err := h.services.Events.SearchCatalog(c.Request.Context(), query)
	if err != nil {
		slog.Error("Failed to search catalog", "error", err, "query", query)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// SearchItem - GET /search-item?id=&type=
// Single item lookup by ID and content type.
func (h *Handlers) SearchItem(c *gin.Context) {
	itemID := c.Query("id")
	itemType := c.Query("type")

	switch itemType {
	case models.ContentTypeVenue:
		venue, err := h.services.Venues.Get(c.Request.Context(), itemID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": venue})
	case models.ContentTypeEvent:
		event, err := h.services.Events.Get(c.Request.Context(), itemID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": event})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item type"})
	}
}
