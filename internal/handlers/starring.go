package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StarItem - POST /star-item/:contentType/:objectID
// Toggles the starred state of the triple and lands on the starred
// listing, as the original flow did.
func (h *Handlers) StarItem(c *gin.Context) {
	userID := currentUserID(c)
	contentType := c.Param("contentType")
	objectID := c.Param("objectID")

	starred, err := h.services.Starring.Toggle(c.Request.Context(), userID, contentType, objectID)
	if err != nil {
		slog.Error("Failed to toggle star", "error", err,
			"user_id", userID, "content_type", contentType, "object_id", objectID)
		redirectWithFlash(c, flashMessage(err), "/starred")
		return
	}

	if starred {
		redirectWithFlash(c, "Item added to your starred list.", "/starred")
	} else {
		redirectWithFlash(c, "Item removed from your starred list.", "/starred")
	}
}

// StarredList - GET /starred
// The caller's starred venues and events, with dangling references
// silently omitted.
func (h *Handlers) StarredList(c *gin.Context) {
	userID := currentUserID(c)

	response, err := h.services.Starring.ListStarred(c.Request.Context(), userID)
	if err != nil {
		slog.Error("Failed to list starred items", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list starred items"})
		return
	}

	c.JSON(http.StatusOK, response)
}
