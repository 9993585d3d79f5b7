package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatroom/backend/internal/presence"
	"chatroom/backend/internal/storage"
	"chatroom/backend/internal/visibility"
)

// handleError maps component errors onto the HTTP status contract. Anything
// outside the taxonomy is a store failure and surfaces as 500 with the
// store's diagnostic message.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, presence.ErrInvalidName):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, visibility.ErrInvalidLimit):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrParticipantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.Log.WithError(err).Error("Store operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
