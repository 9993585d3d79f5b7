package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatroom/backend/internal/storage"
)

// UpdateStatus handles POST /status: the participant heartbeat. An identity
// that is absent or names nobody in the room yields 404.
func (h *Handler) UpdateStatus(c *gin.Context) {
	name, ok := identity(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unresolvable identity"})
		return
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	if err := h.Tracker.Heartbeat(ctx, name); err != nil {
		if errors.Is(err, storage.ErrParticipantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
