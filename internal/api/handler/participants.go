package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type joinRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateParticipant handles POST /participants: register a display name and
// announce the arrival.
func (h *Handler) CreateParticipant(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "name is required"})
		return
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	if _, err := h.Tracker.Join(ctx, req.Name); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// ListParticipants handles GET /participants.
func (h *Handler) ListParticipants(c *gin.Context) {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	participants, err := h.Store.GetParticipants(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, participants)
}
