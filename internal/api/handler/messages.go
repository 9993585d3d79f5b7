package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"chatroom/backend/internal/models"
	"chatroom/backend/internal/sanitize"
	"chatroom/backend/internal/storage"
	"chatroom/backend/internal/visibility"
)

type messageRequest struct {
	To   string `json:"to" binding:"required"`
	Text string `json:"text" binding:"required"`
	Kind string `json:"kind" binding:"required,oneof=direct private"`
}

// CreateMessage handles POST /messages. The sender comes from the identity
// header and must be present in the room.
func (h *Handler) CreateMessage(c *gin.Context) {
	sender, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unresolvable sender identity"})
		return
	}

	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	if _, err := h.Store.GetParticipantByName(ctx, sender); err != nil {
		if errors.Is(err, storage.ErrParticipantNotFound) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "sender is not in the room"})
			return
		}
		h.handleError(c, err)
		return
	}

	msg := models.Message{
		From: sender,
		To:   sanitize.Clean(req.To),
		Text: sanitize.Clean(req.Text),
		Kind: req.Kind,
		Time: time.Now().Format(models.TimeLayout),
	}
	if msg.To == "" || msg.Text == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "to and text must not be empty"})
		return
	}

	if err := h.Store.CreateMessage(ctx, &msg); err != nil {
		h.handleError(c, err)
		return
	}
	if err := h.Store.PublishMessage(ctx, msg); err != nil {
		// Fanout is best effort; the message is already durable.
		h.Log.WithError(err).Warn("Failed to publish message event")
	}
	c.Status(http.StatusCreated)
}

// ListMessages handles GET /messages. The requester sees broadcasts, direct
// messages, and anything sent to or by them; an optional positive limit
// returns only the most recent entries, still in ascending insertion order.
func (h *Handler) ListMessages(c *gin.Context) {
	requester, _ := identity(c) // absent identity reads the public subset

	limitParam, hasLimit := c.GetQuery("limit")
	limit := 0
	if hasLimit {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": visibility.ErrInvalidLimit.Error()})
			return
		}
		limit = parsed
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	msgs, err := h.Store.GetMessages(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if !hasLimit {
		c.JSON(http.StatusOK, visibility.VisibleTo(msgs, requester))
		return
	}

	visible, err := visibility.VisibleToLast(msgs, requester, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, visible)
}
