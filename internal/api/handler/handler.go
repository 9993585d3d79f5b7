package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"chatroom/backend/internal/chathub"
	"chatroom/backend/internal/presence"
	"chatroom/backend/internal/storage"
)

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	Store   storage.Storage
	Tracker *presence.Tracker
	Hub     *chathub.Hub
	Timeout time.Duration
	Log     *logrus.Logger
}

func NewHandler(store storage.Storage, tracker *presence.Tracker, hub *chathub.Hub, timeout time.Duration, log *logrus.Logger) *Handler {
	return &Handler{
		Store:   store,
		Tracker: tracker,
		Hub:     hub,
		Timeout: timeout,
		Log:     log,
	}
}

// storeCtx bounds a request-scoped store call so a stuck store surfaces as an
// error, never a hang.
func (h *Handler) storeCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.Timeout)
}
