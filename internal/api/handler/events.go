package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"chatroom/backend/internal/chathub"
	"chatroom/backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS for the polling API is handled by middleware; the event stream
	// accepts any origin the same way.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeEvents handles GET /events: upgrades to a websocket and streams every
// stored message the watcher is entitled to see, as it happens. Watchers
// without a resolvable identity receive the public subset.
func (h *Handler) ServeEvents(c *gin.Context) {
	name, _ := identity(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
		return
	}

	client := &chathub.WebSocketClient{
		ID:   uuid.New().String(),
		Name: name,
		Conn: conn,
		Hub:  h.Hub,
		Send: make(chan models.Message, 256),
		Log:  h.Log,
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
