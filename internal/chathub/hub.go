// Package chathub fans stored room messages out to connected websocket
// watchers. Handlers and the presence tracker publish every stored message to
// Redis Pub/Sub; the hub subscribes and forwards each one to the watchers
// entitled to see it.
package chathub

import (
	"context"

	"github.com/sirupsen/logrus"

	"chatroom/backend/internal/models"
	"chatroom/backend/internal/storage"
	"chatroom/backend/internal/visibility"
)

type Hub struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	// BroadcastCh carries messages to be fanned out. The Pub/Sub listener
	// feeds it in production; tests feed it directly.
	BroadcastCh chan models.Message

	Store storage.Storage
	log   *logrus.Logger
}

func NewHub(store storage.Storage, log *logrus.Logger) *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		BroadcastCh:  make(chan models.Message),
		Store:        store,
		log:          log,
	}
}

// Run is the hub's dispatch loop. It owns the Clients map; register,
// unregister and fanout all happen on this goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for id, client := range h.Clients {
				delete(h.Clients, id)
				client.Close()
			}
			return

		case client := <-h.RegisterCh:
			h.Clients[client.GetID()] = client
			h.log.WithField("watcher", client.GetID()).Debug("Watcher registered")

		case client := <-h.UnregisterCh:
			if _, ok := h.Clients[client.GetID()]; ok {
				delete(h.Clients, client.GetID())
				client.Close()
				h.log.WithField("watcher", client.GetID()).Debug("Watcher unregistered")
			}

		case msg := <-h.BroadcastCh:
			h.fanOut(msg)
		}
	}
}

// Listen consumes the Redis event channel and feeds the dispatch loop. Run
// separately from Run so the hub can be exercised without a live Redis.
func (h *Hub) Listen(ctx context.Context) {
	pubsub := h.Store.SubscribeMessages(ctx)
	defer pubsub.Close()

	for m := range pubsub.Channel() {
		msg, err := decodeMessage(m.Payload)
		if err != nil {
			h.log.WithError(err).Warn("Dropping malformed room event")
			continue
		}
		select {
		case h.BroadcastCh <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// fanOut delivers one message to every watcher entitled to see it. A watcher
// whose send buffer is full is dropped rather than allowed to stall the hub.
func (h *Hub) fanOut(msg models.Message) {
	for id, client := range h.Clients {
		if !visibility.Visible(msg, client.GetName()) {
			continue
		}
		select {
		case client.GetSendChannel() <- msg:
		default:
			delete(h.Clients, id)
			client.Close()
			h.log.WithField("watcher", id).Warn("Dropped slow watcher")
		}
	}
}
