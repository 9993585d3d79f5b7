package chathub

import "chatroom/backend/internal/models"

// Client is the interface for one live event-stream subscriber. It abstracts
// the underlying connection so the hub can manage watchers uniformly and
// tests can register fakes.
type Client interface {
	// GetID returns the connection identifier. Watchers are keyed by
	// connection, not by name, so two tabs of the same participant each get
	// their own stream.
	GetID() string
	// GetName returns the watcher's display name, used for the per-watcher
	// visibility check. Anonymous watchers have an empty name.
	GetName() string

	// GetSendChannel returns the channel the hub writes outgoing messages to.
	GetSendChannel() chan<- models.Message

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's outgoing channel and connection.
	Close()
}
