package chathub_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"chatroom/backend/internal/chathub"
	"chatroom/backend/internal/models"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func startHub(t *testing.T) *chathub.Hub {
	t.Helper()
	hub := chathub.NewHub(nil, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := startHub(t)
	client := newMockClient("conn-1", "alice", 1)

	hub.RegisterCh <- client
	time.Sleep(50 * time.Millisecond)
	assert.Contains(t, hub.Clients, "conn-1")

	hub.UnregisterCh <- client
	time.Sleep(50 * time.Millisecond)
	assert.NotContains(t, hub.Clients, "conn-1")
	assert.True(t, client.isClosed())
}

func TestHub_FanOutAppliesVisibility(t *testing.T) {
	hub := startHub(t)
	alice := newMockClient("conn-a", "alice", 4)
	carol := newMockClient("conn-c", "carol", 4)
	hub.RegisterCh <- alice
	hub.RegisterCh <- carol

	hub.BroadcastCh <- models.Message{From: "bob", To: "alice", Text: "secret", Kind: models.KindPrivate}
	hub.BroadcastCh <- models.Message{From: "bob", To: models.Broadcast, Text: "hi all", Kind: models.KindDirect}
	time.Sleep(50 * time.Millisecond)

	// Alice gets the private message and the broadcast.
	assert.Len(t, alice.Recv, 2)
	msg := <-alice.Recv
	assert.Equal(t, "secret", msg.Text)

	// Carol only gets the broadcast.
	assert.Len(t, carol.Recv, 1)
	msg = <-carol.Recv
	assert.Equal(t, "hi all", msg.Text)
}

func TestHub_DropsSlowWatcher(t *testing.T) {
	hub := startHub(t)
	slow := newMockClient("conn-slow", "dave", 1)
	hub.RegisterCh <- slow

	// First event fills the buffer, second finds it full.
	hub.BroadcastCh <- models.Message{From: "bob", To: models.Broadcast, Text: "one", Kind: models.KindDirect}
	hub.BroadcastCh <- models.Message{From: "bob", To: models.Broadcast, Text: "two", Kind: models.KindDirect}
	time.Sleep(50 * time.Millisecond)

	assert.NotContains(t, hub.Clients, "conn-slow")
	assert.True(t, slow.isClosed())
}

func TestHub_ShutdownClosesWatchers(t *testing.T) {
	hub := chathub.NewHub(nil, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client := newMockClient("conn-1", "alice", 1)
	hub.RegisterCh <- client
	time.Sleep(50 * time.Millisecond)

	cancel()
	time.Sleep(50 * time.Millisecond)
	assert.True(t, client.isClosed())
}
