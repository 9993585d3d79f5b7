package chathub_test

import (
	"sync"

	"chatroom/backend/internal/models"
)

// mockClient is an in-memory Client for exercising the hub without a
// websocket connection.
type mockClient struct {
	id   string
	name string
	Recv chan models.Message

	closeOnce sync.Once
	closed    chan struct{}
}

func newMockClient(id, name string, buffer int) *mockClient {
	return &mockClient{
		id:     id,
		name:   name,
		Recv:   make(chan models.Message, buffer),
		closed: make(chan struct{}),
	}
}

func (m *mockClient) GetID() string                         { return m.id }
func (m *mockClient) GetName() string                       { return m.name }
func (m *mockClient) GetSendChannel() chan<- models.Message { return m.Recv }
func (m *mockClient) Run()                                  {}

func (m *mockClient) Close() {
	m.closeOnce.Do(func() { close(m.closed) })
}

func (m *mockClient) isClosed() bool {
	select {
	case <-m.closed:
		return true
	default:
		return false
	}
}
