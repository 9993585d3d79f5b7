package handler_test

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"chatroom/backend/internal/models"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateParticipant(ctx context.Context, p *models.Participant) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockStorage) GetParticipants(ctx context.Context) ([]models.Participant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Participant), args.Error(1)
}

func (m *MockStorage) GetParticipantByName(ctx context.Context, name string) (*models.Participant, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Participant), args.Error(1)
}

func (m *MockStorage) TouchParticipant(ctx context.Context, name string, at time.Time) error {
	args := m.Called(ctx, name, at)
	return args.Error(0)
}

func (m *MockStorage) GetStaleParticipants(ctx context.Context, cutoff time.Time) ([]models.Participant, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Participant), args.Error(1)
}

func (m *MockStorage) RemoveParticipantIfStale(ctx context.Context, name string, cutoff time.Time) (bool, error) {
	args := m.Called(ctx, name, cutoff)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) CreateMessage(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockStorage) GetMessages(ctx context.Context) ([]models.Message, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) PublishMessage(ctx context.Context, msg models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockStorage) SubscribeMessages(ctx context.Context) *redis.PubSub {
	args := m.Called(ctx)
	return args.Get(0).(*redis.PubSub)
}
