package storage

import (
	"chatroom/backend/internal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store-level errors, mapped onto the HTTP status contract at the handler
// boundary.
var (
	ErrDuplicateName       = errors.New("participant name already taken")
	ErrParticipantNotFound = errors.New("participant not found")
)

// eventsChannel is the Redis Pub/Sub channel carrying stored messages to the
// event hub.
const eventsChannel = "room:events"

type Storage interface {
	CreateParticipant(ctx context.Context, p *models.Participant) error
	GetParticipants(ctx context.Context) ([]models.Participant, error)
	GetParticipantByName(ctx context.Context, name string) (*models.Participant, error)
	TouchParticipant(ctx context.Context, name string, at time.Time) error
	GetStaleParticipants(ctx context.Context, cutoff time.Time) ([]models.Participant, error)
	RemoveParticipantIfStale(ctx context.Context, name string, cutoff time.Time) (bool, error)

	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessages(ctx context.Context) ([]models.Message, error)

	PublishMessage(ctx context.Context, msg models.Message) error
	SubscribeMessages(ctx context.Context) *redis.PubSub
}

// Service implements Storage on PostgreSQL (the two collections) and Redis
// (the event bus).
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
	}
}

// CreateParticipant inserts the participant unless the name is already taken.
// The ON CONFLICT DO NOTHING insert resolves concurrent joins with the same
// name to exactly one winner without a read-then-write race.
func (s *Service) CreateParticipant(ctx context.Context, p *models.Participant) error {
	res := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(p)
	if res.Error != nil {
		return fmt.Errorf("create participant %q: %w", p.Name, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDuplicateName
	}
	return nil
}

// GetParticipants returns everyone currently present in the room.
func (s *Service) GetParticipants(ctx context.Context) ([]models.Participant, error) {
	var participants []models.Participant
	if err := s.DB.WithContext(ctx).Find(&participants).Error; err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return participants, nil
}

// GetParticipantByName returns the participant with the given name, or
// ErrParticipantNotFound.
func (s *Service) GetParticipantByName(ctx context.Context, name string) (*models.Participant, error) {
	var p models.Participant
	err := s.DB.WithContext(ctx).Where("name = ?", name).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find participant %q: %w", name, err)
	}
	return &p, nil
}

// TouchParticipant refreshes the participant's heartbeat timestamp. The
// single-row UPDATE keeps heartbeat writes atomic with respect to the
// sweeper's conditional delete.
func (s *Service) TouchParticipant(ctx context.Context, name string, at time.Time) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Participant{}).
		Where("name = ?", name).
		Update("last_heartbeat", at)
	if res.Error != nil {
		return fmt.Errorf("touch participant %q: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

// GetStaleParticipants returns the participants whose last heartbeat is
// strictly older than the cutoff.
func (s *Service) GetStaleParticipants(ctx context.Context, cutoff time.Time) ([]models.Participant, error) {
	var stale []models.Participant
	if err := s.DB.WithContext(ctx).Where("last_heartbeat < ?", cutoff).Find(&stale).Error; err != nil {
		return nil, fmt.Errorf("list stale participants: %w", err)
	}
	return stale, nil
}

// RemoveParticipantIfStale deletes the participant only if it is still stale
// at delete time. It reports whether a row was removed; false means a
// heartbeat landed after the stale scan and the participant survives.
func (s *Service) RemoveParticipantIfStale(ctx context.Context, name string, cutoff time.Time) (bool, error) {
	res := s.DB.WithContext(ctx).
		Where("name = ? AND last_heartbeat < ?", name, cutoff).
		Delete(&models.Participant{})
	if res.Error != nil {
		return false, fmt.Errorf("remove participant %q: %w", name, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// CreateMessage stores a message. Messages are append-only.
func (s *Service) CreateMessage(ctx context.Context, msg *models.Message) error {
	if err := s.DB.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("create message from %q: %w", msg.From, err)
	}
	return nil
}

// GetMessages returns every stored message in ascending insertion order.
func (s *Service) GetMessages(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	if err := s.DB.WithContext(ctx).Order("id asc").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// PublishMessage pushes a stored message onto the Redis event channel for the
// websocket hub.
func (s *Service) PublishMessage(ctx context.Context, msg models.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := s.Redis.Publish(ctx, eventsChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish message event: %w", err)
	}
	return nil
}

// SubscribeMessages subscribes to the Redis event channel.
func (s *Service) SubscribeMessages(ctx context.Context) *redis.PubSub {
	return s.Redis.Subscribe(ctx, eventsChannel)
}
