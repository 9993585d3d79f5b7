// Package presence decides who is still in the room. The Tracker handles
// joins and heartbeats; the Sweeper evicts participants whose heartbeats have
// stopped.
package presence

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"

	"chatroom/backend/internal/models"
	"chatroom/backend/internal/sanitize"
	"chatroom/backend/internal/storage"
)

// ErrInvalidName is returned for names that are empty after sanitizing or
// purely numeric. Numeric-only names are rejected to avoid collision with
// internal identifiers.
var ErrInvalidName = errors.New("name must be non-empty and not purely numeric")

const (
	joinNotice  = "has joined the room"
	leaveNotice = "has left the room"
)

type Tracker struct {
	store storage.Storage
	log   *logrus.Logger
}

func NewTracker(store storage.Storage, log *logrus.Logger) *Tracker {
	return &Tracker{store: store, log: log}
}

// Join registers a participant and announces the arrival to the room. The
// participant insert and the status notice are two independent store writes;
// the insert goes first so a crash in between leaves a present participant
// without a notice rather than a notice for nobody.
func (t *Tracker) Join(ctx context.Context, name string) (*models.Participant, error) {
	name = sanitize.Clean(name)
	if !validName(name) {
		return nil, ErrInvalidName
	}

	now := time.Now()
	p := &models.Participant{Name: name, LastHeartbeat: now}
	if err := t.store.CreateParticipant(ctx, p); err != nil {
		return nil, err
	}

	notice := models.Message{
		From: name,
		To:   models.Broadcast,
		Text: joinNotice,
		Kind: models.KindStatus,
		Time: now.Format(models.TimeLayout),
	}
	if err := t.store.CreateMessage(ctx, &notice); err != nil {
		return nil, fmt.Errorf("join notice for %q: %w", name, err)
	}
	t.publish(ctx, notice)

	t.log.WithField("participant", name).Info("Participant joined")
	return p, nil
}

// Heartbeat refreshes the participant's presence timestamp. Returns
// storage.ErrParticipantNotFound for unknown names.
func (t *Tracker) Heartbeat(ctx context.Context, name string) error {
	return t.store.TouchParticipant(ctx, name, time.Now())
}

// Sweep evicts every participant whose last heartbeat is older than the
// staleness window. Evictions are independent: a failure is collected and the
// remaining participants are still processed.
func (t *Tracker) Sweep(ctx context.Context, now time.Time, window time.Duration) []error {
	cutoff := now.Add(-window)
	stale, err := t.store.GetStaleParticipants(ctx, cutoff)
	if err != nil {
		return []error{fmt.Errorf("scan stale participants: %w", err)}
	}

	var errs []error
	for _, p := range stale {
		if err := t.evict(ctx, p, cutoff, now); err != nil {
			t.log.WithError(err).WithField("participant", p.Name).Error("Eviction failed")
			errs = append(errs, fmt.Errorf("evict %q: %w", p.Name, err))
		}
	}
	return errs
}

// evict writes the departure notice first and deletes second, so a crash in
// between leaves a stray notice (acceptable, messages are immutable history)
// rather than a silent disappearance. The delete re-checks staleness, so a
// heartbeat racing the sweep always wins.
func (t *Tracker) evict(ctx context.Context, p models.Participant, cutoff, now time.Time) error {
	notice := models.Message{
		From: p.Name,
		To:   models.Broadcast,
		Text: leaveNotice,
		Kind: models.KindStatus,
		Time: now.Format(models.TimeLayout),
	}
	if err := t.store.CreateMessage(ctx, &notice); err != nil {
		return fmt.Errorf("departure notice: %w", err)
	}

	removed, err := t.store.RemoveParticipantIfStale(ctx, p.Name, cutoff)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	if !removed {
		t.log.WithField("participant", p.Name).Debug("Eviction skipped, heartbeat arrived mid-sweep")
		return nil
	}

	t.publish(ctx, notice)
	t.log.WithField("participant", p.Name).Info("Participant evicted")
	return nil
}

// publish pushes a status notice onto the event bus. Fanout is best effort
// and never fails the operation that produced the notice.
func (t *Tracker) publish(ctx context.Context, msg models.Message) {
	if err := t.store.PublishMessage(ctx, msg); err != nil {
		t.log.WithError(err).Warn("Failed to publish room event")
	}
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
