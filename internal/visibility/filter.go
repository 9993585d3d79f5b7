// Package visibility decides which stored messages a given requester may
// read.
package visibility

import (
	"errors"

	"github.com/samber/lo"

	"chatroom/backend/internal/models"
)

// ErrInvalidLimit is returned when a message limit is present but is not a
// positive integer.
var ErrInvalidLimit = errors.New("limit must be a positive integer")

// Visible reports whether a single message may be read by the requester.
// Direct (public) messages are readable by everyone regardless of addressee;
// private messages are restricted to the addressee and the sender, and status
// notices to their broadcast audience. The direct-overrides-addressee rule is
// intentional and pinned by tests.
func Visible(msg models.Message, requester string) bool {
	return msg.To == models.Broadcast ||
		msg.To == requester ||
		msg.From == requester ||
		msg.Kind == models.KindDirect
}

// VisibleTo selects the subset of msgs the requester may read, preserving
// insertion order. Adding messages never removes previously visible ones.
func VisibleTo(msgs []models.Message, requester string) []models.Message {
	return lo.Filter(msgs, func(m models.Message, _ int) bool {
		return Visible(m, requester)
	})
}

// VisibleToLast selects the visible subset and returns its last limit
// entries, still in ascending insertion order.
func VisibleToLast(msgs []models.Message, requester string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	visible := VisibleTo(msgs, requester)
	if len(visible) > limit {
		visible = visible[len(visible)-limit:]
	}
	return visible, nil
}
