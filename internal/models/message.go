package models

import "time"

// Broadcast is the recipient value meaning "all current participants".
const Broadcast = "everyone"

// Message kinds. Status messages are generated by the system on room entry
// and exit; the other two are user submitted.
const (
	KindDirect  = "direct"
	KindPrivate = "private"
	KindStatus  = "status"
)

// TimeLayout is the wall-clock format stored on every message.
const TimeLayout = "15:04:05"

// Message is a single chat entry. Messages are immutable once stored and are
// never deleted; the auto-increment ID doubles as the insertion order.
type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// From is the sending participant's name. Status notices carry the name
	// of the participant entering or leaving the room.
	From string `gorm:"not null;index" json:"from"`
	// To is either Broadcast or a specific participant name.
	To string `gorm:"not null;index" json:"to"`
	// Text is the message body, sanitized before storage.
	Text string `gorm:"type:text;not null" json:"text"`
	// Kind is one of KindDirect, KindPrivate or KindStatus.
	Kind string `gorm:"not null" json:"kind"`
	// Time is the insertion wall-clock time formatted as TimeLayout.
	Time string `gorm:"not null" json:"time"`

	CreatedAt time.Time `json:"-"`
}
