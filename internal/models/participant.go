package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Participant represents a user currently present in the chat room.
// A participant exists from a successful join until the presence sweeper
// evicts it for missing heartbeats.
type Participant struct {
	// ID is the internal identifier (UUID).
	ID string `gorm:"primaryKey" json:"id"`
	// Name is the display name, unique among present participants.
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	// LastHeartbeat is refreshed on join and on every status ping.
	LastHeartbeat time.Time `gorm:"not null" json:"lastHeartbeat"`
}

// BeforeCreate is a GORM hook that generates a new UUID for the participant
// if the ID has not been set yet.
func (p *Participant) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
