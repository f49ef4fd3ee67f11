// internal/domain/models/challenge.go
package models

import (
	"time"
)

// Challenge is a time-boxed activity users can join.
//
// The participant list has no duplicates and, when MaxParticipants is set,
// never grows past it; both invariants are enforced by the join operation's
// atomic conditional update.
type Challenge struct {
	ID          string `bson:"_id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Category    string `bson:"category" json:"category"`

	StartDate time.Time `bson:"start_date" json:"start_date"`
	EndDate   time.Time `bson:"end_date" json:"end_date"`

	Participants    []string `bson:"participants" json:"participants"`
	MaxParticipants *int     `bson:"max_participants,omitempty" json:"max_participants,omitempty"`

	// Rewards lists badge types granted to participants who complete the
	// challenge.
	Rewards []string `bson:"rewards" json:"rewards"`

	CreatedBy string    `bson:"created_by" json:"created_by"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	IsActive  bool      `bson:"is_active" json:"is_active"`
}

// DefaultChallengeCategory is applied when a challenge is created without an
// explicit category.
const DefaultChallengeCategory = "innovation-socio-professionnelle"
