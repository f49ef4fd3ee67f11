// internal/domain/models/badge.go
package models

import (
	"time"
)

// Badge is a community-validated recognition of a soft skill.
//
// A badge starts pending. Each user may vote on it at most once; the voter
// set and vote counters are updated in a single atomic document update so a
// duplicate vote can never be recorded, even under concurrent requests. When
// VotesFor reaches the validation threshold while the badge is still pending,
// it transitions to validated and the badge type is added to the subject
// user's Badges list.
type Badge struct {
	ID          string `bson:"_id" json:"id"`
	UserID      string `bson:"user_id" json:"user_id"`
	BadgeType   string `bson:"badge_type" json:"badge_type"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Status      string `bson:"status" json:"status"`

	// AwardedBy records who granted the badge: "community" for
	// threshold-validated badges, an admin user id for manual awards.
	AwardedBy   string `bson:"awarded_by,omitempty" json:"awarded_by,omitempty"`
	EvidenceURL string `bson:"evidence_url" json:"evidence_url"`

	VotesFor     int      `bson:"votes_for" json:"votes_for"`
	VotesAgainst int      `bson:"votes_against" json:"votes_against"`
	Voters       []string `bson:"voters" json:"voters"`

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	ValidatedAt *time.Time `bson:"validated_at,omitempty" json:"validated_at,omitempty"`
}
