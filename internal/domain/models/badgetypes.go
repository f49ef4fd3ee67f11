// internal/domain/models/badgetypes.go
package models

// Canonical badge type identifiers.
//
// A badge recognizes a soft-skill or behavioral trait. These values are stored
// in Badge.BadgeType and, once a badge is validated, appended to the subject
// user's Badges list.
const (
	BadgeTypeEmpathy       = "empathy"
	BadgeTypeLeadership    = "leadership"
	BadgeTypeResilience    = "resilience"
	BadgeTypeCreativity    = "creativity"
	BadgeTypeCommunication = "communication"
	BadgeTypeCollaboration = "collaboration"
	BadgeTypeInnovation    = "innovation"
)

// BadgeTypes is the full set of allowed badge type identifiers.
var BadgeTypes = []string{
	BadgeTypeEmpathy,
	BadgeTypeLeadership,
	BadgeTypeResilience,
	BadgeTypeCreativity,
	BadgeTypeCommunication,
	BadgeTypeCollaboration,
	BadgeTypeInnovation,
}

// IsValidBadgeType checks if a value is a valid badge type.
func IsValidBadgeType(v string) bool {
	for _, t := range BadgeTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Badge lifecycle states.
//
// A badge is created pending and is auto-validated by community vote once it
// collects enough for-votes. The rejected state is declared for administrative
// review flows; no public operation currently reaches it.
const (
	BadgeStatusPending   = "pending"
	BadgeStatusValidated = "validated"
	BadgeStatusRejected  = "rejected"
)

// BadgeStatuses is the full set of badge lifecycle states.
var BadgeStatuses = []string{
	BadgeStatusPending,
	BadgeStatusValidated,
	BadgeStatusRejected,
}

// IsValidBadgeStatus checks if a value is a valid badge status.
func IsValidBadgeStatus(v string) bool {
	for _, s := range BadgeStatuses {
		if s == v {
			return true
		}
	}
	return false
}
