// internal/domain/models/posttypes.go
package models

// Canonical post type identifiers.
//
// These values are stored in the database in the Post.PostType field and are
// used throughout the application as stable, language-agnostic keys.
const (
	PostTypeIdea      = "idea"
	PostTypeAction    = "action"
	PostTypeTestimony = "testimony"
	PostTypeChallenge = "challenge"
	PostTypeSuccess   = "success"
)

// PostTypes is the full set of allowed post type identifiers.
//
// This slice should be treated as the single source of truth for validation
// and schema enums. Any new type must be added here to be considered valid.
var PostTypes = []string{
	PostTypeIdea,
	PostTypeAction,
	PostTypeTestimony,
	PostTypeChallenge,
	PostTypeSuccess,
}

// IsValidPostType checks if a value is a valid post type.
func IsValidPostType(v string) bool {
	for _, t := range PostTypes {
		if t == v {
			return true
		}
	}
	return false
}
