// internal/domain/models/user.go
package models

import (
	"time"
)

// User represents a member of the network.
//
// NOTE:
//   - Documents are keyed by a string UUID in _id, not an ObjectID.
//   - The bcrypt password hash is stored in the same document but is never
//     serialized to JSON.
type User struct {
	ID           string `bson:"_id" json:"id"`
	Email        string `bson:"email" json:"email"`
	Username     string `bson:"username" json:"username"`
	PasswordHash string `bson:"password" json:"-"`

	FullName     string `bson:"full_name" json:"full_name"`
	Bio          string `bson:"bio" json:"bio"`
	JobTitle     string `bson:"job_title" json:"job_title"`
	Location     string `bson:"location" json:"location"`
	ProfileImage string `bson:"profile_image" json:"profile_image"`

	SoftSkills     []string `bson:"soft_skills" json:"soft_skills"`
	PersonalValues []string `bson:"personal_values" json:"personal_values"`
	Engagements    []string `bson:"engagements" json:"engagements"`

	// Badges holds the badge types the community has validated for this user.
	Badges []string `bson:"badges" json:"badges"`

	FollowersCount int `bson:"followers_count" json:"followers_count"`
	FollowingCount int `bson:"following_count" json:"following_count"`
	PostsCount     int `bson:"posts_count" json:"posts_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	IsActive  bool      `bson:"is_active" json:"is_active"`
}

// AuthorSummary is the subset of a user's public profile attached to content
// for display. It is computed at read time, never denormalized into the
// content documents.
type AuthorSummary struct {
	ID           string `bson:"_id" json:"id"`
	Username     string `bson:"username" json:"username"`
	FullName     string `bson:"full_name" json:"full_name"`
	ProfileImage string `bson:"profile_image" json:"profile_image"`
	JobTitle     string `bson:"job_title" json:"job_title"`
}

// Summary returns the author summary view of the user.
func (u *User) Summary() AuthorSummary {
	return AuthorSummary{
		ID:           u.ID,
		Username:     u.Username,
		FullName:     u.FullName,
		ProfileImage: u.ProfileImage,
		JobTitle:     u.JobTitle,
	}
}
