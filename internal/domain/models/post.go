// internal/domain/models/post.go
package models

import (
	"time"
)

// Post is a piece of content published by a user.
//
// Content is immutable once created; only the counters change afterwards.
// CommentsCount is maintained with a best-effort increment when a comment is
// inserted and reconciled against the comments collection at startup.
type Post struct {
	ID       string   `bson:"_id" json:"id"`
	UserID   string   `bson:"user_id" json:"user_id"`
	Content  string   `bson:"content" json:"content"`
	PostType string   `bson:"post_type" json:"post_type"`
	Tags     []string `bson:"tags" json:"tags"`
	ImageURL string   `bson:"image_url" json:"image_url"`

	LikesCount    int `bson:"likes_count" json:"likes_count"`
	CommentsCount int `bson:"comments_count" json:"comments_count"`
	SharesCount   int `bson:"shares_count" json:"shares_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID         string    `bson:"_id" json:"id"`
	PostID     string    `bson:"post_id" json:"post_id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	Content    string    `bson:"content" json:"content"`
	LikesCount int       `bson:"likes_count" json:"likes_count"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
