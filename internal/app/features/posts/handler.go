// Package posts serves post creation, the enriched feed, and comments.
package posts

import (
	"github.com/ckluximon/ubuntoo/internal/app/store/comments"
	"github.com/ckluximon/ubuntoo/internal/app/store/posts"
	"github.com/ckluximon/ubuntoo/internal/app/store/users"
	"github.com/ckluximon/ubuntoo/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Posts    *poststore.Store
	Comments *commentstore.Store
	Users    *userstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Posts:    poststore.New(db),
		Comments: commentstore.New(db),
		Users:    userstore.New(db),
		Log:      logger,
	}
}

// enrichedPost is a post annotated with its author's summary, resolved at
// read time. User is null when the author record has been removed.
type enrichedPost struct {
	models.Post
	User *models.AuthorSummary `json:"user"`
}
