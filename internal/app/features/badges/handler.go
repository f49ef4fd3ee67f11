// Package badges serves nomination, listing, and community voting.
package badges

import (
	"github.com/ckluximon/ubuntoo/internal/app/store/badges"
	"github.com/ckluximon/ubuntoo/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Badges *badgestore.Store
	Users  *userstore.Store
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Badges: badgestore.New(db),
		Users:  userstore.New(db),
		Log:    logger,
	}
}
