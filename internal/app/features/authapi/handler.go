// Package authapi serves registration and login, the only JSON routes that
// do not require a bearer token.
package authapi

import (
	"github.com/ckluximon/ubuntoo/internal/app/store/users"
	"github.com/ckluximon/ubuntoo/internal/app/system/auth"
	"github.com/ckluximon/ubuntoo/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users      *userstore.Store
	Tokens     *auth.TokenIssuer
	BcryptCost int
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, tokens *auth.TokenIssuer, bcryptCost int, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      userstore.New(db),
		Tokens:     tokens,
		BcryptCost: bcryptCost,
		Log:        logger,
	}
}

// authResponse is the JSON body returned by register and login.
type authResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}
