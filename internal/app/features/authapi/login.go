package authapi

import (
	"context"
	"net/http"

	"github.com/ckluximon/ubuntoo/internal/app/system/apierr"
	"github.com/ckluximon/ubuntoo/internal/app/system/auth"
	"github.com/ckluximon/ubuntoo/internal/app/system/httpjson"
	"github.com/ckluximon/ubuntoo/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// loginRequest is the JSON body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login.
//
// Unknown email and wrong password both map to the same 401 so the response
// does not reveal which part failed.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err == mongo.ErrNoDocuments {
		apierr.Write(w, h.Log, apierr.Auth("invalid credentials"))
		return
	}
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		apierr.Write(w, h.Log, apierr.Auth("invalid credentials"))
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, authResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        *user,
	})
}
