package authapi

import (
	"context"
	"net/http"

	"github.com/ckluximon/ubuntoo/internal/app/store/users"
	"github.com/ckluximon/ubuntoo/internal/app/system/apierr"
	"github.com/ckluximon/ubuntoo/internal/app/system/auth"
	"github.com/ckluximon/ubuntoo/internal/app/system/httpjson"
	"github.com/ckluximon/ubuntoo/internal/app/system/normalize"
	"github.com/ckluximon/ubuntoo/internal/app/system/timeouts"
	"github.com/ckluximon/ubuntoo/internal/domain/models"
)

// registerRequest is the JSON body for POST /auth/register.
type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Bio      string `json:"bio"`
	JobTitle string `json:"job_title"`
}

func (req *registerRequest) validate() error {
	if !normalize.IsValidEmail(normalize.Email(req.Email)) {
		return apierr.Validation("a valid email is required")
	}
	if normalize.Username(req.Username) == "" {
		return apierr.Validation("username is required")
	}
	if req.Password == "" {
		return apierr.Validation("password is required")
	}
	if normalize.Name(req.FullName) == "" {
		return apierr.Validation("full_name is required")
	}
	return nil
}

// Register handles POST /auth/register.
//
// Duplicate email is reported before duplicate username. On success the user
// is persisted with a hashed password and a bearer token is issued.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	hash, err := auth.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Bio:          req.Bio,
		JobTitle:     req.JobTitle,
	})
	switch err {
	case nil:
	case userstore.ErrDuplicateEmail, userstore.ErrDuplicateUsername:
		apierr.Write(w, h.Log, apierr.Conflict(err.Error()))
		return
	default:
		apierr.Write(w, h.Log, err)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, authResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}
