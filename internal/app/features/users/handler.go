// Package users serves the user directory: the caller's own profile, the
// paginated member listing, and public profile lookups.
package users

import (
	"context"
	"net/http"

	"github.com/ckluximon/ubuntoo/internal/app/store/users"
	"github.com/ckluximon/ubuntoo/internal/app/system/apierr"
	"github.com/ckluximon/ubuntoo/internal/app/system/auth"
	"github.com/ckluximon/ubuntoo/internal/app/system/httpjson"
	"github.com/ckluximon/ubuntoo/internal/app/system/paging"
	"github.com/ckluximon/ubuntoo/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Log:   logger,
	}
}

// Me handles GET /users/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, h.Log, apierr.Auth("not authenticated"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, p.ID)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, user)
}

// UpdateMe handles PUT /users/me.
//
// Only fields present and non-null in the body are applied; everything else
// is untouched.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, h.Log, apierr.Auth("not authenticated"))
		return
	}

	var upd userstore.ProfileUpdate
	if err := httpjson.Decode(r, &upd); err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.UpdateProfile(ctx, p.ID, upd)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, user)
}

// List handles GET /users with skip/limit pagination in store order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx, paging.ParseSkip(r), paging.ParseLimit(r))
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, users)
}

// Get handles GET /users/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		apierr.Write(w, h.Log, apierr.NotFound("user not found"))
		return
	}
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, user)
}
