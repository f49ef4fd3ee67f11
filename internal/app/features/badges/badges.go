package badges

import (
	"context"
	"net/http"

	"github.com/ckluximon/ubuntoo/internal/app/system/apierr"
	"github.com/ckluximon/ubuntoo/internal/app/system/httpjson"
	"github.com/ckluximon/ubuntoo/internal/app/system/timeouts"
	"github.com/ckluximon/ubuntoo/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// nominateRequest is the JSON body for POST /badges.
type nominateRequest struct {
	UserID      string `json:"user_id"`
	BadgeType   string `json:"badge_type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	EvidenceURL string `json:"evidence_url"`
}

// Nominate handles POST /badges.
//
// The nomination always starts pending. Nothing prevents multiple pending
// nominations for the same subject and type.
func (h *Handler) Nominate(w http.ResponseWriter, r *http.Request) {
	var req nominateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid request body"))
		return
	}
	if req.UserID == "" {
		apierr.Write(w, h.Log, apierr.Validation("user_id is required"))
		return
	}
	if !models.IsValidBadgeType(req.BadgeType) {
		apierr.Write(w, h.Log, apierr.Validation("invalid badge_type"))
		return
	}
	if req.Title == "" {
		apierr.Write(w, h.Log, apierr.Validation("title is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// The subject must be a real user.
	exists, err := h.Users.Exists(ctx, req.UserID)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if !exists {
		apierr.Write(w, h.Log, apierr.Validation("nominated user does not exist"))
		return
	}

	badge, err := h.Badges.Create(ctx, models.Badge{
		UserID:      req.UserID,
		BadgeType:   req.BadgeType,
		Title:       req.Title,
		Description: req.Description,
		EvidenceURL: req.EvidenceURL,
	})
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, badge)
}

// List handles GET /badges with optional user_id and status filters,
// newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := query.Get(r, "status")
	if status != "" && !models.IsValidBadgeStatus(status) {
		apierr.Write(w, h.Log, apierr.Validation("invalid status"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	badges, err := h.Badges.List(ctx, query.Get(r, "user_id"), status)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, badges)
}
