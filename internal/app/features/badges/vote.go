package badges

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ckluximon/ubuntoo/internal/app/store/badges"
	"github.com/ckluximon/ubuntoo/internal/app/system/apierr"
	"github.com/ckluximon/ubuntoo/internal/app/system/auth"
	"github.com/ckluximon/ubuntoo/internal/app/system/httpjson"
	"github.com/ckluximon/ubuntoo/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// voteBody is the optional JSON body for POST /badges/{id}/vote; the `vote`
// query parameter takes precedence when both are present.
type voteBody struct {
	Vote *bool `json:"vote"`
}

// voteResult is the JSON response for a recorded vote.
type voteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Vote handles POST /badges/{id}/vote.
//
// The voter set append and the counter increment are one atomic update, so a
// voter can never be recorded twice. The threshold check afterwards is a
// separate conditional update: it fires at most once per badge because the
// filter requires the pending status it replaces.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, h.Log, apierr.Auth("not authenticated"))
		return
	}
	badgeID := chi.URLParam(r, "id")

	inFavor, err := parseVote(r)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	switch err := h.Badges.RecordVote(ctx, badgeID, p.ID, inFavor); err {
	case nil:
	case mongo.ErrNoDocuments:
		apierr.Write(w, h.Log, apierr.NotFound("badge not found"))
		return
	case badgestore.ErrAlreadyVoted:
		apierr.Write(w, h.Log, apierr.Conflict(err.Error()))
		return
	default:
		apierr.Write(w, h.Log, err)
		return
	}

	// Threshold-triggered validation. A failure here leaves the vote recorded
	// and the badge pending; the next vote retries the transition.
	badge, validated, err := h.Badges.ValidateIfThresholdMet(ctx, badgeID)
	if err != nil {
		h.Log.Error("badge validation check failed",
			zap.String("badge_id", badgeID),
			zap.Error(err))
	}
	if validated {
		if err := h.Users.AddBadge(ctx, badge.UserID, badge.BadgeType); err != nil {
			h.Log.Error("badge attach to profile failed",
				zap.String("badge_id", badgeID),
				zap.String("user_id", badge.UserID),
				zap.Error(err))
		}
	}

	httpjson.Write(w, http.StatusOK, voteResult{Success: true, Message: "Vote recorded"})
}

// parseVote reads the vote direction from the query string or, failing that,
// the JSON body.
func parseVote(r *http.Request) (bool, error) {
	if s := query.Get(r, "vote"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return false, apierr.Validation("vote must be a boolean")
		}
		return v, nil
	}

	var body voteBody
	if err := httpjson.Decode(r, &body); err != nil || body.Vote == nil {
		return false, apierr.Validation("vote is required")
	}
	return *body.Vote, nil
}
