// Package challenges serves challenge creation, listing, and joining.
package challenges

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ckluximon/ubuntoo/internal/app/store/challenges"
	"github.com/ckluximon/ubuntoo/internal/app/system/apierr"
	"github.com/ckluximon/ubuntoo/internal/app/system/auth"
	"github.com/ckluximon/ubuntoo/internal/app/system/httpjson"
	"github.com/ckluximon/ubuntoo/internal/app/system/timeouts"
	"github.com/ckluximon/ubuntoo/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Challenges *challengestore.Store
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Challenges: challengestore.New(db),
		Log:        logger,
	}
}

// createRequest is the JSON body for POST /challenges.
//
// The date range is stored as given; start_date after end_date is accepted.
type createRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	MaxParticipants *int      `json:"max_participants"`
	Rewards         []string  `json:"rewards"`
}

// Create handles POST /challenges. The caller becomes the organizer.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, h.Log, apierr.Auth("not authenticated"))
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid request body"))
		return
	}
	if req.Title == "" {
		apierr.Write(w, h.Log, apierr.Validation("title is required"))
		return
	}
	if req.Description == "" {
		apierr.Write(w, h.Log, apierr.Validation("description is required"))
		return
	}
	if req.MaxParticipants != nil && *req.MaxParticipants < 1 {
		apierr.Write(w, h.Log, apierr.Validation("max_participants must be positive"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	challenge, err := h.Challenges.Create(ctx, models.Challenge{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MaxParticipants: req.MaxParticipants,
		Rewards:         req.Rewards,
		CreatedBy:       p.ID,
	})
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, challenge)
}

// List handles GET /challenges. The is_active filter defaults to true;
// pass is_active=false to list everything.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := true
	if s := query.Get(r, "is_active"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			apierr.Write(w, h.Log, apierr.Validation("is_active must be a boolean"))
			return
		}
		activeOnly = v
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	challenges, err := h.Challenges.List(ctx, activeOnly)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, challenges)
}

// joinResult is the JSON response for a successful join.
type joinResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Join handles POST /challenges/{id}/join.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, h.Log, apierr.Auth("not authenticated"))
		return
	}
	challengeID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch err := h.Challenges.Join(ctx, challengeID, p.ID); err {
	case nil:
	case mongo.ErrNoDocuments:
		apierr.Write(w, h.Log, apierr.NotFound("challenge not found"))
		return
	case challengestore.ErrAlreadyJoined:
		apierr.Write(w, h.Log, apierr.Conflict(err.Error()))
		return
	case challengestore.ErrFull:
		apierr.Write(w, h.Log, apierr.Capacity(err.Error()))
		return
	default:
		apierr.Write(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, joinResult{Success: true, Message: "Successfully joined challenge"})
}
