package posts

import (
	"context"
	"net/http"

	"github.com/ckluximon/ubuntoo/internal/app/system/apierr"
	"github.com/ckluximon/ubuntoo/internal/app/system/auth"
	"github.com/ckluximon/ubuntoo/internal/app/system/httpjson"
	"github.com/ckluximon/ubuntoo/internal/app/system/paging"
	"github.com/ckluximon/ubuntoo/internal/app/system/timeouts"
	"github.com/ckluximon/ubuntoo/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// createRequest is the JSON body for POST /posts.
type createRequest struct {
	Content  string   `json:"content"`
	PostType string   `json:"post_type"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"image_url"`
}

// Create handles POST /posts.
//
// The post insert and the author's posts_count increment are two separate
// writes; a failed increment is logged, never compensated, and repaired by
// the startup reconciliation pass.
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
	if req.Content == "" {
		apierr.Write(w, h.Log, apierr.Validation("content is required"))
		return
	}
	if !models.IsValidPostType(req.PostType) {
		apierr.Write(w, h.Log, apierr.Validation("invalid post_type"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, err := h.Posts.Create(ctx, models.Post{
		UserID:   p.ID,
		Content:  req.Content,
		PostType: req.PostType,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	if err := h.Users.IncPostsCount(ctx, p.ID, 1); err != nil {
		h.Log.Error("post counter increment failed",
			zap.String("user_id", p.ID),
			zap.Error(err))
	}

	httpjson.Write(w, http.StatusCreated, post)
}

// List handles GET /posts with skip/limit pagination and an optional
// post_type filter, newest first. Authors are resolved with one batched
// directory query per page.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	postType := query.Get(r, "post_type")
	if postType != "" && !models.IsValidPostType(postType) {
		apierr.Write(w, h.Log, apierr.Validation("invalid post_type"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.Posts.List(ctx, paging.ParseSkip(r), paging.ParseLimit(r), postType)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	enriched, err := h.enrich(ctx, posts)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, enriched)
}

// Get handles GET /posts/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	post, err := h.Posts.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		apierr.Write(w, h.Log, apierr.NotFound("post not found"))
		return
	}
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	enriched, err := h.enrich(ctx, []models.Post{*post})
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, enriched[0])
}

// enrich attaches author summaries to a page of posts. The summaries are
// fetched with a single $in query; a post whose author no longer exists gets
// a null user.
func (h *Handler) enrich(ctx context.Context, posts []models.Post) ([]enrichedPost, error) {
	ids := make([]string, 0, len(posts))
	seen := make(map[string]bool, len(posts))
	for _, p := range posts {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			ids = append(ids, p.UserID)
		}
	}

	summaries, err := h.Users.SummariesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]enrichedPost, 0, len(posts))
	for _, p := range posts {
		ep := enrichedPost{Post: p}
		if sum, ok := summaries[p.UserID]; ok {
			ep.User = &sum
		}
		out = append(out, ep)
	}
	return out, nil
}
