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
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// commentRequest is the JSON body for POST /posts/{id}/comments.
type commentRequest struct {
	Content string `json:"content"`
}

// AddComment handles POST /posts/{id}/comments.
//
// The comment insert and the post's comments_count increment share the same
// non-atomicity as post creation; increment failures are logged and repaired
// at startup.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, h.Log, apierr.Auth("not authenticated"))
		return
	}
	postID := chi.URLParam(r, "id")

	var req commentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid request body"))
		return
	}
	if req.Content == "" {
		apierr.Write(w, h.Log, apierr.Validation("content is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	exists, err := h.Posts.Exists(ctx, postID)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if !exists {
		apierr.Write(w, h.Log, apierr.NotFound("post not found"))
		return
	}

	comment, err := h.Comments.Create(ctx, models.Comment{
		PostID:  postID,
		UserID:  p.ID,
		Content: req.Content,
	})
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	if err := h.Posts.IncCommentsCount(ctx, postID, 1); err != nil {
		h.Log.Error("comment counter increment failed",
			zap.String("post_id", postID),
			zap.Error(err))
	}

	httpjson.Write(w, http.StatusCreated, comment)
}

// ListComments handles GET /posts/{id}/comments, newest first.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	exists, err := h.Posts.Exists(ctx, postID)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if !exists {
		apierr.Write(w, h.Log, apierr.NotFound("post not found"))
		return
	}

	comments, err := h.Comments.ListByPost(ctx, postID, paging.ParseSkip(r), paging.ParseLimit(r))
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, comments)
}
