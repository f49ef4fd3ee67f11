// internal/app/features/posts/routes.go
package posts

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for posts and their comments. Bearer auth is
// applied by the parent router.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/comments", h.AddComment)
	r.Get("/{id}/comments", h.ListComments)
	return r
}
