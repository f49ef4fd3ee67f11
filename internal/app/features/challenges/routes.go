// internal/app/features/challenges/routes.go
package challenges

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for challenges. Bearer auth is applied by the
// parent router.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/{id}/join", h.Join)
	return r
}
