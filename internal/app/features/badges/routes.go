// internal/app/features/badges/routes.go
package badges

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for badge nomination and voting. Bearer auth is
// applied by the parent router.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Nominate)
	r.Get("/", h.List)
	r.Post("/{id}/vote", h.Vote)
	return r
}
