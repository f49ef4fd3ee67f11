// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the user directory. Bearer auth is applied
// by the parent router.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/me", h.Me)
	r.Put("/me", h.UpdateMe)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	return r
}
