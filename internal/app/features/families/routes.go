// internal/app/features/families/routes.go
package families

import (
	"github.com/dalemusser/danahub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the family subrouter, mounted under /families.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/{id}/edit", h.Update)
	r.Post("/{id}/delete", h.Delete)
	return r
}
