// internal/app/features/assignments/routes.go
package assignments

import (
	"github.com/dalemusser/danahub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the assignment endpoints. All of them need a signed-in user;
// the delete role gate is enforced by the coordinator.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/pairings", h.Pairings)
	r.Post("/{id}/confirm", h.Confirm)
	r.Post("/{id}/delete", h.Delete)
	return r
}
