// internal/app/features/session/routes.go
package session

import "github.com/go-chi/chi/v5"

// Routes returns the session subrouter, mounted under /session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Show)
	r.Post("/", h.SignIn)
	r.Post("/logout", h.SignOut)
	r.Get("/notifications", h.Notifications)
	return r
}
