// internal/app/features/events/routes.go
package events

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/shelterhub/internal/app/system/auth"
)

// Routes returns the events subrouter. All event operations require a
// signed-in user.
func Routes(h *Handler, an *auth.Authenticator) chi.Router {
	r := chi.NewRouter()

	r.Use(an.Authenticate)

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	r.Post("/", h.HandleCreate)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
