// internal/app/features/vaccinations/routes.go
package vaccinations

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/shelterhub/internal/app/system/auth"
)

// Routes returns the vaccination-records subrouter. Medical records are not
// public, so every endpoint requires a signed-in user.
func Routes(h *Handler, an *auth.Authenticator) chi.Router {
	r := chi.NewRouter()
	r.Use(an.Authenticate)

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	r.Post("/", h.HandleCreate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
