// internal/app/features/vaccines/routes.go
package vaccines

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/shelterhub/internal/app/system/auth"
)

// Routes returns the vaccine-catalog subrouter. The catalog is only of use
// to shelter staff, so every endpoint requires a signed-in user.
func Routes(h *Handler, an *auth.Authenticator) chi.Router {
	r := chi.NewRouter()
	r.Use(an.Authenticate)

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	r.Post("/", h.HandleCreate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
