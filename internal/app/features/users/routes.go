// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/shelterhub/internal/app/system/auth"
)

// Routes returns the users subrouter. The whole directory requires a
// signed-in caller.
func Routes(h *Handler, an *auth.Authenticator) chi.Router {
	r := chi.NewRouter()

	r.Use(an.Authenticate)

	r.Get("/me", h.HandleMe)
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	r.Post("/", h.HandleCreate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
