// internal/app/features/petphotos/routes.go
package petphotos

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/shelterhub/internal/app/system/auth"
)

// Routes returns the pet-photos subrouter. Photo metadata is readable by
// anyone (photos show up on public pet listings); mutations require a
// signed-in user.
func Routes(h *Handler, an *auth.Authenticator) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(pr chi.Router) {
		pr.Use(an.Authenticate)
		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}/primary", h.HandleSetPrimary)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
