// internal/app/features/pets/routes.go
package pets

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/shelterhub/internal/app/system/auth"
	"github.com/dalemusser/shelterhub/internal/app/system/authz"
	"github.com/dalemusser/shelterhub/internal/app/system/roles"
	"github.com/dalemusser/shelterhub/internal/app/system/shelterctx"
)

// Routes returns the pets subrouter. Browsing is public; mutations require
// a shelter role. Creation names its shelter in the body, while updates and
// removals resolve the shelter from the pet being touched.
func Routes(h *Handler, an *auth.Authenticator, gate *authz.Gate, resolver *shelterctx.Resolver) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(pr chi.Router) {
		pr.Use(an.Authenticate)

		pr.With(gate.Require(authz.FromBody("shelter_id"), roles.Admin, roles.Member)).
			Post("/", h.HandleCreate)

		pr.With(resolver.ForPetParam("id"),
			gate.Require(authz.FromResolved(), roles.Admin, roles.Member)).
			Patch("/{id}", h.HandleUpdate)

		pr.With(resolver.ForPetParam("id"),
			gate.Require(authz.FromResolved(), roles.Admin)).
			Delete("/{id}", h.HandleDelete)
		pr.With(resolver.ForPetParam("id"),
			gate.Require(authz.FromResolved(), roles.Admin)).
			Post("/{id}/archive", h.HandleArchive)
	})

	return r
}
