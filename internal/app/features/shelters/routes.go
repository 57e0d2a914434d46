// internal/app/features/shelters/routes.go
package shelters

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/shelterhub/internal/app/system/auth"
	"github.com/dalemusser/shelterhub/internal/app/system/authz"
	"github.com/dalemusser/shelterhub/internal/app/system/roles"
)

// Routes returns the shelters subrouter. Listing and detail are public;
// everything else requires authentication, and shelter-scoped mutations go
// through the authorization gate with the shelter id taken from the path.
func Routes(h *Handler, an *auth.Authenticator, gate *authz.Gate) chi.Router {
	r := chi.NewRouter()

	// Public browsing
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(pr chi.Router) {
		pr.Use(an.Authenticate)

		// Any signed-in user may found a shelter; they become its admin.
		pr.Post("/", h.HandleCreate)

		pr.With(gate.Require(authz.FromPath("id"), roles.Admin, roles.Member)).
			Patch("/{id}", h.HandleUpdate)
		pr.With(gate.Require(authz.FromPath("id"), roles.Admin)).
			Delete("/{id}", h.HandleDelete)

		pr.With(gate.Require(authz.FromPath("id"), roles.Admin, roles.Member)).
			Get("/{id}/members", h.HandleMembers)
		pr.With(gate.Require(authz.FromPath("id"), roles.Admin)).
			Post("/{id}/invite", h.HandleInvite)
	})

	return r
}
