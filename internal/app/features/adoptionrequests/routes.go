// internal/app/features/adoptionrequests/routes.go
package adoptionrequests

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/shelterhub/internal/app/system/auth"
	"github.com/dalemusser/shelterhub/internal/app/system/authz"
	"github.com/dalemusser/shelterhub/internal/app/system/roles"
	"github.com/dalemusser/shelterhub/internal/app/system/shelterctx"
)

// Routes returns the adoption-requests subrouter. Everything here requires
// authentication; processing additionally requires a staff role at the
// shelter resolved through the request's pet.
func Routes(h *Handler, an *auth.Authenticator, gate *authz.Gate, resolver *shelterctx.Resolver) chi.Router {
	r := chi.NewRouter()

	r.Use(an.Authenticate)

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	r.Post("/", h.HandleCreate)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	r.With(resolver.ForRequestParam("id"),
		gate.Require(authz.FromResolved(), roles.Admin, roles.Member)).
		Patch("/{id}/process", h.HandleProcess)

	return r
}
