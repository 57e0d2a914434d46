// internal/app/features/assignments/routes.go
package assignments

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/shelterhub/internal/app/system/auth"
	"github.com/dalemusser/shelterhub/internal/app/system/authz"
	"github.com/dalemusser/shelterhub/internal/app/system/roles"
)

// Routes returns the assignments subrouter. Listing requires any signed-in
// user; granting and revoking roles requires an admin of the shelter in
// question (body for create, query for delete).
func Routes(h *Handler, an *auth.Authenticator, gate *authz.Gate) chi.Router {
	r := chi.NewRouter()

	r.Use(an.Authenticate)

	r.Get("/", h.HandleList)
	r.With(gate.Require(authz.FromBody("shelter_id"), roles.Admin)).
		Post("/", h.HandleCreate)
	r.With(gate.Require(authz.FromQuery("shelter_id"), roles.Admin)).
		Delete("/", h.HandleDelete)

	return r
}
