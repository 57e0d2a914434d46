// internal/app/features/accessrequests/routes.go
package accessrequests

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/shelterhub/internal/app/system/auth"
	"github.com/dalemusser/shelterhub/internal/app/system/authz"
	"github.com/dalemusser/shelterhub/internal/app/system/roles"
)

// Routes returns the shelter-access-requests subrouter. Applying is open to
// the public; reviewing applications requires a shelter admin, with the
// reviewing shelter named in the shelter_id query parameter.
func Routes(h *Handler, an *auth.Authenticator, gate *authz.Gate) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)

	r.Group(func(pr chi.Router) {
		pr.Use(an.Authenticate)
		pr.With(gate.Require(authz.FromQuery("shelter_id"), roles.Admin)).
			Get("/", h.HandleList)
		pr.With(gate.Require(authz.FromQuery("shelter_id"), roles.Admin)).
			Get("/{id}", h.HandleGet)
		pr.With(gate.Require(authz.FromQuery("shelter_id"), roles.Admin)).
			Patch("/{id}", h.HandleReview)
	})

	return r
}
