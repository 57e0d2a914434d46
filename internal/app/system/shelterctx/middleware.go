// internal/app/system/shelterctx/middleware.go
package shelterctx

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/shelterhub/internal/app/system/respond"
)

// ForPetParam returns middleware that resolves the shelter for the pet
// named by the given chi URL parameter and attaches it to the context.
func (r *Resolver) ForPetParam(param string) func(http.Handler) http.Handler {
	return r.resolveParam(param, r.ShelterForPet)
}

// ForRequestParam returns middleware that resolves the shelter for the
// adoption request named by the given chi URL parameter.
func (r *Resolver) ForRequestParam(param string) func(http.Handler) http.Handler {
	return r.resolveParam(param, r.ShelterForAdoptionRequest)
}

func (r *Resolver) resolveParam(param string, resolve func(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id, err := primitive.ObjectIDFromHex(chi.URLParam(req, param))
			if err != nil {
				respond.BadRequest(w, "invalid id")
				return
			}
			shelterID, err := resolve(req.Context(), id)
			if err != nil {
				respond.NotFound(w, "resource not found")
				return
			}
			next.ServeHTTP(w, req.WithContext(WithShelterID(req.Context(), shelterID)))
		})
	}
}
