// internal/app/system/shelterctx/shelterctx.go
// Package shelterctx resolves which shelter a request is about when the URL
// names a subordinate resource (a pet, or an adoption request) instead of
// the shelter itself. The resolved id is placed in the request context for
// the authorization gate.
package shelterctx

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/shelterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when any hop of the resolution chain is missing
// or archived. Resolution never guesses: a broken chain is a 404, not a
// fallback to some other shelter.
var ErrNotFound = errors.New("shelter context not found")

// PetSource supplies active (non-archived) pets by id.
type PetSource interface {
	GetActiveByID(ctx context.Context, id primitive.ObjectID) (models.Pet, error)
}

// RequestSource supplies adoption requests by id.
type RequestSource interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.AdoptionRequest, error)
}

// Resolver walks subordinate resources back to their owning shelter.
type Resolver struct {
	pets     PetSource
	requests RequestSource
}

// NewResolver wires the resolver to its stores.
func NewResolver(pets PetSource, requests RequestSource) *Resolver {
	return &Resolver{pets: pets, requests: requests}
}

// ShelterForPet returns the shelter owning the pet. Archived and missing
// pets both resolve to ErrNotFound.
func (r *Resolver) ShelterForPet(ctx context.Context, petID primitive.ObjectID) (primitive.ObjectID, error) {
	pet, err := r.pets.GetActiveByID(ctx, petID)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return pet.ShelterID, nil
}

// ShelterForAdoptionRequest resolves request -> pet -> shelter. Each hop
// fails fast: a missing request or a missing/archived pet is ErrNotFound.
func (r *Resolver) ShelterForAdoptionRequest(ctx context.Context, reqID primitive.ObjectID) (primitive.ObjectID, error) {
	req, err := r.requests.GetByID(ctx, reqID)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return r.ShelterForPet(ctx, req.PetID)
}

type ctxKey string

const shelterIDKey ctxKey = "shelterID"

// FromContext returns the shelter id attached by a resolver middleware.
func FromContext(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(shelterIDKey).(primitive.ObjectID)
	return id, ok
}

// WithShelterID returns a context carrying the resolved shelter id.
func WithShelterID(ctx context.Context, id primitive.ObjectID) context.Context {
	return context.WithValue(ctx, shelterIDKey, id)
}

// WithRequestShelterID returns a request whose context carries the id.
// Test helper counterpart to the middleware.
func WithRequestShelterID(r *http.Request, id primitive.ObjectID) *http.Request {
	return r.WithContext(WithShelterID(r.Context(), id))
}
