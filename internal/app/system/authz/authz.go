// internal/app/system/authz/authz.go
// Package authz decides whether an authenticated user may act on a shelter.
// Decisions are made per request from the assignments collection; nothing
// is cached, so a revoked assignment takes effect immediately.
package authz

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/shelterhub/internal/app/system/roles"
	"github.com/dalemusser/shelterhub/internal/domain/models"
)

var (
	// ErrUnauthenticated means no user identity reached the gate.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrMissingShelter means the request carried no shelter id, so there
	// is nothing to authorize against. A client error, not a denial.
	ErrMissingShelter = errors.New("no shelter id in request")

	// ErrForbidden covers both denial variants: the user has no assignment
	// at the shelter, or holds a role outside the allowed set.
	ErrForbidden = errors.New("insufficient permissions for this shelter")
)

// AssignmentSource lists a user's assignments at a shelter in stable order.
type AssignmentSource interface {
	Find(ctx context.Context, userID, shelterID primitive.ObjectID) ([]models.Assignment, error)
}

// Granted describes a passed check. It reflects the state read at decision
// time; handlers treat it as advisory, not as a capability token.
type Granted struct {
	ShelterID primitive.ObjectID
	RoleID    int
	RoleName  string
}

// Gate evaluates shelter-scoped role requirements.
type Gate struct {
	assignments AssignmentSource
}

// NewGate wires the gate to the assignments store.
func NewGate(assignments AssignmentSource) *Gate {
	return &Gate{assignments: assignments}
}

// Authorize checks that the user holds one of the allowed roles at the
// shelter. Checks run in a fixed order so the failure kind is deterministic:
// authentication, then shelter id presence, then assignment lookup, then
// role match. The user's first assignment at the shelter decides their role.
func (g *Gate) Authorize(ctx context.Context, userID primitive.ObjectID, shelterID primitive.ObjectID, allowed ...string) (Granted, error) {
	if userID == primitive.NilObjectID {
		return Granted{}, ErrUnauthenticated
	}
	if shelterID == primitive.NilObjectID {
		return Granted{}, ErrMissingShelter
	}

	assignments, err := g.assignments.Find(ctx, userID, shelterID)
	if err != nil {
		return Granted{}, err
	}
	if len(assignments) == 0 {
		return Granted{}, ErrForbidden
	}

	a := assignments[0]
	name := roles.Name(a.RoleID)
	for _, want := range allowed {
		if name == want {
			return Granted{ShelterID: shelterID, RoleID: a.RoleID, RoleName: name}, nil
		}
	}
	return Granted{}, ErrForbidden
}

type ctxKey string

const grantedKey ctxKey = "granted"

// FromContext returns the Granted decision attached by Require middleware.
func FromContext(ctx context.Context) (Granted, bool) {
	g, ok := ctx.Value(grantedKey).(Granted)
	return g, ok
}

// WithGranted returns a context carrying a passed decision.
func WithGranted(ctx context.Context, g Granted) context.Context {
	return context.WithValue(ctx, grantedKey, g)
}
