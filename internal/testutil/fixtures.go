package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/shelterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with an attached identity-provider subject.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	subject := "sub-" + primitive.NewObjectID().Hex()
	u := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		SubjectID:  &subject,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateShelter creates a test shelter with the given name.
func (f *Fixtures) CreateShelter(ctx context.Context, name string) models.Shelter {
	f.t.Helper()

	now := time.Now().UTC()
	city, state, country := "Test City", "TS", "US"
	s := models.Shelter{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		City:      &city,
		State:     &state,
		Country:   &country,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("shelters").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test shelter: %v", err)
	}
	return s
}

// CreatePet creates a test pet at the given shelter. Lookup ids use the
// seeded values (species 1 = dog, status 1 = in_shelter, size 2 = medium).
func (f *Fixtures) CreatePet(ctx context.Context, name string, shelterID primitive.ObjectID) models.Pet {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Pet{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		SpeciesID: 1,
		SexID:     1,
		StatusID:  1,
		SizeID:    2,
		ShelterID: shelterID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("pets").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test pet: %v", err)
	}
	return p
}

// CreateAssignment grants a user a role at a shelter.
func (f *Fixtures) CreateAssignment(ctx context.Context, userID primitive.ObjectID, roleID int, shelterID primitive.ObjectID) models.Assignment {
	f.t.Helper()

	a := models.Assignment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		RoleID:    roleID,
		ShelterID: shelterID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("assignments").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test assignment: %v", err)
	}
	return a
}

// CreateVaccine creates a catalog vaccine with the given name.
func (f *Fixtures) CreateVaccine(ctx context.Context, name string) models.Vaccine {
	f.t.Helper()

	v := models.Vaccine{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("vaccines").InsertOne(ctx, v); err != nil {
		f.t.Fatalf("failed to create test vaccine: %v", err)
	}
	return v
}

// CreateAdoptionRequest creates a pending adoption request.
func (f *Fixtures) CreateAdoptionRequest(ctx context.Context, petID, userID primitive.ObjectID) models.AdoptionRequest {
	f.t.Helper()

	now := time.Now().UTC()
	req := models.AdoptionRequest{
		ID:        primitive.NewObjectID(),
		PetID:     petID,
		UserID:    userID,
		StatusID:  models.AdoptionStatusPending,
		Answers:   map[string]any{"housing": "apartment"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("adoption_requests").InsertOne(ctx, req); err != nil {
		f.t.Fatalf("failed to create test adoption request: %v", err)
	}
	return req
}
