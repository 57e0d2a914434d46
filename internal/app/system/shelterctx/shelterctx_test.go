// internal/app/system/shelterctx/shelterctx_test.go
package shelterctx

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/shelterhub/internal/domain/models"
)

type fakePets struct {
	pets map[primitive.ObjectID]models.Pet
}

func (f *fakePets) GetActiveByID(_ context.Context, id primitive.ObjectID) (models.Pet, error) {
	p, ok := f.pets[id]
	if !ok || p.IsDeleted() {
		return models.Pet{}, errors.New("pet not found")
	}
	return p, nil
}

type fakeRequests struct {
	reqs map[primitive.ObjectID]models.AdoptionRequest
}

func (f *fakeRequests) GetByID(_ context.Context, id primitive.ObjectID) (models.AdoptionRequest, error) {
	r, ok := f.reqs[id]
	if !ok {
		return models.AdoptionRequest{}, errors.New("adoption request not found")
	}
	return r, nil
}

func TestShelterForPet(t *testing.T) {
	shelterID := primitive.NewObjectID()
	petID := primitive.NewObjectID()
	pets := &fakePets{pets: map[primitive.ObjectID]models.Pet{
		petID: {ID: petID, ShelterID: shelterID},
	}}
	r := NewResolver(pets, &fakeRequests{})

	got, err := r.ShelterForPet(context.Background(), petID)
	if err != nil {
		t.Fatalf("ShelterForPet: %v", err)
	}
	if got != shelterID {
		t.Fatalf("shelter = %s, want %s", got.Hex(), shelterID.Hex())
	}
}

func TestShelterForPet_Missing(t *testing.T) {
	r := NewResolver(&fakePets{pets: map[primitive.ObjectID]models.Pet{}}, &fakeRequests{})
	if _, err := r.ShelterForPet(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestShelterForAdoptionRequest_TwoHops(t *testing.T) {
	shelterID := primitive.NewObjectID()
	petID := primitive.NewObjectID()
	reqID := primitive.NewObjectID()

	pets := &fakePets{pets: map[primitive.ObjectID]models.Pet{
		petID: {ID: petID, ShelterID: shelterID},
	}}
	reqs := &fakeRequests{reqs: map[primitive.ObjectID]models.AdoptionRequest{
		reqID: {ID: reqID, PetID: petID},
	}}
	r := NewResolver(pets, reqs)

	got, err := r.ShelterForAdoptionRequest(context.Background(), reqID)
	if err != nil {
		t.Fatalf("ShelterForAdoptionRequest: %v", err)
	}
	if got != shelterID {
		t.Fatalf("shelter = %s, want %s", got.Hex(), shelterID.Hex())
	}
}

func TestShelterForAdoptionRequest_ArchivedPet(t *testing.T) {
	shelterID := primitive.NewObjectID()
	petID := primitive.NewObjectID()
	reqID := primitive.NewObjectID()
	deleted := time.Now().UTC()

	pets := &fakePets{pets: map[primitive.ObjectID]models.Pet{
		petID: {ID: petID, ShelterID: shelterID, DeletedAt: &deleted},
	}}
	reqs := &fakeRequests{reqs: map[primitive.ObjectID]models.AdoptionRequest{
		reqID: {ID: reqID, PetID: petID},
	}}
	r := NewResolver(pets, reqs)

	if _, err := r.ShelterForAdoptionRequest(context.Background(), reqID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for archived pet", err)
	}
}

func TestShelterForAdoptionRequest_MissingRequest(t *testing.T) {
	r := NewResolver(&fakePets{}, &fakeRequests{reqs: map[primitive.ObjectID]models.AdoptionRequest{}})
	if _, err := r.ShelterForAdoptionRequest(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestContextRoundTrip(t *testing.T) {
	id := primitive.NewObjectID()
	ctx := WithShelterID(context.Background(), id)
	got, ok := FromContext(ctx)
	if !ok || got != id {
		t.Fatalf("FromContext = %v, %v", got, ok)
	}
	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("empty context must not carry a shelter id")
	}
}
