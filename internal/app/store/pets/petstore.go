// internal/app/store/pets/petstore.go
package petstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/shelterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("pet not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("pets")}
}

// ListFilter narrows List results. Nil fields are ignored. ColorID matches
// pets whose color list contains the id.
type ListFilter struct {
	SpeciesID      *int
	StatusID       *int
	SizeID         *int
	ColorID        *int
	ShelterID      *primitive.ObjectID
	IncludeDeleted bool
}

// Create inserts a new pet under its shelter.
func (s *Store) Create(ctx context.Context, p models.Pet) (models.Pet, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.NameCI = text.Fold(p.Name)
	p.CreatedAt = now
	p.UpdatedAt = now
	p.DeletedAt = nil
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Pet{}, err
	}
	return p, nil
}

// GetByID retrieves a pet by its ID, soft-deleted or not.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Pet, error) {
	var p models.Pet
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Pet{}, ErrNotFound
		}
		return models.Pet{}, err
	}
	return p, nil
}

// GetActiveByID retrieves a pet that has not been soft-deleted.
func (s *Store) GetActiveByID(ctx context.Context, id primitive.ObjectID) (models.Pet, error) {
	var p models.Pet
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "deleted_at": nil}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Pet{}, ErrNotFound
		}
		return models.Pet{}, err
	}
	return p, nil
}

// List returns pets matching the filter, newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Pet, error) {
	filter := bson.M{}
	if !f.IncludeDeleted {
		filter["deleted_at"] = nil
	}
	if f.SpeciesID != nil {
		filter["species_id"] = *f.SpeciesID
	}
	if f.StatusID != nil {
		filter["status_id"] = *f.StatusID
	}
	if f.SizeID != nil {
		filter["size_id"] = *f.SizeID
	}
	if f.ColorID != nil {
		filter["color_ids"] = *f.ColorID
	}
	if f.ShelterID != nil {
		filter["shelter_id"] = *f.ShelterID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var pets []models.Pet
	if err := cur.All(ctx, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

// Update patches a pet's mutable fields. Nil pointer fields are untouched;
// ColorIDs replaces the whole list when non-nil.
type Update struct {
	Name        *string
	Birthdate   *string
	Breed       *string
	Description *string
	SpeciesID   *int
	SexID       *int
	StatusID    *int
	SizeID      *int
	ColorIDs    []int
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
		set["name_ci"] = text.Fold(*upd.Name)
	}
	if upd.Birthdate != nil {
		set["birthdate"] = *upd.Birthdate
	}
	if upd.Breed != nil {
		set["breed"] = *upd.Breed
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.SpeciesID != nil {
		set["species_id"] = *upd.SpeciesID
	}
	if upd.SexID != nil {
		set["sex_id"] = *upd.SexID
	}
	if upd.StatusID != nil {
		set["status_id"] = *upd.StatusID
	}
	if upd.SizeID != nil {
		set["size_id"] = *upd.SizeID
	}
	if upd.ColorIDs != nil {
		set["color_ids"] = upd.ColorIDs
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "deleted_at": nil}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Archive stamps deleted_at on a pet, hiding it from default listings.
// Already-archived pets are reported as not found.
func (s *Store) Archive(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "deleted_at": nil},
		bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a pet record entirely.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates indexes for the pets collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "shelter_id", Value: 1}},
			Options: options.Index().SetName("idx_pet_shelter"),
		},
		{
			Keys: bson.D{
				{Key: "species_id", Value: 1},
				{Key: "status_id", Value: 1},
			},
			Options: options.Index().SetName("idx_pet_species_status"),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_pet_name_ci"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
