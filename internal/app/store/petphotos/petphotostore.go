// internal/app/store/petphotos/petphotostore.go
package petphotostore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/shelterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("pet photo not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("pet_photos")}
}

// Create records photo metadata. When the photo is marked primary, any
// previous primary for the same pet is demoted first.
func (s *Store) Create(ctx context.Context, p models.PetPhoto) (models.PetPhoto, error) {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	p.DeletedAt = nil

	if p.IsPrimary {
		if err := s.demotePrimary(ctx, p.PetID); err != nil {
			return models.PetPhoto{}, err
		}
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.PetPhoto{}, err
	}
	return p, nil
}

// GetByID retrieves photo metadata by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.PetPhoto, error) {
	var p models.PetPhoto
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.PetPhoto{}, ErrNotFound
		}
		return models.PetPhoto{}, err
	}
	return p, nil
}

// ListByPet returns a pet's photos, primary first, then newest.
func (s *Store) ListByPet(ctx context.Context, petID primitive.ObjectID) ([]models.PetPhoto, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "is_primary", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cur, err := s.c.Find(ctx, bson.M{"pet_id": petID, "deleted_at": nil}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var photos []models.PetPhoto
	if err := cur.All(ctx, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// SetPrimary makes the given photo the pet's primary one.
func (s *Store) SetPrimary(ctx context.Context, id primitive.ObjectID) error {
	photo, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.demotePrimary(ctx, photo.PetID); err != nil {
		return err
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"is_primary": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete stamps deleted_at on a photo record. The stored object itself
// is cleaned up out of band.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "deleted_at": nil},
		bson.M{"$set": bson.M{"deleted_at": time.Now().UTC(), "is_primary": false}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) demotePrimary(ctx context.Context, petID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"pet_id": petID, "is_primary": true},
		bson.M{"$set": bson.M{"is_primary": false}})
	return err
}

// EnsureIndexes creates indexes for the pet_photos collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "pet_id", Value: 1},
				{Key: "is_primary", Value: -1},
			},
			Options: options.Index().SetName("idx_petphoto_pet_primary"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
