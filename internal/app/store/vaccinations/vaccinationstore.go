// internal/app/store/vaccinations/vaccinationstore.go
package vaccinationstore

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

var ErrNotFound = errors.New("vaccination not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("vaccinations")}
}

// ListFilter narrows List results. Nil fields are ignored.
type ListFilter struct {
	PetID          *primitive.ObjectID
	VaccineID      *primitive.ObjectID
	IncludeDeleted bool
}

// Create records that a pet received a vaccine.
func (s *Store) Create(ctx context.Context, v models.Vaccination) (models.Vaccination, error) {
	v.ID = primitive.NewObjectID()
	v.CreatedAt = time.Now().UTC()
	v.DeletedAt = nil
	if _, err := s.c.InsertOne(ctx, v); err != nil {
		return models.Vaccination{}, err
	}
	return v, nil
}

// GetByID retrieves a vaccination record by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Vaccination, error) {
	var v models.Vaccination
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Vaccination{}, ErrNotFound
		}
		return models.Vaccination{}, err
	}
	return v, nil
}

// List returns vaccination records matching the filter, newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Vaccination, error) {
	filter := bson.M{}
	if !f.IncludeDeleted {
		filter["deleted_at"] = nil
	}
	if f.PetID != nil {
		filter["pet_id"] = *f.PetID
	}
	if f.VaccineID != nil {
		filter["vaccine_id"] = *f.VaccineID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Vaccination
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SoftDelete stamps deleted_at on a vaccination record.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "deleted_at": nil},
		bson.M{"$set": bson.M{"deleted_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates indexes for the vaccinations collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pet_id", Value: 1}},
			Options: options.Index().SetName("idx_vaccination_pet"),
		},
		{
			Keys:    bson.D{{Key: "vaccine_id", Value: 1}},
			Options: options.Index().SetName("idx_vaccination_vaccine"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
