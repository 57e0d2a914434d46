// internal/app/store/vaccines/vaccinestore.go
package vaccinestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/shelterhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound      = errors.New("vaccine not found")
	ErrDuplicateName = errors.New("a vaccine with this name already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("vaccines")}
}

// Create inserts a vaccine into the catalog.
func (s *Store) Create(ctx context.Context, v models.Vaccine) (models.Vaccine, error) {
	v.ID = primitive.NewObjectID()
	v.NameCI = text.Fold(v.Name)
	v.CreatedAt = time.Now().UTC()
	v.DeletedAt = nil
	if _, err := s.c.InsertOne(ctx, v); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Vaccine{}, ErrDuplicateName
		}
		return models.Vaccine{}, err
	}
	return v, nil
}

// GetByID retrieves a vaccine by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Vaccine, error) {
	var v models.Vaccine
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Vaccine{}, ErrNotFound
		}
		return models.Vaccine{}, err
	}
	return v, nil
}

// List returns the vaccine catalog sorted by folded name.
func (s *Store) List(ctx context.Context, includeDeleted bool) ([]models.Vaccine, error) {
	filter := bson.M{}
	if !includeDeleted {
		filter["deleted_at"] = nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var vaccines []models.Vaccine
	if err := cur.All(ctx, &vaccines); err != nil {
		return nil, err
	}
	return vaccines, nil
}

// SoftDelete stamps deleted_at on a vaccine.
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

// EnsureIndexes creates indexes for the vaccines collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_vaccine_name_ci"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
