// internal/app/store/shelters/shelterstore.go
package shelterstore

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
	ErrNotFound      = errors.New("shelter not found")
	ErrDuplicateName = errors.New("a shelter with this name already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("shelters")}
}

// ListFilter narrows List results. Nil fields are ignored.
type ListFilter struct {
	City           *string
	State          *string
	Country        *string
	IncludeDeleted bool
}

// Create inserts a new shelter.
func (s *Store) Create(ctx context.Context, sh models.Shelter) (models.Shelter, error) {
	now := time.Now().UTC()
	sh.ID = primitive.NewObjectID()
	sh.NameCI = text.Fold(sh.Name)
	sh.CreatedAt = now
	sh.UpdatedAt = now
	sh.DeletedAt = nil
	if _, err := s.c.InsertOne(ctx, sh); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Shelter{}, ErrDuplicateName
		}
		return models.Shelter{}, err
	}
	return sh, nil
}

// GetByID retrieves a shelter by its ID. Soft-deleted shelters are still
// returned; callers decide whether deletion matters.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Shelter, error) {
	var sh models.Shelter
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sh); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Shelter{}, ErrNotFound
		}
		return models.Shelter{}, err
	}
	return sh, nil
}

// List returns shelters matching the filter, sorted by folded name.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Shelter, error) {
	filter := bson.M{}
	if !f.IncludeDeleted {
		filter["deleted_at"] = nil
	}
	if f.City != nil {
		filter["city"] = *f.City
	}
	if f.State != nil {
		filter["state"] = *f.State
	}
	if f.Country != nil {
		filter["country"] = *f.Country
	}

	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var shelters []models.Shelter
	if err := cur.All(ctx, &shelters); err != nil {
		return nil, err
	}
	return shelters, nil
}

// Update modifies a shelter's mutable fields. Nil pointer fields in upd are
// left untouched.
type Update struct {
	Name      *string
	Address   *string
	City      *string
	State     *string
	Country   *string
	Zip       *int
	Latitude  *float64
	Longitude *float64
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
		set["name_ci"] = text.Fold(*upd.Name)
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.City != nil {
		set["city"] = *upd.City
	}
	if upd.State != nil {
		set["state"] = *upd.State
	}
	if upd.Country != nil {
		set["country"] = *upd.Country
	}
	if upd.Zip != nil {
		set["zip"] = *upd.Zip
	}
	if upd.Latitude != nil {
		set["latitude"] = *upd.Latitude
	}
	if upd.Longitude != nil {
		set["longitude"] = *upd.Longitude
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateName
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete stamps deleted_at on a shelter. Already-deleted shelters are
// reported as not found.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
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

// EnsureIndexes creates indexes for the shelters collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_shelter_name_ci"),
		},
		{
			Keys: bson.D{
				{Key: "country", Value: 1},
				{Key: "state", Value: 1},
				{Key: "city", Value: 1},
			},
			Options: options.Index().SetName("idx_shelter_location"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
