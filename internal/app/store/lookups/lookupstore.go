// internal/app/store/lookups/lookupstore.go
// Package lookupstore serves the fixed reference tables pets point at by id:
// species, sexes, statuses, sizes, and colors. Seed is idempotent upserts
// keyed by _id, so redeploys never renumber existing values.
package lookupstore

import (
	"context"

	"github.com/dalemusser/shelterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	species  *mongo.Collection
	sexes    *mongo.Collection
	statuses *mongo.Collection
	sizes    *mongo.Collection
	colors   *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		species:  db.Collection("pet_species"),
		sexes:    db.Collection("sexes"),
		statuses: db.Collection("pet_statuses"),
		sizes:    db.Collection("pet_sizes"),
		colors:   db.Collection("pet_colors"),
	}
}

var (
	seedSpecies  = []string{"dog", "cat"}
	seedSexes    = []string{"male", "female"}
	seedStatuses = []string{"in_shelter", "in_transit", "adopted"}
	seedSizes    = []string{"small", "medium", "large"}
	seedColors   = []string{
		"black", "white", "brown", "gray", "beige", "golden",
		"coffee", "cream", "chocolate", "orange", "cinnamon", "fawn",
	}
)

// Seed upserts all reference rows. Safe to run at every startup.
func (s *Store) Seed(ctx context.Context) error {
	tables := []struct {
		c      *mongo.Collection
		field  string
		values []string
	}{
		{s.species, "species", seedSpecies},
		{s.sexes, "sex", seedSexes},
		{s.statuses, "status", seedStatuses},
		{s.sizes, "size", seedSizes},
		{s.colors, "color", seedColors},
	}
	for _, tbl := range tables {
		for i, v := range tbl.values {
			id := i + 1
			_, err := tbl.c.UpdateByID(ctx, id,
				bson.M{"$set": bson.M{tbl.field: v}},
				options.Update().SetUpsert(true))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Species returns all species rows ordered by id.
func (s *Store) Species(ctx context.Context) ([]models.PetSpecies, error) {
	var out []models.PetSpecies
	if err := listByID(ctx, s.species, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Sexes returns all sex rows ordered by id.
func (s *Store) Sexes(ctx context.Context) ([]models.Sex, error) {
	var out []models.Sex
	if err := listByID(ctx, s.sexes, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Statuses returns all pet status rows ordered by id.
func (s *Store) Statuses(ctx context.Context) ([]models.PetStatus, error) {
	var out []models.PetStatus
	if err := listByID(ctx, s.statuses, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Sizes returns all size rows ordered by id.
func (s *Store) Sizes(ctx context.Context) ([]models.PetSize, error) {
	var out []models.PetSize
	if err := listByID(ctx, s.sizes, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Colors returns all color rows ordered by id.
func (s *Store) Colors(ctx context.Context) ([]models.PetColor, error) {
	var out []models.PetColor
	if err := listByID(ctx, s.colors, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidColorIDs reports whether every id exists in the colors table.
func (s *Store) ValidColorIDs(ctx context.Context, ids []int) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	uniq := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		uniq[id] = struct{}{}
	}
	all := make([]int, 0, len(uniq))
	for id := range uniq {
		all = append(all, id)
	}
	n, err := s.colors.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": all}})
	if err != nil {
		return false, err
	}
	return n == int64(len(all)), nil
}

func listByID(ctx context.Context, c *mongo.Collection, out any) error {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return cur.All(ctx, out)
}
