// internal/app/store/assignments/assignmentstore.go
package assignmentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/shelterhub/internal/app/system/roles"
	"github.com/dalemusser/shelterhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound            = errors.New("assignment not found")
	ErrDuplicateAssignment = errors.New("user already has this role at this shelter")
	ErrInvalidRole         = errors.New("unknown role id")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("assignments")}
}

// Create records that a user holds a role at a shelter. The unique index on
// (user_id, role_id, shelter_id) rejects repeats, which invitation handlers
// surface as a conflict.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, roleID int, shelterID primitive.ObjectID) (models.Assignment, error) {
	if !roles.IsValidID(roleID) {
		return models.Assignment{}, ErrInvalidRole
	}

	a := models.Assignment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		RoleID:    roleID,
		ShelterID: shelterID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Assignment{}, ErrDuplicateAssignment
		}
		return models.Assignment{}, err
	}
	return a, nil
}

// Find returns all assignments a user holds at a shelter, in insertion
// order. Callers that need a single role take the first entry.
func (s *Store) Find(ctx context.Context, userID, shelterID primitive.ObjectID) ([]models.Assignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID, "shelter_id": shelterID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByShelter returns every assignment at a shelter.
func (s *Store) ListByShelter(ctx context.Context, shelterID primitive.ObjectID) ([]models.Assignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"shelter_id": shelterID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser returns every assignment a user holds across shelters.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Assignment, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the assignment for (userID, roleID, shelterID).
func (s *Store) Delete(ctx context.Context, userID primitive.ObjectID, roleID int, shelterID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{
		"user_id":    userID,
		"role_id":    roleID,
		"shelter_id": shelterID,
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates indexes for the assignments collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "role_id", Value: 1},
				{Key: "shelter_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("idx_assignment_user_role_shelter"),
		},
		{
			Keys:    bson.D{{Key: "shelter_id", Value: 1}},
			Options: options.Index().SetName("idx_assignment_shelter"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "shelter_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("idx_assignment_user_shelter"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
