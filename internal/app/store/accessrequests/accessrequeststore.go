// internal/app/store/accessrequests/accessrequeststore.go
package accessrequeststore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/shelterhub/internal/app/system/normalize"
	"github.com/dalemusser/shelterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound      = errors.New("access request not found")
	ErrInvalidStatus = errors.New("unknown access request status")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("shelter_access_requests")}
}

// Create inserts a pending onboarding request from a shelter operator.
func (s *Store) Create(ctx context.Context, req models.ShelterAccessRequest) (models.ShelterAccessRequest, error) {
	now := time.Now().UTC()
	req.ID = primitive.NewObjectID()
	req.ContactEmail = normalize.Email(req.ContactEmail)
	req.Status = models.AccessRequestPending
	req.CreatedAt = now
	req.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, req); err != nil {
		return models.ShelterAccessRequest{}, err
	}
	return req, nil
}

// GetByID retrieves an access request by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ShelterAccessRequest, error) {
	var req models.ShelterAccessRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ShelterAccessRequest{}, ErrNotFound
		}
		return models.ShelterAccessRequest{}, err
	}
	return req, nil
}

// List returns access requests, optionally filtered by status, newest first.
func (s *Store) List(ctx context.Context, status *string) ([]models.ShelterAccessRequest, error) {
	filter := bson.M{}
	if status != nil {
		filter["status"] = *status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reqs []models.ShelterAccessRequest
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// SetStatus records the review decision on an access request.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if !models.IsValidAccessRequestStatus(status) {
		return ErrInvalidStatus
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates indexes for the shelter_access_requests collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_accessreq_status"),
		},
		{
			Keys:    bson.D{{Key: "contact_email", Value: 1}},
			Options: options.Index().SetName("idx_accessreq_email"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
