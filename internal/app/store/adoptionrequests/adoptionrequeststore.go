// internal/app/store/adoptionrequests/adoptionrequeststore.go
package adoptionrequeststore

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

var (
	ErrNotFound      = errors.New("adoption request not found")
	ErrInvalidStatus = errors.New("unknown adoption status")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("adoption_requests")}
}

// ListFilter narrows List results. Nil fields are ignored.
type ListFilter struct {
	PetID    *primitive.ObjectID
	UserID   *primitive.ObjectID
	StatusID *int
}

// Create inserts a pending adoption request.
func (s *Store) Create(ctx context.Context, req models.AdoptionRequest) (models.AdoptionRequest, error) {
	now := time.Now().UTC()
	req.ID = primitive.NewObjectID()
	if req.StatusID == 0 {
		req.StatusID = models.AdoptionStatusPending
	}
	if !models.IsValidAdoptionStatus(req.StatusID) {
		return models.AdoptionRequest{}, ErrInvalidStatus
	}
	req.CreatedAt = now
	req.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, req); err != nil {
		return models.AdoptionRequest{}, err
	}
	return req, nil
}

// GetByID retrieves an adoption request by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.AdoptionRequest, error) {
	var req models.AdoptionRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.AdoptionRequest{}, ErrNotFound
		}
		return models.AdoptionRequest{}, err
	}
	return req, nil
}

// List returns adoption requests matching the filter, newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.AdoptionRequest, error) {
	filter := bson.M{}
	if f.PetID != nil {
		filter["pet_id"] = *f.PetID
	}
	if f.UserID != nil {
		filter["user_id"] = *f.UserID
	}
	if f.StatusID != nil {
		filter["status_id"] = *f.StatusID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reqs []models.AdoptionRequest
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// UpdateAnswers replaces the applicant's questionnaire answers.
func (s *Store) UpdateAnswers(ctx context.Context, id primitive.ObjectID, answers map[string]any) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"answers":    answers,
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

// Process records a shelter's decision: new status plus an optional message
// shown to the applicant.
func (s *Store) Process(ctx context.Context, id primitive.ObjectID, statusID int, adminMessage *string) error {
	if !models.IsValidAdoptionStatus(statusID) {
		return ErrInvalidStatus
	}

	set := bson.M{
		"status_id":  statusID,
		"updated_at": time.Now().UTC(),
	}
	if adminMessage != nil {
		set["admin_message"] = *adminMessage
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an adoption request.
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

// EnsureIndexes creates indexes for the adoption_requests collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pet_id", Value: 1}},
			Options: options.Index().SetName("idx_adoptreq_pet"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_adoptreq_user"),
		},
		{
			Keys:    bson.D{{Key: "status_id", Value: 1}},
			Options: options.Index().SetName("idx_adoptreq_status"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
