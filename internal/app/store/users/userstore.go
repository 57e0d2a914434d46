// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/shelterhub/internal/app/system/auth"
	"github.com/dalemusser/shelterhub/internal/app/system/normalize"
	"github.com/dalemusser/shelterhub/internal/app/system/status"
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
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("a user with this email already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// SyncFromIdentity reconciles a verified identity with the users collection.
// Match order: subject id first (refreshing name/email if the claims have
// drifted since the last login), then email (attaching the subject id to a
// pre-created placeholder), then a fresh record. The unique indexes on email
// and subject_id make concurrent first-logins collapse to a single record.
func (s *Store) SyncFromIdentity(ctx context.Context, id auth.Identity) (models.User, error) {
	email := normalize.Email(id.Email)
	now := time.Now().UTC()

	var u models.User
	err := s.c.FindOne(ctx, bson.M{"subject_id": id.SubjectID}).Decode(&u)
	if err == nil {
		return s.refreshFromClaims(ctx, u, id, email, now)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, err
	}

	// No record for this subject yet; an invitation may have created a
	// placeholder keyed by email.
	update := bson.M{
		"$set": bson.M{
			"subject_id": id.SubjectID,
			"updated_at": now,
		},
	}
	if id.Name != "" {
		update["$set"].(bson.M)["full_name"] = normalize.Name(id.Name)
		update["$set"].(bson.M)["full_name_ci"] = text.Fold(id.Name)
	}
	res := s.c.FindOneAndUpdate(ctx, bson.M{"email": email},
		update, options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err := res.Decode(&u); err == nil {
		return u, nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, err
	}

	subject := id.SubjectID
	name := id.Name
	if name == "" {
		name = email
	}
	u = models.User{
		ID:         primitive.NewObjectID(),
		FullName:   normalize.Name(name),
		FullNameCI: text.Fold(name),
		Email:      email,
		SubjectID:  &subject,
		Status:     status.Active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			// Lost a race with a concurrent first login; the winner's
			// record is the canonical one.
			return s.GetBySubjectID(ctx, id.SubjectID)
		}
		return models.User{}, err
	}
	return u, nil
}

// refreshFromClaims writes name/email changes from the identity provider back
// to an existing record, so the local copy never lags a rename or an email
// change upstream. A no-op when the claims already match.
func (s *Store) refreshFromClaims(ctx context.Context, u models.User, id auth.Identity, email string, now time.Time) (models.User, error) {
	set := bson.M{}
	if email != "" && email != u.Email {
		set["email"] = email
	}
	if id.Name != "" && normalize.Name(id.Name) != u.FullName {
		set["full_name"] = normalize.Name(id.Name)
		set["full_name_ci"] = text.Fold(id.Name)
	}
	if len(set) == 0 {
		return u, nil
	}
	set["updated_at"] = now

	res := s.c.FindOneAndUpdate(ctx, bson.M{"_id": u.ID},
		bson.M{"$set": set}, options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err := res.Decode(&u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// CreatePlaceholder inserts an invited user who has never signed in: the
// email doubles as the display name and subject_id stays unset until the
// first login attaches it.
func (s *Store) CreatePlaceholder(ctx context.Context, email string) (models.User, error) {
	email = normalize.Email(email)
	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   email,
		FullNameCI: text.Fold(email),
		Email:      email,
		Status:     status.Active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Create inserts a user from an admin-provided profile.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	if u.Status == "" {
		u.Status = status.Active
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// GetBySubjectID looks up a user by identity-provider subject.
func (s *Store) GetBySubjectID(ctx context.Context, subjectID string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"subject_id": subjectID}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// List returns users sorted by folded name.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user by ID.
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

// EnsureIndexes creates indexes for the users collection. The sparse unique
// subject_id index tolerates placeholder users that have not signed in yet.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_email"),
		},
		{
			Keys:    bson.D{{Key: "subject_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("idx_user_subject_id"),
		},
		{
			Keys:    bson.D{{Key: "full_name_ci", Value: 1}},
			Options: options.Index().SetName("idx_user_name_ci"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
