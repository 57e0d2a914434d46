// internal/domain/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment is the authoritative membership edge between users and
// shelters. Exactly one document per (user_id, role_id, shelter_id); a user
// may hold assignments in many shelters, and in principle more than one role
// in the same shelter. The authorization gate uses the first assignment
// returned by the store for a (user, shelter) pair.
type Assignment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	RoleID    int                `bson:"role_id" json:"role_id"`
	ShelterID primitive.ObjectID `bson:"shelter_id" json:"shelter_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
