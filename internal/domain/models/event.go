// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a scheduled occurrence for a pet: a vet visit, an adoption fair
// appearance, a behavioral assessment.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PetID       primitive.ObjectID `bson:"pet_id" json:"pet_id"`
	Name        string             `bson:"name" json:"name"`
	Description *string            `bson:"description,omitempty" json:"description,omitempty"`
	DateTime    time.Time          `bson:"date_time" json:"date_time"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}
