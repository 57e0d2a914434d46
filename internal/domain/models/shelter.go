// internal/domain/models/shelter.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shelter is the tenant boundary in ShelterHub. Pets and role assignments
// are scoped to exactly one shelter via their shelter_id field; authorization
// decisions are always made against a single shelter.
type Shelter struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"name_ci"` // Case-insensitive for search

	// Location fields are all optional; a shelter may be created with a
	// name alone and filled in later.
	Address   *string  `bson:"address,omitempty" json:"address,omitempty"`
	City      *string  `bson:"city,omitempty" json:"city,omitempty"`
	State     *string  `bson:"state,omitempty" json:"state,omitempty"`
	Country   *string  `bson:"country,omitempty" json:"country,omitempty"`
	Zip       *int     `bson:"zip,omitempty" json:"zip,omitempty"`
	Latitude  *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the shelter has been soft-deleted.
func (s Shelter) IsDeleted() bool {
	return s.DeletedAt != nil
}
