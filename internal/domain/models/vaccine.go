// internal/domain/models/vaccine.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vaccine is a catalog entry (e.g. "Rabies", "Distemper") that vaccination
// records reference.
type Vaccine struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	NameCI    string             `bson:"name_ci" json:"name_ci"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	DeletedAt *time.Time         `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

// Vaccination records that a pet received a vaccine. Records are soft-deleted
// so a pet's medical history stays auditable.
type Vaccination struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VaccineID primitive.ObjectID `bson:"vaccine_id" json:"vaccine_id"`
	PetID     primitive.ObjectID `bson:"pet_id" json:"pet_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	DeletedAt *time.Time         `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}
