// internal/domain/models/pet.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pet belongs to exactly one shelter; pet.shelter_id is the authoritative
// edge the tenant-context resolver follows when authorizing pet operations.
// Species, sex, status, size, and colors reference the fixed lookup tables
// seeded at startup.
type Pet struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"name_ci"`

	Birthdate   *string `bson:"birthdate,omitempty" json:"birthdate,omitempty"` // "2006-01-02"
	Breed       *string `bson:"breed,omitempty" json:"breed,omitempty"`
	Description *string `bson:"description,omitempty" json:"description,omitempty"`

	SpeciesID int   `bson:"species_id" json:"species_id"`
	SexID     int   `bson:"sex_id" json:"sex_id"`
	StatusID  int   `bson:"status_id" json:"status_id"`
	SizeID    int   `bson:"size_id" json:"size_id"`
	ColorIDs  []int `bson:"color_ids" json:"color_ids"`

	ShelterID primitive.ObjectID `bson:"shelter_id" json:"shelter_id"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the pet has been soft-deleted.
func (p Pet) IsDeleted() bool {
	return p.DeletedAt != nil
}
