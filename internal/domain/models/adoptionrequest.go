// internal/domain/models/adoptionrequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Adoption request statuses. These are fixed reference data, not a lookup
// collection: the processing endpoint only accepts the three values below.
const (
	AdoptionStatusPending  = 1
	AdoptionStatusApproved = 2
	AdoptionStatusRejected = 3
)

// IsValidAdoptionStatus reports whether id names a defined request status.
func IsValidAdoptionStatus(id int) bool {
	return id >= AdoptionStatusPending && id <= AdoptionStatusRejected
}

// AdoptionRequest is an adopter's application for a specific pet. The owning
// shelter is not stored on the request; it is resolved through the pet
// (request -> pet -> shelter) when shelter staff process it.
type AdoptionRequest struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PetID    primitive.ObjectID `bson:"pet_id" json:"pet_id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	StatusID int                `bson:"status_id" json:"status_id"`

	// Answers holds the applicant's free-form questionnaire responses.
	Answers map[string]any `bson:"answers" json:"answers"`

	// AdminMessage is set by shelter staff when the request is processed.
	AdminMessage *string `bson:"admin_message,omitempty" json:"admin_message,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
