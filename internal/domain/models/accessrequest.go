// internal/domain/models/accessrequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shelter access request statuses.
const (
	AccessRequestPending  = "pending"
	AccessRequestApproved = "approved"
	AccessRequestRejected = "rejected"
)

// IsValidAccessRequestStatus reports whether s names a defined status.
func IsValidAccessRequestStatus(s string) bool {
	return s == AccessRequestPending || s == AccessRequestApproved || s == AccessRequestRejected
}

// ShelterAccessRequest is a public application from a shelter that wants to
// be onboarded onto the platform. It is created unauthenticated and reviewed
// by platform admins.
type ShelterAccessRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShelterName string             `bson:"shelter_name" json:"shelter_name"`
	ShelterType string             `bson:"shelter_type" json:"shelter_type"`
	Country     string             `bson:"country" json:"country"`
	State       string             `bson:"state" json:"state"`
	City        string             `bson:"city" json:"city"`

	ContactName  string `bson:"contact_name" json:"contact_name"`
	ContactEmail string `bson:"contact_email" json:"contact_email"`
	ContactPhone string `bson:"contact_phone" json:"contact_phone"`
	Message      string `bson:"message" json:"message"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
