// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents any principal known to the system: shelter staff,
// adopters, and invited people who have not signed in yet.
//
// NOTE:
//   - Shelter membership is not embedded on User.
//     Use the assignments collection to discover a user's shelters.
//   - SubjectID is the stable identifier issued by the external identity
//     provider. It is nil for placeholder users created by invitations;
//     it is attached the first time the person authenticates.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`
	SubjectID  *string            `bson:"subject_id,omitempty" json:"subject_id,omitempty"`
	Status     string             `bson:"status,omitempty" json:"status,omitempty"`

	// Optional profile fields carried over from signup.
	Age     int     `bson:"age,omitempty" json:"age,omitempty"`
	Country *string `bson:"country,omitempty" json:"country,omitempty"`
	State   *string `bson:"state,omitempty" json:"state,omitempty"`
	City    *string `bson:"city,omitempty" json:"city,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsPlaceholder reports whether the user was created by an invitation and
// has never authenticated.
func (u User) IsPlaceholder() bool {
	return u.SubjectID == nil
}
