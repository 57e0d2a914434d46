// internal/domain/models/petphoto.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PetPhoto holds the metadata for a photo of a pet. Only the metadata lives
// here; the bytes live in object storage under ObjectKey and the upload
// pipeline is outside this service.
type PetPhoto struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PetID primitive.ObjectID `bson:"pet_id" json:"pet_id"`

	FileName    string `bson:"file_name" json:"file_name"`
	ContentType string `bson:"content_type" json:"content_type"`
	Size        int64  `bson:"size" json:"size"`
	ObjectKey   string `bson:"object_key" json:"object_key"`
	URL         string `bson:"url" json:"url"`
	IsPrimary   bool   `bson:"is_primary" json:"is_primary"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}
