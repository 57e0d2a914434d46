// internal/domain/models/lookups.go
package models

// Lookup values are small, fixed reference tables (species, sexes, pet
// statuses, sizes, colors) with stable integer ids. They are seeded
// idempotently at startup and served read-only; pets reference them by id.

// PetSpecies is a species lookup row.
type PetSpecies struct {
	ID      int    `bson:"_id" json:"id"`
	Species string `bson:"species" json:"species"`
}

// Sex is a sex lookup row.
type Sex struct {
	ID  int    `bson:"_id" json:"id"`
	Sex string `bson:"sex" json:"sex"`
}

// PetStatus is a pet status lookup row (in_shelter, fostered, adopted...).
type PetStatus struct {
	ID     int    `bson:"_id" json:"id"`
	Status string `bson:"status" json:"status"`
}

// PetSize is a size lookup row.
type PetSize struct {
	ID   int    `bson:"_id" json:"id"`
	Size string `bson:"size" json:"size"`
}

// PetColor is a color lookup row.
type PetColor struct {
	ID    int    `bson:"_id" json:"id"`
	Color string `bson:"color" json:"color"`
}
