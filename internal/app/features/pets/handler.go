// internal/app/features/pets/handler.go
package pets

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	lookupstore "github.com/dalemusser/shelterhub/internal/app/store/lookups"
	petstore "github.com/dalemusser/shelterhub/internal/app/store/pets"
	shelterstore "github.com/dalemusser/shelterhub/internal/app/store/shelters"
	"github.com/dalemusser/shelterhub/internal/app/system/respond"
	"github.com/dalemusser/shelterhub/internal/domain/models"
)

const birthdateLayout = "2006-01-02"

// Handler is the shared dependency container for the pets feature.
type Handler struct {
	Pets     *petstore.Store
	Shelters *shelterstore.Store
	Lookups  *lookupstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Pets:     petstore.New(db),
		Shelters: shelterstore.New(db),
		Lookups:  lookupstore.New(db),
		Log:      logger,
	}
}

// HandleList handles GET /pets with optional filters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := petstore.ListFilter{
		IncludeDeleted: q.Get("include_deleted") == "true",
	}

	intFilters := []struct {
		name string
		dst  **int
	}{
		{"species_id", &f.SpeciesID},
		{"status_id", &f.StatusID},
		{"size_id", &f.SizeID},
		{"color_id", &f.ColorID},
	}
	for _, p := range intFilters {
		if raw := q.Get(p.name); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				respond.BadRequest(w, p.name+" must be an integer")
				return
			}
			*p.dst = &v
		}
	}
	if raw := q.Get("shelter_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respond.BadRequest(w, "invalid shelter_id")
			return
		}
		f.ShelterID = &id
	}

	pets, err := h.Pets.List(r.Context(), f)
	if err != nil {
		h.Log.Error("list pets failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving pets.")
		return
	}
	respond.OK(w, "Pets retrieved successfully", pets)
}

// HandleGet handles GET /pets/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid pet id")
		return
	}

	pet, err := h.Pets.GetActiveByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, petstore.ErrNotFound) {
			respond.NotFound(w, "Pet not found")
			return
		}
		h.Log.Error("get pet failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving the pet.")
		return
	}
	respond.OK(w, "Pet retrieved successfully", pet)
}

type createPetRequest struct {
	Name        string  `json:"name"`
	ShelterID   string  `json:"shelter_id"`
	SpeciesID   int     `json:"species_id"`
	SexID       int     `json:"sex_id"`
	StatusID    int     `json:"status_id"`
	SizeID      int     `json:"size_id"`
	ColorIDs    []int   `json:"color_ids,omitempty"`
	Birthdate   *string `json:"birthdate,omitempty"`
	Breed       *string `json:"breed,omitempty"`
	Description *string `json:"description,omitempty"`
}

// HandleCreate handles POST /pets. The authorization gate has already
// checked the caller's role at the shelter named in the body.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPetRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if req.Name == "" {
		respond.BadRequest(w, "name is required")
		return
	}
	shelterID, err := primitive.ObjectIDFromHex(req.ShelterID)
	if err != nil {
		respond.BadRequest(w, "invalid shelter_id")
		return
	}
	if req.Birthdate != nil {
		if _, err := time.Parse(birthdateLayout, *req.Birthdate); err != nil {
			respond.BadRequest(w, "birthdate must be YYYY-MM-DD")
			return
		}
	}

	shelter, err := h.Shelters.GetByID(r.Context(), shelterID)
	if err != nil || shelter.IsDeleted() {
		respond.NotFound(w, "Shelter not found")
		return
	}

	ok, err := h.Lookups.ValidColorIDs(r.Context(), req.ColorIDs)
	if err != nil {
		h.Log.Error("validate color ids failed", zap.Error(err))
		respond.Internal(w, "An error occurred while creating the pet.")
		return
	}
	if !ok {
		respond.BadRequest(w, "color_ids contains an unknown color")
		return
	}

	pet, err := h.Pets.Create(r.Context(), models.Pet{
		Name:        req.Name,
		Birthdate:   req.Birthdate,
		Breed:       req.Breed,
		Description: req.Description,
		SpeciesID:   req.SpeciesID,
		SexID:       req.SexID,
		StatusID:    req.StatusID,
		SizeID:      req.SizeID,
		ColorIDs:    req.ColorIDs,
		ShelterID:   shelterID,
	})
	if err != nil {
		h.Log.Error("create pet failed", zap.Error(err))
		respond.Internal(w, "An error occurred while creating the pet.")
		return
	}
	respond.Created(w, "Pet created successfully", pet)
}

type updatePetRequest struct {
	Name        *string `json:"name,omitempty"`
	Birthdate   *string `json:"birthdate,omitempty"`
	Breed       *string `json:"breed,omitempty"`
	Description *string `json:"description,omitempty"`
	SpeciesID   *int    `json:"species_id,omitempty"`
	SexID       *int    `json:"sex_id,omitempty"`
	StatusID    *int    `json:"status_id,omitempty"`
	SizeID      *int    `json:"size_id,omitempty"`
	ColorIDs    []int   `json:"color_ids,omitempty"`
}

// HandleUpdate handles PATCH /pets/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid pet id")
		return
	}

	var req updatePetRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if req.Birthdate != nil {
		if _, err := time.Parse(birthdateLayout, *req.Birthdate); err != nil {
			respond.BadRequest(w, "birthdate must be YYYY-MM-DD")
			return
		}
	}
	if req.ColorIDs != nil {
		ok, err := h.Lookups.ValidColorIDs(r.Context(), req.ColorIDs)
		if err != nil {
			h.Log.Error("validate color ids failed", zap.Error(err))
			respond.Internal(w, "An error occurred while updating the pet.")
			return
		}
		if !ok {
			respond.BadRequest(w, "color_ids contains an unknown color")
			return
		}
	}

	err = h.Pets.Update(r.Context(), id, petstore.Update{
		Name:        req.Name,
		Birthdate:   req.Birthdate,
		Breed:       req.Breed,
		Description: req.Description,
		SpeciesID:   req.SpeciesID,
		SexID:       req.SexID,
		StatusID:    req.StatusID,
		SizeID:      req.SizeID,
		ColorIDs:    req.ColorIDs,
	})
	if err != nil {
		if errors.Is(err, petstore.ErrNotFound) {
			respond.NotFound(w, "Pet not found")
			return
		}
		h.Log.Error("update pet failed", zap.Error(err))
		respond.Internal(w, "An error occurred while updating the pet.")
		return
	}

	pet, err := h.Pets.GetByID(r.Context(), id)
	if err != nil {
		h.Log.Error("reload pet failed", zap.Error(err))
		respond.Internal(w, "An error occurred while updating the pet.")
		return
	}
	respond.OK(w, "Pet updated successfully", pet)
}

// HandleDelete handles DELETE /pets/{id} (permanent removal).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid pet id")
		return
	}

	if err := h.Pets.Delete(r.Context(), id); err != nil {
		if errors.Is(err, petstore.ErrNotFound) {
			respond.NotFound(w, "Pet not found")
			return
		}
		h.Log.Error("delete pet failed", zap.Error(err))
		respond.Internal(w, "An error occurred while deleting the pet.")
		return
	}
	respond.OK(w, "Pet deleted successfully", nil)
}

// HandleArchive handles POST /pets/{id}/archive (soft delete).
func (h *Handler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid pet id")
		return
	}

	if err := h.Pets.Archive(r.Context(), id); err != nil {
		if errors.Is(err, petstore.ErrNotFound) {
			respond.NotFound(w, "Pet not found or already archived")
			return
		}
		h.Log.Error("archive pet failed", zap.Error(err))
		respond.Internal(w, "An error occurred while archiving the pet.")
		return
	}

	pet, err := h.Pets.GetByID(r.Context(), id)
	if err != nil {
		h.Log.Error("reload pet failed", zap.Error(err))
		respond.Internal(w, "An error occurred while archiving the pet.")
		return
	}
	respond.OK(w, "Pet archived successfully", pet)
}
