// internal/app/features/petphotos/handler.go
package petphotos

import (
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	petphotostore "github.com/dalemusser/shelterhub/internal/app/store/petphotos"
	petstore "github.com/dalemusser/shelterhub/internal/app/store/pets"
	"github.com/dalemusser/shelterhub/internal/app/system/respond"
	"github.com/dalemusser/shelterhub/internal/domain/models"
)

// Handler serves pet photo metadata. The image bytes themselves live in
// object storage; this service only tracks where they are and which photo
// is the pet's primary one.
type Handler struct {
	Photos *petphotostore.Store
	Pets   *petstore.Store
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Photos: petphotostore.New(db),
		Pets:   petstore.New(db),
		Log:    logger,
	}
}

// HandleList handles GET /pet-photos?pet_id=... The primary photo sorts
// first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("pet_id")
	if raw == "" {
		respond.BadRequest(w, "pet_id is required")
		return
	}
	petID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		respond.BadRequest(w, "invalid pet_id")
		return
	}

	photos, err := h.Photos.ListByPet(r.Context(), petID)
	if err != nil {
		h.Log.Error("list pet photos failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving pet photos.")
		return
	}
	respond.OK(w, "Pet photos retrieved successfully", photos)
}

// HandleGet handles GET /pet-photos/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid pet photo id")
		return
	}

	photo, err := h.Photos.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, petphotostore.ErrNotFound) {
			respond.NotFound(w, "Pet photo not found")
			return
		}
		h.Log.Error("get pet photo failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving the pet photo.")
		return
	}
	respond.OK(w, "Pet photo retrieved successfully", photo)
}

type createPhotoRequest struct {
	PetID       string `json:"pet_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	ObjectKey   string `json:"object_key,omitempty"`
	URL         string `json:"url,omitempty"`
	IsPrimary   bool   `json:"is_primary"`
}

// HandleCreate handles POST /pet-photos, registering metadata for an image
// in object storage. When the client does not supply an object_key, one is
// minted under the pet's prefix.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPhotoRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if req.FileName == "" {
		respond.BadRequest(w, "file_name is required")
		return
	}
	petID, err := primitive.ObjectIDFromHex(req.PetID)
	if err != nil {
		respond.BadRequest(w, "invalid pet_id")
		return
	}
	if req.ObjectKey == "" {
		req.ObjectKey = fmt.Sprintf("pets/%s/%s%s", petID.Hex(), uuid.NewString(), path.Ext(req.FileName))
	}

	if _, err := h.Pets.GetActiveByID(r.Context(), petID); err != nil {
		if errors.Is(err, petstore.ErrNotFound) {
			respond.NotFound(w, "Pet not found")
			return
		}
		h.Log.Error("load pet failed", zap.Error(err))
		respond.Internal(w, "An error occurred while creating the pet photo.")
		return
	}

	photo, err := h.Photos.Create(r.Context(), models.PetPhoto{
		PetID:       petID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Size:        req.Size,
		ObjectKey:   req.ObjectKey,
		URL:         req.URL,
		IsPrimary:   req.IsPrimary,
	})
	if err != nil {
		h.Log.Error("create pet photo failed", zap.Error(err))
		respond.Internal(w, "An error occurred while creating the pet photo.")
		return
	}
	respond.Created(w, "Pet photo created successfully", photo)
}

// HandleSetPrimary handles PATCH /pet-photos/{id}/primary, making this photo
// the pet's primary one and demoting any previous primary.
func (h *Handler) HandleSetPrimary(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid pet photo id")
		return
	}

	if err := h.Photos.SetPrimary(r.Context(), id); err != nil {
		if errors.Is(err, petphotostore.ErrNotFound) {
			respond.NotFound(w, "Pet photo not found")
			return
		}
		h.Log.Error("set primary photo failed", zap.Error(err))
		respond.Internal(w, "An error occurred while updating the pet photo.")
		return
	}

	photo, err := h.Photos.GetByID(r.Context(), id)
	if err != nil {
		h.Log.Error("reload pet photo failed", zap.Error(err))
		respond.Internal(w, "An error occurred while updating the pet photo.")
		return
	}
	respond.OK(w, "Pet photo updated successfully", photo)
}

// HandleDelete handles DELETE /pet-photos/{id} (soft delete). The stored
// object is not touched; cleanup is a storage-lifecycle concern.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid pet photo id")
		return
	}

	if err := h.Photos.SoftDelete(r.Context(), id); err != nil {
		if errors.Is(err, petphotostore.ErrNotFound) {
			respond.NotFound(w, "Pet photo not found")
			return
		}
		h.Log.Error("delete pet photo failed", zap.Error(err))
		respond.Internal(w, "An error occurred while deleting the pet photo.")
		return
	}
	respond.OK(w, "Pet photo deleted successfully", nil)
}
