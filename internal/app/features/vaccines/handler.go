// internal/app/features/vaccines/handler.go
package vaccines

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	vaccinestore "github.com/dalemusser/shelterhub/internal/app/store/vaccines"
	"github.com/dalemusser/shelterhub/internal/app/system/respond"
	"github.com/dalemusser/shelterhub/internal/domain/models"
)

// Handler serves the shared vaccine catalog.
type Handler struct {
	Vaccines *vaccinestore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Vaccines: vaccinestore.New(db), Log: logger}
}

// HandleList handles GET /vaccines.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	includeDeleted := r.URL.Query().Get("include_deleted") == "true"

	vaccines, err := h.Vaccines.List(r.Context(), includeDeleted)
	if err != nil {
		h.Log.Error("list vaccines failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving vaccines.")
		return
	}
	respond.OK(w, "Vaccines retrieved successfully", vaccines)
}

// HandleGet handles GET /vaccines/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid vaccine id")
		return
	}

	vaccine, err := h.Vaccines.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, vaccinestore.ErrNotFound) {
			respond.NotFound(w, "Vaccine not found")
			return
		}
		h.Log.Error("get vaccine failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving the vaccine.")
		return
	}
	respond.OK(w, "Vaccine retrieved successfully", vaccine)
}

type createVaccineRequest struct {
	Name string `json:"name"`
}

// HandleCreate handles POST /vaccines.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createVaccineRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if req.Name == "" {
		respond.BadRequest(w, "name is required")
		return
	}

	vaccine, err := h.Vaccines.Create(r.Context(), models.Vaccine{Name: req.Name})
	if err != nil {
		if errors.Is(err, vaccinestore.ErrDuplicateName) {
			respond.Conflict(w, "A vaccine with this name already exists")
			return
		}
		h.Log.Error("create vaccine failed", zap.Error(err))
		respond.Internal(w, "An error occurred while creating the vaccine.")
		return
	}
	respond.Created(w, "Vaccine created successfully", vaccine)
}

// HandleDelete handles DELETE /vaccines/{id}. Catalog entries are soft-deleted
// so existing vaccination records keep a valid reference.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid vaccine id")
		return
	}

	if err := h.Vaccines.SoftDelete(r.Context(), id); err != nil {
		if errors.Is(err, vaccinestore.ErrNotFound) {
			respond.NotFound(w, "Vaccine not found")
			return
		}
		h.Log.Error("delete vaccine failed", zap.Error(err))
		respond.Internal(w, "An error occurred while deleting the vaccine.")
		return
	}
	respond.OK(w, "Vaccine deleted successfully", nil)
}
