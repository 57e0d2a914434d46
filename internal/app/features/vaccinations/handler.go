// internal/app/features/vaccinations/handler.go
package vaccinations

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	petstore "github.com/dalemusser/shelterhub/internal/app/store/pets"
	vaccinationstore "github.com/dalemusser/shelterhub/internal/app/store/vaccinations"
	vaccinestore "github.com/dalemusser/shelterhub/internal/app/store/vaccines"
	"github.com/dalemusser/shelterhub/internal/app/system/respond"
	"github.com/dalemusser/shelterhub/internal/domain/models"
)

// Handler serves per-pet vaccination records.
type Handler struct {
	Vaccinations *vaccinationstore.Store
	Vaccines     *vaccinestore.Store
	Pets         *petstore.Store
	Log          *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Vaccinations: vaccinationstore.New(db),
		Vaccines:     vaccinestore.New(db),
		Pets:         petstore.New(db),
		Log:          logger,
	}
}

// HandleList handles GET /vaccinations with optional pet_id and vaccine_id
// filters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := vaccinationstore.ListFilter{
		IncludeDeleted: q.Get("include_deleted") == "true",
	}

	if raw := q.Get("pet_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respond.BadRequest(w, "invalid pet_id")
			return
		}
		f.PetID = &id
	}
	if raw := q.Get("vaccine_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respond.BadRequest(w, "invalid vaccine_id")
			return
		}
		f.VaccineID = &id
	}

	records, err := h.Vaccinations.List(r.Context(), f)
	if err != nil {
		h.Log.Error("list vaccinations failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving vaccinations.")
		return
	}
	respond.OK(w, "Vaccinations retrieved successfully", records)
}

// HandleGet handles GET /vaccinations/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid vaccination id")
		return
	}

	record, err := h.Vaccinations.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, vaccinationstore.ErrNotFound) {
			respond.NotFound(w, "Vaccination not found")
			return
		}
		h.Log.Error("get vaccination failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving the vaccination.")
		return
	}
	respond.OK(w, "Vaccination retrieved successfully", record)
}

type createVaccinationRequest struct {
	PetID     string `json:"pet_id"`
	VaccineID string `json:"vaccine_id"`
}

// HandleCreate handles POST /vaccinations. Both the pet and the vaccine
// must exist and be active.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createVaccinationRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	petID, err := primitive.ObjectIDFromHex(req.PetID)
	if err != nil {
		respond.BadRequest(w, "invalid pet_id")
		return
	}
	vaccineID, err := primitive.ObjectIDFromHex(req.VaccineID)
	if err != nil {
		respond.BadRequest(w, "invalid vaccine_id")
		return
	}

	if _, err := h.Pets.GetActiveByID(r.Context(), petID); err != nil {
		if errors.Is(err, petstore.ErrNotFound) {
			respond.NotFound(w, "Pet not found")
			return
		}
		h.Log.Error("load pet failed", zap.Error(err))
		respond.Internal(w, "An error occurred while creating the vaccination.")
		return
	}
	vaccine, err := h.Vaccines.GetByID(r.Context(), vaccineID)
	if err != nil || vaccine.DeletedAt != nil {
		respond.NotFound(w, "Vaccine not found")
		return
	}

	record, err := h.Vaccinations.Create(r.Context(), models.Vaccination{
		PetID:     petID,
		VaccineID: vaccineID,
	})
	if err != nil {
		h.Log.Error("create vaccination failed", zap.Error(err))
		respond.Internal(w, "An error occurred while creating the vaccination.")
		return
	}
	respond.Created(w, "Vaccination created successfully", record)
}

// HandleDelete handles DELETE /vaccinations/{id}. Records are soft-deleted
// to keep medical history auditable.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid vaccination id")
		return
	}

	if err := h.Vaccinations.SoftDelete(r.Context(), id); err != nil {
		if errors.Is(err, vaccinationstore.ErrNotFound) {
			respond.NotFound(w, "Vaccination not found")
			return
		}
		h.Log.Error("delete vaccination failed", zap.Error(err))
		respond.Internal(w, "An error occurred while deleting the vaccination.")
		return
	}
	respond.OK(w, "Vaccination deleted successfully", nil)
}
