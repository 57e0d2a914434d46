// internal/app/features/adoptionrequests/handler.go
package adoptionrequests

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	requeststore "github.com/dalemusser/shelterhub/internal/app/store/adoptionrequests"
	petstore "github.com/dalemusser/shelterhub/internal/app/store/pets"
	"github.com/dalemusser/shelterhub/internal/app/system/auth"
	"github.com/dalemusser/shelterhub/internal/app/system/respond"
	"github.com/dalemusser/shelterhub/internal/domain/models"
)

// Handler is the shared dependency container for adoption requests.
type Handler struct {
	Requests *requeststore.Store
	Pets     *petstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Requests: requeststore.New(db),
		Pets:     petstore.New(db),
		Log:      logger,
	}
}

// HandleList handles GET /adoption-requests with optional filters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f requeststore.ListFilter

	if raw := q.Get("pet_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respond.BadRequest(w, "invalid pet_id")
			return
		}
		f.PetID = &id
	}
	if raw := q.Get("user_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respond.BadRequest(w, "invalid user_id")
			return
		}
		f.UserID = &id
	}
	if raw := q.Get("status_id"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			respond.BadRequest(w, "status_id must be an integer")
			return
		}
		f.StatusID = &v
	}

	reqs, err := h.Requests.List(r.Context(), f)
	if err != nil {
		h.Log.Error("list adoption requests failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving adoption requests.")
		return
	}
	respond.OK(w, "Adoption requests retrieved successfully", reqs)
}

// HandleGet handles GET /adoption-requests/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid adoption request id")
		return
	}

	req, err := h.Requests.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, requeststore.ErrNotFound) {
			respond.NotFound(w, "Adoption request not found")
			return
		}
		h.Log.Error("get adoption request failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving the adoption request.")
		return
	}
	respond.OK(w, "Adoption request retrieved successfully", req)
}

type createRequestBody struct {
	PetID   string         `json:"pet_id"`
	Answers map[string]any `json:"answers"`
}

// HandleCreate handles POST /adoption-requests. The applicant is the
// authenticated caller; requests always start out pending.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		respond.Failure(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var body createRequestBody
	if err := respond.DecodeJSON(r, &body); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	petID, err := primitive.ObjectIDFromHex(body.PetID)
	if err != nil {
		respond.BadRequest(w, "invalid pet_id")
		return
	}

	// Applications are only accepted for pets still listed.
	if _, err := h.Pets.GetActiveByID(r.Context(), petID); err != nil {
		if errors.Is(err, petstore.ErrNotFound) {
			respond.NotFound(w, "Pet not found")
			return
		}
		h.Log.Error("load pet failed", zap.Error(err))
		respond.Internal(w, "An error occurred while creating the adoption request.")
		return
	}

	req, err := h.Requests.Create(r.Context(), models.AdoptionRequest{
		PetID:   petID,
		UserID:  user.ID,
		Answers: body.Answers,
	})
	if err != nil {
		h.Log.Error("create adoption request failed", zap.Error(err))
		respond.Internal(w, "An error occurred while creating the adoption request.")
		return
	}
	respond.Created(w, "Adoption request created successfully", req)
}

type updateRequestBody struct {
	Answers map[string]any `json:"answers"`
}

// HandleUpdate handles PATCH /adoption-requests/{id}. Only the applicant
// may revise their questionnaire answers, and only while still pending.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		respond.Failure(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid adoption request id")
		return
	}

	var body updateRequestBody
	if err := respond.DecodeJSON(r, &body); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if body.Answers == nil {
		respond.BadRequest(w, "answers is required")
		return
	}

	existing, err := h.Requests.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, requeststore.ErrNotFound) {
			respond.NotFound(w, "Adoption request not found")
			return
		}
		h.Log.Error("get adoption request failed", zap.Error(err))
		respond.Internal(w, "An error occurred while updating the adoption request.")
		return
	}
	if existing.UserID != user.ID {
		respond.Failure(w, "Only the applicant may update this request", http.StatusForbidden)
		return
	}
	if existing.StatusID != models.AdoptionStatusPending {
		respond.Conflict(w, "Only pending requests can be updated")
		return
	}

	if err := h.Requests.UpdateAnswers(r.Context(), id, body.Answers); err != nil {
		if errors.Is(err, requeststore.ErrNotFound) {
			respond.NotFound(w, "Adoption request not found")
			return
		}
		h.Log.Error("update adoption request failed", zap.Error(err))
		respond.Internal(w, "An error occurred while updating the adoption request.")
		return
	}

	req, err := h.Requests.GetByID(r.Context(), id)
	if err != nil {
		h.Log.Error("reload adoption request failed", zap.Error(err))
		respond.Internal(w, "An error occurred while updating the adoption request.")
		return
	}
	respond.OK(w, "Adoption request updated successfully", req)
}

type processRequestBody struct {
	StatusID     int     `json:"status_id"`
	AdminMessage *string `json:"admin_message,omitempty"`
}

// HandleProcess handles PATCH /adoption-requests/{id}/process: shelter staff
// approve or reject an application, optionally leaving a message for the
// applicant. The authorization gate has already verified the caller's role
// at the shelter resolved through the request's pet.
func (h *Handler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid adoption request id")
		return
	}

	var body processRequestBody
	if err := respond.DecodeJSON(r, &body); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	if err := h.Requests.Process(r.Context(), id, body.StatusID, body.AdminMessage); err != nil {
		switch {
		case errors.Is(err, requeststore.ErrInvalidStatus):
			respond.BadRequest(w, "status_id must name a valid adoption status")
		case errors.Is(err, requeststore.ErrNotFound):
			respond.NotFound(w, "Adoption request not found")
		default:
			h.Log.Error("process adoption request failed", zap.Error(err))
			respond.Internal(w, "An error occurred while processing the adoption request.")
		}
		return
	}

	req, err := h.Requests.GetByID(r.Context(), id)
	if err != nil {
		h.Log.Error("reload adoption request failed", zap.Error(err))
		respond.Internal(w, "An error occurred while processing the adoption request.")
		return
	}
	respond.OK(w, "Adoption request processed successfully", req)
}

// HandleDelete handles DELETE /adoption-requests/{id}. The applicant may
// withdraw their own request at any time.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		respond.Failure(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid adoption request id")
		return
	}

	existing, err := h.Requests.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, requeststore.ErrNotFound) {
			respond.NotFound(w, "Adoption request not found")
			return
		}
		h.Log.Error("get adoption request failed", zap.Error(err))
		respond.Internal(w, "An error occurred while deleting the adoption request.")
		return
	}
	if existing.UserID != user.ID {
		respond.Failure(w, "Only the applicant may delete this request", http.StatusForbidden)
		return
	}

	if err := h.Requests.Delete(r.Context(), id); err != nil {
		if errors.Is(err, requeststore.ErrNotFound) {
			respond.NotFound(w, "Adoption request not found")
			return
		}
		h.Log.Error("delete adoption request failed", zap.Error(err))
		respond.Internal(w, "An error occurred while deleting the adoption request.")
		return
	}
	respond.OK(w, "Adoption request deleted successfully", nil)
}
