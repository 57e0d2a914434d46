// internal/app/features/accessrequests/handler.go
package accessrequests

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	accessrequeststore "github.com/dalemusser/shelterhub/internal/app/store/accessrequests"
	"github.com/dalemusser/shelterhub/internal/app/system/respond"
	"github.com/dalemusser/shelterhub/internal/domain/models"
)

// Handler serves shelter onboarding applications.
type Handler struct {
	Requests *accessrequeststore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Requests: accessrequeststore.New(db), Log: logger}
}

type createAccessRequest struct {
	ShelterName  string `json:"shelter_name"`
	ShelterType  string `json:"shelter_type"`
	Country      string `json:"country"`
	State        string `json:"state"`
	City         string `json:"city"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Message      string `json:"message"`
}

// HandleCreate handles POST /shelter-access-requests. This is the one
// unauthenticated write in the API: shelters apply before they have any
// account.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createAccessRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if req.ShelterName == "" || req.ContactName == "" || req.ContactEmail == "" {
		respond.BadRequest(w, "shelter_name, contact_name, and contact_email are required")
		return
	}

	created, err := h.Requests.Create(r.Context(), models.ShelterAccessRequest{
		ShelterName:  req.ShelterName,
		ShelterType:  req.ShelterType,
		Country:      req.Country,
		State:        req.State,
		City:         req.City,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Message:      req.Message,
	})
	if err != nil {
		h.Log.Error("create access request failed", zap.Error(err))
		respond.Internal(w, "An error occurred while creating the access request.")
		return
	}
	respond.Created(w, "Access request created successfully", created)
}

// HandleList handles GET /shelter-access-requests with an optional status
// filter.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		if !models.IsValidAccessRequestStatus(raw) {
			respond.BadRequest(w, "status must be pending, approved, or rejected")
			return
		}
		status = &raw
	}

	reqs, err := h.Requests.List(r.Context(), status)
	if err != nil {
		h.Log.Error("list access requests failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving access requests.")
		return
	}
	respond.OK(w, "Access requests retrieved successfully", reqs)
}

// HandleGet handles GET /shelter-access-requests/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid access request id")
		return
	}

	req, err := h.Requests.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, accessrequeststore.ErrNotFound) {
			respond.NotFound(w, "Access request not found")
			return
		}
		h.Log.Error("get access request failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving the access request.")
		return
	}
	respond.OK(w, "Access request retrieved successfully", req)
}

type reviewAccessRequest struct {
	Status string `json:"status"`
}

// HandleReview handles PATCH /shelter-access-requests/{id}: an admin
// approves or rejects the application.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid access request id")
		return
	}

	var body reviewAccessRequest
	if err := respond.DecodeJSON(r, &body); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	if err := h.Requests.SetStatus(r.Context(), id, body.Status); err != nil {
		switch {
		case errors.Is(err, accessrequeststore.ErrInvalidStatus):
			respond.BadRequest(w, "status must be pending, approved, or rejected")
		case errors.Is(err, accessrequeststore.ErrNotFound):
			respond.NotFound(w, "Access request not found")
		default:
			h.Log.Error("review access request failed", zap.Error(err))
			respond.Internal(w, "An error occurred while updating the access request.")
		}
		return
	}

	req, err := h.Requests.GetByID(r.Context(), id)
	if err != nil {
		h.Log.Error("reload access request failed", zap.Error(err))
		respond.Internal(w, "An error occurred while updating the access request.")
		return
	}
	respond.OK(w, "Access request updated successfully", req)
}
