// internal/app/features/assignments/handler.go
package assignments

import (
	"errors"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	assignmentstore "github.com/dalemusser/shelterhub/internal/app/store/assignments"
	userstore "github.com/dalemusser/shelterhub/internal/app/store/users"
	"github.com/dalemusser/shelterhub/internal/app/system/respond"
)

// Handler manages role assignments, the membership edges between users and
// shelters.
type Handler struct {
	Assignments *assignmentstore.Store
	Users       *userstore.Store
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Assignments: assignmentstore.New(db),
		Users:       userstore.New(db),
		Log:         logger,
	}
}

// HandleList handles GET /assignments, filtered by user_id or shelter_id.
// Exactly one of the two is required; listing every assignment in the
// system is not supported.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rawUser, rawShelter := q.Get("user_id"), q.Get("shelter_id")

	switch {
	case rawUser != "" && rawShelter == "":
		userID, err := primitive.ObjectIDFromHex(rawUser)
		if err != nil {
			respond.BadRequest(w, "invalid user_id")
			return
		}
		list, err := h.Assignments.ListByUser(r.Context(), userID)
		if err != nil {
			h.Log.Error("list assignments failed", zap.Error(err))
			respond.Internal(w, "An error occurred while retrieving assignments.")
			return
		}
		respond.OK(w, "Assignments retrieved successfully", list)

	case rawShelter != "" && rawUser == "":
		shelterID, err := primitive.ObjectIDFromHex(rawShelter)
		if err != nil {
			respond.BadRequest(w, "invalid shelter_id")
			return
		}
		list, err := h.Assignments.ListByShelter(r.Context(), shelterID)
		if err != nil {
			h.Log.Error("list assignments failed", zap.Error(err))
			respond.Internal(w, "An error occurred while retrieving assignments.")
			return
		}
		respond.OK(w, "Assignments retrieved successfully", list)

	default:
		respond.BadRequest(w, "exactly one of user_id or shelter_id is required")
	}
}

type createAssignmentRequest struct {
	UserID    string `json:"user_id"`
	RoleID    int    `json:"role_id"`
	ShelterID string `json:"shelter_id"`
}

// HandleCreate handles POST /assignments. The authorization gate has already
// checked that the caller administers the shelter named in the body.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		respond.BadRequest(w, "invalid user_id")
		return
	}
	shelterID, err := primitive.ObjectIDFromHex(req.ShelterID)
	if err != nil {
		respond.BadRequest(w, "invalid shelter_id")
		return
	}

	if _, err := h.Users.GetByID(r.Context(), userID); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			respond.NotFound(w, "User not found")
			return
		}
		h.Log.Error("load user failed", zap.Error(err))
		respond.Internal(w, "An error occurred while creating the assignment.")
		return
	}

	created, err := h.Assignments.Create(r.Context(), userID, req.RoleID, shelterID)
	if err != nil {
		switch {
		case errors.Is(err, assignmentstore.ErrInvalidRole):
			respond.BadRequest(w, "role_id must name a valid role")
		case errors.Is(err, assignmentstore.ErrDuplicateAssignment):
			respond.Conflict(w, "User already has this role at this shelter")
		default:
			h.Log.Error("create assignment failed", zap.Error(err))
			respond.Internal(w, "An error occurred while creating the assignment.")
		}
		return
	}
	respond.Created(w, "Assignment created successfully", created)
}

// HandleDelete handles DELETE /assignments?user_id=&role_id=&shelter_id=.
// The triple identifies the assignment; assignments have no addressable
// route of their own.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userID, err := primitive.ObjectIDFromHex(q.Get("user_id"))
	if err != nil {
		respond.BadRequest(w, "invalid user_id")
		return
	}
	shelterID, err := primitive.ObjectIDFromHex(q.Get("shelter_id"))
	if err != nil {
		respond.BadRequest(w, "invalid shelter_id")
		return
	}
	roleID, err := strconv.Atoi(q.Get("role_id"))
	if err != nil {
		respond.BadRequest(w, "role_id must be an integer")
		return
	}

	if err := h.Assignments.Delete(r.Context(), userID, roleID, shelterID); err != nil {
		if errors.Is(err, assignmentstore.ErrNotFound) {
			respond.NotFound(w, "Assignment not found")
			return
		}
		h.Log.Error("delete assignment failed", zap.Error(err))
		respond.Internal(w, "An error occurred while deleting the assignment.")
		return
	}
	respond.OK(w, "Assignment deleted successfully", nil)
}
