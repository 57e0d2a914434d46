// internal/app/features/users/handler.go
package users

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/dalemusser/shelterhub/internal/app/store/users"
	"github.com/dalemusser/shelterhub/internal/app/system/auth"
	"github.com/dalemusser/shelterhub/internal/app/system/respond"
	"github.com/dalemusser/shelterhub/internal/domain/models"
)

// Handler serves the user directory.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Users: userstore.New(db), Log: logger}
}

// HandleMe handles GET /users/me, returning the authenticated caller's
// directory record.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		respond.Failure(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	respond.OK(w, "User retrieved successfully", user)
}

// HandleList handles GET /users.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		h.Log.Error("list users failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving users.")
		return
	}
	respond.OK(w, "Users retrieved successfully", users)
}

// HandleGet handles GET /users/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid user id")
		return
	}

	user, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			respond.NotFound(w, "User not found")
			return
		}
		h.Log.Error("get user failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving the user.")
		return
	}
	respond.OK(w, "User retrieved successfully", user)
}

type createUserRequest struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Age      int     `json:"age,omitempty"`
	Country  *string `json:"country,omitempty"`
	State    *string `json:"state,omitempty"`
	City     *string `json:"city,omitempty"`
}

// HandleCreate handles POST /users: a directory record created ahead of the
// person's first sign-in. Their identity-provider subject attaches when they
// authenticate.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if req.FullName == "" || req.Email == "" {
		respond.BadRequest(w, "full_name and email are required")
		return
	}

	user, err := h.Users.Create(r.Context(), models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Age:      req.Age,
		Country:  req.Country,
		State:    req.State,
		City:     req.City,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			respond.Conflict(w, "A user with this email already exists")
			return
		}
		h.Log.Error("create user failed", zap.Error(err))
		respond.Internal(w, "An error occurred while creating the user.")
		return
	}
	respond.Created(w, "User created successfully", user)
}

// HandleDelete handles DELETE /users/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid user id")
		return
	}

	if err := h.Users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			respond.NotFound(w, "User not found")
			return
		}
		h.Log.Error("delete user failed", zap.Error(err))
		respond.Internal(w, "An error occurred while deleting the user.")
		return
	}
	respond.OK(w, "User deleted successfully", nil)
}
