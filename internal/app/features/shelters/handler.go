// internal/app/features/shelters/handler.go
package shelters

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	assignmentstore "github.com/dalemusser/shelterhub/internal/app/store/assignments"
	shelterstore "github.com/dalemusser/shelterhub/internal/app/store/shelters"
	userstore "github.com/dalemusser/shelterhub/internal/app/store/users"
	"github.com/dalemusser/shelterhub/internal/app/system/auth"
	"github.com/dalemusser/shelterhub/internal/app/system/mailer"
	"github.com/dalemusser/shelterhub/internal/app/system/respond"
	"github.com/dalemusser/shelterhub/internal/app/system/roles"
	"github.com/dalemusser/shelterhub/internal/domain/models"
)

// Handler is the shared dependency container for the shelters feature.
type Handler struct {
	Shelters    *shelterstore.Store
	Users       *userstore.Store
	Assignments *assignmentstore.Store
	Mailer      *mailer.Sender
	BaseURL     string
	Log         *zap.Logger
}

// NewHandler constructs a shelters Handler. It is called from the bootstrap
// BuildHandler function, where the DB and logger are already initialized.
func NewHandler(db *mongo.Database, sender *mailer.Sender, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Shelters:    shelterstore.New(db),
		Users:       userstore.New(db),
		Assignments: assignmentstore.New(db),
		Mailer:      sender,
		BaseURL:     baseURL,
		Log:         logger,
	}
}

// HandleList handles GET /shelters with optional city/state/country filters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := shelterstore.ListFilter{
		IncludeDeleted: q.Get("include_deleted") == "true",
	}
	if v := q.Get("city"); v != "" {
		f.City = &v
	}
	if v := q.Get("state"); v != "" {
		f.State = &v
	}
	if v := q.Get("country"); v != "" {
		f.Country = &v
	}

	shelters, err := h.Shelters.List(r.Context(), f)
	if err != nil {
		h.Log.Error("list shelters failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving shelters.")
		return
	}
	respond.OK(w, "Shelters retrieved successfully", shelters)
}

// HandleGet handles GET /shelters/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid shelter id")
		return
	}

	shelter, err := h.Shelters.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, shelterstore.ErrNotFound) {
			respond.NotFound(w, "Shelter not found")
			return
		}
		h.Log.Error("get shelter failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving the shelter.")
		return
	}
	respond.OK(w, "Shelter retrieved successfully", shelter)
}

type createShelterRequest struct {
	Name      string   `json:"name"`
	Address   *string  `json:"address,omitempty"`
	City      *string  `json:"city,omitempty"`
	State     *string  `json:"state,omitempty"`
	Country   *string  `json:"country,omitempty"`
	Zip       *int     `json:"zip,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// HandleCreate handles POST /shelters. The creating user becomes the
// shelter's first admin so someone can manage it from day one.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		respond.Failure(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req createShelterRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if req.Name == "" {
		respond.BadRequest(w, "name is required")
		return
	}

	shelter, err := h.Shelters.Create(r.Context(), models.Shelter{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Country:   req.Country,
		Zip:       req.Zip,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		if errors.Is(err, shelterstore.ErrDuplicateName) {
			respond.Conflict(w, "A shelter with this name already exists")
			return
		}
		h.Log.Error("create shelter failed", zap.Error(err))
		respond.Internal(w, "An error occurred while creating the shelter.")
		return
	}

	if _, err := h.Assignments.Create(r.Context(), user.ID, roles.AdminID, shelter.ID); err != nil {
		h.Log.Error("assign creator as shelter admin failed",
			zap.String("shelter_id", shelter.ID.Hex()),
			zap.String("user_id", user.ID.Hex()),
			zap.Error(err))
		respond.Internal(w, "An error occurred while creating the shelter.")
		return
	}

	respond.Created(w, "Shelter created successfully", shelter)
}

type updateShelterRequest struct {
	Name      *string  `json:"name,omitempty"`
	Address   *string  `json:"address,omitempty"`
	City      *string  `json:"city,omitempty"`
	State     *string  `json:"state,omitempty"`
	Country   *string  `json:"country,omitempty"`
	Zip       *int     `json:"zip,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// HandleUpdate handles PATCH /shelters/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid shelter id")
		return
	}

	var req updateShelterRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	err = h.Shelters.Update(r.Context(), id, shelterstore.Update{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Country:   req.Country,
		Zip:       req.Zip,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		switch {
		case errors.Is(err, shelterstore.ErrNotFound):
			respond.NotFound(w, "Shelter not found")
		case errors.Is(err, shelterstore.ErrDuplicateName):
			respond.Conflict(w, "A shelter with this name already exists")
		default:
			h.Log.Error("update shelter failed", zap.Error(err))
			respond.Internal(w, "An error occurred while updating the shelter.")
		}
		return
	}

	shelter, err := h.Shelters.GetByID(r.Context(), id)
	if err != nil {
		h.Log.Error("reload shelter failed", zap.Error(err))
		respond.Internal(w, "An error occurred while updating the shelter.")
		return
	}
	respond.OK(w, "Shelter updated successfully", shelter)
}

// HandleDelete handles DELETE /shelters/{id} (soft delete).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid shelter id")
		return
	}

	if err := h.Shelters.SoftDelete(r.Context(), id); err != nil {
		if errors.Is(err, shelterstore.ErrNotFound) {
			respond.NotFound(w, "Shelter not found or already deleted")
			return
		}
		h.Log.Error("delete shelter failed", zap.Error(err))
		respond.Internal(w, "An error occurred while deleting the shelter.")
		return
	}
	respond.OK(w, "Shelter deleted successfully", nil)
}

// shelterMember is a member row joined with the user's profile.
type shelterMember struct {
	UserID   primitive.ObjectID `json:"user_id"`
	FullName string             `json:"full_name"`
	Email    string             `json:"email"`
	RoleID   int                `json:"role_id"`
	RoleName string             `json:"role_name"`
}

// HandleMembers handles GET /shelters/{id}/members.
func (h *Handler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid shelter id")
		return
	}

	assignments, err := h.Assignments.ListByShelter(r.Context(), id)
	if err != nil {
		h.Log.Error("list shelter members failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving shelter members.")
		return
	}

	members := make([]shelterMember, 0, len(assignments))
	for _, a := range assignments {
		u, err := h.Users.GetByID(r.Context(), a.UserID)
		if err != nil {
			if errors.Is(err, userstore.ErrNotFound) {
				continue
			}
			h.Log.Error("load member profile failed", zap.Error(err))
			respond.Internal(w, "An error occurred while retrieving shelter members.")
			return
		}
		members = append(members, shelterMember{
			UserID:   u.ID,
			FullName: u.FullName,
			Email:    u.Email,
			RoleID:   a.RoleID,
			RoleName: roles.Name(a.RoleID),
		})
	}
	respond.OK(w, "Shelter members retrieved successfully", members)
}

type inviteMemberRequest struct {
	Email    string `json:"email"`
	RoleName string `json:"role_name"`
}

// HandleInvite handles POST /shelters/{id}/invite.
//
// The invitee does not need an account yet: a placeholder user keyed by
// email is created and picks up the invited role the first time they sign
// in. Re-inviting someone who already holds the role is a conflict, not a
// permission error.
func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	inviter, ok := auth.CurrentUser(r)
	if !ok {
		respond.Failure(w, "authentication required", http.StatusUnauthorized)
		return
	}

	shelterID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid shelter id")
		return
	}

	var req inviteMemberRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if req.Email == "" {
		respond.BadRequest(w, "email is required")
		return
	}
	roleID, err := roles.ID(req.RoleName)
	if err != nil {
		respond.BadRequest(w, "role_name must be admin, member, or adopter")
		return
	}

	shelter, err := h.Shelters.GetByID(r.Context(), shelterID)
	if err != nil {
		if errors.Is(err, shelterstore.ErrNotFound) {
			respond.NotFound(w, "Shelter not found")
			return
		}
		h.Log.Error("load shelter for invite failed", zap.Error(err))
		respond.Internal(w, "An error occurred while inviting the member.")
		return
	}

	invitee, err := h.Users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, userstore.ErrNotFound) {
		invitee, err = h.Users.CreatePlaceholder(r.Context(), req.Email)
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			// Someone else created the user between lookup and insert.
			invitee, err = h.Users.GetByEmail(r.Context(), req.Email)
		}
	}
	if err != nil {
		h.Log.Error("resolve invitee failed", zap.Error(err))
		respond.Internal(w, "An error occurred while inviting the member.")
		return
	}

	if _, err := h.Assignments.Create(r.Context(), invitee.ID, roleID, shelterID); err != nil {
		if errors.Is(err, assignmentstore.ErrDuplicateAssignment) {
			respond.Conflict(w, "User already has this role at this shelter")
			return
		}
		h.Log.Error("create invite assignment failed", zap.Error(err))
		respond.Internal(w, "An error occurred while inviting the member.")
		return
	}

	email := mailer.BuildInvitationEmail(mailer.InvitationEmailData{
		ShelterName: shelter.Name,
		RoleName:    req.RoleName,
		InviterName: inviter.FullName,
		BaseURL:     h.BaseURL,
	})
	email.To = invitee.Email
	if err := h.Mailer.Send(email); err != nil {
		// The assignment stands; the invitee can still sign in directly.
		h.Log.Error("send invitation email failed",
			zap.String("to", invitee.Email),
			zap.Error(err))
	}

	respond.Created(w, "Member invited successfully", shelterMember{
		UserID:   invitee.ID,
		FullName: invitee.FullName,
		Email:    invitee.Email,
		RoleID:   roleID,
		RoleName: roles.Name(roleID),
	})
}
