// internal/app/features/events/handler.go
package events

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	eventstore "github.com/dalemusser/shelterhub/internal/app/store/events"
	petstore "github.com/dalemusser/shelterhub/internal/app/store/pets"
	"github.com/dalemusser/shelterhub/internal/app/system/respond"
	"github.com/dalemusser/shelterhub/internal/domain/models"
)

// Handler serves per-pet scheduled events.
type Handler struct {
	Events *eventstore.Store
	Pets   *petstore.Store
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Events: eventstore.New(db),
		Pets:   petstore.New(db),
		Log:    logger,
	}
}

// HandleList handles GET /events?pet_id=... Events are always listed for a
// single pet.
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
	includeDeleted := r.URL.Query().Get("include_deleted") == "true"

	events, err := h.Events.ListByPet(r.Context(), petID, includeDeleted)
	if err != nil {
		h.Log.Error("list events failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving events.")
		return
	}
	respond.OK(w, "Events retrieved successfully", events)
}

// HandleGet handles GET /events/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid event id")
		return
	}

	event, err := h.Events.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, eventstore.ErrNotFound) {
			respond.NotFound(w, "Event not found")
			return
		}
		h.Log.Error("get event failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving the event.")
		return
	}
	respond.OK(w, "Event retrieved successfully", event)
}

type createEventRequest struct {
	PetID       string    `json:"pet_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	DateTime    time.Time `json:"date_time"`
}

// HandleCreate handles POST /events.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if req.Name == "" {
		respond.BadRequest(w, "name is required")
		return
	}
	if req.DateTime.IsZero() {
		respond.BadRequest(w, "date_time is required")
		return
	}
	petID, err := primitive.ObjectIDFromHex(req.PetID)
	if err != nil {
		respond.BadRequest(w, "invalid pet_id")
		return
	}

	if _, err := h.Pets.GetActiveByID(r.Context(), petID); err != nil {
		if errors.Is(err, petstore.ErrNotFound) {
			respond.NotFound(w, "Pet not found")
			return
		}
		h.Log.Error("load pet failed", zap.Error(err))
		respond.Internal(w, "An error occurred while creating the event.")
		return
	}

	event, err := h.Events.Create(r.Context(), models.Event{
		PetID:       petID,
		Name:        req.Name,
		Description: req.Description,
		DateTime:    req.DateTime.UTC(),
	})
	if err != nil {
		h.Log.Error("create event failed", zap.Error(err))
		respond.Internal(w, "An error occurred while creating the event.")
		return
	}
	respond.Created(w, "Event created successfully", event)
}

type updateEventRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	DateTime    *time.Time `json:"date_time,omitempty"`
}

// HandleUpdate handles PATCH /events/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid event id")
		return
	}

	var req updateEventRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	upd := eventstore.Update{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.DateTime != nil {
		utc := req.DateTime.UTC()
		upd.DateTime = &utc
	}

	if err := h.Events.Update(r.Context(), id, upd); err != nil {
		if errors.Is(err, eventstore.ErrNotFound) {
			respond.NotFound(w, "Event not found")
			return
		}
		h.Log.Error("update event failed", zap.Error(err))
		respond.Internal(w, "An error occurred while updating the event.")
		return
	}

	event, err := h.Events.GetByID(r.Context(), id)
	if err != nil {
		h.Log.Error("reload event failed", zap.Error(err))
		respond.Internal(w, "An error occurred while updating the event.")
		return
	}
	respond.OK(w, "Event updated successfully", event)
}

// HandleDelete handles DELETE /events/{id} (soft delete).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid event id")
		return
	}

	if err := h.Events.SoftDelete(r.Context(), id); err != nil {
		if errors.Is(err, eventstore.ErrNotFound) {
			respond.NotFound(w, "Event not found")
			return
		}
		h.Log.Error("delete event failed", zap.Error(err))
		respond.Internal(w, "An error occurred while deleting the event.")
		return
	}
	respond.OK(w, "Event deleted successfully", nil)
}
