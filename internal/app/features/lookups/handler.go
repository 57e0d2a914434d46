// internal/app/features/lookups/handler.go
package lookups

import (
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	lookupstore "github.com/dalemusser/shelterhub/internal/app/store/lookups"
	"github.com/dalemusser/shelterhub/internal/app/system/respond"
)

// Handler serves the read-only lookup tables pets reference by id.
type Handler struct {
	Store *lookupstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Store: lookupstore.New(db),
		Log:   logger,
	}
}

// ServeSpecies handles GET /lookups/pet-species.
func (h *Handler) ServeSpecies(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.Species(r.Context())
	if err != nil {
		h.Log.Error("list pet species failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving pet species.")
		return
	}
	respond.OK(w, "Pet species retrieved successfully", rows)
}

// ServeSexes handles GET /lookups/sexes.
func (h *Handler) ServeSexes(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.Sexes(r.Context())
	if err != nil {
		h.Log.Error("list sexes failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving sexes.")
		return
	}
	respond.OK(w, "Sexes retrieved successfully", rows)
}

// ServeStatuses handles GET /lookups/pet-statuses.
func (h *Handler) ServeStatuses(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.Statuses(r.Context())
	if err != nil {
		h.Log.Error("list pet statuses failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving pet statuses.")
		return
	}
	respond.OK(w, "Pet statuses retrieved successfully", rows)
}

// ServeSizes handles GET /lookups/pet-sizes.
func (h *Handler) ServeSizes(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.Sizes(r.Context())
	if err != nil {
		h.Log.Error("list pet sizes failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving pet sizes.")
		return
	}
	respond.OK(w, "Pet sizes retrieved successfully", rows)
}

// ServeColors handles GET /lookups/pet-colors.
func (h *Handler) ServeColors(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.Colors(r.Context())
	if err != nil {
		h.Log.Error("list pet colors failed", zap.Error(err))
		respond.Internal(w, "An error occurred while retrieving pet colors.")
		return
	}
	respond.OK(w, "Pet colors retrieved successfully", rows)
}
