// internal/app/features/lookups/routes.go
package lookups

import "github.com/go-chi/chi/v5"

// Routes returns the lookup subrouter. All endpoints are public.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/pet-species", h.ServeSpecies)
	r.Get("/sexes", h.ServeSexes)
	r.Get("/pet-statuses", h.ServeStatuses)
	r.Get("/pet-sizes", h.ServeSizes)
	r.Get("/pet-colors", h.ServeColors)
	return r
}
