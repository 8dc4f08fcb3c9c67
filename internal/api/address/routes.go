package address

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers address routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/address", func(r chi.Router) {
		r.Get("/lookup", h.Lookup)
		r.Post("/verify", h.Verify)
	})
}
