package fulfillment

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers dialog fulfillment routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/lex/fulfillment", h.HandleTurn)

	r.Route("/census/{case_id}", func(r chi.Router) {
		r.Get("/records", h.ListRecords)
		r.Get("/summary", h.Summary)
	})
}
