package api

import (
	"net/http"
	"time"

	addressapi "github.com/futig/census-agent/internal/api/address"
	"github.com/futig/census-agent/internal/api/docs"
	fulfillmentapi "github.com/futig/census-agent/internal/api/fulfillment"
	"github.com/futig/census-agent/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	fulfillmentHandler *fulfillmentapi.Handler,
	addressHandler *addressapi.Handler,
	requestTimeout time.Duration,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	docs.RegisterRoutes(r)

	fulfillmentapi.RegisterRoutes(r, fulfillmentHandler)
	addressapi.RegisterRoutes(r, addressHandler)

	return r
}
