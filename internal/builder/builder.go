package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/census-agent/internal/api"
	addressapi "github.com/futig/census-agent/internal/api/address"
	fulfillmentapi "github.com/futig/census-agent/internal/api/fulfillment"
	"github.com/futig/census-agent/internal/config"
	"github.com/futig/census-agent/internal/pkg/validator"
	"github.com/futig/census-agent/internal/usecase/address"
	"go.uber.org/zap"
)

// Build loads the configuration for the environment and wires the HTTP service
func Build(environment string) (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig(environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := SetupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.String("store_backend", cfg.StoreBackend),
	)

	components, err := BuildComponents(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build components: %w", err)
	}

	addressUC := address.NewUsecase(components.Address, components.IDs, validator.New(), cfg.AddressCfg)
	logger.Info("Use cases initialized")

	fulfillmentHandler := fulfillmentapi.NewHandler(components.Bot, components.Census)
	addressHandler := addressapi.NewHandler(addressUC)

	router := api.SetupRouter(fulfillmentHandler, addressHandler, cfg.RequestTimeout, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:          server,
		components:      components,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}
