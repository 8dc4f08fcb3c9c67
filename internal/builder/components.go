package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/census-agent/internal/config"
	"github.com/futig/census-agent/internal/dialog"
	"github.com/futig/census-agent/internal/pkg/idgen"
	"github.com/futig/census-agent/internal/repository"
	"go.uber.org/zap"
)

// closer releases a backend connection on shutdown
type closer func(ctx context.Context) error

// Components are the dialog pieces shared by the server and the CLI
type Components struct {
	Census  repository.CensusRepository
	Address repository.AddressRepository
	IDs     *idgen.Generator
	Bot     dialog.Bot

	closers []closer
}

// BuildComponents connects the configured record store and wires the dialog bot
func BuildComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Components, error) {
	c := &Components{IDs: idgen.New()}

	if err := c.setupStores(ctx, cfg, logger); err != nil {
		c.Close(ctx)
		return nil, err
	}

	if cfg.StoreRetry.Attempts > 1 {
		c.Census = repository.NewCensusRetrying(c.Census, cfg.StoreRetry, logger)
		logger.Info("census store retries enabled", zap.Uint("attempts", cfg.StoreRetry.Attempts))
	}

	c.Bot = dialog.NewBot(&cfg.DialogCfg, c.Census, c.IDs, logger)

	return c, nil
}

func (c *Components) setupStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// Only the postgres backend keeps an address file; the others answer from memory
	c.Address = repository.NewAddressMemory()

	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		db, err := setupDatabase(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("setup database: %w", err)
		}
		c.closers = append(c.closers, func(context.Context) error {
			db.Close()
			return nil
		})

		logger.Info("Running database migrations")
		if err := repository.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		c.Census = repository.NewCensusPostgres(db)
		c.Address = repository.NewAddressPostgres(db)

	case config.StoreBackendRedis:
		client, err := setupRedis(ctx, cfg.RedisCfg, logger)
		if err != nil {
			return fmt.Errorf("setup redis: %w", err)
		}
		c.closers = append(c.closers, func(context.Context) error {
			return client.Close()
		})
		c.Census = repository.NewCensusRedis(client, cfg.RedisCfg.KeyPrefix)

	case config.StoreBackendMongo:
		client, collection, err := setupMongo(ctx, cfg.MongoCfg, logger)
		if err != nil {
			return fmt.Errorf("setup mongo: %w", err)
		}
		c.closers = append(c.closers, client.Disconnect)

		if err := repository.EnsureCensusIndexes(ctx, collection); err != nil {
			return err
		}
		c.Census = repository.NewCensusMongo(collection)

	default:
		c.Census = repository.NewCensusMemory()
	}

	logger.Info("census store initialized", zap.String("backend", cfg.StoreBackend))
	return nil
}

// Close releases every backend connection
func (c *Components) Close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
