package dialog

import (
	"context"

	"github.com/futig/census-agent/internal/config"
	"github.com/futig/census-agent/internal/dialog/bot"
	"github.com/futig/census-agent/internal/dialog/handlers"
	"github.com/futig/census-agent/internal/entity"
	"go.uber.org/zap"
)

// Bot is the fulfillment entry point: one platform event in, one response out
type Bot interface {
	HandleTurn(ctx context.Context, event *entity.LexEvent) *entity.LexResponse
}

// NewBot initializes the dialog bot with all stage handlers
func NewBot(
	cfg *config.DialogConfig,
	store handlers.SurveyStore,
	ids handlers.IDGenerator,
	logger *zap.Logger,
) Bot {
	b := bot.New(logger)

	// Register handlers
	registerHandlers(b, cfg, store, ids)

	logger.Info("dialog bot initialized",
		zap.Int("fallback_threshold", cfg.FallbackThreshold),
		zap.Bool("fallback_reset_on_progress", cfg.FallbackResetOnProgress),
	)

	return b
}

// registerHandlers registers one handler per intent
func registerHandlers(b *bot.Bot, cfg *config.DialogConfig, store handlers.SurveyStore, ids handlers.IDGenerator) {
	stages := []handlers.Handler{
		handlers.NewConsentHandler(ids),
		handlers.NewAddressHandler(),
		handlers.NewHouseholdHandler(),
		handlers.NewPersonHandler(),
		handlers.NewHousingHandler(),
		handlers.NewCompletionHandler(store, ids),
		handlers.NewCallbackHandler(store, ids),
		handlers.NewEscalationHandler(),
		handlers.NewRefusalHandler(ids),
	}

	for _, h := range stages {
		if cfg.FallbackResetOnProgress {
			h = handlers.ResetFallbackOnProgress(h)
		}
		b.RegisterHandler(h)
	}

	b.RegisterHandler(handlers.NewFallbackHandler(cfg.FallbackThreshold))
}
