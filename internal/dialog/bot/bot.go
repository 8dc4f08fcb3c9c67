package bot

import (
	"context"

	"github.com/futig/census-agent/internal/dialog/handlers"
	"github.com/futig/census-agent/internal/dialog/middleware"
	"github.com/futig/census-agent/internal/dialog/render"
	"github.com/futig/census-agent/internal/dialog/response"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/futig/census-agent/internal/entity"
	"github.com/futig/census-agent/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot runs one fulfillment turn: extract slots, route by intent, apply the
// stage handler to the decoded state and render the response
type Bot struct {
	handlers   map[string]handlers.Handler
	delegate   handlers.Handler
	logger     *zap.Logger
	loggingMW  *middleware.LoggingMiddleware
	recoveryMW *middleware.RecoveryMiddleware
}

// New creates a bot with no stage handlers registered
func New(logger *zap.Logger) *Bot {
	return &Bot{
		handlers:   make(map[string]handlers.Handler),
		delegate:   handlers.NewDelegateHandler(),
		logger:     logger,
		loggingMW:  middleware.NewLoggingMiddleware(logger),
		recoveryMW: middleware.NewRecoveryMiddleware(),
	}
}

// RegisterHandler registers a handler for its intent
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	intent := handler.GetIntent()

	// Validate intent
	if !handlers.IsValidIntent(intent) {
		b.logger.Fatal("invalid handler intent",
			zap.String("intent", intent),
		)
	}

	b.handlers[intent] = handler
	b.logger.Debug("handler registered",
		zap.String("intent", intent),
	)
}

// Route returns the handler for an intent. Unknown intents get the delegate handler.
func (b *Bot) Route(intent string) handlers.Handler {
	if handler, ok := b.handlers[intent]; ok {
		return handler
	}
	return b.delegate
}

// HandleTurn processes one platform event through the middleware chain.
// It always returns a response.
func (b *Bot) HandleTurn(ctx context.Context, event *entity.LexEvent) *entity.LexResponse {
	turn := slots.Extract(event)

	// Logging middleware
	return b.loggingMW.Handle(ctx, turn, func(ctx context.Context, turn *slots.Turn) *entity.LexResponse {
		// Recovery middleware
		return b.recoveryMW.Handle(ctx, turn, b.handleTurn)
	})
}

// handleTurn decodes the bag, runs the routed handler and encodes the result
func (b *Bot) handleTurn(ctx context.Context, turn *slots.Turn) *entity.LexResponse {
	st, err := state.Decode(turn.Attributes)
	if err != nil {
		ctxzap.Warn(ctx, "session attributes partially decoded", zap.Error(err))
	}
	ctx = logger.WithCase(ctx, st.CaseID)

	handler := b.Route(turn.IntentName)
	directive, err := handler.Handle(ctx, turn, st)
	if err != nil {
		ctxzap.Error(ctx, "handler error", zap.Error(err))
		return response.Close(turn.IntentName, render.MsgTechnicalIssue, turn.Attributes)
	}

	// Delegated turns hand the bag back exactly as received
	attrs := turn.Attributes
	if directive.Kind != handlers.DirectiveDelegate {
		attrs = state.Encode(turn.Attributes, st)
	}

	return response.Build(turn, directive, attrs)
}
