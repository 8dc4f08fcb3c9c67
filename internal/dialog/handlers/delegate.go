package handlers

import (
	"context"

	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// DelegateHandler serves intents no stage handler is registered for
type DelegateHandler struct {
	BaseHandler
}

// NewDelegateHandler creates a new delegate handler
func NewDelegateHandler() *DelegateHandler {
	return &DelegateHandler{}
}

// Handle passes the turn back to the platform untouched
func (h *DelegateHandler) Handle(ctx context.Context, turn *slots.Turn, st *state.State) (*Directive, error) {
	ctxzap.Warn(ctx, "no handler for intent", zap.String("intent", turn.IntentName))
	return Delegate(), nil
}
