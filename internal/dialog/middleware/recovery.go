package middleware

import (
	"context"
	"runtime/debug"

	"github.com/futig/census-agent/internal/dialog/render"
	"github.com/futig/census-agent/internal/dialog/response"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// RecoveryMiddleware recovers from panics
type RecoveryMiddleware struct{}

// NewRecoveryMiddleware creates a new recovery middleware
func NewRecoveryMiddleware() *RecoveryMiddleware {
	return &RecoveryMiddleware{}
}

// Handle recovers from panics and answers the turn with an apology, leaving
// the session bag as it arrived
func (m *RecoveryMiddleware) Handle(ctx context.Context, turn *slots.Turn, next TurnFunc) (resp *entity.LexResponse) {
	defer func() {
		if r := recover(); r != nil {
			ctxzap.Error(ctx, "panic recovered in turn handler",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())),
			)
			resp = response.Close(turn.IntentName, render.MsgTechnicalIssue, turn.Attributes)
		}
	}()

	return next(ctx, turn)
}
