package middleware

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/futig/census-agent/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// LoggingMiddleware logs every turn with the interview stage before and after
type LoggingMiddleware struct {
	logger *zap.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

// Handle logs the turn and, at debug level, the attribute changes it made
func (m *LoggingMiddleware) Handle(ctx context.Context, turn *slots.Turn, next TurnFunc) *entity.LexResponse {
	start := time.Now()

	ctx = ctxzap.ToContext(ctx, m.logger.With(
		zap.String("session_id", turn.SessionID),
		zap.String("intent", turn.IntentName),
	))

	before := stageOf(turn.Attributes)
	ctxzap.Info(ctx, "turn received", zap.String("stage", before.String()))

	resp := next(ctx, turn)

	attrs := resp.SessionState.SessionAttributes
	fields := []zap.Field{
		zap.String("stage_before", before.String()),
		zap.String("stage_after", stageOf(attrs).String()),
		zap.Duration("duration", time.Since(start)),
	}
	if resp.SessionState.DialogAction != nil {
		fields = append(fields, zap.String("dialog_action", string(resp.SessionState.DialogAction.Type)))
	}
	ctxzap.Info(ctx, "turn processed", fields...)

	if m.logger.Core().Enabled(zap.DebugLevel) {
		if diff, err := AttributeDiff(turn.Attributes, attrs); err != nil {
			ctxzap.Debug(ctx, "attribute diff unavailable", zap.Error(err))
		} else {
			ctxzap.Debug(ctx, "attributes changed", zap.ByteString("merge_patch", diff))
		}
	}

	return resp
}

// AttributeDiff returns the JSON merge patch that turns before into after
func AttributeDiff(before, after map[string]string) ([]byte, error) {
	original, err := sonic.Marshal(before)
	if err != nil {
		return nil, err
	}
	modified, err := sonic.Marshal(after)
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(original, modified)
}

func stageOf(attrs map[string]string) state.Stage {
	st, _ := state.Decode(attrs)
	return st.Stage()
}
