package handlers

import (
	"context"

	"github.com/futig/census-agent/internal/dialog/render"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// DefaultFallbackThreshold is the number of misunderstood turns before escalating
const DefaultFallbackThreshold = 3

// FallbackHandler handles FallbackIntent
type FallbackHandler struct {
	BaseHandler
	threshold int
}

// NewFallbackHandler creates a new fallback handler; a non-positive threshold
// uses DefaultFallbackThreshold
func NewFallbackHandler(threshold int) *FallbackHandler {
	if threshold <= 0 {
		threshold = DefaultFallbackThreshold
	}
	return &FallbackHandler{
		BaseHandler: BaseHandler{intentName: IntentFallback},
		threshold:   threshold,
	}
}

// Handle counts the misunderstanding and escalates once the threshold is reached
func (h *FallbackHandler) Handle(ctx context.Context, turn *slots.Turn, st *state.State) (*Directive, error) {
	count := st.FallbackRetryCount.Value + 1
	st.FallbackRetryCount = state.IntOf(count)

	if count >= h.threshold {
		ctxzap.Warn(ctx, "fallback threshold reached",
			zap.String("case_id", st.CaseID),
			zap.Int("retries", count),
		)
		return Close(render.MsgFallbackEscalate), nil
	}

	return Close(render.MsgFallbackRetry), nil
}

// ResetFallbackOnProgress wraps a handler so that a turn it closes clears the
// fallback counter; re-prompts do not count as progress
func ResetFallbackOnProgress(next Handler) Handler {
	return &progressHandler{next: next}
}

type progressHandler struct {
	next Handler
}

func (h *progressHandler) GetIntent() string {
	return h.next.GetIntent()
}

func (h *progressHandler) Handle(ctx context.Context, turn *slots.Turn, st *state.State) (*Directive, error) {
	directive, err := h.next.Handle(ctx, turn, st)
	if err != nil {
		return nil, err
	}
	if directive.Kind == DirectiveClose && st.FallbackRetryCount.Value > 0 {
		st.FallbackRetryCount = state.IntOf(0)
	}
	return directive, nil
}
