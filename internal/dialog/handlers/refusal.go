package handlers

import (
	"context"

	"github.com/futig/census-agent/internal/dialog/render"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/futig/census-agent/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// RefusalHandler handles RefuseSurveyIntent
type RefusalHandler struct {
	BaseHandler
	ids IDGenerator
}

// NewRefusalHandler creates a new refusal handler
func NewRefusalHandler(ids IDGenerator) *RefusalHandler {
	return &RefusalHandler{
		BaseHandler: BaseHandler{intentName: IntentRefuseSurvey},
		ids:         ids,
	}
}

// Handle marks the interview refused unless it already ended
func (h *RefusalHandler) Handle(ctx context.Context, turn *slots.Turn, st *state.State) (*Directive, error) {
	if !st.Terminal() {
		st.SurveyStatus = entity.SurveyStatusRefused
		st.RefusedAt = state.FormatTime(h.ids.Now())

		ctxzap.Info(ctx, "survey refused", zap.String("case_id", st.CaseID))
	}

	return Close(render.MsgRefused), nil
}
