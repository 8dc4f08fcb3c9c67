package handlers

import (
	"context"

	"github.com/futig/census-agent/internal/dialog/render"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ConsentHandler handles WelcomeIntent
type ConsentHandler struct {
	BaseHandler
	ids IDGenerator
}

// NewConsentHandler creates a new consent handler
func NewConsentHandler(ids IDGenerator) *ConsentHandler {
	return &ConsentHandler{
		BaseHandler: BaseHandler{intentName: IntentWelcome},
		ids:         ids,
	}
}

// Handle opens the case on consent
func (h *ConsentHandler) Handle(ctx context.Context, turn *slots.Turn, st *state.State) (*Directive, error) {
	if turn.Slots.IsNo(slots.ConsentToProceed) {
		ctxzap.Info(ctx, "consent declined")
		return Close(render.MsgConsentDeclined), nil
	}

	// A repeated consent keeps the case that is already open
	if st.CaseID == "" {
		st.CaseID = h.ids.CaseID()
		st.SurveyStartTime = state.FormatTime(h.ids.Now())
		st.CurrentPersonIndex = state.IntOf(0)

		ctxzap.Info(ctx, "case opened", zap.String("case_id", st.CaseID))
	}

	return Close(render.MsgConsentAccepted), nil
}
