package handlers

import (
	"context"

	"github.com/futig/census-agent/internal/dialog/render"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// EscalationReasonCaller is recorded when the caller asks for a person
const EscalationReasonCaller = "Customer requested live agent"

// EscalationHandler handles SpeakToAgentIntent
type EscalationHandler struct {
	BaseHandler
}

// NewEscalationHandler creates a new escalation handler
func NewEscalationHandler() *EscalationHandler {
	return &EscalationHandler{
		BaseHandler: BaseHandler{intentName: IntentSpeakToAgent},
	}
}

// Handle flags the escalation and asks the platform for a transfer
func (h *EscalationHandler) Handle(ctx context.Context, turn *slots.Turn, st *state.State) (*Directive, error) {
	st.Escalation.Requested = true
	st.Escalation.Reason = EscalationReasonCaller

	ctxzap.Info(ctx, "transfer to agent requested", zap.String("case_id", st.CaseID))

	return CloseWithAction(render.MsgTransferToAgent, ActionTransferToAgent), nil
}
