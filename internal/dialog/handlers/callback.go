package handlers

import (
	"context"

	"github.com/futig/census-agent/internal/dialog/render"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CallbackHandler handles ScheduleCallbackIntent
type CallbackHandler struct {
	BaseHandler
	store SurveyStore
	ids   IDGenerator
}

// NewCallbackHandler creates a new callback scheduling handler
func NewCallbackHandler(store SurveyStore, ids IDGenerator) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{intentName: IntentScheduleCallback},
		store:       store,
		ids:         ids,
	}
}

// Handle records the callback request and writes a callback record
func (h *CallbackHandler) Handle(ctx context.Context, turn *slots.Turn, st *state.State) (*Directive, error) {
	st.Callback.Scheduled = true
	setIfPresent(&st.Callback.Date, turn.Slots, slots.CallbackDate)
	setIfPresent(&st.Callback.Time, turn.Slots, slots.CallbackTime)
	setIfPresent(&st.Callback.Phone, turn.Slots, slots.CallbackPhone)

	// The bag keeps no case id for a caller who never consented, so the
	// record gets a key of its own
	caseID := st.CaseID
	if caseID == "" {
		caseID = h.ids.CallbackCaseID()
		ctxzap.Info(ctx, "callback without open case", zap.String("case_id", caseID))
	}

	record := toCallbackRecord(caseID, state.FormatTime(h.ids.Now()), st.Callback)
	persist(ctx, record.Type, record.CaseID, func(ctx context.Context) error {
		return h.store.WriteCallback(ctx, record)
	})

	return Close(render.CallbackScheduled(st.Callback.Date, st.Callback.Time, st.Callback.Phone)), nil
}
