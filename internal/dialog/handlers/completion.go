package handlers

import (
	"context"
	"strconv"

	"github.com/futig/census-agent/internal/dialog/render"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/futig/census-agent/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// defaultHouseholdCount is spoken when the count was never captured
const defaultHouseholdCount = "1"

// CompletionHandler handles CompleteSurveyIntent
type CompletionHandler struct {
	BaseHandler
	store SurveyStore
	ids   IDGenerator
}

// NewCompletionHandler creates a new completion handler
func NewCompletionHandler(store SurveyStore, ids IDGenerator) *CompletionHandler {
	return &CompletionHandler{
		BaseHandler: BaseHandler{intentName: IntentCompleteSurvey},
		store:       store,
		ids:         ids,
	}
}

// Handle finalizes the interview, writes the survey record and reads back the
// confirmation number
func (h *CompletionHandler) Handle(ctx context.Context, turn *slots.Turn, st *state.State) (*Directive, error) {
	if st.SurveyStatus == entity.SurveyStatusRefused {
		ctxzap.Warn(ctx, "completion requested on refused interview", zap.String("case_id", st.CaseID))
		return Close(render.MsgRefused), nil
	}

	// A redelivered completion keeps its confirmation number and record key
	if st.ConfirmationNumber == "" {
		st.ConfirmationNumber = h.ids.ConfirmationNumber()
	}
	if st.CompletedAt == "" {
		st.CompletedAt = state.FormatTime(h.ids.Now())
	}
	st.SurveyStatus = entity.SurveyStatusComplete

	record, missing := toSurveyRecord(st)
	if len(missing) > 0 {
		ctxzap.Warn(ctx, "completing with persons not collected",
			zap.String("case_id", st.CaseID),
			zap.Ints("missing_persons", missing),
		)
	}

	persist(ctx, record.Type, record.CaseID, func(ctx context.Context) error {
		return h.store.WriteSurvey(ctx, record)
	})

	count := defaultHouseholdCount
	if st.Household.Count.Valid {
		count = strconv.Itoa(st.Household.Count.Value)
	}

	return Close(render.SurveyComplete(count, st.ConfirmationNumber)), nil
}
