package handlers

import (
	"context"

	"github.com/futig/census-agent/internal/dialog/render"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// HouseholdHandler handles HouseholdCountIntent
type HouseholdHandler struct {
	BaseHandler
}

// NewHouseholdHandler creates a new household count handler
func NewHouseholdHandler() *HouseholdHandler {
	return &HouseholdHandler{
		BaseHandler: BaseHandler{intentName: IntentHouseholdCount},
	}
}

// Handle sets the person loop bound and resets the loop
func (h *HouseholdHandler) Handle(ctx context.Context, turn *slots.Turn, st *state.State) (*Directive, error) {
	if turn.Slots.IsNo(slots.CountConfirmation) {
		return ElicitSlot(slots.HouseholdCount, render.MsgAskCountAgain), nil
	}

	count, err := turn.Slots.Int(slots.HouseholdCount)
	if err == nil && (count < 1 || count > state.MaxHouseholdCount) {
		err = slots.ErrSlotInvalid
	}
	if err != nil {
		ctxzap.Warn(ctx, "household count not usable",
			zap.Error(err),
			zap.String("raw", turn.Slots.TextOrEmpty(slots.HouseholdCount)),
		)
		return ElicitSlot(slots.HouseholdCount, render.CountNotUnderstood(state.MaxHouseholdCount)), nil
	}

	st.Household.SetCount(count)
	st.CurrentPersonIndex = state.IntOf(1)
	st.PersonsCollected = state.IntOf(0)

	ctxzap.Info(ctx, "household count recorded",
		zap.String("case_id", st.CaseID),
		zap.Int("count", count),
	)

	return Close(render.CountAccepted(count)), nil
}
