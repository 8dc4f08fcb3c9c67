package handlers

import (
	"context"

	"github.com/futig/census-agent/internal/dialog/render"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// RelationshipSelf is forced on person 1, the respondent
const RelationshipSelf = "Self"

// PersonHandler handles CollectPersonInfoIntent
type PersonHandler struct {
	BaseHandler
}

// NewPersonHandler creates a new person collection handler
func NewPersonHandler() *PersonHandler {
	return &PersonHandler{
		BaseHandler: BaseHandler{intentName: IntentCollectPerson},
	}
}

// Handle stores the person at the loop index and advances the loop
func (h *PersonHandler) Handle(ctx context.Context, turn *slots.Turn, st *state.State) (*Directive, error) {
	if !st.Household.Count.Valid {
		ctxzap.Warn(ctx, "person info before household count", zap.String("case_id", st.CaseID))
		return Close(render.MsgCountFirst), nil
	}

	total := st.Household.Count.Value
	index := min(max(st.CurrentPersonIndex.Value, 1), total)

	p := personFromSlots(ctx, turn.Slots)
	if index == 1 {
		p.Relationship = RelationshipSelf
	}
	st.Household.SetPerson(index, p)
	st.PersonsCollected = state.IntOf(index)

	ctxzap.Info(ctx, "person recorded",
		zap.String("case_id", st.CaseID),
		zap.Int("person", index),
		zap.Int("household_count", total),
	)

	if index < total {
		st.CurrentPersonIndex = state.IntOf(index + 1)
		return Close(render.PersonRecorded(p.FirstName, index+1)), nil
	}

	return Close(render.PersonRecorded(p.FirstName, 0)), nil
}

// personFromSlots copies the person slots. Unusable age or ethnicity answers
// are kept empty rather than blocking the interview.
func personFromSlots(ctx context.Context, values slots.Values) *state.Person {
	p := &state.Person{
		FirstName:      values.TextOrEmpty(slots.FirstName),
		LastName:       values.TextOrEmpty(slots.LastName),
		Relationship:   values.TextOrEmpty(slots.Relationship),
		Sex:            values.TextOrEmpty(slots.Sex),
		DateOfBirth:    values.TextOrEmpty(slots.DateOfBirth),
		HispanicOrigin: values.TextOrEmpty(slots.HispanicOrigin),
		Race:           values.TextOrEmpty(slots.Race),
		RaceDetail:     values.TextOrEmpty(slots.RaceDetail),
	}

	if values.Has(slots.Age) {
		age, err := values.Int(slots.Age)
		switch {
		case err != nil:
			ctxzap.Warn(ctx, "age not usable", zap.Error(err))
		case age < 0:
			ctxzap.Warn(ctx, "age not usable", zap.Int("age", age))
		default:
			p.Age = &age
		}
	}

	if values.Has(slots.IsHispanicLatino) {
		hispanic, err := values.YesNo(slots.IsHispanicLatino)
		if err != nil {
			ctxzap.Warn(ctx, "hispanic origin answer not usable", zap.Error(err))
		} else {
			p.IsHispanic = &hispanic
		}
	}

	return p
}
