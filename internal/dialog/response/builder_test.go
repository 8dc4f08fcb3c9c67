package response

import (
	"testing"

	"github.com/futig/census-agent/internal/dialog/handlers"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/futig/census-agent/internal/entity"
)

func testTurn() *slots.Turn {
	return slots.Extract(&entity.LexEvent{
		SessionState: entity.LexSessionState{
			Intent: entity.LexIntent{
				Name: "HouseholdCountIntent",
				Slots: map[string]*entity.LexSlot{
					slots.HouseholdCount:    {Value: &entity.LexSlotValue{InterpretedValue: "lots"}},
					slots.CountConfirmation: nil,
				},
			},
		},
	})
}

func TestBuildClose(t *testing.T) {
	attrs := map[string]string{"caseId": "CASE-1", "unrelated": "kept"}
	resp := Build(testTurn(), handlers.Close("done"), attrs)

	ss := resp.SessionState
	if ss.DialogAction.Type != entity.DialogActionClose || ss.Intent.State != entity.IntentStateFulfilled {
		t.Errorf("close shape = %+v / %s", ss.DialogAction, ss.Intent.State)
	}
	if ss.SessionAttributes["unrelated"] != "kept" {
		t.Error("bag must be returned whole")
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Content != "done" || resp.Messages[0].ContentType != entity.ContentTypePlainText {
		t.Errorf("messages = %+v", resp.Messages)
	}
	if ss.Intent.Slots != nil {
		t.Error("close does not echo slots")
	}
}

func TestBuildElicitSlotEchoesSlots(t *testing.T) {
	turn := testTurn()
	resp := Build(turn, handlers.ElicitSlot(slots.HouseholdCount, "again?"), map[string]string{})

	ss := resp.SessionState
	if ss.DialogAction.Type != entity.DialogActionElicitSlot || ss.DialogAction.SlotToElicit != slots.HouseholdCount {
		t.Errorf("dialog action = %+v", ss.DialogAction)
	}
	if ss.Intent.State != entity.IntentStateInProgress {
		t.Errorf("intent state = %s", ss.Intent.State)
	}
	if len(ss.Intent.Slots) != 2 || ss.Intent.Slots[slots.HouseholdCount].Value.InterpretedValue != "lots" {
		t.Errorf("slots not echoed: %+v", ss.Intent.Slots)
	}
	if _, ok := ss.Intent.Slots[slots.CountConfirmation]; !ok {
		t.Error("unfilled slot must be echoed too")
	}
}

func TestBuildDelegate(t *testing.T) {
	attrs := map[string]string{"k": "v"}
	resp := Build(testTurn(), handlers.Delegate(), attrs)

	if resp.SessionState.DialogAction.Type != entity.DialogActionDelegate {
		t.Errorf("type = %s", resp.SessionState.DialogAction.Type)
	}
	if len(resp.Messages) != 0 {
		t.Error("delegate carries no message")
	}
	if resp.SessionState.SessionAttributes["k"] != "v" {
		t.Error("bag must pass through")
	}
}

func TestBuildCarriesAction(t *testing.T) {
	resp := Build(testTurn(), handlers.CloseWithAction("hold", handlers.ActionTransferToAgent), map[string]string{})

	if got := resp.SessionState.SessionAttributes[state.KeyRequestedAction]; got != handlers.ActionTransferToAgent {
		t.Errorf("requestedAction = %q", got)
	}
}
