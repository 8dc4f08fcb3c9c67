package response

import (
	"github.com/futig/census-agent/internal/dialog/handlers"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/futig/census-agent/internal/entity"
)

// Build renders a handler directive as the platform response. attrs is the
// full session bag to hand back; it is never trimmed.
func Build(turn *slots.Turn, d *handlers.Directive, attrs map[string]string) *entity.LexResponse {
	if d.Action != "" {
		attrs[state.KeyRequestedAction] = d.Action
	}

	switch d.Kind {
	case handlers.DirectiveElicitSlot:
		return ElicitSlot(turn, d.SlotToElicit, d.Message, attrs)
	case handlers.DirectiveDelegate:
		return Delegate(turn, attrs)
	default:
		return Close(turn.IntentName, d.Message, attrs)
	}
}

// Close ends the intent as fulfilled
func Close(intentName, message string, attrs map[string]string) *entity.LexResponse {
	return &entity.LexResponse{
		SessionState: entity.LexSessionState{
			DialogAction: &entity.LexDialogAction{Type: entity.DialogActionClose},
			Intent: entity.LexIntent{
				Name:  intentName,
				State: entity.IntentStateFulfilled,
			},
			SessionAttributes: attrs,
		},
		Messages: messages(message),
	}
}

// ElicitSlot re-prompts for one slot, echoing the slots exactly as received
func ElicitSlot(turn *slots.Turn, slot, message string, attrs map[string]string) *entity.LexResponse {
	return &entity.LexResponse{
		SessionState: entity.LexSessionState{
			DialogAction: &entity.LexDialogAction{
				Type:         entity.DialogActionElicitSlot,
				SlotToElicit: slot,
			},
			Intent: entity.LexIntent{
				Name:  turn.IntentName,
				Slots: turn.RawSlots,
				State: entity.IntentStateInProgress,
			},
			SessionAttributes: attrs,
		},
		Messages: messages(message),
	}
}

// Delegate lets the platform pick the next step
func Delegate(turn *slots.Turn, attrs map[string]string) *entity.LexResponse {
	return &entity.LexResponse{
		SessionState: entity.LexSessionState{
			DialogAction: &entity.LexDialogAction{Type: entity.DialogActionDelegate},
			Intent: entity.LexIntent{
				Name:  turn.IntentName,
				Slots: turn.RawSlots,
			},
			SessionAttributes: attrs,
		},
	}
}

func messages(content string) []entity.LexMessage {
	if content == "" {
		return nil
	}
	return []entity.LexMessage{{ContentType: entity.ContentTypePlainText, Content: content}}
}
