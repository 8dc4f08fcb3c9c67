package handlers

import (
	"context"

	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
)

// Intent names configured on the bot
const (
	IntentWelcome          = "WelcomeIntent"
	IntentVerifyAddress    = "VerifyAddressIntent"
	IntentHouseholdCount   = "HouseholdCountIntent"
	IntentCollectPerson    = "CollectPersonInfoIntent"
	IntentHousingInfo      = "HousingInfoIntent"
	IntentCompleteSurvey   = "CompleteSurveyIntent"
	IntentScheduleCallback = "ScheduleCallbackIntent"
	IntentSpeakToAgent     = "SpeakToAgentIntent"
	IntentRefuseSurvey     = "RefuseSurveyIntent"
	IntentFallback         = "FallbackIntent"
)

// ActionTransferToAgent tells the platform to hand the call to a human
const ActionTransferToAgent = "TRANSFER_TO_AGENT"

// DirectiveKind is the dialog action a handler asks for
type DirectiveKind int

const (
	DirectiveClose DirectiveKind = iota
	DirectiveElicitSlot
	DirectiveDelegate
)

// String returns string representation of the directive kind
func (k DirectiveKind) String() string {
	switch k {
	case DirectiveClose:
		return "close"
	case DirectiveElicitSlot:
		return "elicit_slot"
	case DirectiveDelegate:
		return "delegate"
	default:
		return "unknown"
	}
}

// Directive is a handler's decision for the turn
type Directive struct {
	Kind         DirectiveKind
	Message      string
	SlotToElicit string
	// Action is an optional side-effect tag surfaced to the platform as requestedAction
	Action string
}

// Close ends the intent as fulfilled with a message
func Close(message string) *Directive {
	return &Directive{Kind: DirectiveClose, Message: message}
}

// CloseWithAction ends the intent and tags a side effect for the platform
func CloseWithAction(message, action string) *Directive {
	return &Directive{Kind: DirectiveClose, Message: message, Action: action}
}

// ElicitSlot re-prompts for a single slot
func ElicitSlot(slot, message string) *Directive {
	return &Directive{Kind: DirectiveElicitSlot, Message: message, SlotToElicit: slot}
}

// Delegate hands control back to the platform
func Delegate() *Directive {
	return &Directive{Kind: DirectiveDelegate}
}

// Handler defines the interface for intent-specific handlers
type Handler interface {
	// Handle applies the turn to st in place and returns the dialog directive
	Handle(ctx context.Context, turn *slots.Turn, st *state.State) (*Directive, error)

	// GetIntent returns the intent this handler serves
	GetIntent() string
}

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	intentName string
}

// GetIntent implements Handler
func (h *BaseHandler) GetIntent() string {
	return h.intentName
}

// validIntents defines all intents a handler can be registered for
var validIntents = map[string]bool{
	IntentWelcome:          true,
	IntentVerifyAddress:    true,
	IntentHouseholdCount:   true,
	IntentCollectPerson:    true,
	IntentHousingInfo:      true,
	IntentCompleteSurvey:   true,
	IntentScheduleCallback: true,
	IntentSpeakToAgent:     true,
	IntentRefuseSurvey:     true,
	IntentFallback:         true,
}

// IsValidIntent checks if an intent is valid for handler registration
func IsValidIntent(intent string) bool {
	_, ok := validIntents[intent]
	return ok
}

// Intents returns every routable intent name
func Intents() []string {
	return []string{
		IntentWelcome,
		IntentVerifyAddress,
		IntentHouseholdCount,
		IntentCollectPerson,
		IntentHousingInfo,
		IntentCompleteSurvey,
		IntentScheduleCallback,
		IntentSpeakToAgent,
		IntentRefuseSurvey,
		IntentFallback,
	}
}
