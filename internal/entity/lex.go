package entity

// DialogActionType is the dialog action the platform performs after a turn
type DialogActionType string

const (
	DialogActionClose      DialogActionType = "Close"
	DialogActionElicitSlot DialogActionType = "ElicitSlot"
	DialogActionDelegate   DialogActionType = "Delegate"
)

// IntentState is the fulfillment state reported back for the active intent
type IntentState string

const (
	IntentStateFulfilled  IntentState = "Fulfilled"
	IntentStateInProgress IntentState = "InProgress"
	IntentStateFailed     IntentState = "Failed"
)

// ContentTypePlainText is the only message content type the bot emits
const ContentTypePlainText = "PlainText"

// LexEvent is the turn request delivered by the dialog platform
type LexEvent struct {
	SessionID         string            `json:"sessionId,omitempty"`
	InputTranscript   string            `json:"inputTranscript,omitempty"`
	InvocationSource  string            `json:"invocationSource,omitempty"`
	SessionState      LexSessionState   `json:"sessionState"`
	RequestAttributes map[string]string `json:"requestAttributes,omitempty"`
}

// LexSessionState carries the active intent and the session attribute bag
type LexSessionState struct {
	DialogAction      *LexDialogAction  `json:"dialogAction,omitempty"`
	Intent            LexIntent         `json:"intent"`
	SessionAttributes map[string]string `json:"sessionAttributes"`
}

// LexIntent is the recognized intent and its slots
type LexIntent struct {
	Name  string              `json:"name"`
	Slots map[string]*LexSlot `json:"slots,omitempty"`
	State IntentState         `json:"state,omitempty"`
}

// LexSlot is a single slot as reported by the platform; Value is nil when unfilled
type LexSlot struct {
	Shape string        `json:"shape,omitempty"`
	Value *LexSlotValue `json:"value,omitempty"`
}

// LexSlotValue holds the recognized and raw forms of a slot value
type LexSlotValue struct {
	InterpretedValue string   `json:"interpretedValue,omitempty"`
	OriginalValue    string   `json:"originalValue,omitempty"`
	ResolvedValues   []string `json:"resolvedValues,omitempty"`
}

// LexDialogAction is the next action the platform performs
type LexDialogAction struct {
	Type         DialogActionType `json:"type"`
	SlotToElicit string           `json:"slotToElicit,omitempty"`
}

// LexMessage is a message spoken or shown to the caller
type LexMessage struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// LexResponse is the turn response returned to the dialog platform
type LexResponse struct {
	SessionState LexSessionState `json:"sessionState"`
	Messages     []LexMessage    `json:"messages,omitempty"`
}

// ErrorResponse is the JSON body of a failed HTTP request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
