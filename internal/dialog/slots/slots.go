package slots

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/futig/census-agent/internal/entity"
)

var (
	ErrSlotMissing = errors.New("slot missing")
	ErrSlotInvalid = errors.New("slot invalid")
)

// Slot names as configured on the bot
const (
	ConsentToProceed = "ConsentToProceed"

	AddressConfirmation = "AddressConfirmation"
	IsAdultResident     = "IsAdultResident"
	StreetAddress       = "StreetAddress"
	City                = "City"
	State               = "State"
	ZipCode             = "ZipCode"

	HouseholdCount    = "HouseholdCount"
	CountConfirmation = "CountConfirmation"

	FirstName        = "FirstName"
	LastName         = "LastName"
	Relationship     = "Relationship"
	Sex              = "Sex"
	DateOfBirth      = "DateOfBirth"
	Age              = "Age"
	IsHispanicLatino = "IsHispanicLatino"
	HispanicOrigin   = "HispanicOrigin"
	Race             = "Race"
	RaceDetail       = "RaceDetail"

	HousingTenure = "HousingTenure"
	PhoneNumber   = "PhoneNumber"

	CallbackDate  = "CallbackDate"
	CallbackTime  = "CallbackTime"
	CallbackPhone = "CallbackPhone"
)

// Turn is one normalized platform turn
type Turn struct {
	SessionID  string
	IntentName string
	Slots      Values
	// RawSlots is the unmodified slot set, echoed back when re-prompting
	RawSlots   map[string]*entity.LexSlot
	Attributes map[string]string
}

// Extract normalizes the platform payload into an intent name and slot values
func Extract(event *entity.LexEvent) *Turn {
	intent := event.SessionState.Intent

	values := make(Values, len(intent.Slots))
	for name, slot := range intent.Slots {
		values[name] = value(slot)
	}

	attrs := event.SessionState.SessionAttributes
	if attrs == nil {
		attrs = map[string]string{}
	}

	return &Turn{
		SessionID:  event.SessionID,
		IntentName: intent.Name,
		Slots:      values,
		RawSlots:   intent.Slots,
		Attributes: attrs,
	}
}

// value prefers the interpreted value, then the raw spoken value; nil when unfilled
func value(slot *entity.LexSlot) *string {
	if slot == nil || slot.Value == nil {
		return nil
	}
	if v := slot.Value.InterpretedValue; v != "" {
		return &v
	}
	if v := slot.Value.OriginalValue; v != "" {
		return &v
	}
	return nil
}

// Values maps slot names to their extracted value; nil means unfilled
type Values map[string]*string

// Has reports whether the slot carries a value
func (v Values) Has(name string) bool {
	return v[name] != nil
}

// Text returns the slot value verbatim
func (v Values) Text(name string) (string, error) {
	raw := v[name]
	if raw == nil {
		return "", fmt.Errorf("%w: %s", ErrSlotMissing, name)
	}
	return *raw, nil
}

// TextOrEmpty returns the slot value, or "" when unfilled
func (v Values) TextOrEmpty(name string) string {
	if raw := v[name]; raw != nil {
		return *raw
	}
	return ""
}

// YesNo coerces a yes/no slot
func (v Values) YesNo(name string) (bool, error) {
	raw, err := v.Text(name)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "yeah", "yep", "true":
		return true, nil
	case "no", "n", "nope", "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s=%q is not yes/no", ErrSlotInvalid, name, raw)
	}
}

// IsNo reports whether a yes/no slot was answered "no"; missing or unclear
// answers are not a "no"
func (v Values) IsNo(name string) bool {
	yes, err := v.YesNo(name)
	return err == nil && !yes
}

// Int coerces a numeric slot
func (v Values) Int(name string) (int, error) {
	raw, err := v.Text(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrSlotInvalid, name, raw)
	}
	return n, nil
}
