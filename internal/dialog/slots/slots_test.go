package slots

import (
	"errors"
	"testing"

	"github.com/futig/census-agent/internal/entity"
)

func TestExtractPrefersInterpretedValue(t *testing.T) {
	event := &entity.LexEvent{
		SessionID: "s-1",
		SessionState: entity.LexSessionState{
			Intent: entity.LexIntent{
				Name: "HouseholdCountIntent",
				Slots: map[string]*entity.LexSlot{
					HouseholdCount:    {Value: &entity.LexSlotValue{InterpretedValue: "3", OriginalValue: "three"}},
					CountConfirmation: {Value: &entity.LexSlotValue{OriginalValue: "yep"}},
					"Unfilled":        nil,
					"Empty":           {Value: &entity.LexSlotValue{}},
				},
			},
		},
	}

	turn := Extract(event)

	if turn.IntentName != "HouseholdCountIntent" {
		t.Errorf("intent = %q", turn.IntentName)
	}
	if got := turn.Slots.TextOrEmpty(HouseholdCount); got != "3" {
		t.Errorf("interpreted value = %q, want 3", got)
	}
	if got := turn.Slots.TextOrEmpty(CountConfirmation); got != "yep" {
		t.Errorf("original value fallback = %q, want yep", got)
	}
	if turn.Slots.Has("Unfilled") || turn.Slots.Has("Empty") {
		t.Error("unfilled slots must extract as nil")
	}
	if turn.Attributes == nil {
		t.Error("attributes must never be nil")
	}
	if len(turn.RawSlots) != 4 {
		t.Errorf("raw slots = %d, want 4", len(turn.RawSlots))
	}
}

func strp(s string) *string { return &s }

func TestYesNo(t *testing.T) {
	v := Values{
		"a": strp("No"),
		"b": strp(" YES "),
		"c": strp("perhaps"),
	}

	if yes, err := v.YesNo("a"); err != nil || yes {
		t.Errorf("a: got %v, %v", yes, err)
	}
	if yes, err := v.YesNo("b"); err != nil || !yes {
		t.Errorf("b: got %v, %v", yes, err)
	}
	if _, err := v.YesNo("c"); !errors.Is(err, ErrSlotInvalid) {
		t.Errorf("c: error = %v, want ErrSlotInvalid", err)
	}
	if _, err := v.YesNo("d"); !errors.Is(err, ErrSlotMissing) {
		t.Errorf("d: error = %v, want ErrSlotMissing", err)
	}

	if !v.IsNo("a") || v.IsNo("b") || v.IsNo("c") || v.IsNo("d") {
		t.Error("IsNo must only be true for an explicit no")
	}
}

func TestInt(t *testing.T) {
	v := Values{"n": strp(" 4"), "bad": strp("four")}

	if n, err := v.Int("n"); err != nil || n != 4 {
		t.Errorf("n: got %d, %v", n, err)
	}
	if _, err := v.Int("bad"); !errors.Is(err, ErrSlotInvalid) {
		t.Errorf("bad: error = %v, want ErrSlotInvalid", err)
	}
	if _, err := v.Int("none"); !errors.Is(err, ErrSlotMissing) {
		t.Errorf("none: error = %v, want ErrSlotMissing", err)
	}
}
