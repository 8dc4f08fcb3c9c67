package state

import (
	"errors"
	"testing"

	"github.com/futig/census-agent/internal/entity"
)

func fullPerson(attrs map[string]string, n int, firstName string) {
	for _, field := range PersonFields {
		attrs[PersonKey(n, field)] = ""
	}
	attrs[PersonKey(n, PersonFirstName)] = firstName
}

func TestDecodeEmptyBag(t *testing.T) {
	st, err := Decode(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Stage() != StageNotStarted {
		t.Errorf("stage = %s, want %s", st.Stage(), StageNotStarted)
	}
	if st.Household.Count.Valid {
		t.Error("household count should be unset")
	}
}

func TestEncodeNeverDropsIncomingKeys(t *testing.T) {
	base := map[string]string{
		"addressId":         "DEMO-5555551234",
		KeyCaseID:           "CASE-1234abcd",
		KeyHousingTenure:    "own",
		PersonKey(7, "odd"): "kept",
	}

	st, err := Decode(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st.CaseID = ""
	st.HousingTenure = ""
	st.ContactPhone = "5551234567"

	out := Encode(base, st)
	for k, v := range base {
		if out[k] != v {
			t.Errorf("key %q = %q, want %q", k, out[k], v)
		}
	}
	if out[KeyContactPhone] != "5551234567" {
		t.Errorf("contact phone not written: %q", out[KeyContactPhone])
	}
	if _, ok := base[KeyContactPhone]; ok {
		t.Error("Encode must not mutate the base map")
	}
}

func TestDecodeIgnoresPartialPerson(t *testing.T) {
	attrs := map[string]string{
		KeyHouseholdCount:     "2",
		KeyCurrentPersonIndex: "2",
	}
	fullPerson(attrs, 1, "Ana")
	attrs[PersonKey(2, PersonFirstName)] = "Ben"
	attrs[PersonKey(2, PersonLastName)] = "Ortiz"

	st, err := Decode(attrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p := st.Household.Person(1); p == nil || p.FirstName != "Ana" {
		t.Fatalf("person 1 = %+v, want Ana", p)
	}
	if p := st.Household.Person(2); p != nil {
		t.Fatalf("partial person 2 decoded as %+v", p)
	}
	missing := st.Household.Missing()
	if len(missing) != 1 || missing[0] != 2 {
		t.Errorf("missing = %v, want [2]", missing)
	}
}

func TestPersonSurvivesEncodeDecode(t *testing.T) {
	age := 41
	hispanic := true
	st := &State{}
	st.Household.SetCount(1)
	st.Household.SetPerson(1, &Person{
		FirstName:    "Maria",
		LastName:     "Lopez",
		Relationship: "Self",
		Sex:          "female",
		DateOfBirth:  "1984-03-02",
		Age:          &age,
		IsHispanic:   &hispanic,
		Race:         "white",
	})

	out := Encode(nil, st)
	for _, field := range PersonFields {
		if _, ok := out[PersonKey(1, field)]; !ok {
			t.Errorf("field %q not written", field)
		}
	}

	decoded, err := Decode(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := decoded.Household.Person(1)
	if p == nil {
		t.Fatal("person 1 not decoded")
	}
	if p.Age == nil || *p.Age != 41 {
		t.Errorf("age = %v, want 41", p.Age)
	}
	if p.IsHispanic == nil || !*p.IsHispanic {
		t.Errorf("isHispanic = %v, want true", p.IsHispanic)
	}
	if p.HispanicOrigin != "" {
		t.Errorf("hispanicOrigin = %q, want empty", p.HispanicOrigin)
	}
}

func TestDecodeMalformedValues(t *testing.T) {
	attrs := map[string]string{
		KeyHouseholdCount:     "three",
		KeyFallbackRetryCount: "x",
		KeySurveyStatus:       "MAYBE",
	}

	st, err := Decode(attrs)
	if !errors.Is(err, entity.ErrInvalidAttribute) {
		t.Fatalf("error = %v, want ErrInvalidAttribute", err)
	}
	if st == nil {
		t.Fatal("state must be usable on decode issues")
	}
	if st.Household.Count.Valid {
		t.Error("malformed household count must be treated as absent")
	}
	if st.FallbackRetryCount.Valid {
		t.Error("malformed retry count must be treated as absent")
	}
	if st.SurveyStatus != "" {
		t.Errorf("status = %q, want empty", st.SurveyStatus)
	}

	// The malformed raw values still pass through untouched
	out := Encode(attrs, st)
	if out[KeySurveyStatus] != "MAYBE" {
		t.Errorf("status overwritten: %q", out[KeySurveyStatus])
	}
}

func TestDecodeClampsPersonIndex(t *testing.T) {
	tests := []struct {
		name  string
		index string
		want  int
	}{
		{"zero after consent", "0", 1},
		{"missing", "", 1},
		{"inside bound", "2", 2},
		{"past bound", "9", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := map[string]string{KeyHouseholdCount: "3"}
			if tt.index != "" {
				attrs[KeyCurrentPersonIndex] = tt.index
			}
			st, _ := Decode(attrs)
			if got := st.CurrentPersonIndex; !got.Valid || got.Value != tt.want {
				t.Errorf("index = %+v, want %d", got, tt.want)
			}
		})
	}
}

func TestDecodeRejectsOutOfRangeCount(t *testing.T) {
	for _, raw := range []string{"0", "-2", "100"} {
		st, err := Decode(map[string]string{KeyHouseholdCount: raw})
		if !errors.Is(err, entity.ErrInvalidAttribute) {
			t.Errorf("count %q: error = %v, want ErrInvalidAttribute", raw, err)
		}
		if st.Household.Count.Valid {
			t.Errorf("count %q accepted", raw)
		}
	}
}

func TestStageDerivation(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]string
		want  Stage
	}{
		{"consented", map[string]string{KeyCaseID: "CASE-1"}, StageConsented},
		{"address", map[string]string{KeyCaseID: "CASE-1", KeyAddressVerified: "true"}, StageAddressVerified},
		{"collecting", map[string]string{KeyHouseholdCount: "2", KeyPersonsCollected: "1"}, StageCollectingPersons},
		{"housing pending", map[string]string{KeyHouseholdCount: "2", KeyPersonsCollected: "2"}, StageHousingPending},
		{"housing recorded", map[string]string{KeyHousingTenure: "rent"}, StageHousingRecorded},
		{"completed", map[string]string{KeySurveyStatus: "COMPLETE"}, StageCompleted},
		{"refused", map[string]string{KeySurveyStatus: "REFUSED"}, StageRefused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := Decode(tt.attrs)
			if got := st.Stage(); got != tt.want {
				t.Errorf("stage = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSetCountKeepsPersonsBelowBound(t *testing.T) {
	var h Household
	h.SetCount(3)
	h.SetPerson(1, &Person{FirstName: "A"})
	h.SetPerson(3, &Person{FirstName: "C"})

	h.SetCount(2)
	if p := h.Person(1); p == nil || p.FirstName != "A" {
		t.Errorf("person 1 lost after shrinking: %+v", p)
	}
	if h.SetPerson(3, &Person{}) {
		t.Error("SetPerson past the bound should be rejected")
	}
	if len(h.Persons) != 2 {
		t.Errorf("len(Persons) = %d, want 2", len(h.Persons))
	}
}
