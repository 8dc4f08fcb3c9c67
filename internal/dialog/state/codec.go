package state

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/futig/census-agent/internal/entity"
)

// Decode reconstructs the typed state from the flat attribute bag.
// Malformed values are treated as absent and reported in the returned error;
// the returned state is always non-nil and usable.
func Decode(attrs map[string]string) (*State, error) {
	d := &decoder{attrs: attrs}

	st := &State{
		CaseID:             attrs[KeyCaseID],
		SurveyStartTime:    attrs[KeySurveyStartTime],
		CompletedAt:        attrs[KeyCompletedAt],
		RefusedAt:          attrs[KeyRefusedAt],
		CurrentPersonIndex: d.int(KeyCurrentPersonIndex),
		PersonsCollected:   d.int(KeyPersonsCollected),
		Address: Address{
			Verified:  attrs[KeyAddressVerified] == flagTrue,
			Corrected: attrs[KeyAddressCorrected] == flagTrue,
			Street:    attrs[KeyStreetAddress],
			City:      attrs[KeyCity],
			State:     attrs[KeyState],
			ZipCode:   attrs[KeyZipCode],
		},
		HousingTenure:      attrs[KeyHousingTenure],
		ContactPhone:       attrs[KeyContactPhone],
		ConfirmationNumber: attrs[KeyConfirmationNumber],
		Callback: Callback{
			Scheduled: attrs[KeyCallbackScheduled] == flagTrue,
			Date:      attrs[KeyCallbackDate],
			Time:      attrs[KeyCallbackTime],
			Phone:     attrs[KeyCallbackPhone],
		},
		Escalation: Escalation{
			Requested: attrs[KeyEscalationRequested] == flagTrue,
			Reason:    attrs[KeyEscalationReason],
		},
		RequestedAction:    attrs[KeyRequestedAction],
		FallbackRetryCount: d.int(KeyFallbackRetryCount),
	}

	if raw, ok := attrs[KeySurveyStatus]; ok && raw != "" {
		status := entity.SurveyStatus(raw)
		if status.Validate() {
			st.SurveyStatus = status
		} else {
			d.fail(KeySurveyStatus, raw)
		}
	}

	count := d.int(KeyHouseholdCount)
	if count.Valid && (count.Value < 1 || count.Value > MaxHouseholdCount) {
		d.fail(KeyHouseholdCount, attrs[KeyHouseholdCount])
		count = Int{}
	}
	if count.Valid {
		st.Household.SetCount(count.Value)
		for n := 1; n <= count.Value; n++ {
			st.Household.SetPerson(n, d.person(n))
		}

		// The loop index only ever points at a person inside the bound
		switch {
		case !st.CurrentPersonIndex.Valid || st.CurrentPersonIndex.Value < 1:
			st.CurrentPersonIndex = IntOf(1)
		case st.CurrentPersonIndex.Value > count.Value:
			st.CurrentPersonIndex = IntOf(count.Value)
		}
	}

	return st, errors.Join(d.issues...)
}

// Encode flattens the state on top of a copy of base. Keys present in base are
// never removed; state fields only add or overwrite their own keys.
func Encode(base map[string]string, st *State) map[string]string {
	out := make(map[string]string, len(base)+24)
	maps.Copy(out, base)

	e := encoder{out: out}
	e.str(KeyCaseID, st.CaseID)
	e.str(KeySurveyStartTime, st.SurveyStartTime)
	e.str(KeyCompletedAt, st.CompletedAt)
	e.str(KeyRefusedAt, st.RefusedAt)
	e.int(KeyCurrentPersonIndex, st.CurrentPersonIndex)
	e.int(KeyHouseholdCount, st.Household.Count)
	e.int(KeyPersonsCollected, st.PersonsCollected)

	e.flag(KeyAddressVerified, st.Address.Verified)
	e.flag(KeyAddressCorrected, st.Address.Corrected)
	e.str(KeyStreetAddress, st.Address.Street)
	e.str(KeyCity, st.Address.City)
	e.str(KeyState, st.Address.State)
	e.str(KeyZipCode, st.Address.ZipCode)

	e.str(KeyHousingTenure, st.HousingTenure)
	e.str(KeyContactPhone, st.ContactPhone)

	e.str(KeyConfirmationNumber, st.ConfirmationNumber)
	e.str(KeySurveyStatus, string(st.SurveyStatus))

	e.flag(KeyCallbackScheduled, st.Callback.Scheduled)
	e.str(KeyCallbackDate, st.Callback.Date)
	e.str(KeyCallbackTime, st.Callback.Time)
	e.str(KeyCallbackPhone, st.Callback.Phone)

	e.flag(KeyEscalationRequested, st.Escalation.Requested)
	e.str(KeyEscalationReason, st.Escalation.Reason)
	e.str(KeyRequestedAction, st.RequestedAction)

	e.int(KeyFallbackRetryCount, st.FallbackRetryCount)

	for i, p := range st.Household.Persons {
		if p != nil {
			e.person(i+1, p)
		}
	}

	return out
}

type decoder struct {
	attrs  map[string]string
	issues []error
}

func (d *decoder) fail(key, value string) {
	d.issues = append(d.issues, fmt.Errorf("%w: %s=%q", entity.ErrInvalidAttribute, key, value))
}

func (d *decoder) int(key string) Int {
	raw, ok := d.attrs[key]
	if !ok || raw == "" {
		return Int{}
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		d.fail(key, raw)
		return Int{}
	}
	return IntOf(v)
}

// person decodes person n only when all ten of its keys are present
func (d *decoder) person(n int) *Person {
	values := make(map[string]string, len(PersonFields))
	for _, field := range PersonFields {
		v, ok := d.attrs[PersonKey(n, field)]
		if !ok {
			return nil
		}
		values[field] = v
	}

	p := &Person{
		FirstName:      values[PersonFirstName],
		LastName:       values[PersonLastName],
		Relationship:   values[PersonRelationship],
		Sex:            values[PersonSex],
		DateOfBirth:    values[PersonDateOfBirth],
		HispanicOrigin: values[PersonHispanicOrigin],
		Race:           values[PersonRace],
		RaceDetail:     values[PersonRaceDetail],
	}

	if raw := values[PersonAge]; raw != "" {
		if age, err := strconv.Atoi(raw); err == nil && age >= 0 {
			p.Age = &age
		} else {
			d.fail(PersonKey(n, PersonAge), raw)
		}
	}

	if raw := values[PersonIsHispanic]; raw != "" {
		if flag, ok := parseAnswer(raw); ok {
			p.IsHispanic = &flag
		} else {
			d.fail(PersonKey(n, PersonIsHispanic), raw)
		}
	}

	return p
}

func parseAnswer(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case answerYes, flagTrue:
		return true, true
	case answerNo, "false":
		return false, true
	default:
		return false, false
	}
}

type encoder struct {
	out map[string]string
}

func (e encoder) str(key, value string) {
	if value != "" {
		e.out[key] = value
	}
}

func (e encoder) int(key string, value Int) {
	if value.Valid {
		e.out[key] = strconv.Itoa(value.Value)
	}
}

func (e encoder) flag(key string, value bool) {
	if value {
		e.out[key] = flagTrue
	}
}

// person always writes all ten keys so a partial person is never mistaken for a complete one
func (e encoder) person(n int, p *Person) {
	age := ""
	if p.Age != nil {
		age = strconv.Itoa(*p.Age)
	}
	hispanic := ""
	if p.IsHispanic != nil {
		hispanic = answerNo
		if *p.IsHispanic {
			hispanic = answerYes
		}
	}

	e.out[PersonKey(n, PersonFirstName)] = p.FirstName
	e.out[PersonKey(n, PersonLastName)] = p.LastName
	e.out[PersonKey(n, PersonRelationship)] = p.Relationship
	e.out[PersonKey(n, PersonSex)] = p.Sex
	e.out[PersonKey(n, PersonDateOfBirth)] = p.DateOfBirth
	e.out[PersonKey(n, PersonAge)] = age
	e.out[PersonKey(n, PersonIsHispanic)] = hispanic
	e.out[PersonKey(n, PersonHispanicOrigin)] = p.HispanicOrigin
	e.out[PersonKey(n, PersonRace)] = p.Race
	e.out[PersonKey(n, PersonRaceDetail)] = p.RaceDetail
}
