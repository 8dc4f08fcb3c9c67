package state

import (
	"github.com/futig/census-agent/internal/entity"
)

// MaxHouseholdCount bounds the person loop
const MaxHouseholdCount = 99

// Int is an integer attribute that distinguishes "0" from an absent key
type Int struct {
	Value int
	Valid bool
}

// IntOf returns a valid Int holding v
func IntOf(v int) Int {
	return Int{Value: v, Valid: true}
}

// State is the decoded form of the session attribute bag
type State struct {
	CaseID          string
	SurveyStartTime string
	CompletedAt     string
	RefusedAt       string

	CurrentPersonIndex Int
	PersonsCollected   Int
	Household          Household

	Address Address

	HousingTenure string
	ContactPhone  string

	ConfirmationNumber string
	SurveyStatus       entity.SurveyStatus

	Callback   Callback
	Escalation Escalation

	// RequestedAction is read by the platform, e.g. TRANSFER_TO_AGENT
	RequestedAction string

	FallbackRetryCount Int
}

// Household holds the loop bound and the persons collected so far.
// Persons[i] is person i+1; nil entries are not collected yet.
type Household struct {
	Count   Int
	Persons []*Person
}

// SetCount sets the loop bound and resizes Persons, keeping persons below the bound
func (h *Household) SetCount(n int) {
	h.Count = IntOf(n)
	persons := make([]*Person, n)
	copy(persons, h.Persons)
	h.Persons = persons
}

// Person returns the 1-based person, or nil if it is out of range or not collected
func (h *Household) Person(index int) *Person {
	if index < 1 || index > len(h.Persons) {
		return nil
	}
	return h.Persons[index-1]
}

// SetPerson stores p at the 1-based index; indexes outside the bound are ignored
func (h *Household) SetPerson(index int, p *Person) bool {
	if index < 1 || index > len(h.Persons) {
		return false
	}
	h.Persons[index-1] = p
	return true
}

// Missing returns the 1-based indexes within the bound that are not collected
func (h *Household) Missing() []int {
	var missing []int
	for i, p := range h.Persons {
		if p == nil {
			missing = append(missing, i+1)
		}
	}
	return missing
}

// Person is one household member
type Person struct {
	FirstName      string
	LastName       string
	Relationship   string
	Sex            string
	DateOfBirth    string
	Age            *int
	IsHispanic     *bool
	HispanicOrigin string
	Race           string
	RaceDetail     string
}

// Address is the address-verification outcome
type Address struct {
	Verified  bool
	Corrected bool
	Street    string
	City      string
	State     string
	ZipCode   string
}

// Callback is a scheduled call back
type Callback struct {
	Scheduled bool
	Date      string
	Time      string
	Phone     string
}

// Escalation is a request to hand off to a human agent
type Escalation struct {
	Requested bool
	Reason    string
}

// Stage is the logical interview phase derived from the decoded state
type Stage int

const (
	StageNotStarted Stage = iota
	StageConsented
	StageAddressVerified
	StageCollectingPersons
	StageHousingPending
	StageHousingRecorded
	StageCompleted
	StageRefused
)

// String returns string representation of the stage
func (s Stage) String() string {
	switch s {
	case StageNotStarted:
		return "not_started"
	case StageConsented:
		return "consented"
	case StageAddressVerified:
		return "address_verified"
	case StageCollectingPersons:
		return "collecting_persons"
	case StageHousingPending:
		return "housing_pending"
	case StageHousingRecorded:
		return "housing_recorded"
	case StageCompleted:
		return "completed"
	case StageRefused:
		return "refused"
	default:
		return "unknown"
	}
}

// Stage derives the interview phase from the state
func (s *State) Stage() Stage {
	switch {
	case s.SurveyStatus == entity.SurveyStatusRefused:
		return StageRefused
	case s.SurveyStatus == entity.SurveyStatusComplete:
		return StageCompleted
	case s.HousingTenure != "":
		return StageHousingRecorded
	case s.Household.Count.Valid && s.PersonsCollected.Valid && s.PersonsCollected.Value >= s.Household.Count.Value:
		return StageHousingPending
	case s.Household.Count.Valid:
		return StageCollectingPersons
	case s.Address.Verified:
		return StageAddressVerified
	case s.CaseID != "":
		return StageConsented
	default:
		return StageNotStarted
	}
}

// Terminal reports whether the interview already has a final status
func (s *State) Terminal() bool {
	return s.SurveyStatus != ""
}
