package state

import (
	"strconv"
	"time"
)

// Session attribute keys. The platform only transports strings, so every value
// stored under these keys is the string form of the typed field in State.
const (
	KeyCaseID             = "caseId"
	KeySurveyStartTime    = "surveyStartTime"
	KeyCompletedAt        = "completedAt"
	KeyRefusedAt          = "refusedAt"
	KeyCurrentPersonIndex = "currentPersonIndex"
	KeyHouseholdCount     = "householdCount"
	KeyPersonsCollected   = "personsCollected"

	KeyAddressVerified  = "addressVerified"
	KeyAddressCorrected = "addressCorrected"
	KeyStreetAddress    = "streetAddress"
	KeyCity             = "city"
	KeyState            = "state"
	KeyZipCode          = "zipCode"

	KeyHousingTenure = "housingTenure"
	KeyContactPhone  = "contactPhone"

	KeyConfirmationNumber = "confirmationNumber"
	KeySurveyStatus       = "surveyStatus"

	KeyCallbackScheduled = "callbackScheduled"
	KeyCallbackDate      = "callbackDate"
	KeyCallbackTime      = "callbackTime"
	KeyCallbackPhone     = "callbackPhone"

	KeyEscalationRequested = "escalationRequested"
	KeyEscalationReason    = "escalationReason"
	KeyRequestedAction     = "requestedAction"

	KeyFallbackRetryCount = "fallbackRetryCount"
)

// Per-person field suffixes, stored as person{N}_{field}
const (
	PersonFirstName      = "firstName"
	PersonLastName       = "lastName"
	PersonRelationship   = "relationship"
	PersonSex            = "sex"
	PersonDateOfBirth    = "dob"
	PersonAge            = "age"
	PersonIsHispanic     = "isHispanic"
	PersonHispanicOrigin = "hispanicOrigin"
	PersonRace           = "race"
	PersonRaceDetail     = "raceDetail"
)

// PersonFields lists the ten keys that make up a collected person
var PersonFields = [...]string{
	PersonFirstName,
	PersonLastName,
	PersonRelationship,
	PersonSex,
	PersonDateOfBirth,
	PersonAge,
	PersonIsHispanic,
	PersonHispanicOrigin,
	PersonRace,
	PersonRaceDetail,
}

// PersonKey returns the attribute key of a field for the 1-based person index
func PersonKey(index int, field string) string {
	return "person" + strconv.Itoa(index) + "_" + field
}

const (
	flagTrue = "true"

	answerYes = "yes"
	answerNo  = "no"
)

// TimeFormat matches the millisecond UTC ISO-8601 timestamps used in records
const TimeFormat = "2006-01-02T15:04:05.000Z"

// FormatTime renders t in TimeFormat
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}
