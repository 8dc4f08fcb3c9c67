package entity

import "encoding/json"

// RecordType distinguishes the records written to the census store
type RecordType string

const (
	RecordTypeSurveyComplete    RecordType = "SURVEY_COMPLETE"
	RecordTypeCallbackScheduled RecordType = "CALLBACK_SCHEDULED"
)

// SurveyStatus is the terminal status of an interview
type SurveyStatus string

const (
	SurveyStatusComplete SurveyStatus = "COMPLETE"
	SurveyStatusRefused  SurveyStatus = "REFUSED"
)

// Validate reports whether the status is one of the known terminal statuses
func (s SurveyStatus) Validate() bool {
	switch s {
	case SurveyStatusComplete, SurveyStatusRefused:
		return true
	default:
		return false
	}
}

// CallbackStatusPending is the status of a freshly scheduled callback
const CallbackStatusPending = "PENDING"

// SurveyRecord is a completed household interview
type SurveyRecord struct {
	CaseID             string         `json:"caseId" bson:"caseId"`
	Timestamp          string         `json:"timestamp" bson:"timestamp"`
	Type               RecordType     `json:"type" bson:"type"`
	Status             SurveyStatus   `json:"status" bson:"status"`
	ConfirmationNumber string         `json:"confirmationNumber" bson:"confirmationNumber"`
	HouseholdCount     int            `json:"householdCount" bson:"householdCount"`
	HousingTenure      string         `json:"housingTenure,omitempty" bson:"housingTenure,omitempty"`
	ContactPhone       string         `json:"contactPhone,omitempty" bson:"contactPhone,omitempty"`
	Persons            []PersonRecord `json:"persons" bson:"persons"`
	SurveyStartTime    string         `json:"surveyStartTime,omitempty" bson:"surveyStartTime,omitempty"`
	CompletedAt        string         `json:"completedAt" bson:"completedAt"`
}

// SortKey returns the per-record-type key under the case id
func (r *SurveyRecord) SortKey() string {
	return recordKey(r.Type, r.Timestamp)
}

// PersonRecord is one household member inside a survey record
type PersonRecord struct {
	PersonNumber     int    `json:"personNumber" bson:"personNumber"`
	FirstName        string `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName         string `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Relationship     string `json:"relationship,omitempty" bson:"relationship,omitempty"`
	Sex              string `json:"sex,omitempty" bson:"sex,omitempty"`
	DateOfBirth      string `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Age              *int   `json:"age,omitempty" bson:"age,omitempty"`
	IsHispanicLatino *bool  `json:"isHispanicLatino,omitempty" bson:"isHispanicLatino,omitempty"`
	HispanicOrigin   string `json:"hispanicOrigin,omitempty" bson:"hispanicOrigin,omitempty"`
	Race             string `json:"race,omitempty" bson:"race,omitempty"`
	RaceDetail       string `json:"raceDetail,omitempty" bson:"raceDetail,omitempty"`
}

// CallbackRecord is a request to be called back later
type CallbackRecord struct {
	CaseID        string     `json:"caseId" bson:"caseId"`
	Timestamp     string     `json:"timestamp" bson:"timestamp"`
	Type          RecordType `json:"type" bson:"type"`
	Status        string     `json:"status" bson:"status"`
	CallbackDate  string     `json:"callbackDate,omitempty" bson:"callbackDate,omitempty"`
	CallbackTime  string     `json:"callbackTime,omitempty" bson:"callbackTime,omitempty"`
	CallbackPhone string     `json:"callbackPhone,omitempty" bson:"callbackPhone,omitempty"`
}

// SortKey returns the per-record-type key under the case id
func (r *CallbackRecord) SortKey() string {
	return recordKey(r.Type, r.Timestamp)
}

func recordKey(t RecordType, timestamp string) string {
	return string(t) + "#" + timestamp
}

// CensusRecord is a stored record as read back from the census store
type CensusRecord struct {
	CaseID    string          `json:"caseId"`
	RecordKey string          `json:"recordKey"`
	Type      RecordType      `json:"type"`
	Payload   json.RawMessage `json:"payload"`
}

// ListRecordsResponse lists the stored records of one case
type ListRecordsResponse struct {
	CaseID  string          `json:"caseId"`
	Records []*CensusRecord `json:"records"`
}
