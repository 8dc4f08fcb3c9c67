package entity

import "time"

// Address is a household address on file for a phone number
type Address struct {
	AddressID        string     `json:"addressId"`
	PhoneNumber      string     `json:"phoneNumber"`
	StreetAddress    string     `json:"streetAddress"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	ZipCode          string     `json:"zipCode"`
	CaseID           string     `json:"caseId,omitempty"`
	AttemptNumber    int        `json:"attemptNumber"`
	CorrectedAddress *string    `json:"correctedAddress,omitempty"`
	AddressVerified  *bool      `json:"addressVerified,omitempty"`
	VerifiedAt       *time.Time `json:"verifiedAt,omitempty"`
}

// AddressLookupResponse is returned to the contact flow after a phone lookup
type AddressLookupResponse struct {
	AddressFound  bool   `json:"addressFound"`
	AddressID     string `json:"addressId"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
	CaseID        string `json:"caseId"`
	AttemptNumber int    `json:"attemptNumber"`
	Demo          bool   `json:"demo,omitempty"`
}

// VerifyAddressRequest confirms or corrects the address on file
type VerifyAddressRequest struct {
	CaseID           string `json:"caseId"`
	AddressID        string `json:"addressId"`
	IsCorrect        bool   `json:"isCorrect"`
	CorrectedAddress string `json:"correctedAddress,omitempty"`
}

// VerifyAddressResponse tells the contact flow whether to proceed with the survey
type VerifyAddressResponse struct {
	AddressVerified   bool   `json:"addressVerified"`
	CaseID            string `json:"caseId"`
	ProceedWithSurvey bool   `json:"proceedWithSurvey"`
}
