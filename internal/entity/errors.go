package entity

import "errors"

// Domain errors
var (
	// Dialog errors
	ErrUnknownIntent       = errors.New("unknown intent")
	ErrMalformedEvent      = errors.New("malformed dialog event")
	ErrInvalidAttribute    = errors.New("invalid session attribute")
	ErrHouseholdCountUnset = errors.New("household count is not set")

	// Persistence errors
	ErrMissingCaseID    = errors.New("case id is missing")
	ErrStoreUnavailable = errors.New("record store unavailable")

	// Address errors
	ErrAddressNotFound = errors.New("address not found")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
