package validator

import (
	"fmt"
	"strings"

	"github.com/futig/census-agent/internal/entity"
)

// phoneSanitizer strips the separators callers and contact flows put in numbers
var phoneSanitizer = strings.NewReplacer(
	" ", "",
	"-", "",
	"+", "",
)

// Validator validates address requests
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateLookup validates a phone lookup
func (v *Validator) ValidateLookup(phone string) error {
	if NormalizePhone(phone) == "" {
		return fmt.Errorf("%w: phone", entity.ErrMissingField)
	}
	return nil
}

// ValidateVerifyAddress validates an address confirmation or correction
func (v *Validator) ValidateVerifyAddress(req *entity.VerifyAddressRequest) error {
	if req.CaseID == "" {
		return fmt.Errorf("%w: caseId", entity.ErrMissingField)
	}
	if !req.IsCorrect && req.CorrectedAddress != "" && req.AddressID == "" {
		return fmt.Errorf("%w: addressId is required with a corrected address", entity.ErrMissingField)
	}
	return nil
}

// NormalizePhone removes spaces, dashes and plus signs, then one leading
// country code 1, so "+1 555-123-4567" and "5551234567" match
func NormalizePhone(phone string) string {
	normalized := phoneSanitizer.Replace(phone)
	return strings.TrimPrefix(normalized, "1")
}
