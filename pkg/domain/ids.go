package domain

import (
	"strings"

	dErrors "insurance/pkg/domain-errors"
)

// PersonalID is the external, human-facing identifier of an insured person.
// It is distinct from the internal numeric person id and has no format
// beyond being non-blank.
type PersonalID string

// ParsePersonalID rejects empty or whitespace-only input. Any other value is
// kept as given; the store decides whether it exists.
func ParsePersonalID(s string) (PersonalID, error) {
	if strings.TrimSpace(s) == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "personal ID is required")
	}
	return PersonalID(s), nil
}

func (p PersonalID) String() string {
	return string(p)
}

// RegistrationNumber identifies a vehicle at the external vehicle service.
type RegistrationNumber string

// ParseRegistrationNumber trims whitespace and rejects blank input.
func ParseRegistrationNumber(s string) (RegistrationNumber, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "registration number is required")
	}
	return RegistrationNumber(s), nil
}

func (r RegistrationNumber) String() string {
	return string(r)
}
