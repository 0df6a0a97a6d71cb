// Package identity holds the stateless validation rules applied during
// registration and login: name parsing, age of majority, the CPF
// check-digit algorithm, and PIN format. Every function is pure over
// its arguments; accumulated registration state lives in Registration
// and is threaded explicitly by the caller.
package identity

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"xavier-bank/internal/errors"
)

const (
	cpfLength = 11
	pinLength = 4

	// MajorityAge is the minimum age allowed to hold a profile.
	MajorityAge = 18
)

// Registration accumulates the validated answers of a registration
// flow. Callers fill it step by step with the results of the functions
// below; the tags document the format each field must satisfy and are
// enforced by Complete.
type Registration struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Age       int    `validate:"gte=18"`
	Underage  bool
	CPF       string `validate:"required,len=11,numeric"`
	PIN       string `validate:"required,len=4,numeric"`
}

var structValidator = validator.New()

// Complete reports whether the accumulator holds a full, well-formed
// registration. It is a final consistency gate, not a replacement for
// the per-step validators.
func (r Registration) Complete() error {
	if r.Underage {
		return errors.ErrUnderage
	}
	if err := structValidator.Struct(r); err != nil {
		return errors.ErrInvalidInput.WithDetails(err.Error())
	}
	return nil
}

// ParseFullName splits the input on the first whitespace into first and
// last name. Anything with fewer than two tokens is rejected.
func ParseFullName(input string) (first, last string, err error) {
	trimmed := strings.TrimSpace(input)
	parts := strings.SplitN(trimmed, " ", 2)
	if len(parts) < 2 || parts[0] == "" || strings.TrimSpace(parts[1]) == "" {
		return "", "", errors.ErrInvalidInput
	}
	return parts[0], strings.TrimSpace(parts[1]), nil
}

// ParseAge parses a non-negative integer age. Ages below the majority
// age are accepted but flagged; aborting the registration on an
// underage answer is the caller's decision.
func ParseAge(input string) (age int, underage bool, err error) {
	age, convErr := strconv.Atoi(strings.TrimSpace(input))
	if convErr != nil || age < 0 {
		return 0, false, errors.ErrInvalidInput
	}
	return age, age < MajorityAge, nil
}

// checkDigit computes one CPF check digit over the first digits of the
// candidate using descending weights starting at firstWeight. The raw
// result (sum*10) mod 11 is clamped to 0 when it exceeds 9.
func checkDigit(cpf string, digits, firstWeight int) int {
	sum := 0
	weight := firstWeight
	for _, r := range cpf[:digits] {
		sum += int(r-'0') * weight
		weight--
	}
	remainder := sum * 10 % 11
	if remainder > 9 {
		return 0
	}
	return remainder
}

// ValidateCPF checks format, both check digits and uniqueness against
// the ids already registered. Digit 10 is computed over digits 1-9 with
// weights 10..2, digit 11 over digits 1-10 with weights 11..2.
func ValidateCPF(existing map[string]bool, input string) error {
	if len(input) != cpfLength || !allDigits(input) {
		return errors.ErrInvalidInput
	}
	first := checkDigit(input, 9, 10)
	second := checkDigit(input, 10, 11)
	if first != int(input[9]-'0') || second != int(input[10]-'0') {
		return errors.ErrInvalidInput
	}
	if existing[input] {
		return errors.ErrDuplicateCPF
	}
	return nil
}

// ValidatePIN accepts exactly four numeric characters.
func ValidatePIN(input string) error {
	if len(input) != pinLength || !allDigits(input) {
		return errors.ErrInvalidInput
	}
	return nil
}

// ConfirmPIN reports whether the repeated PIN matches the original.
func ConfirmPIN(original, repeat string) bool {
	return original == repeat
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
