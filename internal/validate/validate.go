// Package validate holds the field-level validation rules for loan
// applications. Every validator takes the raw input string and returns nil
// on acceptance or an error whose message is the exact re-prompt text shown
// to the applicant. Validators never panic and never mutate their input;
// the one transform in this package (Capitalize) is applied after
// validation, before storage.
package validate

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// CNIC checks a national identity number: exactly 13 decimal digits.
// The same rule applies to reference id numbers.
func CNIC(s string) error {
	if len(s) != 13 {
		return errors.New("CNIC must be exactly 13 digits")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return errors.New("CNIC must contain only digits")
		}
	}
	return nil
}

// Phone accepts a contact number if, after stripping every non-digit
// character, 10 or 11 digits remain. Formatting characters such as spaces,
// dashes and a leading + are therefore tolerated.
func Phone(s string) error {
	digits := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits++
		}
	}
	if digits != 10 && digits != 11 {
		return errors.New("phone number must contain 10 or 11 digits")
	}
	return nil
}

// =============================================================================
// EMAIL
// =============================================================================

// Email validates an address with one informative check chain. The rules run
// in a fixed order and the first violation wins, so every malformed address
// gets a specific message rather than a generic one.
func Email(s string) error {
	if len(s) < 5 || len(s) > 254 {
		return errors.New("email must be between 5 and 254 characters")
	}
	at := strings.IndexByte(s, '@')
	if at <= 0 {
		return errors.New("email must contain @ and it cannot be the first character")
	}
	if at == len(s)-1 {
		return errors.New("email cannot end with @")
	}
	domain := s[at+1:]
	if !strings.Contains(domain, ".") {
		return errors.New("email must contain a dot after the @")
	}
	if domain[0] == '.' {
		return errors.New("email cannot have a dot immediately after the @")
	}
	if s[len(s)-1] == '.' {
		return errors.New("email cannot end with a dot")
	}
	local := s[:at]
	for i := 0; i < len(local); i++ {
		c := local[i]
		if !isAlnum(c) && c != '.' && c != '_' && c != '-' {
			return fmt.Errorf("email name part contains invalid character %q", string(c))
		}
	}
	for i := 0; i < len(domain); i++ {
		c := domain[i]
		if !isAlnum(c) && c != '.' && c != '-' {
			return fmt.Errorf("email domain part contains invalid character %q", string(c))
		}
	}
	if strings.Contains(s, "..") {
		return errors.New("email cannot contain consecutive dots")
	}
	return nil
}

// =============================================================================
// NAMES AND ADDRESSES
// =============================================================================

// FullName requires at least two space-separated words made up entirely of
// letters. Digits, punctuation or doubled spaces anywhere invalidate the
// whole string.
func FullName(s string) error {
	if s == "" {
		return errors.New("name cannot be empty")
	}
	words := strings.Split(s, " ")
	if len(words) < 2 {
		return errors.New("please enter at least first and last name")
	}
	for _, w := range words {
		if w == "" {
			return errors.New("name cannot contain extra spaces")
		}
		for _, r := range w {
			if !isAlphaRune(r) {
				return errors.New("name must contain only letters and spaces")
			}
		}
	}
	return nil
}

// postalAllowed is the character set accepted inside an address beyond
// letters and digits.
const postalAllowed = " ,.-/#\\"

// PostalAddress validates a mailing address: 10-200 characters drawn from
// letters, digits, space and , . - / # \ with at least one letter, no
// doubled spaces and no leading or trailing space.
func PostalAddress(s string) error {
	if len(s) < 10 || len(s) > 200 {
		return errors.New("address must be between 10 and 200 characters")
	}
	hasLetter := false
	for _, r := range s {
		if isAlphaRune(r) {
			hasLetter = true
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		if !strings.ContainsRune(postalAllowed, r) {
			return fmt.Errorf("address contains invalid character %q", string(r))
		}
	}
	if !hasLetter {
		return errors.New("address must contain at least one letter")
	}
	if strings.Contains(s, "  ") {
		return errors.New("address cannot contain consecutive spaces")
	}
	if s[0] == ' ' || s[len(s)-1] == ' ' {
		return errors.New("address cannot start or end with a space")
	}
	return nil
}

// =============================================================================
// DATES
// =============================================================================

// IssueDate validates a CNIC issue date in DD-MM-YYYY form. Issue years are
// accepted from 1950 through 2025.
func IssueDate(s string) error {
	return date(s, 1950, 2025)
}

// ExpiryDate validates a CNIC expiry date in DD-MM-YYYY form. Expiry years
// are accepted from 2020 through 2050.
func ExpiryDate(s string) error {
	return date(s, 2020, 2050)
}

// date is the shared DD-MM-YYYY check. The two exported variants differ only
// in the accepted year window.
func date(s string, minYear, maxYear int) error {
	if len(s) != 10 || s[2] != '-' || s[5] != '-' {
		return errors.New("date must be in DD-MM-YYYY format")
	}
	day, ok1 := atoi(s[0:2])
	month, ok2 := atoi(s[3:5])
	year, ok3 := atoi(s[6:10])
	if !ok1 || !ok2 || !ok3 {
		return errors.New("date must contain only digits and dashes")
	}
	if month < 1 || month > 12 {
		return errors.New("month must be between 01 and 12")
	}
	if year < minYear || year > maxYear {
		return fmt.Errorf("year must be between %d and %d", minYear, maxYear)
	}
	if day < 1 || day > daysInMonth(month, year) {
		return errors.New("day is not valid for the given month")
	}
	return nil
}

// daysInMonth applies the Gregorian rule: leap years are divisible by 4 and
// not by 100, unless divisible by 400.
func daysInMonth(month, year int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	}
	if year%4 == 0 && year%100 != 0 || year%400 == 0 {
		return 29
	}
	return 28
}

// =============================================================================
// NUMBERS
// =============================================================================

// Amount accepts a monetary figure only when every character is a decimal
// digit. Separators and decimal points are rejected before any numeric
// conversion happens.
func Amount(s string) error {
	if s == "" {
		return errors.New("amount cannot be empty")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return errors.New("amount must contain only digits, no commas or decimal points")
		}
	}
	return nil
}

// Count accepts a small non-negative integer such as a dependents count or
// an installment-month figure: digits only.
func Count(s string) error {
	if s == "" {
		return errors.New("please enter a number")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return errors.New("value must be a whole number with digits only")
		}
	}
	return nil
}

// =============================================================================
// TRANSFORMS
// =============================================================================

// Capitalize upper-cases the first letter of each space-separated word and
// lower-cases the rest. It is a normalizing transform, not a validator, and
// runs after validation so it only ever sees accepted names.
func Capitalize(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// =============================================================================
// HELPERS
// =============================================================================

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isAlphaRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// atoi parses a fixed-width decimal segment without pulling in strconv's
// error values; ok is false if any character is not a digit.
func atoi(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}
