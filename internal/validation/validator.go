// Package validation holds the per-field predicates used by the bulk-import
// normalizer. Every predicate is total: malformed input yields false, never
// a panic, and input is never mutated.
package validation

import (
	"regexp"
	"time"

	"github.com/pay-managing/api-payments/internal/refdata"
)

// DateLayout is the only accepted calendar-date form in import sources.
const DateLayout = "2006-01-02"

// E.164-like: optional leading +, first digit 1-9, at most 15 digits total.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// IsValidDate reports whether v parses as a YYYY-MM-DD calendar date.
func IsValidDate(v string) bool {
	_, err := time.Parse(DateLayout, v)
	return err == nil
}

// IsValidPhone reports whether v is an E.164-like phone number with no
// spaces or punctuation.
func IsValidPhone(v string) bool {
	return phonePattern.MatchString(v)
}

// IsNumeric reports whether v is an actual number. Numeric-looking strings
// do not count; the tabular reader is responsible for typing cells before
// validation.
func IsNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// IsValidCountry reports membership of v in the cached ISO 3166-1 alpha-2
// set. Exact match, case-sensitive as provided.
func IsValidCountry(v string, countries refdata.CodeSet) bool {
	return countries.Has(v)
}

// IsValidCurrency reports membership of v in the cached ISO 4217 alpha-3 set.
func IsValidCurrency(v string, currencies refdata.CodeSet) bool {
	return currencies.Has(v)
}
