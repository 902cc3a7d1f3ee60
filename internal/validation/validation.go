package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Violation codes reported per field.
const (
	CodeRequired          = "required"
	CodeInvalidNumber     = "invalid_number"
	CodeMustBePositive    = "must_be_positive"
	CodeMustNotBeNegative = "must_not_be_negative"
	CodeOutOfRange        = "out_of_range"
	CodeInvalidDate       = "invalid_date"
	CodeInvalidEmail      = "invalid_email"
	CodeInvalidPhone      = "invalid_phone"
	CodeTooPrecise        = "too_precise"
	CodeTooLarge          = "too_large"
)

// Money columns are decimal(15,2): two decimals, thirteen integer digits.
const moneyScale = 2

var maxMoney = decimal.New(1, 13)

// ErrValidation matches every *ValidationError with errors.Is.
var ErrValidation = errors.New("validation failed")

// Violations maps a field name to the first violation code found for it.
type Violations map[string]string

// Empty reports whether no violation was recorded.
func (v Violations) Empty() bool { return len(v) == 0 }

func (v Violations) add(field, code string) {
	if _, ok := v[field]; !ok {
		v[field] = code
	}
}

// ValidationError describes input that was rejected before touching the store.
type ValidationError struct {
	Violations Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = fmt.Sprintf("%s: %s", f, e.Violations[f])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Err returns nil when v is empty, a *ValidationError otherwise.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}

// Required records a violation when value is blank.
func Required(field, value string, v Violations) bool {
	if strings.TrimSpace(value) == "" {
		v.add(field, CodeRequired)
		return false
	}
	return true
}

// Money records a violation when d does not fit a decimal(15,2) column
// exactly. Trailing zeros past the second decimal are accepted.
func Money(field string, d decimal.Decimal, v Violations) bool {
	if !d.Equal(d.Round(moneyScale)) {
		v.add(field, CodeTooPrecise)
		return false
	}
	if d.Abs().GreaterThanOrEqual(maxMoney) {
		v.add(field, CodeTooLarge)
		return false
	}
	return true
}
