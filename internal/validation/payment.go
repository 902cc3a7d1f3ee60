package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clientbook/clientbook/internal/model"
)

// Rules bounds the fiscal year accepted on payments:
// [MinFiscalYear, current year + MaxYearsAhead].
type Rules struct {
	MinFiscalYear int
	MaxYearsAhead int
}

// DefaultRules returns the bounds used when no configuration overrides them.
func DefaultRules() Rules {
	return Rules{MinFiscalYear: 1900, MaxYearsAhead: 10}
}

// PaymentForm holds payment fields as entered by a user, before parsing.
type PaymentForm struct {
	Amount     string
	Kind       string
	FiscalYear string
	PaidOn     string
}

// PaymentInput is a validated payment.
type PaymentInput struct {
	Amount     decimal.Decimal
	Kind       string
	FiscalYear int
	PaidOn     time.Time
}

// ParsePayment validates form against rules, using now for the current year.
// All four fields are required.
func ParsePayment(form PaymentForm, rules Rules, now time.Time) (PaymentInput, error) {
	v := make(Violations)
	var in PaymentInput

	if Required("amount", form.Amount, v) {
		in.Amount = PositiveDecimal("amount", form.Amount, v)
	}
	if Required("type", form.Kind, v) {
		in.Kind = strings.TrimSpace(form.Kind)
	}
	if Required("fiscal_year", form.FiscalYear, v) {
		in.FiscalYear = FiscalYear("fiscal_year", form.FiscalYear, rules, now, v)
	}
	if Required("date", form.PaidOn, v) {
		in.PaidOn = Date("date", form.PaidOn, v)
	}

	if err := v.Err(); err != nil {
		return PaymentInput{}, err
	}
	return in, nil
}

// PositiveDecimal parses a required amount that must be > 0.
func PositiveDecimal(field, value string, v Violations) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		v.add(field, CodeInvalidNumber)
		return decimal.Zero
	}
	if !d.IsPositive() {
		v.add(field, CodeMustBePositive)
		return decimal.Zero
	}
	if !Money(field, d, v) {
		return decimal.Zero
	}
	return d.Round(moneyScale)
}

// FiscalYear parses an integer year within the rules' window.
func FiscalYear(field, value string, rules Rules, now time.Time, v Violations) int {
	year, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		v.add(field, CodeInvalidNumber)
		return 0
	}
	if year < rules.MinFiscalYear || year > now.Year()+rules.MaxYearsAhead {
		v.add(field, CodeOutOfRange)
		return 0
	}
	return year
}

// Date parses a YYYY-MM-DD calendar date as UTC midnight.
func Date(field, value string, v Violations) time.Time {
	d, err := time.Parse(model.DateFormat, strings.TrimSpace(value))
	if err != nil {
		v.add(field, CodeInvalidDate)
		return time.Time{}
	}
	return d
}

// Validate re-checks an already typed input, for callers that build a
// PaymentInput without going through ParsePayment. A zero PaidOn is allowed
// and means "today".
func (in PaymentInput) Validate(rules Rules, now time.Time) error {
	v := make(Violations)
	if !in.Amount.IsPositive() {
		v.add("amount", CodeMustBePositive)
	} else {
		Money("amount", in.Amount, v)
	}
	if strings.TrimSpace(in.Kind) == "" {
		v.add("type", CodeRequired)
	}
	if in.FiscalYear < rules.MinFiscalYear || in.FiscalYear > now.Year()+rules.MaxYearsAhead {
		v.add("fiscal_year", CodeOutOfRange)
	}
	return v.Err()
}
