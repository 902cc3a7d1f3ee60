package validation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ClientForm holds client fields as entered by a user, before parsing.
type ClientForm struct {
	LastName     string
	FirstName    string
	Activity     string
	Phone        string
	Email        string
	Address      string
	Balance      string
	Kind         string
	TaxRegime    string
	Agent        string
	LegalForm    string
	SocialRegime string
	PaymentMode  string
	MonthlyFee   string
	Indicator    string
	TaxOffice    string
	Notes        string
}

// ClientInput is a validated client, ready for the store. Optional text
// fields default to "" and money fields to zero.
type ClientInput struct {
	LastName     string
	FirstName    string
	Activity     string
	Phone        string
	Email        string
	Address      string
	Balance      decimal.Decimal
	Kind         string
	TaxRegime    string
	Agent        string
	LegalForm    string
	SocialRegime string
	PaymentMode  string
	MonthlyFee   decimal.Decimal
	Indicator    string
	TaxOffice    string
	Notes        string
}

// ParseClient validates form and converts it to a ClientInput. Only the last
// name is required.
func ParseClient(form ClientForm) (ClientInput, error) {
	v := make(Violations)

	Required("last_name", form.LastName, v)
	balance := NonNegativeDecimal("balance", form.Balance, v)
	fee := NonNegativeDecimal("monthly_fee", form.MonthlyFee, v)
	Email("email", form.Email, v)
	Phone("phone", form.Phone, v)

	if err := v.Err(); err != nil {
		return ClientInput{}, err
	}

	return ClientInput{
		LastName:     strings.TrimSpace(form.LastName),
		FirstName:    strings.TrimSpace(form.FirstName),
		Activity:     strings.TrimSpace(form.Activity),
		Phone:        strings.TrimSpace(form.Phone),
		Email:        strings.TrimSpace(form.Email),
		Address:      strings.TrimSpace(form.Address),
		Balance:      balance,
		Kind:         strings.TrimSpace(form.Kind),
		TaxRegime:    strings.TrimSpace(form.TaxRegime),
		Agent:        strings.TrimSpace(form.Agent),
		LegalForm:    strings.TrimSpace(form.LegalForm),
		SocialRegime: strings.TrimSpace(form.SocialRegime),
		PaymentMode:  strings.TrimSpace(form.PaymentMode),
		MonthlyFee:   fee,
		Indicator:    strings.TrimSpace(form.Indicator),
		TaxOffice:    strings.TrimSpace(form.TaxOffice),
		Notes:        strings.TrimSpace(form.Notes),
	}, nil
}

// NonNegativeDecimal parses an optional amount. Blank means zero.
func NonNegativeDecimal(field, value string, v Violations) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		v.add(field, CodeInvalidNumber)
		return decimal.Zero
	}
	if d.IsNegative() {
		v.add(field, CodeMustNotBeNegative)
		return decimal.Zero
	}
	if !Money(field, d, v) {
		return decimal.Zero
	}
	return d.Round(moneyScale)
}

// Email checks an optional address for an "@" followed by a dotted domain.
func Email(field, value string, v Violations) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	at := strings.LastIndex(value, "@")
	if at < 0 || !strings.Contains(value[at+1:], ".") {
		v.add(field, CodeInvalidEmail)
	}
}

// Phone checks an optional number keeps at least 8 dialable characters.
func Phone(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		return
	}
	n := 0
	for _, r := range value {
		if (r >= '0' && r <= '9') || strings.ContainsRune("+- ()", r) {
			n++
		}
	}
	if n < 8 {
		v.add(field, CodeInvalidPhone)
	}
}

// Validate re-checks an already typed input.
func (in ClientInput) Validate() error {
	v := make(Violations)
	Required("last_name", in.LastName, v)
	if in.Balance.IsNegative() {
		v.add("balance", CodeMustNotBeNegative)
	} else {
		Money("balance", in.Balance, v)
	}
	if in.MonthlyFee.IsNegative() {
		v.add("monthly_fee", CodeMustNotBeNegative)
	} else {
		Money("monthly_fee", in.MonthlyFee, v)
	}
	return v.Err()
}
