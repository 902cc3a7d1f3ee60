// Package export writes clients and payments as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/clientbook/clientbook/internal/id"
	"github.com/clientbook/clientbook/internal/model"
)

// ClientHeader is the CSV header for client exports.
const ClientHeader = "id,last_name,first_name,activity,phone,email,address,balance,kind,tax_regime,agent,legal_form,social_regime,payment_mode,monthly_fee,indicator,tax_office,notes"

const (
	numClientFields = 18
	colClientID     = 0
	colLastName     = 1
	colFirstName    = 2
	colActivity     = 3
	colPhone        = 4
	colEmail        = 5
	colAddress      = 6
	colBalance      = 7
	colKind         = 8
	colTaxRegime    = 9
	colAgent        = 10
	colLegalForm    = 11
	colSocialRegime = 12
	colPaymentMode  = 13
	colMonthlyFee   = 14
	colIndicator    = 15
	colTaxOffice    = 16
	colNotes        = 17
)

// WriteClients writes clients to w, header first.
func WriteClients(w io.Writer, clients []model.Client) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(ClientHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, c := range clients {
		if err := cw.Write(MarshalClient(c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalClient converts a Client to a CSV row.
func MarshalClient(c model.Client) []string {
	row := make([]string, numClientFields)
	row[colClientID] = id.Format(c.ID)
	row[colLastName] = c.LastName
	row[colFirstName] = c.FirstName
	row[colActivity] = c.Activity
	row[colPhone] = c.Phone
	row[colEmail] = c.Email
	row[colAddress] = c.Address
	row[colBalance] = c.Balance.StringFixed(2)
	row[colKind] = c.Kind
	row[colTaxRegime] = c.TaxRegime
	row[colAgent] = c.Agent
	row[colLegalForm] = c.LegalForm
	row[colSocialRegime] = c.SocialRegime
	row[colPaymentMode] = c.PaymentMode
	row[colMonthlyFee] = c.MonthlyFee.StringFixed(2)
	row[colIndicator] = c.Indicator
	row[colTaxOffice] = c.TaxOffice
	row[colNotes] = c.Notes
	return row
}
