package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/clientbook/clientbook/internal/id"
	"github.com/clientbook/clientbook/internal/model"
)

// PaymentHeader is the CSV header for payment exports.
const PaymentHeader = "id,client_id,client_name,amount,kind,paid_on,fiscal_year"

const (
	numPaymentFields = 7
	colPaymentID     = 0
	colPayClientID   = 1
	colClientName    = 2
	colAmount        = 3
	colPayKind       = 4
	colPaidOn        = 5
	colFiscalYear    = 6
)

// WritePayments writes payments to w, header first. Client names come from
// the preloaded Client and are empty when it was not loaded.
func WritePayments(w io.Writer, payments []model.Payment) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(PaymentHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, p := range payments {
		if err := cw.Write(MarshalPayment(p)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalPayment converts a Payment to a CSV row.
func MarshalPayment(p model.Payment) []string {
	row := make([]string, numPaymentFields)
	row[colPaymentID] = id.Format(p.ID)
	row[colPayClientID] = id.Format(p.ClientID)
	row[colClientName] = p.ClientName()
	row[colAmount] = p.Amount.StringFixed(2)
	row[colPayKind] = p.Kind
	row[colPaidOn] = p.PaidOn.Format(model.DateFormat)
	row[colFiscalYear] = strconv.Itoa(p.FiscalYear)
	return row
}
