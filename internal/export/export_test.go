package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientbook/clientbook/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func readAll(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteClients(t *testing.T) {
	clients := []model.Client{
		{
			ID:         3,
			LastName:   "Benali",
			FirstName:  "Karim",
			Phone:      "0555 12 34 56",
			Address:    "12, rue Didouche Mourad, Alger",
			Balance:    dec("1234.5"),
			MonthlyFee: dec("15000"),
			TaxRegime:  "IFU",
			Notes:      "relance \"urgente\"",
		},
		{ID: 4, LastName: "Kaci"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteClients(&buf, clients))
	assert.True(t, strings.HasPrefix(buf.String(), ClientHeader+"\n"))

	records := readAll(t, &buf)
	require.Len(t, records, 3)
	assert.Len(t, records[0], numClientFields)

	row := records[1]
	assert.Equal(t, "3", row[colClientID])
	assert.Equal(t, "Benali", row[colLastName])
	assert.Equal(t, "12, rue Didouche Mourad, Alger", row[colAddress])
	assert.Equal(t, "1234.50", row[colBalance])
	assert.Equal(t, "15000.00", row[colMonthlyFee])
	assert.Equal(t, "IFU", row[colTaxRegime])
	assert.Equal(t, "relance \"urgente\"", row[colNotes])

	assert.Equal(t, "0.00", records[2][colBalance])
	assert.Equal(t, "", records[2][colFirstName])
}

func TestWriteClients_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteClients(&buf, nil))
	assert.Equal(t, ClientHeader+"\n", buf.String())
}

func TestWritePayments(t *testing.T) {
	client := &model.Client{ID: 9, LastName: "Haddad", FirstName: "Samir"}
	payments := []model.Payment{
		{
			ID:         21,
			ClientID:   9,
			Amount:     dec("75"),
			Kind:       "virement",
			PaidOn:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			FiscalYear: 2025,
			Client:     client,
		},
		{ID: 22, ClientID: 10, Amount: dec("0.5"), Kind: "espèces", PaidOn: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), FiscalYear: 2026},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePayments(&buf, payments))

	records := readAll(t, &buf)
	require.Len(t, records, 3)
	assert.Equal(t, strings.Split(PaymentHeader, ","), records[0])
	assert.Equal(t, []string{"21", "9", "Haddad Samir", "75.00", "virement", "2026-02-01", "2025"}, records[1])
	assert.Equal(t, []string{"22", "10", "", "0.50", "espèces", "2026-03-09", "2026"}, records[2])
}
