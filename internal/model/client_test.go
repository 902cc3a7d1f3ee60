package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestClientDisplayName(t *testing.T) {
	tests := []struct {
		client Client
		want   string
	}{
		{Client{LastName: "Benali", FirstName: "Karim"}, "Benali Karim"},
		{Client{LastName: "SARL Atlas"}, "SARL Atlas"},
		{Client{}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.client.DisplayName())
	}
}

func TestApplyPaymentDelta(t *testing.T) {
	c := Client{Balance: dec("300.00")}

	c.ApplyPaymentDelta(dec("50.00"))
	assert.True(t, c.Balance.Equal(dec("250.00")), "got %s", c.Balance)

	c.ApplyPaymentDelta(dec("-75.00"))
	assert.True(t, c.Balance.Equal(dec("325.00")), "got %s", c.Balance)
}

func TestApplyPaymentDelta_NoDrift(t *testing.T) {
	c := Client{Balance: dec("100.00")}
	for i := 0; i < 1000; i++ {
		c.ApplyPaymentDelta(dec("0.10"))
		c.ApplyPaymentDelta(dec("-0.10"))
	}
	assert.Equal(t, "100.00", c.Balance.StringFixed(2))
	assert.True(t, c.Balance.Equal(dec("100")))
}

func TestCanCover(t *testing.T) {
	c := Client{Balance: dec("500.00")}
	assert.True(t, c.CanCover(dec("499.99")))
	assert.True(t, c.CanCover(dec("500.00")), "equal amount is allowed")
	assert.False(t, c.CanCover(dec("500.01")))
	assert.True(t, c.CanCover(dec("-20")), "a reduction always fits")
}

func TestSetBalance(t *testing.T) {
	c := Client{Balance: dec("10")}
	c.SetBalance(dec("1234.56"))
	assert.Equal(t, "1234.56", c.Balance.StringFixed(2))
}

func TestPaymentClientName(t *testing.T) {
	p := Payment{}
	assert.Equal(t, "", p.ClientName())

	p.Client = &Client{LastName: "Haddad", FirstName: "Sara"}
	assert.Equal(t, "Haddad Sara", p.ClientName())
}
