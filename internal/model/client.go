package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ClientSort selects the ordering of client listings.
type ClientSort string

const (
	SortByName    ClientSort = "name"
	SortByBalance ClientSort = "balance"
	SortByCreated ClientSort = "created"
)

// Client is a row in the clients table.
//
// Balance is the amount the client currently owes. Callers change it through
// SetBalance (full client edit) or ApplyPaymentDelta (payment reconciliation)
// and never assign the field directly.
type Client struct {
	ID           uint            `gorm:"primaryKey"`
	LastName     string          `gorm:"column:nom;size:255;not null;index:idx_client_natural_key"`
	FirstName    string          `gorm:"column:prenom;size:255;index:idx_client_natural_key"`
	Activity     string          `gorm:"column:activite;size:255"`
	Phone        string          `gorm:"size:50;index:idx_client_natural_key"`
	Email        string          `gorm:"size:255"`
	Address      string          `gorm:"size:500"`
	Balance      decimal.Decimal `gorm:"column:montant;type:decimal(15,2);not null;default:0"`
	Kind         string          `gorm:"column:type;size:100"`
	TaxRegime    string          `gorm:"column:regime_fiscal;size:100"`
	Agent        string          `gorm:"column:agent_responsable;size:255"`
	LegalForm    string          `gorm:"column:forme_juridique;size:100"`
	SocialRegime string          `gorm:"column:regime_cnas;size:100"`
	PaymentMode  string          `gorm:"column:mode_paiement;size:100"`
	MonthlyFee   decimal.Decimal `gorm:"column:honoraires_mois;type:decimal(15,2);not null;default:0"`
	Indicator    string          `gorm:"column:indicateur;size:100"`
	TaxOffice    string          `gorm:"column:recette_impots;size:255"`
	Notes        string          `gorm:"column:observation;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Payments []Payment `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the legacy table name.
func (Client) TableName() string { return "clients" }

// DisplayName returns "LastName FirstName", trimmed when the first name is empty.
func (c Client) DisplayName() string {
	return strings.TrimSpace(c.LastName + " " + c.FirstName)
}

// ApplyPaymentDelta lowers the balance by delta. A negative delta (a payment
// reduced or removed) raises it.
func (c *Client) ApplyPaymentDelta(delta decimal.Decimal) {
	c.Balance = c.Balance.Sub(delta)
}

// SetBalance overwrites the balance. Only the full client edit uses it.
func (c *Client) SetBalance(balance decimal.Decimal) {
	c.Balance = balance
}

// CanCover reports whether the balance can absorb a payment (or payment
// increase) of amount. Equality is allowed.
func (c Client) CanCover(amount decimal.Decimal) bool {
	return !amount.GreaterThan(c.Balance)
}

// ClientOption is an id/display-name pair for pickers.
type ClientOption struct {
	ID   uint
	Name string
}
