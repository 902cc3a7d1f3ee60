package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar date layout used for payment dates everywhere.
const DateFormat = "2006-01-02"

// Payment is a row in the versement table: one payment recorded against a
// client's balance.
type Payment struct {
	ID         uint            `gorm:"primaryKey"`
	ClientID   uint            `gorm:"index;not null"`
	Amount     decimal.Decimal `gorm:"column:montant;type:decimal(15,2);not null"`
	Kind       string          `gorm:"column:type;size:100;not null"`
	PaidOn     time.Time       `gorm:"column:date_paiement;type:date;not null"`
	FiscalYear int             `gorm:"column:annee_concernee;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Client *Client `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the legacy table name.
func (Payment) TableName() string { return "versement" }

// ClientName returns the owning client's display name when it was loaded.
func (p Payment) ClientName() string {
	if p.Client == nil {
		return ""
	}
	return p.Client.DisplayName()
}
