package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Commission is an amount owed to a referring partner or customer for a
// referred account's paid order. The unique index on OrderID is what makes
// a retried payment webhook a no-op rather than a double credit.
type Commission struct {
	gorm.Model
	OrderID       uint            `gorm:"uniqueIndex;not null" json:"order_id"`
	RecipientID   uint            `gorm:"not null" json:"recipient_id"`
	RecipientType string          `gorm:"not null" json:"recipient_type"` // "PARTNER" or "CUSTOMER"
	RatePercent   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"rate_percent"`
	AmountPence   int64           `gorm:"not null" json:"amount_pence"`
	Initial       bool            `gorm:"not null" json:"initial"` // first paid order of the referred account
	Paid          bool            `gorm:"default:false" json:"paid"`
	PaidAt        *time.Time      `json:"paid_at"`
}
