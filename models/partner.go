package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Partner struct {
	gorm.Model
	BusinessName string `gorm:"not null" json:"business_name"`
	ContactEmail string `gorm:"unique;not null" json:"contact_email"`
	LogoURL      string `json:"logo_url"`
	ReferralCode string `gorm:"unique;not null" json:"referral_code"`

	// Commission rates are percentages, e.g. 10.00 meaning 10%. Nil falls
	// back to the default rate at commission time.
	InitialCommissionRate  *decimal.Decimal `gorm:"type:decimal(5,2)" json:"initial_commission_rate"`
	LifetimeCommissionRate *decimal.Decimal `gorm:"type:decimal(5,2)" json:"lifetime_commission_rate"`

	Approved bool `gorm:"default:false" json:"approved"`
	Active   bool `gorm:"default:true" json:"active"`
}
