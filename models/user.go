package models

import (
	"gorm.io/gorm"
)

const (
	ReferralTypePartner  = "PARTNER"
	ReferralTypeCustomer = "CUSTOMER"
)

type User struct {
	gorm.Model
	Email       string `gorm:"unique;not null" json:"email"`
	Password    string `gorm:"not null" json:"-"`
	DisplayName string `json:"display_name"`
	UserType    string `gorm:"not null;default:customer" json:"user_type"` // e.g., "customer", "admin"

	PersonalReferralCode *string `gorm:"unique" json:"personal_referral_code"`
	// ReferrerID holds the referring entity's own primary key (users.id or
	// partners.id depending on ReferralType), never a profile surrogate.
	ReferrerID       *uint   `gorm:"column:referrer_id" json:"referrer_id"`
	ReferralType     *string `gorm:"column:referral_type" json:"referral_type"`
	ReferralCodeUsed *string `gorm:"column:referral_code_used" json:"referral_code_used"`
}
