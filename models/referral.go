package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReferralStatusInvited  = "invited"
	ReferralStatusAccessed = "accessed"
	ReferralStatusAccepted = "accepted"
	ReferralStatusApplied  = "applied"
	ReferralStatusExpired  = "expired"
)

// Referral tracks the lifecycle of one referral attempt from a specific
// code: invited -> accessed -> accepted -> applied, or expired.
type Referral struct {
	gorm.Model
	Code         string `gorm:"unique;not null" json:"code"`
	ReferrerID   uint   `gorm:"column:referrer_id;not null" json:"referrer_id"`
	ReferralType string `gorm:"column:referral_type;not null" json:"referral_type"`

	ReferredUserID *uint  `gorm:"column:referred_user_id" json:"referred_user_id"`
	Status         string `gorm:"not null;default:invited" json:"status"`

	// ScanCount is only ever updated via an atomic
	// UPDATE ... SET scan_count = scan_count + 1.
	ScanCount uint      `gorm:"not null;default:0" json:"scan_count"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
