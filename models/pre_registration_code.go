package models

import "gorm.io/gorm"

// PreRegistrationCode is a code reserved ahead of a partner or customer
// signup, optionally already assigned to a partner.
type PreRegistrationCode struct {
	gorm.Model
	Code      string `gorm:"unique;not null" json:"code"`
	PartnerID *uint  `gorm:"column:partner_id" json:"partner_id"`
	Claimed   bool   `gorm:"default:false" json:"claimed"`
}
