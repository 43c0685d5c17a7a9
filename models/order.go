package models

import "gorm.io/gorm"

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusSubmitted = "submitted_for_fulfillment"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	gorm.Model
	PublicID      string `gorm:"unique;not null" json:"public_id"`
	UserID        uint   `gorm:"not null" json:"user_id"`
	CustomerEmail string `gorm:"not null" json:"customer_email"`
	SubtotalPence int64  `gorm:"not null" json:"subtotal_pence"`
	Currency      string `gorm:"not null;default:gbp" json:"currency"`
	Status        string `gorm:"not null;default:pending" json:"status"`

	StripePaymentIntentID string `gorm:"column:stripe_payment_intent_id" json:"-"`

	Items []OrderItem `json:"items"`
}

type OrderItem struct {
	gorm.Model
	OrderID        uint   `gorm:"not null" json:"order_id"`
	PetName        string `gorm:"not null" json:"pet_name"`
	StyleName      string `gorm:"not null" json:"style_name"`
	ArtworkURL     string `json:"artwork_url"`
	Quantity       int    `gorm:"not null;default:1" json:"quantity"`
	UnitPricePence int64  `gorm:"not null" json:"unit_price_pence"`
}
