package models

import "time"

// ChargeRule prices one operation kind: charge = fixed + chargeable * percentage / 100.
type ChargeRule struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Operation  string    `gorm:"uniqueIndex;not null" json:"operation"`
	Percentage float64   `gorm:"not null;default:0" json:"percentage"`
	Fixed      float64   `gorm:"not null;default:0" json:"fixed"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReservePool is the per-payment-method fee-free allowance. The amount is
// both the limit and what remains; it is consumed with guarded relative
// decrements, never overwritten, and replenished only by an operator.
type ReservePool struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Method    string    `gorm:"uniqueIndex;not null" json:"method"`
	Amount    float64   `gorm:"not null;default:0" json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`
}
