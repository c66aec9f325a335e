package models

import "time"

// Account is the single money-holding record per user. Balance is only
// mutated inside a database transaction by the wallet, payment and
// tournament services; accounts are never deleted by the core.
type Account struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Mobile    string    `gorm:"uniqueIndex;not null" json:"mobile"`
	DOB       string    `json:"dob,omitempty"`
	Password  string    `gorm:"not null" json:"-"`
	PinHash   string    `gorm:"default:''" json:"-"` // empty = PIN not configured
	Balance   float64   `gorm:"not null;default:0" json:"balance"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPin reports whether a transaction PIN has been configured.
func (a *Account) HasPin() bool { return a.PinHash != "" }
