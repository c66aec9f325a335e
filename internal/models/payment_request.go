package models

import "time"

// Settlement request statuses
const (
	RequestStatusPending   = "pending"
	RequestStatusCompleted = "completed"
	RequestStatusRejected  = "rejected"
)

// DepositRequest is an inbound settlement claim: the user says they paid
// TxID on an external rail and asks to be credited. No balance changes
// until an operator confirms it. At most one request per TxID may be
// pending or completed at a time.
type DepositRequest struct {
	ID                   uint      `gorm:"primarykey" json:"id"`
	RequestID            string    `gorm:"uniqueIndex;not null" json:"request_id"`
	UserID               uint      `gorm:"index;not null" json:"user_id"`
	Amount               float64   `gorm:"not null" json:"amount"`
	TxID                 string    `gorm:"index;not null" json:"tx_id"` // caller-supplied external reference
	Method               string    `gorm:"not null" json:"method"`
	SenderNumber         string    `json:"sender_number"`
	RecipientAdminNumber string    `json:"recipient_admin_number,omitempty"`
	Status               string    `gorm:"not null;default:'pending'" json:"status"`
	LedgerEntryID        uint      `json:"ledger_entry_id"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TransferRequest is an outbound settlement claim: the user's balance is
// debited up front (amount + charge) and an operator later pays the
// recipient number on the external rail.
type TransferRequest struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	RequestID       string    `gorm:"uniqueIndex;not null" json:"request_id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	Amount          float64   `gorm:"not null" json:"amount"`
	RecipientNumber string    `gorm:"not null" json:"recipient_number"`
	Method          string    `gorm:"not null" json:"method"`
	Charge          float64   `gorm:"default:0" json:"charge"`
	ReserveUsed     float64   `gorm:"default:0" json:"reserve_used"`
	Status          string    `gorm:"not null;default:'pending'" json:"status"`
	LedgerEntryID   uint      `json:"ledger_entry_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
