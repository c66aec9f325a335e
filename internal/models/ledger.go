package models

import "time"

// Ledger entry types
const (
	EntryTypeDeposit         = "deposit"
	EntryTypeSend            = "send"
	EntryTypeReceive         = "receive"
	EntryTypeTransfer        = "transfer"
	EntryTypeTournamentJoin  = "tournament_join"
	EntryTypeTournamentPrize = "tournament_prize"
)

// Ledger entry statuses
const (
	EntryStatusPending   = "pending"
	EntryStatusCompleted = "completed"
	EntryStatusReceived  = "received"
	EntryStatusFailed    = "failed"
)

// LedgerEntry is the immutable record of one balance-affecting event on an
// account. Entries are created exactly once per causal event and never
// updated afterwards; a later entry supersedes, it does not rewrite.
type LedgerEntry struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	AccountID     uint      `gorm:"index;not null" json:"account_id"`
	Type          string    `gorm:"not null" json:"type"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Charge        float64   `gorm:"default:0" json:"charge"`
	Description   string    `json:"description"`
	Status        string    `gorm:"not null;default:'pending'" json:"status"`
	ReferenceCode string    `gorm:"index" json:"reference_code"`
	Metadata      JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
