package models

import "time"

// Tournament post statuses
const (
	TournamentStatusDraft             = "draft"
	TournamentStatusActive            = "active"
	TournamentStatusPrizesDistributed = "prizes_distributed"
)

// TournamentPost is an admin-curated tournament users can buy into.
type TournamentPost struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Status        string    `gorm:"not null;default:'draft'" json:"status"`
	EntryFee      float64   `gorm:"not null" json:"entry_fee"`
	MaxPlayers    int       `gorm:"not null" json:"max_players"`
	PendingPrizes JSON      `gorm:"type:jsonb" json:"pending_prizes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Participant records one account's membership in a tournament. The
// (tournament, account) unique key is what guarantees at most one join per
// user, independent of the capacity count.
type Participant struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	TournamentID  uint      `gorm:"uniqueIndex:idx_tournament_account;not null" json:"tournament_id"`
	AccountID     uint      `gorm:"uniqueIndex:idx_tournament_account;not null" json:"account_id"`
	EntryFee      float64   `gorm:"not null" json:"entry_fee"`
	Note          string    `json:"note,omitempty"`
	ScreenshotURL string    `json:"screenshot_url,omitempty"`
	JoinedAt      time.Time `json:"joined_at"`
}
