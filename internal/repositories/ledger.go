package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"cashpoint/internal/models"
)

// LedgerRepository appends and reads immutable ledger entries. There is
// deliberately no update or delete: an entry written is written forever.
type LedgerRepository interface {
	WithTx(tx *gorm.DB) LedgerRepository
	Append(entry *models.LedgerEntry) error
	ListByAccount(accountID uint, limit, offset int) ([]models.LedgerEntry, error)
	SumByType(entryType string) (float64, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) WithTx(tx *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: tx}
}

func (r *ledgerRepository) Append(entry *models.LedgerEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

func (r *ledgerRepository) ListByAccount(accountID uint, limit, offset int) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := r.db.
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

func (r *ledgerRepository) SumByType(entryType string) (float64, error) {
	var total float64
	err := r.db.Model(&models.LedgerEntry{}).
		Where("type = ?", entryType).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum ledger entries: %w", err)
	}
	return total, nil
}
