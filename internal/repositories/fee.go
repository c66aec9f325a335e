package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cashpoint/internal/models"
)

// FeeConfigRepository reads and maintains the fee configuration. Reads that
// feed a balance mutation must happen through a WithTx copy inside the same
// transaction, never against stale data from outside it.
type FeeConfigRepository interface {
	WithTx(tx *gorm.DB) FeeConfigRepository
	GetChargeRule(operation string) (*models.ChargeRule, error)
	GetReserve(method string) (float64, error)
	ConsumeReserve(method string, amount float64) error
	SetChargeRule(rule *models.ChargeRule) error
	AddReserve(method string, amount float64) error
}

type feeConfigRepository struct {
	db *gorm.DB
}

func NewFeeConfigRepository(db *gorm.DB) FeeConfigRepository {
	return &feeConfigRepository{db: db}
}

func (r *feeConfigRepository) WithTx(tx *gorm.DB) FeeConfigRepository {
	return &feeConfigRepository{db: tx}
}

func (r *feeConfigRepository) GetChargeRule(operation string) (*models.ChargeRule, error) {
	var rule models.ChargeRule
	if err := r.db.Where("operation = ?", operation).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChargeRuleNotFound
		}
		return nil, fmt.Errorf("failed to get charge rule: %w", err)
	}
	return &rule, nil
}

// GetReserve returns the remaining pool for a method, zero when none is
// configured.
func (r *feeConfigRepository) GetReserve(method string) (float64, error) {
	var pool models.ReservePool
	if err := r.db.Where("method = ?", method).First(&pool).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get reserve pool: %w", err)
	}
	return pool.Amount, nil
}

// ConsumeReserve decrements the pool, guarded so it can never go negative.
// RowsAffected == 0 means a concurrent transfer drained the pool after it
// was read; the surrounding transaction aborts and the caller may retry.
func (r *feeConfigRepository) ConsumeReserve(method string, amount float64) error {
	result := r.db.Model(&models.ReservePool{}).
		Where("method = ? AND amount >= ?", method, amount).
		Update("amount", gorm.Expr("amount - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to consume reserve: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReserveExhausted
	}
	return nil
}

func (r *feeConfigRepository) SetChargeRule(rule *models.ChargeRule) error {
	var existing models.ChargeRule
	err := r.db.Where("operation = ?", rule.Operation).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.Create(rule).Error; err != nil {
			return fmt.Errorf("failed to create charge rule: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get charge rule: %w", err)
	}
	existing.Percentage = rule.Percentage
	existing.Fixed = rule.Fixed
	if err := r.db.Save(&existing).Error; err != nil {
		return fmt.Errorf("failed to update charge rule: %w", err)
	}
	return nil
}

// AddReserve replenishes (or seeds) a pool with a relative increment.
func (r *feeConfigRepository) AddReserve(method string, amount float64) error {
	result := r.db.Model(&models.ReservePool{}).
		Where("method = ?", method).
		Update("amount", gorm.Expr("amount + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to add reserve: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		pool := &models.ReservePool{Method: method, Amount: amount}
		if err := r.db.Create(pool).Error; err != nil {
			return fmt.Errorf("failed to create reserve pool: %w", err)
		}
	}
	return nil
}
