package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cashpoint/internal/models"
)

// AccountRepository defines account persistence. Debit and Credit are
// relative, guarded updates: they can run concurrently on the same row
// without a lost update, and Debit refuses to take a balance negative.
type AccountRepository interface {
	WithTx(tx *gorm.DB) AccountRepository
	Create(account *models.Account) error
	GetByID(id uint) (*models.Account, error)
	GetByEmail(email string) (*models.Account, error)
	GetByMobile(mobile string) (*models.Account, error)
	Debit(id uint, amount float64) error
	Credit(id uint, amount float64) error
	UpdatePinHash(id uint, pinHash string) error
	UpdateProfile(id uint, name, dob, mobile string) error
	MobileInUseByOther(mobile string, selfID uint) (bool, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// WithTx returns a copy of the repository scoped to the given transaction.
func (r *accountRepository) WithTx(tx *gorm.DB) AccountRepository {
	return &accountRepository{db: tx}
}

func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(email string) (*models.Account, error) {
	return r.getBy("email = ?", email)
}

func (r *accountRepository) GetByMobile(mobile string) (*models.Account, error) {
	return r.getBy("mobile = ?", mobile)
}

func (r *accountRepository) getBy(query string, arg string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where(query, arg).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// Debit subtracts amount, guarded by the current balance. RowsAffected == 0
// means the balance check failed (or the account vanished); the caller's
// surrounding transaction then aborts with no partial write.
func (r *accountRepository) Debit(id uint, amount float64) error {
	result := r.db.Model(&models.Account{}).
		Where("id = ? AND balance >= ?", id, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to debit account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

func (r *accountRepository) Credit(id uint, amount float64) error {
	result := r.db.Model(&models.Account{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to credit account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) UpdatePinHash(id uint, pinHash string) error {
	result := r.db.Model(&models.Account{}).Where("id = ?", id).Update("pin_hash", pinHash)
	if result.Error != nil {
		return fmt.Errorf("failed to update pin hash: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) UpdateProfile(id uint, name, dob, mobile string) error {
	result := r.db.Model(&models.Account{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":   name,
		"dob":    dob,
		"mobile": mobile,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) MobileInUseByOther(mobile string, selfID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Account{}).
		Where("mobile = ? AND id <> ?", mobile, selfID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check mobile uniqueness: %w", err)
	}
	return count > 0, nil
}
