package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"cashpoint/internal/models"
)

// PaymentRequestRepository persists external settlement claims.
type PaymentRequestRepository interface {
	WithTx(tx *gorm.DB) PaymentRequestRepository
	CreateDeposit(req *models.DepositRequest) error
	CreateTransfer(req *models.TransferRequest) error
	DepositReferenceInUse(txID string) (bool, error)
	ListDepositsByUser(userID uint, limit, offset int) ([]models.DepositRequest, error)
	ListTransfersByUser(userID uint, limit, offset int) ([]models.TransferRequest, error)
}

type paymentRequestRepository struct {
	db *gorm.DB
}

func NewPaymentRequestRepository(db *gorm.DB) PaymentRequestRepository {
	return &paymentRequestRepository{db: db}
}

func (r *paymentRequestRepository) WithTx(tx *gorm.DB) PaymentRequestRepository {
	return &paymentRequestRepository{db: tx}
}

func (r *paymentRequestRepository) CreateDeposit(req *models.DepositRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		return fmt.Errorf("failed to create deposit request: %w", err)
	}
	return nil
}

func (r *paymentRequestRepository) CreateTransfer(req *models.TransferRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		return fmt.Errorf("failed to create transfer request: %w", err)
	}
	return nil
}

// DepositReferenceInUse reports whether any deposit claim with this
// external reference is still pending or already completed. A rejected
// claim releases its reference for reuse.
func (r *paymentRequestRepository) DepositReferenceInUse(txID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.DepositRequest{}).
		Where("tx_id = ? AND status IN ?", txID, []string{models.RequestStatusPending, models.RequestStatusCompleted}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check deposit reference: %w", err)
	}
	return count > 0, nil
}

func (r *paymentRequestRepository) ListDepositsByUser(userID uint, limit, offset int) ([]models.DepositRequest, error) {
	var reqs []models.DepositRequest
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list deposit requests: %w", err)
	}
	return reqs, nil
}

func (r *paymentRequestRepository) ListTransfersByUser(userID uint, limit, offset int) ([]models.TransferRequest, error) {
	var reqs []models.TransferRequest
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transfer requests: %w", err)
	}
	return reqs, nil
}
