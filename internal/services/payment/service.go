// Package payment handles settlement claims against external mobile-money
// rails. Deposits credit nothing until an operator confirms them; the
// duplicate guard rejects a second claim on a reference that is already
// pending or completed. Transfers debit up front inside one transaction.
package payment

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cashpoint/internal/errors"
	"cashpoint/internal/models"
	"cashpoint/internal/repositories"
	"cashpoint/internal/services/fee"
	"cashpoint/internal/services/pin"
	"cashpoint/internal/utils"
	"cashpoint/internal/validation"
)

type DepositInput struct {
	Amount               float64
	TxID                 string
	Method               string
	SenderNumber         string
	RecipientAdminNumber string
}

type TransferInput struct {
	Amount          float64
	RecipientNumber string
	Method          string
	Pin             string
}

type Service interface {
	CreateDepositRequest(ctx context.Context, userID uint, in DepositInput) (*models.DepositRequest, error)
	CreateTransferRequest(ctx context.Context, userID uint, in TransferInput) (*models.TransferRequest, error)
	ListDeposits(ctx context.Context, userID uint, limit, offset int) ([]models.DepositRequest, error)
	ListTransfers(ctx context.Context, userID uint, limit, offset int) ([]models.TransferRequest, error)
}

type service struct {
	db       *gorm.DB
	accounts repositories.AccountRepository
	ledger   repositories.LedgerRepository
	config   repositories.FeeConfigRepository
	requests repositories.PaymentRequestRepository
	fees     *fee.Resolver
	hasher   *pin.Hasher
}

func NewService(
	db *gorm.DB,
	accounts repositories.AccountRepository,
	ledger repositories.LedgerRepository,
	config repositories.FeeConfigRepository,
	requests repositories.PaymentRequestRepository,
	fees *fee.Resolver,
	hasher *pin.Hasher,
) Service {
	return &service{
		db:       db,
		accounts: accounts,
		ledger:   ledger,
		config:   config,
		requests: requests,
		fees:     fees,
		hasher:   hasher,
	}
}

// CreateDepositRequest files a claim that the user paid TxID on an
// external rail. The duplicate check is a read-then-decide step before
// the write: two racing claims with the same reference can both pass it,
// and the operator review catches the residue.
func (s *service) CreateDepositRequest(ctx context.Context, userID uint, in DepositInput) (*models.DepositRequest, error) {
	if in.Amount <= 0 {
		return nil, errors.ErrInvalidAmount
	}
	in.TxID = strings.TrimSpace(in.TxID)
	if in.TxID == "" {
		return nil, errors.ErrMissingReference
	}

	inUse, err := s.requests.DepositReferenceInUse(in.TxID)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, errors.ErrDuplicateReference
	}

	var req *models.DepositRequest
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ledger := s.ledger.WithTx(tx)
		requests := s.requests.WithTx(tx)

		if _, err := s.accounts.WithTx(tx).GetByID(userID); err != nil {
			if goerrors.Is(err, repositories.ErrAccountNotFound) {
				return errors.ErrAccountNotFound
			}
			return err
		}

		entry := &models.LedgerEntry{
			AccountID:     userID,
			Type:          models.EntryTypeDeposit,
			Amount:        in.Amount,
			Description:   fmt.Sprintf("Deposit via %s", strings.ToUpper(in.Method)),
			Status:        models.EntryStatusPending,
			ReferenceCode: utils.NewReferenceCode(),
		}
		if err := ledger.Append(entry); err != nil {
			return err
		}

		req = &models.DepositRequest{
			RequestID:            uuid.NewString(),
			UserID:               userID,
			Amount:               in.Amount,
			TxID:                 in.TxID,
			Method:               in.Method,
			SenderNumber:         in.SenderNumber,
			RecipientAdminNumber: in.RecipientAdminNumber,
			Status:               models.RequestStatusPending,
			LedgerEntryID:        entry.ID,
		}
		return requests.CreateDeposit(req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// CreateTransferRequest debits the user (amount + charge) immediately and
// records a pending payout for an operator to settle. The reserve pool
// for the method offsets the chargeable base; consuming it is guarded, so
// a pool drained by a concurrent transfer aborts the whole unit.
func (s *service) CreateTransferRequest(ctx context.Context, userID uint, in TransferInput) (*models.TransferRequest, error) {
	if in.Amount <= 0 {
		return nil, errors.ErrInvalidAmount
	}
	if !validation.IsPin(in.Pin) {
		return nil, errors.ErrInvalidPin
	}

	var req *models.TransferRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accounts := s.accounts.WithTx(tx)
		ledger := s.ledger.WithTx(tx)
		config := s.config.WithTx(tx)
		requests := s.requests.WithTx(tx)

		account, err := accounts.GetByID(userID)
		if err != nil {
			if goerrors.Is(err, repositories.ErrAccountNotFound) {
				return errors.ErrAccountNotFound
			}
			return err
		}
		if !account.HasPin() {
			return errors.ErrPinNotSet
		}
		if !s.hasher.Verify(in.Pin, account.PinHash) {
			return errors.ErrPinMismatch
		}

		quote, err := s.fees.Quote(config, fee.OperationTransfer, in.Method, in.Amount)
		if err != nil {
			return err
		}
		if account.Balance < quote.TotalDeduction {
			return errors.ErrInsufficientBalance
		}

		if err := accounts.Debit(userID, quote.TotalDeduction); err != nil {
			if goerrors.Is(err, repositories.ErrInsufficientBalance) {
				return errors.ErrInsufficientBalance
			}
			return err
		}
		if quote.ReserveUsed > 0 {
			if err := config.ConsumeReserve(in.Method, quote.ReserveUsed); err != nil {
				if goerrors.Is(err, repositories.ErrReserveExhausted) {
					return errors.ErrReserveConflict
				}
				return err
			}
		}

		entry := &models.LedgerEntry{
			AccountID:     userID,
			Type:          models.EntryTypeTransfer,
			Amount:        in.Amount,
			Charge:        quote.Charge,
			Description:   fmt.Sprintf("Transfer to %s (%s)", strings.ToUpper(in.Method), in.RecipientNumber),
			Status:        models.EntryStatusPending,
			ReferenceCode: utils.NewReferenceCode(),
		}
		if err := ledger.Append(entry); err != nil {
			return err
		}

		req = &models.TransferRequest{
			RequestID:       uuid.NewString(),
			UserID:          userID,
			Amount:          in.Amount,
			RecipientNumber: in.RecipientNumber,
			Method:          in.Method,
			Charge:          quote.Charge,
			ReserveUsed:     quote.ReserveUsed,
			Status:          models.RequestStatusPending,
			LedgerEntryID:   entry.ID,
		}
		return requests.CreateTransfer(req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListDeposits(ctx context.Context, userID uint, limit, offset int) ([]models.DepositRequest, error) {
	return s.requests.ListDepositsByUser(userID, limit, offset)
}

func (s *service) ListTransfers(ctx context.Context, userID uint, limit, offset int) ([]models.TransferRequest, error) {
	return s.requests.ListTransfersByUser(userID, limit, offset)
}
