// Package wallet implements the core money-movement engine. Every
// balance mutation runs inside one database transaction: all reads
// first, then the guarded balance updates, then the ledger appends.
// Any failure rolls the whole unit back, so a PIN mismatch or an
// insufficient balance leaves no partial write behind.
package wallet

import (
	"context"
	goerrors "errors"
	"fmt"

	"gorm.io/gorm"

	"cashpoint/internal/errors"
	"cashpoint/internal/models"
	"cashpoint/internal/repositories"
	"cashpoint/internal/services/fee"
	"cashpoint/internal/services/pin"
	"cashpoint/internal/utils"
	"cashpoint/internal/validation"
)

// DefaultHistoryLimit caps the ledger slice returned with a wallet read.
const DefaultHistoryLimit = 20

// Cache is the account snapshot cache the wallet consults on reads and
// invalidates after writes. A nil-safe noop implementation is provided
// for deployments without Redis.
type Cache interface {
	GetAccount(ctx context.Context, id uint) (*models.Account, error)
	SetAccount(ctx context.Context, account *models.Account) error
	InvalidateAccount(ctx context.Context, id uint) error
}

// NoopCache satisfies Cache without storing anything.
type NoopCache struct{}

func (NoopCache) GetAccount(ctx context.Context, id uint) (*models.Account, error) {
	return nil, goerrors.New("cache disabled")
}
func (NoopCache) SetAccount(ctx context.Context, account *models.Account) error { return nil }
func (NoopCache) InvalidateAccount(ctx context.Context, id uint) error          { return nil }

type SendMoneyInput struct {
	RecipientID uint
	Amount      float64
	Pin         string
}

// Receipt summarizes a completed send for the caller.
type Receipt struct {
	ReferenceCode string  `json:"referenceCode"`
	Amount        float64 `json:"amount"`
	Charge        float64 `json:"charge"`
	NewBalance    float64 `json:"newBalance"`
	RecipientName string  `json:"recipientName"`
}

// Snapshot is the wallet read model: the current balance plus a page of
// recent ledger entries.
type Snapshot struct {
	Account *models.Account      `json:"account"`
	History []models.LedgerEntry `json:"history"`
}

type Service interface {
	SendMoney(ctx context.Context, senderID uint, in SendMoneyInput) (*Receipt, error)
	GetWallet(ctx context.Context, accountID uint) (*Snapshot, error)
}

type service struct {
	db       *gorm.DB
	accounts repositories.AccountRepository
	ledger   repositories.LedgerRepository
	config   repositories.FeeConfigRepository
	fees     *fee.Resolver
	hasher   *pin.Hasher
	cache    Cache
}

func NewService(
	db *gorm.DB,
	accounts repositories.AccountRepository,
	ledger repositories.LedgerRepository,
	config repositories.FeeConfigRepository,
	fees *fee.Resolver,
	hasher *pin.Hasher,
	cache Cache,
) Service {
	if cache == nil {
		cache = NoopCache{}
	}
	return &service{
		db:       db,
		accounts: accounts,
		ledger:   ledger,
		config:   config,
		fees:     fees,
		hasher:   hasher,
		cache:    cache,
	}
}

// SendMoney moves amount from sender to recipient, deducting the charge
// from the sender on top of the amount. Two ledger entries sharing one
// reference code record the event, one per side.
func (s *service) SendMoney(ctx context.Context, senderID uint, in SendMoneyInput) (*Receipt, error) {
	if in.Amount <= 0 {
		return nil, errors.ErrInvalidAmount
	}
	if !validation.IsPin(in.Pin) {
		return nil, errors.ErrInvalidPin
	}
	if in.RecipientID == senderID {
		return nil, errors.ErrSelfTransfer
	}

	var receipt *Receipt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accounts := s.accounts.WithTx(tx)
		ledger := s.ledger.WithTx(tx)
		config := s.config.WithTx(tx)

		sender, err := accounts.GetByID(senderID)
		if err != nil {
			return mapAccountErr(err, errors.ErrAccountNotFound)
		}
		recipient, err := accounts.GetByID(in.RecipientID)
		if err != nil {
			return mapAccountErr(err, errors.ErrRecipientNotFound)
		}

		if !sender.HasPin() {
			return errors.ErrPinNotSet
		}
		if !s.hasher.Verify(in.Pin, sender.PinHash) {
			return errors.ErrPinMismatch
		}

		quote, err := s.fees.Quote(config, fee.OperationSend, "", in.Amount)
		if err != nil {
			return err
		}
		if sender.Balance < quote.TotalDeduction {
			return errors.ErrInsufficientBalance
		}

		if err := accounts.Debit(senderID, quote.TotalDeduction); err != nil {
			return mapBalanceErr(err)
		}
		if err := accounts.Credit(in.RecipientID, in.Amount); err != nil {
			return mapAccountErr(err, errors.ErrRecipientNotFound)
		}

		refCode := utils.NewReferenceCode()
		if err := ledger.Append(&models.LedgerEntry{
			AccountID:     senderID,
			Type:          models.EntryTypeSend,
			Amount:        in.Amount,
			Charge:        quote.Charge,
			Description:   fmt.Sprintf("Send money to %s", recipient.Name),
			Status:        models.EntryStatusCompleted,
			ReferenceCode: refCode,
		}); err != nil {
			return err
		}
		if err := ledger.Append(&models.LedgerEntry{
			AccountID:     in.RecipientID,
			Type:          models.EntryTypeReceive,
			Amount:        in.Amount,
			Description:   fmt.Sprintf("Receive money from %s", sender.Name),
			Status:        models.EntryStatusReceived,
			ReferenceCode: refCode,
		}); err != nil {
			return err
		}

		receipt = &Receipt{
			ReferenceCode: refCode,
			Amount:        in.Amount,
			Charge:        quote.Charge,
			NewBalance:    sender.Balance - quote.TotalDeduction,
			RecipientName: recipient.Name,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateAccount(ctx, senderID)
	s.cache.InvalidateAccount(ctx, in.RecipientID)
	return receipt, nil
}

// GetWallet returns the balance and recent history. The account snapshot
// may come from cache; the history always comes from the database.
func (s *service) GetWallet(ctx context.Context, accountID uint) (*Snapshot, error) {
	account, err := s.cache.GetAccount(ctx, accountID)
	if err != nil {
		account, err = s.accounts.GetByID(accountID)
		if err != nil {
			return nil, mapAccountErr(err, errors.ErrAccountNotFound)
		}
		s.cache.SetAccount(ctx, account)
	}

	history, err := s.ledger.ListByAccount(accountID, DefaultHistoryLimit, 0)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Account: account, History: history}, nil
}

func mapAccountErr(err error, notFound error) error {
	if goerrors.Is(err, repositories.ErrAccountNotFound) {
		return notFound
	}
	return err
}

func mapBalanceErr(err error) error {
	if goerrors.Is(err, repositories.ErrInsufficientBalance) {
		return errors.ErrInsufficientBalance
	}
	return err
}
