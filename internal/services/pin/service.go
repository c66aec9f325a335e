package pin

import (
	"context"
	goerrors "errors"
	"time"

	"cashpoint/internal/errors"
	"cashpoint/internal/repositories"
)

// MaxAuthAge is how recent the interactive login must be for a PIN reset.
const MaxAuthAge = 5 * time.Minute

// Service manages the PIN lifecycle on an account.
type Service interface {
	Setup(ctx context.Context, userID uint, newPin string) error
	Change(ctx context.Context, userID uint, oldPin, newPin string) error
	Reset(ctx context.Context, userID uint, newPin string, authenticatedAt time.Time) error
}

type service struct {
	accounts repositories.AccountRepository
	hasher   *Hasher
}

func NewService(accounts repositories.AccountRepository, hasher *Hasher) Service {
	if accounts == nil {
		panic("accounts repository is required")
	}
	if hasher == nil {
		panic("hasher is required")
	}
	return &service{accounts: accounts, hasher: hasher}
}

// Setup configures a PIN for the first time. Accounts that already have
// one must use Change.
func (s *service) Setup(ctx context.Context, userID uint, newPin string) error {
	account, err := s.accounts.GetByID(userID)
	if err != nil {
		return mapAccountErr(err)
	}
	if account.HasPin() {
		return errors.ErrPinAlreadySet
	}
	hash, err := s.hasher.Hash(newPin)
	if err != nil {
		return err
	}
	return s.accounts.UpdatePinHash(userID, hash)
}

func (s *service) Change(ctx context.Context, userID uint, oldPin, newPin string) error {
	account, err := s.accounts.GetByID(userID)
	if err != nil {
		return mapAccountErr(err)
	}
	if !account.HasPin() {
		return errors.ErrPinNotSet
	}
	if !s.hasher.Verify(oldPin, account.PinHash) {
		return errors.ErrPinMismatch
	}
	hash, err := s.hasher.Hash(newPin)
	if err != nil {
		return err
	}
	return s.accounts.UpdatePinHash(userID, hash)
}

// Reset replaces a forgotten PIN without the old one. It requires the
// caller's interactive authentication to be at most MaxAuthAge old.
func (s *service) Reset(ctx context.Context, userID uint, newPin string, authenticatedAt time.Time) error {
	if time.Since(authenticatedAt) > MaxAuthAge {
		return errors.ErrStaleAuth
	}
	if _, err := s.accounts.GetByID(userID); err != nil {
		return mapAccountErr(err)
	}
	hash, err := s.hasher.Hash(newPin)
	if err != nil {
		return err
	}
	return s.accounts.UpdatePinHash(userID, hash)
}

func mapAccountErr(err error) error {
	if goerrors.Is(err, repositories.ErrAccountNotFound) {
		return errors.ErrAccountNotFound
	}
	return err
}
