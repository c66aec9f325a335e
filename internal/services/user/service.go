// Package user covers recipient lookup and profile maintenance.
package user

import (
	"context"
	goerrors "errors"
	"strings"

	"cashpoint/internal/errors"
	"cashpoint/internal/models"
	"cashpoint/internal/repositories"
	"cashpoint/internal/services/pin"
)

// Recipient is the minimal public view of a lookup match. Balance and
// credentials never leave the service.
type Recipient struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

type UpdateProfileInput struct {
	Name   string
	Mobile string
	DOB    string
	Pin    string
}

// Cache is the account cache invalidated on profile writes.
type Cache interface {
	InvalidateAccount(ctx context.Context, id uint) error
}

type noopCache struct{}

func (noopCache) InvalidateAccount(ctx context.Context, id uint) error { return nil }

type Service interface {
	FindRecipient(ctx context.Context, callerID uint, identifier string) (*Recipient, error)
	UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.Account, error)
}

type service struct {
	accounts repositories.AccountRepository
	hasher   *pin.Hasher
	cache    Cache
}

func NewService(accounts repositories.AccountRepository, hasher *pin.Hasher, cache Cache) Service {
	if cache == nil {
		cache = noopCache{}
	}
	return &service{accounts: accounts, hasher: hasher, cache: cache}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FindRecipient resolves an identifier to an account. Identifiers that
// contain '@' are emails; all-digit strings longer than five characters
// are mobile numbers; anything else is tried as an account ID.
func (s *service) FindRecipient(ctx context.Context, callerID uint, identifier string) (*Recipient, error) {
	identifier = strings.TrimSpace(identifier)

	var (
		account *models.Account
		err     error
	)
	switch {
	case strings.Contains(identifier, "@"):
		account, err = s.accounts.GetByEmail(strings.ToLower(identifier))
	case isNumeric(identifier) && len(identifier) > 5:
		account, err = s.accounts.GetByMobile(identifier)
	default:
		var id uint
		for _, r := range identifier {
			if r < '0' || r > '9' {
				return nil, errors.ErrRecipientNotFound
			}
			id = id*10 + uint(r-'0')
		}
		if id == 0 {
			return nil, errors.ErrRecipientNotFound
		}
		account, err = s.accounts.GetByID(id)
	}
	if err != nil {
		if goerrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, errors.ErrRecipientNotFound
		}
		return nil, err
	}

	if account.ID == callerID {
		return nil, errors.ErrSelfTransfer
	}
	return &Recipient{ID: account.ID, Name: account.Name, Mobile: account.Mobile}, nil
}

// UpdateProfile rewrites name, mobile and date of birth after verifying
// the caller's PIN. Mobile moves only if no other account holds it.
func (s *service) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.Account, error) {
	account, err := s.accounts.GetByID(userID)
	if err != nil {
		if goerrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, errors.ErrAccountNotFound
		}
		return nil, err
	}

	if !account.HasPin() {
		return nil, errors.ErrPinNotSet
	}
	if !s.hasher.Verify(in.Pin, account.PinHash) {
		return nil, errors.ErrPinMismatch
	}

	mobile := strings.TrimSpace(in.Mobile)
	if mobile == "" {
		mobile = account.Mobile
	} else if mobile != account.Mobile {
		inUse, err := s.accounts.MobileInUseByOther(mobile, userID)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, errors.ErrMobileInUse
		}
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = account.Name
	}
	dob := in.DOB
	if dob == "" {
		dob = account.DOB
	}

	if err := s.accounts.UpdateProfile(userID, name, dob, mobile); err != nil {
		return nil, err
	}
	s.cache.InvalidateAccount(ctx, userID)

	return s.accounts.GetByID(userID)
}
