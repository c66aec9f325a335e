package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashpoint/internal/errors"
	"cashpoint/internal/models"
	"cashpoint/internal/repositories"
	"cashpoint/internal/services/pin"
	"cashpoint/internal/testutil"
)

func newTestService(t *testing.T) (Service, repositories.AccountRepository, *pin.Hasher) {
	t.Helper()
	db := testutil.NewDB(t)
	accounts := repositories.NewAccountRepository(db)
	hasher := pin.NewHasher()
	return NewService(accounts, hasher, nil), accounts, hasher
}

func createAccount(t *testing.T, accounts repositories.AccountRepository, hasher *pin.Hasher, name, email, mobile, rawPin string) *models.Account {
	t.Helper()
	account := &models.Account{
		Name:     name,
		Email:    email,
		Mobile:   mobile,
		Password: "x",
	}
	if rawPin != "" {
		hash, err := hasher.Hash(rawPin)
		require.NoError(t, err)
		account.PinHash = hash
	}
	require.NoError(t, accounts.Create(account))
	return account
}

func TestFindRecipientByEmail(t *testing.T) {
	svc, accounts, hasher := newTestService(t)
	caller := createAccount(t, accounts, hasher, "Asha", "asha@example.com", "0712345678", "")
	target := createAccount(t, accounts, hasher, "Brian", "brian@example.com", "0723456789", "")

	got, err := svc.FindRecipient(context.Background(), caller.ID, "Brian@Example.com")
	require.NoError(t, err)
	assert.Equal(t, target.ID, got.ID)
	assert.Equal(t, "Brian", got.Name)
}

func TestFindRecipientByMobile(t *testing.T) {
	svc, accounts, hasher := newTestService(t)
	caller := createAccount(t, accounts, hasher, "Asha", "asha@example.com", "0712345678", "")
	target := createAccount(t, accounts, hasher, "Brian", "brian@example.com", "0723456789", "")

	got, err := svc.FindRecipient(context.Background(), caller.ID, "0723456789")
	require.NoError(t, err)
	assert.Equal(t, target.ID, got.ID)
}

func TestFindRecipientByID(t *testing.T) {
	svc, accounts, hasher := newTestService(t)
	caller := createAccount(t, accounts, hasher, "Asha", "asha@example.com", "0712345678", "")
	target := createAccount(t, accounts, hasher, "Brian", "brian@example.com", "0723456789", "")

	// Short numeric strings resolve as account IDs, not mobiles.
	got, err := svc.FindRecipient(context.Background(), caller.ID, "2")
	require.NoError(t, err)
	assert.Equal(t, target.ID, got.ID)
}

func TestFindRecipientRejectsSelf(t *testing.T) {
	svc, accounts, hasher := newTestService(t)
	caller := createAccount(t, accounts, hasher, "Asha", "asha@example.com", "0712345678", "")

	_, err := svc.FindRecipient(context.Background(), caller.ID, "asha@example.com")
	assert.ErrorIs(t, err, errors.ErrSelfTransfer)
}

func TestFindRecipientUnknown(t *testing.T) {
	svc, accounts, hasher := newTestService(t)
	caller := createAccount(t, accounts, hasher, "Asha", "asha@example.com", "0712345678", "")

	_, err := svc.FindRecipient(context.Background(), caller.ID, "nobody@example.com")
	assert.ErrorIs(t, err, errors.ErrRecipientNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, accounts, hasher := newTestService(t)
	account := createAccount(t, accounts, hasher, "Asha", "asha@example.com", "0712345678", "1234")

	updated, err := svc.UpdateProfile(context.Background(), account.ID, UpdateProfileInput{
		Name:   "Asha K",
		Mobile: "0734567890",
		Pin:    "1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", updated.Name)
	assert.Equal(t, "0734567890", updated.Mobile)
	// Untouched fields survive.
	assert.Equal(t, "asha@example.com", updated.Email)
}

func TestUpdateProfileWrongPin(t *testing.T) {
	svc, accounts, hasher := newTestService(t)
	account := createAccount(t, accounts, hasher, "Asha", "asha@example.com", "0712345678", "1234")

	_, err := svc.UpdateProfile(context.Background(), account.ID, UpdateProfileInput{
		Name: "Asha K",
		Pin:  "0000",
	})
	assert.ErrorIs(t, err, errors.ErrPinMismatch)
}

func TestUpdateProfileMobileConflict(t *testing.T) {
	svc, accounts, hasher := newTestService(t)
	account := createAccount(t, accounts, hasher, "Asha", "asha@example.com", "0712345678", "1234")
	createAccount(t, accounts, hasher, "Brian", "brian@example.com", "0723456789", "")

	_, err := svc.UpdateProfile(context.Background(), account.ID, UpdateProfileInput{
		Mobile: "0723456789",
		Pin:    "1234",
	})
	assert.ErrorIs(t, err, errors.ErrMobileInUse)
}
