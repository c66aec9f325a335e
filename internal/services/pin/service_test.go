package pin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashpoint/internal/errors"
	"cashpoint/internal/models"
	"cashpoint/internal/repositories"
	"cashpoint/internal/testutil"
)

func newTestService(t *testing.T) (Service, repositories.AccountRepository, *models.Account) {
	t.Helper()
	db := testutil.NewDB(t)
	accounts := repositories.NewAccountRepository(db)

	account := &models.Account{
		Name:     "Asha",
		Email:    "asha@example.com",
		Mobile:   "0712345678",
		Password: "x",
	}
	require.NoError(t, accounts.Create(account))

	return NewService(accounts, NewHasher()), accounts, account
}

func TestSetupThenChange(t *testing.T) {
	svc, accounts, account := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Setup(ctx, account.ID, "1234"))

	stored, err := accounts.GetByID(account.ID)
	require.NoError(t, err)
	assert.True(t, stored.HasPin())

	// Second setup must be refused.
	assert.ErrorIs(t, svc.Setup(ctx, account.ID, "5678"), errors.ErrPinAlreadySet)

	require.NoError(t, svc.Change(ctx, account.ID, "1234", "5678"))

	stored, err = accounts.GetByID(account.ID)
	require.NoError(t, err)
	assert.True(t, NewHasher().Verify("5678", stored.PinHash))
}

func TestChangeRejectsWrongOldPin(t *testing.T) {
	svc, _, account := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Setup(ctx, account.ID, "1234"))
	assert.ErrorIs(t, svc.Change(ctx, account.ID, "0000", "5678"), errors.ErrPinMismatch)
}

func TestChangeWithoutPinConfigured(t *testing.T) {
	svc, _, account := newTestService(t)
	assert.ErrorIs(t, svc.Change(context.Background(), account.ID, "1234", "5678"), errors.ErrPinNotSet)
}

func TestResetRequiresFreshAuth(t *testing.T) {
	svc, accounts, account := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Setup(ctx, account.ID, "1234"))

	stale := time.Now().Add(-MaxAuthAge - time.Minute)
	assert.ErrorIs(t, svc.Reset(ctx, account.ID, "5678", stale), errors.ErrStaleAuth)

	require.NoError(t, svc.Reset(ctx, account.ID, "5678", time.Now()))

	stored, err := accounts.GetByID(account.ID)
	require.NoError(t, err)
	assert.True(t, NewHasher().Verify("5678", stored.PinHash))
}

func TestSetupUnknownAccount(t *testing.T) {
	svc, _, _ := newTestService(t)
	assert.ErrorIs(t, svc.Setup(context.Background(), 9999, "1234"), errors.ErrAccountNotFound)
}
