package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cashpoint/internal/errors"
	"cashpoint/internal/models"
	"cashpoint/internal/repositories"
	"cashpoint/internal/services/fee"
	"cashpoint/internal/services/pin"
	"cashpoint/internal/testutil"
)

type fixture struct {
	db       *gorm.DB
	svc      Service
	accounts repositories.AccountRepository
	ledger   repositories.LedgerRepository
	config   repositories.FeeConfigRepository
	requests repositories.PaymentRequestRepository
	hasher   *pin.Hasher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	accounts := repositories.NewAccountRepository(db)
	ledger := repositories.NewLedgerRepository(db)
	config := repositories.NewFeeConfigRepository(db)
	requests := repositories.NewPaymentRequestRepository(db)
	hasher := pin.NewHasher()

	return &fixture{
		db:       db,
		svc:      NewService(db, accounts, ledger, config, requests, fee.NewResolver(), hasher),
		accounts: accounts,
		ledger:   ledger,
		config:   config,
		requests: requests,
		hasher:   hasher,
	}
}

func (f *fixture) createAccount(t *testing.T, balance float64, rawPin string) *models.Account {
	t.Helper()
	account := &models.Account{
		Name:     "Asha",
		Email:    "asha@example.com",
		Mobile:   "0712345678",
		Password: "x",
		Balance:  balance,
	}
	if rawPin != "" {
		hash, err := f.hasher.Hash(rawPin)
		require.NoError(t, err)
		account.PinHash = hash
	}
	require.NoError(t, f.accounts.Create(account))
	return account
}

func TestCreateDepositRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.createAccount(t, 0, "")

	req, err := f.svc.CreateDepositRequest(ctx, account.ID, DepositInput{
		Amount:       100,
		TxID:         "MPE123XYZ",
		Method:       "mpesa",
		SenderNumber: "0712345678",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, req.RequestID)
	assert.Equal(t, models.RequestStatusPending, req.Status)
	assert.NotZero(t, req.LedgerEntryID)

	// The claim credits nothing until an operator confirms it.
	got, err := f.accounts.GetByID(account.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got.Balance, 1e-9)

	entries, err := f.ledger.ListByAccount(account.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.EntryTypeDeposit, entries[0].Type)
	assert.Equal(t, models.EntryStatusPending, entries[0].Status)
	assert.Len(t, entries[0].ReferenceCode, 9)
}

func TestCreateDepositRequestRejectsDuplicateReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.createAccount(t, 0, "")

	_, err := f.svc.CreateDepositRequest(ctx, account.ID, DepositInput{
		Amount: 100, TxID: "MPE123XYZ", Method: "mpesa", SenderNumber: "0712345678",
	})
	require.NoError(t, err)

	_, err = f.svc.CreateDepositRequest(ctx, account.ID, DepositInput{
		Amount: 200, TxID: "MPE123XYZ", Method: "mpesa", SenderNumber: "0712345678",
	})
	assert.ErrorIs(t, err, errors.ErrDuplicateReference)
}

func TestCreateDepositRequestRejectedReferenceIsReusable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.createAccount(t, 0, "")

	first, err := f.svc.CreateDepositRequest(ctx, account.ID, DepositInput{
		Amount: 100, TxID: "MPE123XYZ", Method: "mpesa", SenderNumber: "0712345678",
	})
	require.NoError(t, err)

	// Operator rejects the claim; the reference is free again.
	err = f.db.Model(&models.DepositRequest{}).
		Where("request_id = ?", first.RequestID).
		Update("status", models.RequestStatusRejected).Error
	require.NoError(t, err)

	_, err = f.svc.CreateDepositRequest(ctx, account.ID, DepositInput{
		Amount: 100, TxID: "MPE123XYZ", Method: "mpesa", SenderNumber: "0712345678",
	})
	assert.NoError(t, err)
}

func TestCreateTransferRequestConsumesReserve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.createAccount(t, 100, "1234")

	require.NoError(t, f.config.SetChargeRule(&models.ChargeRule{
		Operation: fee.OperationTransfer, Percentage: 2, Fixed: 5,
	}))
	require.NoError(t, f.config.AddReserve("mpesa", 15))

	req, err := f.svc.CreateTransferRequest(ctx, account.ID, TransferInput{
		Amount:          30,
		RecipientNumber: "0798765432",
		Method:          "mpesa",
		Pin:             "1234",
	})
	require.NoError(t, err)

	// 15 reserve-covered, 2% on the remaining 15: charge 5.3, total 35.3.
	assert.InDelta(t, 5.3, req.Charge, 1e-9)
	assert.InDelta(t, 15.0, req.ReserveUsed, 1e-9)

	got, err := f.accounts.GetByID(account.ID)
	require.NoError(t, err)
	assert.InDelta(t, 64.7, got.Balance, 1e-9)

	pool, err := f.config.GetReserve("mpesa")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, pool, 1e-9)

	entries, err := f.ledger.ListByAccount(account.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.EntryTypeTransfer, entries[0].Type)
	assert.Len(t, entries[0].ReferenceCode, 9)
}

func TestCreateTransferRequestWrongPinLeavesBalanceUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.createAccount(t, 100, "1234")

	_, err := f.svc.CreateTransferRequest(ctx, account.ID, TransferInput{
		Amount:          30,
		RecipientNumber: "0798765432",
		Method:          "mpesa",
		Pin:             "0000",
	})
	assert.ErrorIs(t, err, errors.ErrPinMismatch)

	got, err := f.accounts.GetByID(account.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, got.Balance, 1e-9)
}

func TestCreateTransferRequestInsufficientBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.createAccount(t, 10, "1234")

	_, err := f.svc.CreateTransferRequest(ctx, account.ID, TransferInput{
		Amount:          30,
		RecipientNumber: "0798765432",
		Method:          "mpesa",
		Pin:             "1234",
	})
	assert.ErrorIs(t, err, errors.ErrInsufficientBalance)
}

func TestListRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.createAccount(t, 100, "1234")

	_, err := f.svc.CreateDepositRequest(ctx, account.ID, DepositInput{
		Amount: 50, TxID: "REF1", Method: "mpesa", SenderNumber: "0712345678",
	})
	require.NoError(t, err)
	_, err = f.svc.CreateTransferRequest(ctx, account.ID, TransferInput{
		Amount: 20, RecipientNumber: "0798765432", Method: "mpesa", Pin: "1234",
	})
	require.NoError(t, err)

	deposits, err := f.svc.ListDeposits(ctx, account.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, deposits, 1)

	transfers, err := f.svc.ListTransfers(ctx, account.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, transfers, 1)
}
