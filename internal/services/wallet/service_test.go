package wallet

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
	hasher   *pin.Hasher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	accounts := repositories.NewAccountRepository(db)
	ledger := repositories.NewLedgerRepository(db)
	config := repositories.NewFeeConfigRepository(db)
	hasher := pin.NewHasher()

	return &fixture{
		db:       db,
		svc:      NewService(db, accounts, ledger, config, fee.NewResolver(), hasher, nil),
		accounts: accounts,
		ledger:   ledger,
		config:   config,
		hasher:   hasher,
	}
}

func (f *fixture) createAccount(t *testing.T, name, email, mobile string, balance float64, rawPin string) *models.Account {
	t.Helper()
	account := &models.Account{
		Name:     name,
		Email:    email,
		Mobile:   mobile,
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

func TestSendMoneyHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.config.SetChargeRule(&models.ChargeRule{
		Operation: fee.OperationSend, Percentage: 2, Fixed: 5,
	}))

	sender := f.createAccount(t, "Asha", "asha@example.com", "0712345678", 100, "1234")
	recipient := f.createAccount(t, "Brian", "brian@example.com", "0723456789", 0, "")

	receipt, err := f.svc.SendMoney(ctx, sender.ID, SendMoneyInput{
		RecipientID: recipient.ID,
		Amount:      50,
		Pin:         "1234",
	})
	require.NoError(t, err)

	// charge = 5 + 50*2% = 6; sender pays 56.
	assert.InDelta(t, 6.0, receipt.Charge, 1e-9)
	assert.InDelta(t, 44.0, receipt.NewBalance, 1e-9)
	assert.Equal(t, "Brian", receipt.RecipientName)
	assert.Len(t, receipt.ReferenceCode, 9)

	gotSender, err := f.accounts.GetByID(sender.ID)
	require.NoError(t, err)
	assert.InDelta(t, 44.0, gotSender.Balance, 1e-9)

	gotRecipient, err := f.accounts.GetByID(recipient.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, gotRecipient.Balance, 1e-9)

	senderEntries, err := f.ledger.ListByAccount(sender.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, senderEntries, 1)
	assert.Equal(t, models.EntryTypeSend, senderEntries[0].Type)
	assert.Equal(t, models.EntryStatusCompleted, senderEntries[0].Status)
	assert.InDelta(t, 6.0, senderEntries[0].Charge, 1e-9)

	recipientEntries, err := f.ledger.ListByAccount(recipient.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, recipientEntries, 1)
	assert.Equal(t, models.EntryTypeReceive, recipientEntries[0].Type)
	assert.Equal(t, models.EntryStatusReceived, recipientEntries[0].Status)

	// Both sides share one reference code.
	assert.Equal(t, senderEntries[0].ReferenceCode, recipientEntries[0].ReferenceCode)
}

func TestSendMoneyInsufficientBalanceLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sender := f.createAccount(t, "Asha", "asha@example.com", "0712345678", 10, "1234")
	recipient := f.createAccount(t, "Brian", "brian@example.com", "0723456789", 0, "")

	_, err := f.svc.SendMoney(ctx, sender.ID, SendMoneyInput{
		RecipientID: recipient.ID,
		Amount:      50,
		Pin:         "1234",
	})
	assert.ErrorIs(t, err, errors.ErrInsufficientBalance)

	gotSender, err := f.accounts.GetByID(sender.ID)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, gotSender.Balance, 1e-9)

	entries, err := f.ledger.ListByAccount(sender.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSendMoneyWrongPinIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sender := f.createAccount(t, "Asha", "asha@example.com", "0712345678", 100, "1234")
	recipient := f.createAccount(t, "Brian", "brian@example.com", "0723456789", 0, "")

	_, err := f.svc.SendMoney(ctx, sender.ID, SendMoneyInput{
		RecipientID: recipient.ID,
		Amount:      50,
		Pin:         "0000",
	})
	assert.ErrorIs(t, err, errors.ErrPinMismatch)

	gotSender, err := f.accounts.GetByID(sender.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, gotSender.Balance, 1e-9)

	gotRecipient, err := f.accounts.GetByID(recipient.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, gotRecipient.Balance, 1e-9)

	entries, err := f.ledger.ListByAccount(sender.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSendMoneyRejectsSelfTransfer(t *testing.T) {
	f := newFixture(t)
	sender := f.createAccount(t, "Asha", "asha@example.com", "0712345678", 100, "1234")

	_, err := f.svc.SendMoney(context.Background(), sender.ID, SendMoneyInput{
		RecipientID: sender.ID,
		Amount:      10,
		Pin:         "1234",
	})
	assert.ErrorIs(t, err, errors.ErrSelfTransfer)
}

func TestSendMoneyUnknownRecipient(t *testing.T) {
	f := newFixture(t)
	sender := f.createAccount(t, "Asha", "asha@example.com", "0712345678", 100, "1234")

	_, err := f.svc.SendMoney(context.Background(), sender.ID, SendMoneyInput{
		RecipientID: 9999,
		Amount:      10,
		Pin:         "1234",
	})
	assert.ErrorIs(t, err, errors.ErrRecipientNotFound)
}

func TestSendMoneyWithoutPinConfigured(t *testing.T) {
	f := newFixture(t)
	sender := f.createAccount(t, "Asha", "asha@example.com", "0712345678", 100, "")
	recipient := f.createAccount(t, "Brian", "brian@example.com", "0723456789", 0, "")

	_, err := f.svc.SendMoney(context.Background(), sender.ID, SendMoneyInput{
		RecipientID: recipient.ID,
		Amount:      10,
		Pin:         "1234",
	})
	assert.ErrorIs(t, err, errors.ErrPinNotSet)
}

func TestGetWalletReturnsBalanceAndHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sender := f.createAccount(t, "Asha", "asha@example.com", "0712345678", 100, "1234")
	recipient := f.createAccount(t, "Brian", "brian@example.com", "0723456789", 0, "")

	_, err := f.svc.SendMoney(ctx, sender.ID, SendMoneyInput{
		RecipientID: recipient.ID,
		Amount:      20,
		Pin:         "1234",
	})
	require.NoError(t, err)

	snapshot, err := f.svc.GetWallet(ctx, sender.ID)
	require.NoError(t, err)
	assert.Equal(t, sender.ID, snapshot.Account.ID)
	require.Len(t, snapshot.History, 1)
	assert.Equal(t, models.EntryTypeSend, snapshot.History[0].Type)
}
