package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koiexpress/shipping-gateway/internal/models"
	"github.com/koiexpress/shipping-gateway/internal/session"
	"github.com/koiexpress/shipping-gateway/pkg/errors"
	"github.com/koiexpress/shipping-gateway/pkg/logger"
)

func TestWalletResolvesByUser(t *testing.T) {
	backend := &fakeBackend{
		wallets: []models.Wallet{
			{ID: 1, UserID: 3, Balance: decimal.NewFromInt(10000)},
			{ID: 2, UserID: 7, Balance: decimal.NewFromInt(500000)},
		},
	}

	svc := NewWalletService(backend, logger.NewNopLogger(), 5)

	wallet, err := svc.Wallet(context.Background(), testSession())
	require.NoError(t, err)

	assert.Equal(t, int64(2), wallet.WalletID)
	assert.Equal(t, "500.000 VND", wallet.Balance)
}

func TestWalletUsesSessionWalletID(t *testing.T) {
	backend := &fakeBackend{
		wallets: []models.Wallet{{ID: 2, UserID: 7, Balance: decimal.NewFromInt(500000)}},
	}

	svc := NewWalletService(backend, logger.NewNopLogger(), 5)

	sess := testSession()
	sess.WalletID = 2

	wallet, err := svc.Wallet(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, int64(2), wallet.WalletID)
	assert.Equal(t, "500.000 VND", wallet.Balance)
	// a known wallet ID skips the collection scan
	assert.Equal(t, []int64{2}, backend.walletByIDCalls)
}

func TestWalletMissingIsNotFound(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewWalletService(backend, logger.NewNopLogger(), 5)

	_, err := svc.Wallet(context.Background(), testSession())
	assert.True(t, errors.IsNotFound(err))
}

func TestCreateWalletRecordsIDOnSession(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewWalletService(backend, logger.NewNopLogger(), 5)

	store := session.NewStore()
	sess := store.Create("token", 7, models.RoleUser, 0)

	wallet, err := svc.CreateWallet(context.Background(), store, sess)
	require.NoError(t, err)

	updated, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, wallet.WalletID, updated.WalletID)
}

func TestTransactionsFiltersAndLabels(t *testing.T) {
	backend := &fakeBackend{
		wallets: []models.Wallet{{ID: 2, UserID: 7}},
		txns: []models.Transaction{
			{ID: 1, WalletID: 2, TotalAmount: decimal.NewFromInt(100000), PaymentType: models.PaymentTypeIn},
			{ID: 2, WalletID: 9, TotalAmount: decimal.NewFromInt(50000), PaymentType: models.PaymentTypeOut},
			{ID: 3, WalletID: 2, TotalAmount: decimal.NewFromInt(70000), PaymentType: models.PaymentTypeOut},
		},
	}

	svc := NewWalletService(backend, logger.NewNopLogger(), 5)

	page, err := svc.Transactions(context.Background(), testSession(), 1)
	require.NoError(t, err)

	// other wallets' movements are excluded; newest first
	require.Len(t, page.Transactions, 2)
	assert.Equal(t, int64(3), page.Transactions[0].ID)
	assert.Equal(t, "Thanh Toán", page.Transactions[0].Label)
	assert.Equal(t, "Nạp tiền", page.Transactions[1].Label)
	assert.Equal(t, 1, page.TotalPages)
}

func TestRechargeCreatesTransactionThenDeposits(t *testing.T) {
	backend := &fakeBackend{
		wallets: []models.Wallet{{ID: 2, UserID: 7}},
	}

	svc := NewWalletService(backend, logger.NewNopLogger(), 5)

	payURL, err := svc.Recharge(context.Background(), testSession(), decimal.NewFromInt(200000))
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example/checkout", payURL)
	require.Len(t, backend.createdTxns, 1)
	assert.Equal(t, models.PaymentTypeIn, backend.createdTxns[0].PaymentType)
	// the deposit call correlates on the transaction just created
	assert.Equal(t, []int64{backend.createdTxns[0].ID}, backend.depositCalls)
}

func TestRechargeRejectsNonPositiveAmount(t *testing.T) {
	svc := NewWalletService(&fakeBackend{}, logger.NewNopLogger(), 5)

	_, err := svc.Recharge(context.Background(), testSession(), decimal.Zero)
	assert.Equal(t, 400, errors.StatusOf(err))
}

func TestConfirmDepositCreditsWallet(t *testing.T) {
	backend := &fakeBackend{
		wallets: []models.Wallet{{ID: 2, UserID: 7, Balance: decimal.NewFromInt(100000)}},
	}

	svc := NewWalletService(backend, logger.NewNopLogger(), 5)

	// gateway amounts arrive multiplied by 100
	confirmation, err := svc.ConfirmDeposit(context.Background(), testSession(), PaymentReturn{
		TransactionStatus: "00",
		Amount:            "20000000",
		PayDate:           "20240301153000",
	})
	require.NoError(t, err)

	assert.True(t, confirmation.Success)
	assert.Equal(t, "200.000 VND", confirmation.Amount)
	assert.Equal(t, "2024-03-01 15:30:00", confirmation.PayDate)
	assert.Equal(t, "300.000 VND", confirmation.NewBalance)

	require.Len(t, backend.updatedWallets, 1)
	assert.True(t, backend.updatedWallets[0].Balance.Equal(decimal.NewFromInt(300000)))
}

func TestConfirmDepositRejectedStatus(t *testing.T) {
	backend := &fakeBackend{
		wallets: []models.Wallet{{ID: 2, UserID: 7}},
	}

	svc := NewWalletService(backend, logger.NewNopLogger(), 5)

	confirmation, err := svc.ConfirmDeposit(context.Background(), testSession(), PaymentReturn{
		TransactionStatus: "24",
	})
	require.NoError(t, err)

	assert.False(t, confirmation.Success)
	assert.Empty(t, backend.updatedWallets)
}
