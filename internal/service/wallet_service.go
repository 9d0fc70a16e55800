package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/koiexpress/shipping-gateway/internal/models"
	"github.com/koiexpress/shipping-gateway/internal/session"
	"github.com/koiexpress/shipping-gateway/pkg/errors"
	"github.com/koiexpress/shipping-gateway/pkg/format"
	"github.com/koiexpress/shipping-gateway/pkg/logger"
	"github.com/koiexpress/shipping-gateway/pkg/paginate"
)

// Vietnamese display labels for wallet movements
const (
	transactionLabelIn  = "Nạp tiền"
	transactionLabelOut = "Thanh Toán"
)

// WalletService exposes the prepaid balance and the VNPay top-up flow
type WalletService struct {
	backend  Backend
	logger   logger.Logger
	pageSize int
}

// NewWalletService creates a new WalletService
func NewWalletService(backend Backend, logger logger.Logger, pageSize int) *WalletService {
	if pageSize < 1 {
		pageSize = 5
	}

	return &WalletService{
		backend:  backend,
		logger:   logger,
		pageSize: pageSize,
	}
}

// WalletView is the balance card shown on the wallet page
type WalletView struct {
	WalletID int64  `json:"walletId"`
	Balance  string `json:"balance"`
}

// Wallet resolves the caller's wallet, directly by ID when the session
// already knows it, otherwise by scanning the collection for their user ID.
// A user without a wallet yet gets NotFound, which the handler treats as
// "offer to create one".
func (s *WalletService) Wallet(ctx context.Context, sess *session.Session) (*WalletView, error) {
	if sess.WalletID != 0 {
		w, err := s.backend.WalletByID(ctx, sess.Token, sess.WalletID)

		if err != nil {
			return nil, err
		}

		return &WalletView{
			WalletID: w.ID,
			Balance:  format.Price(w.Balance),
		}, nil
	}

	wallets, err := s.backend.Wallets(ctx, sess.Token)

	if err != nil {
		return nil, err
	}

	for _, w := range wallets {
		if w.UserID == sess.UserID {
			return &WalletView{
				WalletID: w.ID,
				Balance:  format.Price(w.Balance),
			}, nil
		}
	}

	return nil, errors.NewNotFoundError("no wallet for user").WithContext("userId", sess.UserID)
}

// CreateWallet provisions a wallet for a user who has none yet and records
// its ID on the session
func (s *WalletService) CreateWallet(ctx context.Context, store *session.Store, sess *session.Session) (*WalletView, error) {
	wallet, err := s.backend.CreateWallet(ctx, sess.Token, sess.UserID)

	if err != nil {
		return nil, err
	}

	store.SetWalletID(sess.ID, wallet.ID)

	s.logger.Info("Wallet created", "userId", sess.UserID, "walletId", wallet.ID)

	return &WalletView{
		WalletID: wallet.ID,
		Balance:  format.Price(wallet.Balance),
	}, nil
}

// TransactionView is one wallet movement row
type TransactionView struct {
	ID     int64  `json:"id"`
	Label  string `json:"label"`
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

// TransactionPage is one page of wallet history
type TransactionPage struct {
	Transactions []TransactionView `json:"transactions"`
	Page         int               `json:"page"`
	TotalPages   int               `json:"totalPages"`
}

// Transactions returns the caller's wallet movements, newest first
func (s *WalletService) Transactions(ctx context.Context, sess *session.Session, page int) (*TransactionPage, error) {
	walletID := sess.WalletID

	var transactions []models.Transaction

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		transactions, err = s.backend.Transactions(gctx, sess.Token)
		return err
	})

	if walletID == 0 {
		g.Go(func() error {
			wallets, err := s.backend.Wallets(gctx, sess.Token)
			if err != nil {
				return err
			}
			for _, w := range wallets {
				if w.UserID == sess.UserID {
					walletID = w.ID
					break
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	mine := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.WalletID == walletID && walletID != 0 {
			mine = append(mine, t)
		}
	}

	sort.Slice(mine, func(i, j int) bool {
		return mine[i].ID > mine[j].ID
	})

	visible := paginate.Paginate(mine, page, s.pageSize)

	views := make([]TransactionView, 0, len(visible))
	for _, t := range visible {
		label := transactionLabelOut
		if t.PaymentType == models.PaymentTypeIn {
			label = transactionLabelIn
		}

		views = append(views, TransactionView{
			ID:     t.ID,
			Label:  label,
			Type:   string(t.PaymentType),
			Amount: format.Price(t.TotalAmount),
		})
	}

	return &TransactionPage{
		Transactions: views,
		Page:         page,
		TotalPages:   paginate.TotalPages(len(mine), s.pageSize),
	}, nil
}

// Recharge starts a top-up: a pending IN transaction is recorded first, then
// the deposit call hands back the payment-gateway URL with the transaction ID
// as correlation key.
func (s *WalletService) Recharge(ctx context.Context, sess *session.Session, amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", errors.NewInvalidInputError("recharge amount must be positive")
	}

	walletID := sess.WalletID

	if walletID == 0 {
		wallets, err := s.backend.Wallets(ctx, sess.Token)
		if err != nil {
			return "", err
		}
		for _, w := range wallets {
			if w.UserID == sess.UserID {
				walletID = w.ID
				break
			}
		}
	}

	if walletID == 0 {
		return "", errors.NewNotFoundError("no wallet for user").WithContext("userId", sess.UserID)
	}

	transaction, err := s.backend.CreateTransaction(ctx, sess.Token, walletID, amount, models.PaymentTypeIn)

	if err != nil {
		return "", err
	}

	result, err := s.backend.Deposit(ctx, sess.Token, amount, transaction.ID)

	if err != nil {
		s.logger.Error("Deposit handoff failed", "error", err, "transactionId", transaction.ID)
		return "", err
	}

	s.logger.Info("Recharge started", "walletId", walletID, "transactionId", transaction.ID)

	return result.PayURL, nil
}

// PaymentReturn carries the gateway's redirect parameters back into the
// confirmation step. Amounts arrive multiplied by 100 per VNPay convention.
type PaymentReturn struct {
	TransactionStatus string `json:"vnp_TransactionStatus"`
	Amount            string `json:"vnp_Amount"`
	PayDate           string `json:"vnp_PayDate"`
	TransactionNo     string `json:"vnp_TransactionNo"`
}

// DepositConfirmation is the outcome shown on the payment-return page
type DepositConfirmation struct {
	Success    bool   `json:"success"`
	Amount     string `json:"amount"`
	PayDate    string `json:"payDate"`
	NewBalance string `json:"newBalance"`
}

// ConfirmDeposit settles a returning top-up. Status "00" means the gateway
// captured the payment; the wire amount is divided by 100 and credited to
// the wallet with a full-record update.
func (s *WalletService) ConfirmDeposit(ctx context.Context, sess *session.Session, ret PaymentReturn) (*DepositConfirmation, error) {
	if ret.TransactionStatus != "00" {
		s.logger.Warn("Deposit rejected by gateway", "status", ret.TransactionStatus)
		return &DepositConfirmation{Success: false}, nil
	}

	wireAmount, err := decimal.NewFromString(ret.Amount)

	if err != nil {
		return nil, errors.NewInvalidInputError("malformed payment amount").WithContext("amount", ret.Amount)
	}

	amount := wireAmount.Div(decimal.NewFromInt(100))

	wallets, err := s.backend.Wallets(ctx, sess.Token)

	if err != nil {
		return nil, err
	}

	var wallet *models.Wallet
	for i := range wallets {
		if wallets[i].UserID == sess.UserID {
			wallet = &wallets[i]
			break
		}
	}

	if wallet == nil {
		return nil, errors.NewNotFoundError("no wallet for user").WithContext("userId", sess.UserID)
	}

	wallet.Balance = wallet.Balance.Add(amount)

	if err := s.backend.UpdateWallet(ctx, sess.Token, *wallet); err != nil {
		s.logger.Error("Failed to credit wallet", "error", err, "walletId", wallet.ID)
		return nil, err
	}

	s.logger.Info("Deposit confirmed", "walletId", wallet.ID, "amount", amount.String())

	return &DepositConfirmation{
		Success:    true,
		Amount:     format.Price(amount),
		PayDate:    format.PayDate(ret.PayDate),
		NewBalance: format.Price(wallet.Balance),
	}, nil
}
