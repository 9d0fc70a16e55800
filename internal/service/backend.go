package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/koiexpress/shipping-gateway/internal/clients"
	"github.com/koiexpress/shipping-gateway/internal/models"
)

// Backend is the slice of the remote koi shipping API the services consume.
// *clients.BackendClient satisfies it; tests substitute fakes.
type Backend interface {
	Orders(ctx context.Context, token string) ([]models.Order, error)
	OrderDetails(ctx context.Context, token string) ([]models.OrderDetail, error)
	BoxOptions(ctx context.Context, token string) ([]models.BoxOption, error)
	KoiFishByID(ctx context.Context, token string, id int64) (*models.KoiFish, error)
	Vehicles(ctx context.Context, token string) ([]models.Vehicle, error)
	Branches(ctx context.Context, token string) ([]models.Branch, error)
	TimelineByID(ctx context.Context, token string, id int64) (*models.TimelineDelivery, error)
	EnabledTimelines(ctx context.Context, token string) ([]models.TimelineDelivery, error)
	TimelineCargo(ctx context.Context, token string, timelineID int64) (*models.TimelineCargo, error)
	Feedbacks(ctx context.Context, token string) ([]models.Feedback, error)
	Transactions(ctx context.Context, token string) ([]models.Transaction, error)
	Wallets(ctx context.Context, token string) ([]models.Wallet, error)
	WalletByID(ctx context.Context, token string, id int64) (*models.Wallet, error)
	Distances(ctx context.Context, token string) ([]models.Distance, error)
	DistanceByID(ctx context.Context, token string, id int64) (*models.Distance, error)
	Boxes(ctx context.Context, token string) ([]models.Box, error)

	UpdateOrder(ctx context.Context, token string, order models.Order) error
	UpdateTimelineStatus(ctx context.Context, token string, timelineID int64) error
	CreateFeedback(ctx context.Context, token string, orderID int64, description string) error
	UpdateFeedback(ctx context.Context, token string, feedbackID int64, description string) error
	CreateTransaction(ctx context.Context, token string, walletID int64, amount decimal.Decimal, paymentType models.PaymentType) (*models.Transaction, error)
	Deposit(ctx context.Context, token string, amount decimal.Decimal, transactionID int64) (*clients.DepositResult, error)
	CreateWallet(ctx context.Context, token string, userID int64) (*models.Wallet, error)
	UpdateWallet(ctx context.Context, token string, wallet models.Wallet) error

	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, token string) (*models.Profile, error)
}
