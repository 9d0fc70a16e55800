package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/koiexpress/shipping-gateway/internal/clients"
	"github.com/koiexpress/shipping-gateway/internal/models"
	"github.com/koiexpress/shipping-gateway/pkg/errors"
)

// fakeBackend serves canned collections for service tests and records the
// mutations issued against it.
type fakeBackend struct {
	orders    []models.Order
	details   []models.OrderDetail
	options   []models.BoxOption
	fish      map[int64]models.KoiFish
	vehicles  []models.Vehicle
	branches  []models.Branch
	timelines []models.TimelineDelivery
	cargo     map[int64]*models.TimelineCargo
	feedback  []models.Feedback
	wallets   []models.Wallet
	txns      []models.Transaction
	distances []models.Distance
	boxes     []models.Box

	err error

	walletByIDCalls   []int64
	updatedOrders     []models.Order
	updatedWallets    []models.Wallet
	advancedTimelines []int64
	createdFeedback   []models.Feedback
	updatedFeedback   []models.Feedback
	createdTxns       []models.Transaction
	depositCalls      []int64
}

func (f *fakeBackend) Orders(ctx context.Context, token string) ([]models.Order, error) {
	return f.orders, f.err
}

func (f *fakeBackend) OrderDetails(ctx context.Context, token string) ([]models.OrderDetail, error) {
	return f.details, f.err
}

func (f *fakeBackend) BoxOptions(ctx context.Context, token string) ([]models.BoxOption, error) {
	return f.options, f.err
}

func (f *fakeBackend) KoiFishByID(ctx context.Context, token string, id int64) (*models.KoiFish, error) {
	if f.err != nil {
		return nil, f.err
	}
	if fish, ok := f.fish[id]; ok {
		return &fish, nil
	}
	return nil, errors.NewNotFoundError("fish not found")
}

func (f *fakeBackend) Vehicles(ctx context.Context, token string) ([]models.Vehicle, error) {
	return f.vehicles, f.err
}

func (f *fakeBackend) Branches(ctx context.Context, token string) ([]models.Branch, error) {
	return f.branches, f.err
}

func (f *fakeBackend) TimelineByID(ctx context.Context, token string, id int64) (*models.TimelineDelivery, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.timelines {
		if f.timelines[i].ID == id {
			return &f.timelines[i], nil
		}
	}
	return nil, errors.NewNotFoundError("timeline not found")
}

func (f *fakeBackend) EnabledTimelines(ctx context.Context, token string) ([]models.TimelineDelivery, error) {
	return f.timelines, f.err
}

func (f *fakeBackend) TimelineCargo(ctx context.Context, token string, timelineID int64) (*models.TimelineCargo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if cargo, ok := f.cargo[timelineID]; ok {
		return cargo, nil
	}
	return nil, errors.NewNotFoundError("cargo not found")
}

func (f *fakeBackend) Feedbacks(ctx context.Context, token string) ([]models.Feedback, error) {
	return f.feedback, f.err
}

func (f *fakeBackend) Transactions(ctx context.Context, token string) ([]models.Transaction, error) {
	return f.txns, f.err
}

func (f *fakeBackend) Wallets(ctx context.Context, token string) ([]models.Wallet, error) {
	return f.wallets, f.err
}

func (f *fakeBackend) WalletByID(ctx context.Context, token string, id int64) (*models.Wallet, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.walletByIDCalls = append(f.walletByIDCalls, id)
	for i := range f.wallets {
		if f.wallets[i].ID == id {
			return &f.wallets[i], nil
		}
	}
	return nil, errors.NewNotFoundError("wallet not found")
}

func (f *fakeBackend) Distances(ctx context.Context, token string) ([]models.Distance, error) {
	return f.distances, f.err
}

func (f *fakeBackend) DistanceByID(ctx context.Context, token string, id int64) (*models.Distance, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.distances {
		if f.distances[i].ID == id {
			return &f.distances[i], nil
		}
	}
	return nil, errors.NewNotFoundError("distance not found")
}

func (f *fakeBackend) Boxes(ctx context.Context, token string) ([]models.Box, error) {
	return f.boxes, f.err
}

func (f *fakeBackend) UpdateOrder(ctx context.Context, token string, order models.Order) error {
	if f.err != nil {
		return f.err
	}
	f.updatedOrders = append(f.updatedOrders, order)
	return nil
}

func (f *fakeBackend) UpdateTimelineStatus(ctx context.Context, token string, timelineID int64) error {
	if f.err != nil {
		return f.err
	}
	f.advancedTimelines = append(f.advancedTimelines, timelineID)
	return nil
}

func (f *fakeBackend) CreateFeedback(ctx context.Context, token string, orderID int64, description string) error {
	if f.err != nil {
		return f.err
	}
	f.createdFeedback = append(f.createdFeedback, models.Feedback{OrderID: orderID, Description: description})
	return nil
}

func (f *fakeBackend) UpdateFeedback(ctx context.Context, token string, feedbackID int64, description string) error {
	if f.err != nil {
		return f.err
	}
	f.updatedFeedback = append(f.updatedFeedback, models.Feedback{ID: feedbackID, Description: description})
	return nil
}

func (f *fakeBackend) CreateTransaction(ctx context.Context, token string, walletID int64, amount decimal.Decimal, paymentType models.PaymentType) (*models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	txn := models.Transaction{
		ID:          int64(len(f.createdTxns) + 100),
		WalletID:    walletID,
		TotalAmount: amount,
		PaymentType: paymentType,
	}
	f.createdTxns = append(f.createdTxns, txn)
	return &txn, nil
}

func (f *fakeBackend) Deposit(ctx context.Context, token string, amount decimal.Decimal, transactionID int64) (*clients.DepositResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.depositCalls = append(f.depositCalls, transactionID)
	return &clients.DepositResult{PayURL: "https://pay.example/checkout"}, nil
}

func (f *fakeBackend) CreateWallet(ctx context.Context, token string, userID int64) (*models.Wallet, error) {
	if f.err != nil {
		return nil, f.err
	}
	wallet := models.Wallet{ID: int64(len(f.wallets) + 1), UserID: userID, WalletType: "default"}
	f.wallets = append(f.wallets, wallet)
	return &wallet, nil
}

func (f *fakeBackend) UpdateWallet(ctx context.Context, token string, wallet models.Wallet) error {
	if f.err != nil {
		return f.err
	}
	f.updatedWallets = append(f.updatedWallets, wallet)
	return nil
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "test-token", nil
}

func (f *fakeBackend) Profile(ctx context.Context, token string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Profile{ID: 7, Name: "Anna", Role: models.Role{RoleName: models.RoleUser}}, nil
}
