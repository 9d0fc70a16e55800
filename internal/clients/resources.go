package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/koiexpress/shipping-gateway/internal/models"
)

// Collection fetchers. Each call reads the full flat resource; joins across
// resources happen in the service layer.

// Orders fetches all orders visible to the token's principal
func (c *BackendClient) Orders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order

	if err := c.do(ctx, http.MethodGet, "/api/v1/Order", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderDetails fetches the full order-detail collection
func (c *BackendClient) OrderDetails(ctx context.Context, token string) ([]models.OrderDetail, error) {
	var details []models.OrderDetail

	if err := c.do(ctx, http.MethodGet, "/api/v1/OrderDetail", token, nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// BoxOptions fetches the full box-option collection
func (c *BackendClient) BoxOptions(ctx context.Context, token string) ([]models.BoxOption, error) {
	var options []models.BoxOption

	if err := c.do(ctx, http.MethodGet, "/api/v1/BoxOption", token, nil, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// KoiFishByID fetches one koi fish record
func (c *BackendClient) KoiFishByID(ctx context.Context, token string, id int64) (*models.KoiFish, error) {
	var fish models.KoiFish

	path := fmt.Sprintf("/api/v1/KoiFish/%d", id)

	if err := c.do(ctx, http.MethodGet, path, token, nil, &fish); err != nil {
		return nil, err
	}
	return &fish, nil
}

// Vehicles fetches the vehicle collection
func (c *BackendClient) Vehicles(ctx context.Context, token string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle

	if err := c.do(ctx, http.MethodGet, "/api/v1/Vehicle", token, nil, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Branches fetches the branch (route) collection
func (c *BackendClient) Branches(ctx context.Context, token string) ([]models.Branch, error) {
	var branches []models.Branch

	if err := c.do(ctx, http.MethodGet, "/api/v1/Branch", token, nil, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

// TimelineByID fetches one delivery timeline
func (c *BackendClient) TimelineByID(ctx context.Context, token string, id int64) (*models.TimelineDelivery, error) {
	var timeline models.TimelineDelivery

	path := fmt.Sprintf("/api/v1/TimelineDelivery/%d", id)

	if err := c.do(ctx, http.MethodGet, path, token, nil, &timeline); err != nil {
		return nil, err
	}
	return &timeline, nil
}

// EnabledTimelines fetches the active delivery timelines
func (c *BackendClient) EnabledTimelines(ctx context.Context, token string) ([]models.TimelineDelivery, error) {
	var timelines []models.TimelineDelivery

	if err := c.do(ctx, http.MethodGet, "/api/v1/TimelineDelivery/enable", token, nil, &timelines); err != nil {
		return nil, err
	}
	return timelines, nil
}

// TimelineCargo fetches the order-detail membership and capacity figures of
// one timeline
func (c *BackendClient) TimelineCargo(ctx context.Context, token string, timelineID int64) (*models.TimelineCargo, error) {
	var cargo models.TimelineCargo

	path := fmt.Sprintf("/api/v1/TimelineDelivery/%d/orders", timelineID)

	if err := c.do(ctx, http.MethodGet, path, token, nil, &cargo); err != nil {
		return nil, err
	}
	return &cargo, nil
}

// Feedbacks fetches the full feedback collection
func (c *BackendClient) Feedbacks(ctx context.Context, token string) ([]models.Feedback, error) {
	var feedback []models.Feedback

	if err := c.do(ctx, http.MethodGet, "/api/v1/Feedback", token, nil, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// Transactions fetches the transaction collection
func (c *BackendClient) Transactions(ctx context.Context, token string) ([]models.Transaction, error) {
	var transactions []models.Transaction

	if err := c.do(ctx, http.MethodGet, "/api/v1/Transaction", token, nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// Wallets fetches the wallet collection
func (c *BackendClient) Wallets(ctx context.Context, token string) ([]models.Wallet, error) {
	var wallets []models.Wallet

	if err := c.do(ctx, http.MethodGet, "/api/v1/Wallet", token, nil, &wallets); err != nil {
		return nil, err
	}
	return wallets, nil
}

// WalletByID fetches one wallet
func (c *BackendClient) WalletByID(ctx context.Context, token string, id int64) (*models.Wallet, error) {
	var wallet models.Wallet

	path := fmt.Sprintf("/api/v1/Wallet/id?id=%d", id)

	if err := c.do(ctx, http.MethodGet, path, token, nil, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Distances fetches the distance price tiers
func (c *BackendClient) Distances(ctx context.Context, token string) ([]models.Distance, error) {
	var distances []models.Distance

	if err := c.do(ctx, http.MethodGet, "/api/v1/Distance", token, nil, &distances); err != nil {
		return nil, err
	}
	return distances, nil
}

// DistanceByID fetches one distance tier
func (c *BackendClient) DistanceByID(ctx context.Context, token string, id int64) (*models.Distance, error) {
	var distance models.Distance

	path := fmt.Sprintf("/api/v1/Distance/%d", id)

	if err := c.do(ctx, http.MethodGet, path, token, nil, &distance); err != nil {
		return nil, err
	}
	return &distance, nil
}

// Boxes fetches the catalog box types
func (c *BackendClient) Boxes(ctx context.Context, token string) ([]models.Box, error) {
	var boxes []models.Box

	if err := c.do(ctx, http.MethodGet, "/api/v1/Box", token, nil, &boxes); err != nil {
		return nil, err
	}
	return boxes, nil
}

// Mutations. Order and wallet updates send the full record, not a patch.

// UpdateOrder replaces an order record
func (c *BackendClient) UpdateOrder(ctx context.Context, token string, order models.Order) error {
	path := fmt.Sprintf("/api/v1/Order?id=%d", order.ID)

	return c.do(ctx, http.MethodPut, path, token, order, nil)
}

// UpdateTimelineStatus advances a timeline to its next status
func (c *BackendClient) UpdateTimelineStatus(ctx context.Context, token string, timelineID int64) error {
	path := fmt.Sprintf("/api/v1/TimelineDelivery/%d/status", timelineID)

	return c.do(ctx, http.MethodPut, path, token, nil, nil)
}

// CreateFeedback creates a feedback record for an order
func (c *BackendClient) CreateFeedback(ctx context.Context, token string, orderID int64, description string) error {
	payload := map[string]interface{}{
		"orderId":    orderID,
		"desciption": description,
	}

	return c.do(ctx, http.MethodPost, "/api/v1/Feedback", token, payload, nil)
}

// UpdateFeedback replaces the description of an existing feedback record
func (c *BackendClient) UpdateFeedback(ctx context.Context, token string, feedbackID int64, description string) error {
	path := fmt.Sprintf("/api/v1/Feedback?id=%d", feedbackID)

	payload := map[string]interface{}{
		"desciption": description,
	}

	return c.do(ctx, http.MethodPut, path, token, payload, nil)
}

// CreateTransaction records a wallet movement and returns the created record
func (c *BackendClient) CreateTransaction(ctx context.Context, token string, walletID int64, amount decimal.Decimal, paymentType models.PaymentType) (*models.Transaction, error) {
	payload := map[string]interface{}{
		"totalAmount": amount,
		"paymentType": paymentType,
		"walletId":    walletID,
	}

	var transaction models.Transaction

	if err := c.do(ctx, http.MethodPost, "/api/v1/Transaction", token, payload, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// DepositResult is the payment-gateway handoff returned by the deposit endpoint
type DepositResult struct {
	PayURL string `json:"payUrl"`
}

// Deposit starts a wallet top-up and returns the payment URL
func (c *BackendClient) Deposit(ctx context.Context, token string, amount decimal.Decimal, transactionID int64) (*DepositResult, error) {
	params := url.Values{}
	params.Set("amount", amount.String())
	params.Set("CommonId", fmt.Sprintf("%d", transactionID))

	path := "/api/v1/Wallet/wallets/deposit?" + params.Encode()

	var result DepositResult

	if err := c.do(ctx, http.MethodPost, path, token, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateWallet creates a default wallet for a user
func (c *BackendClient) CreateWallet(ctx context.Context, token string, userID int64) (*models.Wallet, error) {
	payload := map[string]interface{}{
		"userId":     userID,
		"walletType": "default",
	}

	var wallet models.Wallet

	if err := c.do(ctx, http.MethodPost, "/api/v1/Wallet", token, payload, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// UpdateWallet replaces a wallet record
func (c *BackendClient) UpdateWallet(ctx context.Context, token string, wallet models.Wallet) error {
	path := fmt.Sprintf("/api/v1/Wallet?id=%d", wallet.ID)

	return c.do(ctx, http.MethodPut, path, token, wallet, nil)
}

// Login exchanges credentials for a bearer token
func (c *BackendClient) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	var result struct {
		Token string `json:"token"`
	}

	if err := c.do(ctx, http.MethodPost, "/api/v1/Auth/login", "", payload, &result); err != nil {
		return "", err
	}
	return result.Token, nil
}

// Profile fetches the authenticated user's profile
func (c *BackendClient) Profile(ctx context.Context, token string) (*models.Profile, error) {
	var profile models.Profile

	if err := c.do(ctx, http.MethodGet, "/api/v1/User/profile", token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
