package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/koiexpress/shipping-gateway/internal/models"
	"github.com/koiexpress/shipping-gateway/internal/session"
	"github.com/koiexpress/shipping-gateway/pkg/errors"
	"github.com/koiexpress/shipping-gateway/pkg/format"
	"github.com/koiexpress/shipping-gateway/pkg/logger"
	"github.com/koiexpress/shipping-gateway/pkg/paginate"
)

// Surcharges added on top of the distance price for domestic delivery,
// keyed by box size substring.
var localSurcharges = []struct {
	nameContains string
	amount       int64
}{
	{"Medium", 150000},
	{"Large", 350000},
}

// OrderService assembles the customer's order history and the packed-box
// detail view
type OrderService struct {
	backend  Backend
	logger   logger.Logger
	pageSize int
}

// NewOrderService creates a new OrderService
func NewOrderService(backend Backend, logger logger.Logger, pageSize int) *OrderService {
	if pageSize < 1 {
		pageSize = 5
	}

	return &OrderService{
		backend:  backend,
		logger:   logger,
		pageSize: pageSize,
	}
}

// OrderView is one order row in the history list
type OrderView struct {
	ID              int64  `json:"id"`
	Status          string `json:"status"`
	StatusLabel     string `json:"statusLabel"`
	StatusColor     string `json:"statusColor"`
	IsPayment       bool   `json:"isPayment"`
	TotalFee        string `json:"totalFee"`
	ReceiverName    string `json:"receiverName"`
	ReceiverPhone   string `json:"receiverPhone"`
	ReceiverAddress string `json:"receiverAddress"`
	HasFeedback     bool   `json:"hasFeedback"`
	CanFeedback     bool   `json:"canFeedback"`
}

// OrderHistoryPage is one page of the user's order history
type OrderHistoryPage struct {
	Orders     []OrderView `json:"orders"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
}

// History returns the caller's orders, newest first, with feedback flags.
// The whole page state is rebuilt from the backend on every call.
func (s *OrderService) History(ctx context.Context, sess *session.Session, page int) (*OrderHistoryPage, error) {
	var (
		orders   []models.Order
		feedback []models.Feedback
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		orders, err = s.backend.Orders(gctx, sess.Token)
		return err
	})
	g.Go(func() error {
		var err error
		feedback, err = s.backend.Feedbacks(gctx, sess.Token)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	userOrders := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.UserID == sess.UserID {
			userOrders = append(userOrders, o)
		}
	}

	hasFeedback := AssociateFeedback(userOrders, feedback)

	sort.Slice(userOrders, func(i, j int) bool {
		return userOrders[i].ID > userOrders[j].ID
	})

	visible := paginate.Paginate(userOrders, page, s.pageSize)

	views := make([]OrderView, 0, len(visible))
	for _, o := range visible {
		views = append(views, OrderView{
			ID:              o.ID,
			Status:          string(o.IsShipping),
			StatusLabel:     o.IsShipping.Label(),
			StatusColor:     o.IsShipping.Color(),
			IsPayment:       o.IsPayment,
			TotalFee:        format.Price(o.TotalFee),
			ReceiverName:    o.ReceiverName,
			ReceiverPhone:   o.ReceiverPhone,
			ReceiverAddress: o.ReceiverAddress,
			HasFeedback:     hasFeedback[o.ID],
			CanFeedback:     o.IsShipping == models.OrderStatusCompleted,
		})
	}

	return &OrderHistoryPage{
		Orders:     views,
		Page:       page,
		TotalPages: paginate.TotalPages(len(userOrders), s.pageSize),
	}, nil
}

// AssociateFeedback computes which of the given orders already carry
// feedback. An order counts only when a feedback record references it with
// a non-empty description after trimming whitespace.
func AssociateFeedback(orders []models.Order, feedback []models.Feedback) map[int64]bool {
	known := make(map[int64]bool, len(orders))
	for _, o := range orders {
		known[o.ID] = true
	}

	result := make(map[int64]bool)

	for _, f := range feedback {
		if strings.TrimSpace(f.Description) == "" {
			continue
		}
		if known[f.OrderID] {
			result[f.OrderID] = true
		}
	}

	return result
}

// FishView is one koi fish line inside a box option
type FishView struct {
	FishID      int64   `json:"fishId"`
	Description string  `json:"description"`
	Size        float64 `json:"size"`
	Quantity    int     `json:"quantity"`
}

// BoxOptionView is one packed box with its fish and cost breakdown
type BoxOptionView struct {
	BoxOptionID int64      `json:"boxOptionId"`
	BoxName     string     `json:"boxName"`
	MaxVolume   float64    `json:"maxVolume"`
	TotalVolume float64    `json:"totalVolume"`
	ImportCost  string     `json:"importCost"`
	LocalCost   string     `json:"localCost"`
	Fishes      []FishView `json:"fishes"`
}

// OrderDetailView is the full denormalized order record shown in the
// order-detail modal
type OrderDetailView struct {
	OrderID       int64           `json:"orderId"`
	StatusLabel   string          `json:"statusLabel"`
	StatusColor   string          `json:"statusColor"`
	SenderName    string          `json:"senderName"`
	SenderAddress string          `json:"senderAddress"`
	ReceiverName  string          `json:"receiverName"`
	ReceiverPhone string          `json:"receiverPhone"`
	ReceiverAddr  string          `json:"receiverAddress"`
	TotalFee      string          `json:"totalFee"`
	TotalFish     int             `json:"totalFish"`
	Boxes         []BoxOptionView `json:"boxes"`
}

// Detail resolves one order through its details, box options, fish and
// distance tier. Fish lookups start only after the owning box option is
// known. A missing sub-resource degrades its rows, it never fails the view.
func (s *OrderService) Detail(ctx context.Context, sess *session.Session, orderID int64) (*OrderDetailView, error) {
	var (
		orders  []models.Order
		details []models.OrderDetail
		options []models.BoxOption
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		orders, err = s.backend.Orders(gctx, sess.Token)
		return err
	})
	g.Go(func() error {
		var err error
		details, err = s.backend.OrderDetails(gctx, sess.Token)
		return err
	})
	g.Go(func() error {
		var err error
		options, err = s.backend.BoxOptions(gctx, sess.Token)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var order *models.Order
	for i := range orders {
		if orders[i].ID == orderID {
			order = &orders[i]
			break
		}
	}

	if order == nil {
		return nil, errors.NewNotFoundError("order not found").WithContext("orderId", orderID)
	}

	matched := make([]models.OrderDetail, 0, 2)
	for _, d := range details {
		if d.OrderID == orderID {
			matched = append(matched, d)
		}
	}

	optionByID := make(map[int64]models.BoxOption, len(options))
	for _, opt := range options {
		optionByID[opt.BoxOptionID] = opt
	}

	matchedOptions := make([]models.BoxOption, 0, len(matched))
	for _, d := range matched {
		if opt, ok := optionByID[d.BoxOptionID]; ok {
			matchedOptions = append(matchedOptions, opt)
		}
	}

	fishByID := s.lookupFish(ctx, sess, matchedOptions)

	var distance *models.Distance

	if len(matched) > 0 && matched[0].DistanceID != 0 {
		d, err := s.backend.DistanceByID(ctx, sess.Token, matched[0].DistanceID)

		if err != nil {
			// degrade the cost column instead of failing the view
			s.logger.Warn("Failed to fetch distance tier", "error", err, "distanceId", matched[0].DistanceID)
		} else {
			distance = d
		}
	}

	view := &OrderDetailView{
		OrderID:       order.ID,
		StatusLabel:   order.IsShipping.Label(),
		StatusColor:   order.IsShipping.Color(),
		SenderName:    order.SenderName,
		SenderAddress: order.SenderAddress,
		ReceiverName:  order.ReceiverName,
		ReceiverPhone: order.ReceiverPhone,
		ReceiverAddr:  order.ReceiverAddress,
		TotalFee:      format.Price(order.TotalFee),
	}

	for _, opt := range matchedOptions {
		view.TotalFish += opt.FishCount()

		boxView := BoxOptionView{
			BoxOptionID: opt.BoxOptionID,
			BoxName:     opt.BoxName,
			MaxVolume:   opt.MaxVolume,
			TotalVolume: opt.TotalVolume,
			ImportCost:  format.Price(opt.Price),
			LocalCost:   format.Price(localCost(opt.BoxName, distance)),
		}

		for _, f := range opt.Fishes {
			fish, ok := fishByID[f.FishID]
			if !ok {
				continue
			}

			boxView.Fishes = append(boxView.Fishes, FishView{
				FishID:      fish.ID,
				Description: fish.FishDescription,
				Size:        fish.Size,
				Quantity:    f.Quantity,
			})
		}

		view.Boxes = append(view.Boxes, boxView)
	}

	return view, nil
}

// lookupFish fetches each referenced koi fish once. Lookups race freely;
// failures drop the fish line and nothing else.
func (s *OrderService) lookupFish(ctx context.Context, sess *session.Session, options []models.BoxOption) map[int64]models.KoiFish {
	ids := make([]int64, 0)
	seen := make(map[int64]bool)

	for _, opt := range options {
		for _, f := range opt.Fishes {
			if !seen[f.FishID] {
				seen[f.FishID] = true
				ids = append(ids, f.FishID)
			}
		}
	}

	result := make(map[int64]models.KoiFish, len(ids))

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			fish, err := s.backend.KoiFishByID(gctx, sess.Token, id)

			if err != nil {
				s.logger.Warn("Failed to fetch koi fish", "error", err, "fishId", id)
				return nil
			}

			mu.Lock()
			result[fish.ID] = *fish
			mu.Unlock()
			return nil
		})
	}

	// errors are swallowed above, Wait only synchronizes
	_ = g.Wait()

	return result
}

// localCost applies the domestic delivery surcharge rule: medium boxes add
// 150 000 VND and large boxes 350 000 VND on top of the distance price.
func localCost(boxName string, distance *models.Distance) decimal.Decimal {
	var surcharge int64

	for _, rule := range localSurcharges {
		if strings.Contains(boxName, rule.nameContains) {
			surcharge = rule.amount
			break
		}
	}

	if surcharge == 0 {
		return decimal.Zero
	}

	cost := decimal.NewFromInt(surcharge)

	if distance != nil {
		cost = cost.Add(distance.Price)
	}

	return cost
}

// SubmitFeedback creates or updates the caller's feedback for an order.
// Only completed orders accept feedback.
func (s *OrderService) SubmitFeedback(ctx context.Context, sess *session.Session, orderID int64, text string) error {
	text = strings.TrimSpace(text)

	if text == "" {
		return errors.NewInvalidInputError("feedback description must not be empty")
	}

	var (
		orders   []models.Order
		feedback []models.Feedback
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		orders, err = s.backend.Orders(gctx, sess.Token)
		return err
	})
	g.Go(func() error {
		var err error
		feedback, err = s.backend.Feedbacks(gctx, sess.Token)
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	var order *models.Order
	for i := range orders {
		if orders[i].ID == orderID {
			order = &orders[i]
			break
		}
	}

	if order == nil {
		return errors.NewNotFoundError("order not found").WithContext("orderId", orderID)
	}

	if order.IsShipping != models.OrderStatusCompleted {
		return errors.NewConflictError("feedback is only accepted for completed orders").
			WithContext("orderId", orderID)
	}

	for _, f := range feedback {
		if f.OrderID == orderID {
			return s.backend.UpdateFeedback(ctx, sess.Token, f.ID, text)
		}
	}

	return s.backend.CreateFeedback(ctx, sess.Token, orderID, text)
}
