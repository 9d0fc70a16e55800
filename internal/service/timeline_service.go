package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/koiexpress/shipping-gateway/internal/models"
	"github.com/koiexpress/shipping-gateway/internal/session"
	"github.com/koiexpress/shipping-gateway/pkg/errors"
	"github.com/koiexpress/shipping-gateway/pkg/format"
	"github.com/koiexpress/shipping-gateway/pkg/logger"
)

// unresolvedLabel marks a manifest cell whose foreign key could not be
// resolved against the flat collections
const unresolvedLabel = "N/A"

// TimelineService builds delivery-run views by joining flat backend
// resources client-side
type TimelineService struct {
	backend Backend
	logger  logger.Logger
}

// NewTimelineService creates a new TimelineService
func NewTimelineService(backend Backend, logger logger.Logger) *TimelineService {
	return &TimelineService{
		backend: backend,
		logger:  logger,
	}
}

// TimelineView is one delivery run with its vehicle and route resolved
type TimelineView struct {
	ID            int64  `json:"id"`
	VehicleName   string `json:"vehicleName"`
	Route         string `json:"route"`
	StartDay      string `json:"startDay"`
	EndDay        string `json:"endDay"`
	TimeCompleted string `json:"timeCompleted"`
	Status        string `json:"status"`
	StatusLabel   string `json:"statusLabel"`
	StatusColor   string `json:"statusColor"`
	CanAdvance    bool   `json:"canAdvance"`
}

// ManifestRow is one order detail loaded on a timeline. Rows whose detail
// cannot be resolved to an order keep the placeholder and stay in the
// sequence so the table keeps row-count parity with the cargo endpoint.
type ManifestRow struct {
	DetailID     int64   `json:"detailId"`
	OrderID      string  `json:"orderId"`
	BoxOptionID  string  `json:"boxOptionId"`
	BoxName      string  `json:"boxName"`
	Volume       float64 `json:"volume"`
	StatusLabel  string  `json:"statusLabel"`
	FirstOfOrder bool    `json:"firstOfOrder"`
	RowSpan      int     `json:"rowSpan"`
	CanComplete  bool    `json:"canComplete"`
}

// TimelineManifest is the denormalized delivery-run view: run header,
// capacity figures, and one row per loaded order detail grouped by order
type TimelineManifest struct {
	TimelineID    int64         `json:"timelineId"`
	VehicleName   string        `json:"vehicleName"`
	VehicleVolume float64       `json:"vehicleVolume"`
	BranchName    string        `json:"branchName"`
	StartPoint    string        `json:"startPoint"`
	EndPoint      string        `json:"endPoint"`
	StartDay      string        `json:"startDay"`
	EndDay        string        `json:"endDay"`
	StatusLabel   string        `json:"statusLabel"`
	CurrentVolume float64       `json:"currentVolume"`
	MaxVolume     float64       `json:"maxVolume"`
	Rows          []ManifestRow `json:"rows"`
}

// ListTimelines returns the active delivery runs, optionally filtered by
// branch or restricted to completed runs (the delivery-history view)
func (s *TimelineService) ListTimelines(ctx context.Context, sess *session.Session, branchID int64, onlyCompleted bool) ([]TimelineView, error) {
	var (
		timelines []models.TimelineDelivery
		vehicles  []models.Vehicle
		branches  []models.Branch
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		timelines, err = s.backend.EnabledTimelines(gctx, sess.Token)
		return err
	})
	g.Go(func() error {
		var err error
		vehicles, err = s.backend.Vehicles(gctx, sess.Token)
		return err
	})
	g.Go(func() error {
		var err error
		branches, err = s.backend.Branches(gctx, sess.Token)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	vehicleByID := make(map[int64]models.Vehicle, len(vehicles))
	for _, v := range vehicles {
		vehicleByID[v.ID] = v
	}

	branchByID := make(map[int64]models.Branch, len(branches))
	for _, b := range branches {
		branchByID[b.ID] = b
	}

	views := make([]TimelineView, 0, len(timelines))

	for _, t := range timelines {
		if branchID != 0 && t.BranchID != branchID {
			continue
		}
		if onlyCompleted && t.IsCompleted != models.TimelineStatusCompleted {
			continue
		}

		view := TimelineView{
			ID:          t.ID,
			VehicleName: unknownOr(vehicleByID[t.VehicleID].Name),
			StartDay:    format.DateTime(t.StartDay),
			EndDay:      format.DateTime(t.EndDay),
			Status:      string(t.IsCompleted),
			StatusLabel: t.IsCompleted.Label(),
			StatusColor: t.IsCompleted.Color(),
			CanAdvance:  t.IsCompleted != models.TimelineStatusCompleted,
		}

		if b, ok := branchByID[t.BranchID]; ok {
			view.Route = b.StartPoint + " - " + b.EndPoint
		} else {
			view.Route = unknownLabelText
		}

		if t.TimeCompleted != "" {
			view.TimeCompleted = format.DateTime(t.TimeCompleted)
		} else {
			view.TimeCompleted = "Chưa hoàn thành"
		}

		views = append(views, view)
	}

	return views, nil
}

// BuildManifest assembles the denormalized view of one delivery run. All
// collection fetches are issued once per resource type; each membership row
// is then resolved detail -> order detail -> order in memory.
func (s *TimelineService) BuildManifest(ctx context.Context, sess *session.Session, timelineID int64) (*TimelineManifest, error) {
	timeline, err := s.backend.TimelineByID(ctx, sess.Token, timelineID)

	if err != nil {
		return nil, err
	}

	var (
		cargo    *models.TimelineCargo
		orders   []models.Order
		details  []models.OrderDetail
		vehicles []models.Vehicle
		branches []models.Branch
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		cargo, err = s.backend.TimelineCargo(gctx, sess.Token, timelineID)
		return err
	})
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
		vehicles, err = s.backend.Vehicles(gctx, sess.Token)
		return err
	})
	g.Go(func() error {
		var err error
		branches, err = s.backend.Branches(gctx, sess.Token)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	detailByID := make(map[int64]models.OrderDetail, len(details))
	for _, d := range details {
		detailByID[d.ID] = d
	}

	orderByID := make(map[int64]models.Order, len(orders))
	for _, o := range orders {
		orderByID[o.ID] = o
	}

	manifest := &TimelineManifest{
		TimelineID:    timeline.ID,
		StartDay:      format.DateTime(timeline.StartDay),
		EndDay:        format.DateTime(timeline.EndDay),
		StatusLabel:   timeline.IsCompleted.Label(),
		CurrentVolume: cargo.CurrentVolume,
		MaxVolume:     cargo.MaxVolume,
	}

	for _, v := range vehicles {
		if v.ID == timeline.VehicleID {
			manifest.VehicleName = v.Name
			manifest.VehicleVolume = v.VehicleVolume
			break
		}
	}

	for _, b := range branches {
		if b.ID == timeline.BranchID {
			manifest.BranchName = b.Name
			manifest.StartPoint = b.StartPoint
			manifest.EndPoint = b.EndPoint
			break
		}
	}

	manifest.Rows = buildManifestRows(cargo.OrderDetails, detailByID, orderByID)

	return manifest, nil
}

// buildManifestRows resolves each membership row and computes the display
// grouping. The group header lands on the first row of each resolved order
// ID; its span counts every row sharing that ID across the whole sequence,
// so non-contiguous rows of one order share a single header. Unresolved
// rows stand alone.
func buildManifestRows(cargoRows []models.OrderDetailInTimeline, detailByID map[int64]models.OrderDetail, orderByID map[int64]models.Order) []ManifestRow {
	rows := make([]ManifestRow, 0, len(cargoRows))

	spanByOrder := make(map[string]int)

	for _, cr := range cargoRows {
		row := ManifestRow{
			DetailID:    cr.DetailID,
			OrderID:     unresolvedLabel,
			BoxOptionID: unresolvedLabel,
			BoxName:     cr.BoxName,
			Volume:      cr.Volume,
			StatusLabel: unresolvedLabel,
		}

		if detail, ok := detailByID[cr.DetailID]; ok {
			if order, ok := orderByID[detail.OrderID]; ok {
				row.OrderID = fmt.Sprintf("%d", order.ID)
				row.BoxOptionID = fmt.Sprintf("%d", detail.BoxOptionID)
				row.StatusLabel = order.IsShipping.Label()
				row.CanComplete = !order.IsShipping.IsTerminal()

				spanByOrder[row.OrderID]++
			}
		}

		rows = append(rows, row)
	}

	seen := make(map[string]bool)

	for i := range rows {
		if rows[i].OrderID == unresolvedLabel {
			// each unknown detail renders as its own group
			rows[i].FirstOfOrder = true
			rows[i].RowSpan = 1
			continue
		}

		if !seen[rows[i].OrderID] {
			seen[rows[i].OrderID] = true
			rows[i].FirstOfOrder = true
			rows[i].RowSpan = spanByOrder[rows[i].OrderID]
		}
	}

	return rows
}

// CompleteOrder marks an order as delivered. The full record is sent back to
// the backend; terminal orders are rejected before any request is made.
func (s *TimelineService) CompleteOrder(ctx context.Context, sess *session.Session, orderID int64) error {
	orders, err := s.backend.Orders(ctx, sess.Token)

	if err != nil {
		return err
	}

	for _, order := range orders {
		if order.ID != orderID {
			continue
		}

		if order.IsShipping.IsTerminal() {
			return errors.NewConflictError("order is already in a terminal state").
				WithContext("orderId", orderID)
		}

		order.IsShipping = models.OrderStatusCompleted

		if err := s.backend.UpdateOrder(ctx, sess.Token, order); err != nil {
			s.logger.Error("Failed to update order status", "error", err, "orderId", orderID)
			return err
		}

		s.logger.Info("Order marked completed", "orderId", orderID)
		return nil
	}

	return errors.NewNotFoundError("order not found").WithContext("orderId", orderID)
}

// AdvanceTimeline moves a delivery run to its next status. Completed runs
// are immutable.
func (s *TimelineService) AdvanceTimeline(ctx context.Context, sess *session.Session, timelineID int64) error {
	timeline, err := s.backend.TimelineByID(ctx, sess.Token, timelineID)

	if err != nil {
		return err
	}

	if timeline.IsCompleted == models.TimelineStatusCompleted {
		return errors.NewConflictError("timeline is already completed").
			WithContext("timelineId", timelineID)
	}

	if err := s.backend.UpdateTimelineStatus(ctx, sess.Token, timelineID); err != nil {
		s.logger.Error("Failed to update timeline status", "error", err, "timelineId", timelineID)
		return err
	}

	s.logger.Info("Timeline status advanced", "timelineId", timelineID, "from", timeline.IsCompleted)
	return nil
}

const unknownLabelText = "Không xác định"

func unknownOr(name string) string {
	if name == "" {
		return unknownLabelText
	}
	return name
}
