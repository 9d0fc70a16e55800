package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koiexpress/shipping-gateway/internal/models"
	"github.com/koiexpress/shipping-gateway/internal/session"
	"github.com/koiexpress/shipping-gateway/pkg/errors"
	"github.com/koiexpress/shipping-gateway/pkg/logger"
)

func testSession() *session.Session {
	return &session.Session{ID: "s1", Token: "t", UserID: 7}
}

func TestBuildManifestGroupsRowsByOrder(t *testing.T) {
	// Order 10 appears at positions 0 and 2 with order 11 between them. The
	// header lands on position 0 and spans both rows of order 10.
	backend := &fakeBackend{
		timelines: []models.TimelineDelivery{
			{ID: 1, VehicleID: 1, BranchID: 1, IsCompleted: models.TimelineStatusDelivering},
		},
		cargo: map[int64]*models.TimelineCargo{
			1: {
				CurrentVolume: 5,
				MaxVolume:     20,
				OrderDetails: []models.OrderDetailInTimeline{
					{DetailID: 101, BoxName: "Medium Box", Volume: 2},
					{DetailID: 201, BoxName: "Small Box", Volume: 1},
					{DetailID: 102, BoxName: "Medium Box", Volume: 2},
				},
			},
		},
		details: []models.OrderDetail{
			{ID: 101, OrderID: 10, BoxOptionID: 1},
			{ID: 102, OrderID: 10, BoxOptionID: 2},
			{ID: 201, OrderID: 11, BoxOptionID: 3},
		},
		orders: []models.Order{
			{ID: 10, IsShipping: models.OrderStatusDelivering},
			{ID: 11, IsShipping: models.OrderStatusDelivering},
		},
		vehicles: []models.Vehicle{{ID: 1, Name: "Truck A", VehicleVolume: 20}},
		branches: []models.Branch{{ID: 1, Name: "HN-HCM", StartPoint: "Hà Nội", EndPoint: "Hồ Chí Minh"}},
	}

	svc := NewTimelineService(backend, logger.NewNopLogger())

	manifest, err := svc.BuildManifest(context.Background(), testSession(), 1)
	require.NoError(t, err)

	require.Len(t, manifest.Rows, 3)

	assert.Equal(t, "10", manifest.Rows[0].OrderID)
	assert.True(t, manifest.Rows[0].FirstOfOrder)
	assert.Equal(t, 2, manifest.Rows[0].RowSpan)

	assert.Equal(t, "11", manifest.Rows[1].OrderID)
	assert.True(t, manifest.Rows[1].FirstOfOrder)
	assert.Equal(t, 1, manifest.Rows[1].RowSpan)

	// second row of order 10 shares the header at position 0
	assert.Equal(t, "10", manifest.Rows[2].OrderID)
	assert.False(t, manifest.Rows[2].FirstOfOrder)
	assert.Equal(t, 0, manifest.Rows[2].RowSpan)

	assert.Equal(t, "Truck A", manifest.VehicleName)
	assert.Equal(t, "Hà Nội", manifest.StartPoint)
	assert.Equal(t, 5.0, manifest.CurrentVolume)
	assert.Equal(t, 20.0, manifest.MaxVolume)
}

func TestBuildManifestKeepsUnresolvedRows(t *testing.T) {
	backend := &fakeBackend{
		timelines: []models.TimelineDelivery{
			{ID: 1, IsCompleted: models.TimelineStatusDelivering},
		},
		cargo: map[int64]*models.TimelineCargo{
			1: {
				OrderDetails: []models.OrderDetailInTimeline{
					{DetailID: 101, BoxName: "Medium Box", Volume: 2},
					{DetailID: 999, BoxName: "Large Box", Volume: 4},
				},
			},
		},
		details: []models.OrderDetail{{ID: 101, OrderID: 10, BoxOptionID: 1}},
		orders:  []models.Order{{ID: 10, IsShipping: models.OrderStatusDelivering}},
	}

	svc := NewTimelineService(backend, logger.NewNopLogger())

	manifest, err := svc.BuildManifest(context.Background(), testSession(), 1)
	require.NoError(t, err)

	// the dangling detail keeps its row so counts stay honest
	require.Len(t, manifest.Rows, 2)

	assert.Equal(t, "N/A", manifest.Rows[1].OrderID)
	assert.Equal(t, "N/A", manifest.Rows[1].BoxOptionID)
	assert.Equal(t, "N/A", manifest.Rows[1].StatusLabel)
	assert.True(t, manifest.Rows[1].FirstOfOrder)
	assert.Equal(t, 1, manifest.Rows[1].RowSpan)
	assert.False(t, manifest.Rows[1].CanComplete)
}

func TestListTimelinesFilters(t *testing.T) {
	backend := &fakeBackend{
		timelines: []models.TimelineDelivery{
			{ID: 1, BranchID: 1, IsCompleted: models.TimelineStatusDelivering},
			{ID: 2, BranchID: 2, IsCompleted: models.TimelineStatusCompleted, TimeCompleted: "2024-03-01T10:00:00"},
			{ID: 3, BranchID: 1, IsCompleted: models.TimelineStatusCompleted},
		},
		vehicles: []models.Vehicle{},
		branches: []models.Branch{{ID: 1, StartPoint: "A", EndPoint: "B"}},
	}

	svc := NewTimelineService(backend, logger.NewNopLogger())

	all, err := svc.ListTimelines(context.Background(), testSession(), 0, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	branch1, err := svc.ListTimelines(context.Background(), testSession(), 1, false)
	require.NoError(t, err)
	assert.Len(t, branch1, 2)

	completed, err := svc.ListTimelines(context.Background(), testSession(), 0, true)
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	// unknown vehicle and route degrade to the placeholder label
	assert.Equal(t, "Không xác định", branch1[0].VehicleName)
	assert.Equal(t, "A - B", branch1[0].Route)
	assert.Equal(t, "Chưa hoàn thành", branch1[0].TimeCompleted)
}

func TestCompleteOrderRejectsTerminalStates(t *testing.T) {
	backend := &fakeBackend{
		orders: []models.Order{
			{ID: 10, IsShipping: models.OrderStatusCompleted},
			{ID: 11, IsShipping: models.OrderStatusCancelled},
			{ID: 12, IsShipping: models.OrderStatusDelivering},
		},
	}

	svc := NewTimelineService(backend, logger.NewNopLogger())

	err := svc.CompleteOrder(context.Background(), testSession(), 10)
	assert.Equal(t, 409, errors.StatusOf(err))

	err = svc.CompleteOrder(context.Background(), testSession(), 11)
	assert.Equal(t, 409, errors.StatusOf(err))

	require.NoError(t, svc.CompleteOrder(context.Background(), testSession(), 12))
	require.Len(t, backend.updatedOrders, 1)
	assert.Equal(t, models.OrderStatusCompleted, backend.updatedOrders[0].IsShipping)
}

func TestCompleteOrderUnknownOrder(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewTimelineService(backend, logger.NewNopLogger())

	err := svc.CompleteOrder(context.Background(), testSession(), 404)
	assert.True(t, errors.IsNotFound(err))
}

func TestAdvanceTimelineCompletedIsImmutable(t *testing.T) {
	backend := &fakeBackend{
		timelines: []models.TimelineDelivery{
			{ID: 1, IsCompleted: models.TimelineStatusCompleted},
			{ID: 2, IsCompleted: models.TimelineStatusPending},
		},
	}

	svc := NewTimelineService(backend, logger.NewNopLogger())

	err := svc.AdvanceTimeline(context.Background(), testSession(), 1)
	assert.Equal(t, 409, errors.StatusOf(err))
	assert.Empty(t, backend.advancedTimelines)

	require.NoError(t, svc.AdvanceTimeline(context.Background(), testSession(), 2))
	assert.Equal(t, []int64{2}, backend.advancedTimelines)
}
