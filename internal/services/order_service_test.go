package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"order-tracking-service/internal/domain"
	"order-tracking-service/internal/infra"
	"order-tracking-service/internal/mocks"
	"order-tracking-service/internal/timeline"
)

func fixtureOrders(now time.Time) []domain.Order {
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(time.RFC3339)
	}
	return []domain.Order{
		{
			OrderID:     "ORD-001",
			BuyerID:     "buyer-1",
			Status:      domain.StatusProduction,
			OrderType:   domain.TypeMain,
			CreatedAt:   day(-5),
			UpdatedAt:   day(-1),
			ProductSpec: map[string]any{
				"product_specifications": map[string]any{"product_name": "Ceramic Mug"},
			},
			TimelineData: &domain.TimelineData{
				OrderType: domain.TypeMain,
				Production: domain.TimelinePhase{
					Start:        day(-5),
					DurationDays: 10,
				},
				Shipping: &domain.TimelinePhase{
					DurationDays: 7,
				},
				TotalDurationDays: 17,
			},
		},
		{
			OrderID:        "ORD-002",
			BuyerID:        "buyer-1",
			Status:         domain.StatusProductionCompleted,
			OrderType:      domain.TypeMain,
			CreatedAt:      day(-20),
			UpdatedAt:      day(-2),
			ShipmentStatus: domain.ShipmentInTransit,
			SupplierID:     "sup-9",
		},
	}
}

func newTestService(source infra.OrderSourceInterface) *OrderService {
	svc := NewOrderService(source, nil, nil, time.Minute)
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local) }
	return svc
}

func TestListOrders_CachesUpstreamFetch(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	orders := fixtureOrders(now)

	source := new(mocks.MockOrderSource)
	source.On("GetOrdersByBuyer", mock.Anything, "buyer-1", "tok").
		Return(orders, nil).Once()

	svc := newTestService(source)

	got, calcs, err := svc.ListOrders(context.Background(), "buyer-1", "tok", "", timeline.SortByCreatedAt, timeline.SortDesc)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, calcs, 2)

	// second call must be served from the cache
	got, _, err = svc.ListOrders(context.Background(), "buyer-1", "tok", "", timeline.SortByCreatedAt, timeline.SortDesc)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	source.AssertExpectations(t)
}

func TestListOrders_FilterAndSort(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	orders := fixtureOrders(now)

	source := new(mocks.MockOrderSource)
	source.On("GetOrdersByBuyer", mock.Anything, "buyer-1", "").
		Return(orders, nil)

	svc := newTestService(source)

	got, calcs, err := svc.ListOrders(context.Background(), "buyer-1", "", "mug", timeline.SortByCreatedAt, timeline.SortDesc)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ORD-001", got[0].OrderID)
	assert.Contains(t, calcs, "ORD-001")
	assert.NotContains(t, calcs, "ORD-002")

	got, _, err = svc.ListOrders(context.Background(), "buyer-1", "", "", timeline.SortByCreatedAt, timeline.SortAsc)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ORD-002", got[0].OrderID, "oldest first when ascending")
}

func TestListOrders_FallsBackToSnapshot(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	orders := fixtureOrders(now)

	source := new(mocks.MockOrderSource)
	source.On("GetOrdersByBuyer", mock.Anything, "buyer-1", "").
		Return(nil, errors.New("connection refused"))

	snapshots := new(mocks.MockSnapshotRepository)
	snapshots.On("FindByBuyer", "buyer-1").Return(orders, nil)

	svc := NewOrderService(source, snapshots, nil, time.Minute)

	got, _, err := svc.ListOrders(context.Background(), "buyer-1", "", "", timeline.SortByCreatedAt, timeline.SortDesc)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	snapshots.AssertExpectations(t)
}

func TestListOrders_ErrorWhenNoSnapshot(t *testing.T) {
	source := new(mocks.MockOrderSource)
	source.On("GetOrdersByBuyer", mock.Anything, "buyer-1", "").
		Return(nil, errors.New("connection refused"))

	snapshots := new(mocks.MockSnapshotRepository)
	snapshots.On("FindByBuyer", "buyer-1").Return(nil, errors.New("no rows"))

	svc := NewOrderService(source, snapshots, nil, time.Minute)

	_, _, err := svc.ListOrders(context.Background(), "buyer-1", "", "", timeline.SortByCreatedAt, timeline.SortDesc)
	assert.EqualError(t, err, "connection refused")
}

func TestDashboard_SummarizesOrders(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	orders := fixtureOrders(now)

	source := new(mocks.MockOrderSource)
	source.On("GetOrdersByBuyer", mock.Anything, "buyer-1", "").
		Return(orders, nil)

	svc := newTestService(source)

	summary, err := svc.Dashboard(context.Background(), "buyer-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalOrders)
	require.Len(t, summary.StatusSegments, 2)
	assert.Equal(t, string(domain.StatusProduction), summary.StatusSegments[0].Status)
}

func TestCalendarMonth_UsesSharedFetch(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	orders := fixtureOrders(now)

	source := new(mocks.MockOrderSource)
	source.On("GetOrdersByBuyer", mock.Anything, "buyer-1", "").
		Return(orders, nil).Once()

	svc := newTestService(source)

	days, err := svc.CalendarMonth(context.Background(), "buyer-1", "", 2024, time.June)
	require.NoError(t, err)
	assert.NotEmpty(t, days)

	// list call right after reuses the cached fetch
	_, _, err = svc.ListOrders(context.Background(), "buyer-1", "", "", timeline.SortByCreatedAt, timeline.SortDesc)
	require.NoError(t, err)

	source.AssertExpectations(t)
}

func TestTrackingInfo_Cached(t *testing.T) {
	info := &infra.TrackingInfoResponse{
		OrderID:        "ORD-002",
		SupplierID:     "sup-9",
		TrackingNumber: "TRK123",
		HasTracking:    true,
	}

	source := new(mocks.MockOrderSource)
	source.On("GetTrackingInfo", mock.Anything, "ORD-002", "sup-9", "").
		Return(info, nil).Once()

	svc := newTestService(source)

	got, err := svc.TrackingInfo(context.Background(), "ORD-002", "sup-9", "")
	require.NoError(t, err)
	assert.Equal(t, "TRK123", got.TrackingNumber)

	got, err = svc.TrackingInfo(context.Background(), "ORD-002", "sup-9", "")
	require.NoError(t, err)
	assert.True(t, got.HasTracking)

	source.AssertExpectations(t)
}

func TestContinuePayment_InvalidatesCacheAndPublishes(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	orders := fixtureOrders(now)
	resp := &infra.PaymentResponse{
		Payment: domain.PaymentSession{CheckoutSessionID: "cs_123"},
		Message: "checkout session created",
		OrderID: "ORD-001",
	}

	source := new(mocks.MockOrderSource)
	source.On("GetOrdersByBuyer", mock.Anything, "buyer-1", "").
		Return(orders, nil).Twice()
	source.On("ContinuePayment", mock.Anything, "ORD-001", mock.Anything, "").
		Return(resp, nil)

	published := make(chan struct{})
	publisher := new(mocks.MockPublisher)
	publisher.On("Publish", mock.Anything, domain.EventPaymentResumed, mock.Anything).
		Run(func(args mock.Arguments) {
			event := args.Get(2).(domain.OrderPaymentEvent)
			assert.Equal(t, "ORD-001", event.OrderID)
			assert.Equal(t, "cs_123", event.CheckoutSessionID)
			close(published)
		}).
		Return(nil)

	svc := NewOrderService(source, nil, publisher, time.Minute)

	// warm the cache first
	_, _, err := svc.ListOrders(context.Background(), "buyer-1", "", "", timeline.SortByCreatedAt, timeline.SortDesc)
	require.NoError(t, err)

	got, err := svc.ContinuePayment(context.Background(), "buyer-1", "ORD-001", infra.PaymentRequest{}, "")
	require.NoError(t, err)
	assert.Equal(t, "cs_123", got.Payment.CheckoutSessionID)

	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("payment event was not published")
	}

	// cache was invalidated, so this hits the upstream again
	_, _, err = svc.ListOrders(context.Background(), "buyer-1", "", "", timeline.SortByCreatedAt, timeline.SortDesc)
	require.NoError(t, err)

	source.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestApprovePriceChanges_PropagatesUpstreamError(t *testing.T) {
	source := new(mocks.MockOrderSource)
	source.On("ApprovePriceChanges", mock.Anything, "ORD-001", mock.Anything, "").
		Return(nil, errors.New("status 502"))

	publisher := new(mocks.MockPublisher)

	svc := NewOrderService(source, nil, publisher, time.Minute)

	_, err := svc.ApprovePriceChanges(context.Background(), "buyer-1", "ORD-001", infra.PaymentRequest{}, "")
	assert.EqualError(t, err, "status 502")
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
