package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"order-tracking-service/internal/domain"
	"order-tracking-service/internal/infra"
	rabbit "order-tracking-service/internal/infra/rabbitmq"
	"order-tracking-service/internal/logger"
	"order-tracking-service/internal/repository"
	"order-tracking-service/internal/timeline"
)

// OrderService assembles the buyer-facing views: it fetches orders from the
// upstream source (with a TTL cache, request collapsing and a snapshot
// fallback) and derives the timeline, calendar and dashboard view-models.
// Snapshots and the publisher are optional collaborators.
type OrderService struct {
	source    infra.OrderSourceInterface
	snapshots repository.SnapshotRepository
	publisher rabbit.PublisherInterface
	cache     *infra.TTLCache
	group     singleflight.Group
	now       func() time.Time
}

func NewOrderService(
	source infra.OrderSourceInterface,
	snapshots repository.SnapshotRepository,
	publisher rabbit.PublisherInterface,
	cacheTTL time.Duration,
) *OrderService {
	return &OrderService{
		source:    source,
		snapshots: snapshots,
		publisher: publisher,
		cache:     infra.NewTTLCache(cacheTTL),
		now:       time.Now,
	}
}

// ListOrders returns the buyer's orders filtered and sorted, together with
// the timeline calculation for every order in the result.
func (s *OrderService) ListOrders(
	ctx context.Context,
	buyerID, token, query string,
	field timeline.SortField,
	dir timeline.SortDirection,
) ([]domain.Order, map[string]timeline.Calculation, error) {
	orders, err := s.fetchOrders(ctx, buyerID, token)
	if err != nil {
		return nil, nil, err
	}

	result := timeline.SortOrders(timeline.FilterOrders(orders, query), field, dir)
	return result, timeline.CalculateAll(result, s.now()), nil
}

// CalendarMonth buckets the buyer's orders into the days of one month.
func (s *OrderService) CalendarMonth(
	ctx context.Context,
	buyerID, token string,
	year int,
	month time.Month,
) (map[string][]timeline.DayOrder, error) {
	orders, err := s.fetchOrders(ctx, buyerID, token)
	if err != nil {
		return nil, err
	}
	return timeline.MonthOccupancy(orders, year, month), nil
}

// Dashboard reduces the buyer's orders (optionally narrowed by a search
// query) into the dashboard summary.
func (s *OrderService) Dashboard(ctx context.Context, buyerID, token, query string) (timeline.Summary, error) {
	orders, err := s.fetchOrders(ctx, buyerID, token)
	if err != nil {
		return timeline.Summary{}, err
	}
	return timeline.Summarize(timeline.FilterOrders(orders, query), s.now()), nil
}

// TrackingInfo returns carrier tracking for one order, cached with the same
// TTL as the order list.
func (s *OrderService) TrackingInfo(ctx context.Context, orderID, supplierID, token string) (*infra.TrackingInfoResponse, error) {
	cacheKey := "tracking:" + orderID + ":" + supplierID
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*infra.TrackingInfoResponse), nil
	}

	info, err := s.source.GetTrackingInfo(ctx, orderID, supplierID, token)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, info)
	return info, nil
}

// ContinuePayment resumes the buyer's checkout for an order whose payment
// was interrupted or adjusted.
func (s *OrderService) ContinuePayment(
	ctx context.Context,
	buyerID, orderID string,
	req infra.PaymentRequest,
	token string,
) (*infra.PaymentResponse, error) {
	resp, err := s.source.ContinuePayment(ctx, orderID, req, token)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(ordersCacheKey(buyerID))
	go s.publishPaymentEvent(domain.EventPaymentResumed, buyerID, orderID, resp)

	return resp, nil
}

// ApprovePriceChanges accepts an admin price adjustment and opens a new
// checkout session for the difference.
func (s *OrderService) ApprovePriceChanges(
	ctx context.Context,
	buyerID, orderID string,
	req infra.PaymentRequest,
	token string,
) (*infra.PaymentResponse, error) {
	resp, err := s.source.ApprovePriceChanges(ctx, orderID, req, token)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(ordersCacheKey(buyerID))
	go s.publishPaymentEvent(domain.EventPriceChangeApproved, buyerID, orderID, resp)

	return resp, nil
}

// fetchOrders serves from the TTL cache when possible and collapses
// concurrent upstream fetches for the same buyer into one request. When the
// upstream fails, the last persisted snapshot is served instead.
func (s *OrderService) fetchOrders(ctx context.Context, buyerID, token string) ([]domain.Order, error) {
	cacheKey := ordersCacheKey(buyerID)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]domain.Order), nil
	}

	result, err, _ := s.group.Do(cacheKey, func() (any, error) {
		orders, fetchErr := s.source.GetOrdersByBuyer(ctx, buyerID, token)
		if fetchErr != nil {
			return s.restoreSnapshot(buyerID, fetchErr)
		}

		s.cache.Set(cacheKey, orders)
		if s.snapshots != nil {
			go s.saveSnapshot(buyerID, orders)
		}
		return orders, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Order), nil
}

func (s *OrderService) restoreSnapshot(buyerID string, fetchErr error) (any, error) {
	if s.snapshots == nil {
		return nil, fetchErr
	}

	orders, err := s.snapshots.FindByBuyer(buyerID)
	if err != nil || len(orders) == 0 {
		return nil, fetchErr
	}

	logger.Log.Warn("order api unreachable, serving last snapshot",
		zap.String("buyerId", buyerID), zap.Error(fetchErr))
	return orders, nil
}

func (s *OrderService) saveSnapshot(buyerID string, orders []domain.Order) {
	if err := s.snapshots.SaveOrders(buyerID, orders); err != nil {
		logger.Log.Error("failed to persist order snapshot",
			zap.String("buyerId", buyerID), zap.Error(err))
	}
}

func (s *OrderService) publishPaymentEvent(event, buyerID, orderID string, resp *infra.PaymentResponse) {
	if s.publisher == nil {
		return
	}

	payload := domain.OrderPaymentEvent{
		OrderID:           orderID,
		BuyerID:           buyerID,
		CheckoutSessionID: resp.Payment.CheckoutSessionID,
		OccurredAt:        s.now(),
	}
	if err := s.publisher.Publish(context.Background(), event, payload); err != nil {
		logger.Log.Error("failed to publish payment event",
			zap.String("event", event), zap.String("orderId", orderID), zap.Error(err))
	}
}

func ordersCacheKey(buyerID string) string {
	return "orders:" + buyerID
}
