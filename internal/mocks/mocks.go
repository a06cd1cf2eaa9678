package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"order-tracking-service/internal/domain"
	"order-tracking-service/internal/infra"
)

// MockOrderSource mocks infra.OrderSourceInterface.
type MockOrderSource struct {
	mock.Mock
}

func (m *MockOrderSource) GetOrdersByBuyer(ctx context.Context, buyerID, token string) ([]domain.Order, error) {
	args := m.Called(ctx, buyerID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderSource) GetTrackingInfo(ctx context.Context, orderID, supplierID, token string) (*infra.TrackingInfoResponse, error) {
	args := m.Called(ctx, orderID, supplierID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.TrackingInfoResponse), args.Error(1)
}

func (m *MockOrderSource) ContinuePayment(ctx context.Context, orderID string, req infra.PaymentRequest, token string) (*infra.PaymentResponse, error) {
	args := m.Called(ctx, orderID, req, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.PaymentResponse), args.Error(1)
}

func (m *MockOrderSource) ApprovePriceChanges(ctx context.Context, orderID string, req infra.PaymentRequest, token string) (*infra.PaymentResponse, error) {
	args := m.Called(ctx, orderID, req, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.PaymentResponse), args.Error(1)
}

// MockSnapshotRepository mocks repository.SnapshotRepository.
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) SaveOrders(buyerID string, orders []domain.Order) error {
	args := m.Called(buyerID, orders)
	return args.Error(0)
}

func (m *MockSnapshotRepository) FindByBuyer(buyerID string) ([]domain.Order, error) {
	args := m.Called(buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

// MockPublisher mocks rabbitmq.PublisherInterface.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}
