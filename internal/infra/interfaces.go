package infra

import (
	"context"

	"order-tracking-service/internal/domain"
)

type OrderSourceInterface interface {
	GetOrdersByBuyer(ctx context.Context, buyerID, token string) ([]domain.Order, error)
	GetTrackingInfo(ctx context.Context, orderID, supplierID, token string) (*TrackingInfoResponse, error)
	ContinuePayment(ctx context.Context, orderID string, req PaymentRequest, token string) (*PaymentResponse, error)
	ApprovePriceChanges(ctx context.Context, orderID string, req PaymentRequest, token string) (*PaymentResponse, error)
}

var _ OrderSourceInterface = (*OrderClient)(nil)
var _ OrderSourceInterface = (*MockSource)(nil)
