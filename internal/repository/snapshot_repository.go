package repository

import (
	"order-tracking-service/internal/domain"
)

// SnapshotRepository persists the last order list successfully fetched from
// the upstream API, so the tracking UI keeps working when the upstream is
// down.
type SnapshotRepository interface {
	SaveOrders(buyerID string, orders []domain.Order) error
	FindByBuyer(buyerID string) ([]domain.Order, error)
}
