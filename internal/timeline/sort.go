package timeline

import (
	"sort"
	"strings"

	"order-tracking-service/internal/domain"
)

type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortOrders returns a copy of orders sorted by the given date field.
// Unknown fields fall back to createdAt, unknown directions to descending.
func SortOrders(orders []domain.Order, field SortField, dir SortDirection) []domain.Order {
	sorted := make([]domain.Order, len(orders))
	copy(sorted, orders)

	key := func(o *domain.Order) int64 {
		value := o.CreatedAt
		if field == SortByUpdatedAt {
			value = o.UpdatedAt
		}
		return parseDate(value, "").UnixMilli()
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if dir == SortAsc {
			return key(&sorted[i]) < key(&sorted[j])
		}
		return key(&sorted[i]) > key(&sorted[j])
	})
	return sorted
}

type ListBucket string

const (
	BucketActive    ListBucket = "active"
	BucketShipping  ListBucket = "shipping"
	BucketCompleted ListBucket = "completed"
)

// BucketOf assigns an order to one of the three list tabs: production still
// running, shipment underway, or delivered.
func BucketOf(order *domain.Order) ListBucket {
	if order.Status != domain.StatusProductionCompleted {
		return BucketActive
	}
	if order.ShipmentStatus == domain.ShipmentDelivered {
		return BucketCompleted
	}
	return BucketShipping
}

// FilterOrders keeps orders whose product name, order id, quote id or
// supplier id contains the query, case-insensitively. An empty query keeps
// everything.
func FilterOrders(orders []domain.Order, query string) []domain.Order {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return orders
	}

	filtered := make([]domain.Order, 0, len(orders))
	for i := range orders {
		order := &orders[i]
		if strings.Contains(strings.ToLower(order.ProductName()), q) ||
			strings.Contains(strings.ToLower(order.OrderID), q) ||
			strings.Contains(strings.ToLower(order.QuoteID), q) ||
			strings.Contains(strings.ToLower(order.SupplierID), q) {
			filtered = append(filtered, *order)
		}
	}
	return filtered
}
