package domain

import "time"

// OrderPaymentEvent is emitted when a buyer resumes a checkout or approves
// updated prices for an order.
type OrderPaymentEvent struct {
	OrderID           string    `json:"orderId"`
	BuyerID           string    `json:"buyerId"`
	CheckoutSessionID string    `json:"checkoutSessionId"`
	OccurredAt        time.Time `json:"occurredAt"`
}

const (
	EventPaymentResumed      = "order.payment_resumed"
	EventPriceChangeApproved = "order.price_changes_approved"
)
