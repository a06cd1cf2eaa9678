package http

import (
	"order-tracking-service/internal/domain"
	"order-tracking-service/internal/timeline"
)

// OrderView is an order plus the list tab it belongs to.
type OrderView struct {
	domain.Order
	Bucket timeline.ListBucket `json:"bucket"`
}

type OrdersResponse struct {
	Orders       []OrderView                     `json:"orders"`
	Calculations map[string]timeline.Calculation `json:"calculations"`
	Total        int                             `json:"total"`
}

// CalendarDay carries at most dayMaxEvents pills; the rest collapse into a
// "+N more" counter like the month grid renders them.
type CalendarDay struct {
	Date   string              `json:"date"`
	Orders []timeline.DayOrder `json:"orders"`
	More   int                 `json:"more,omitempty"`
	Total  int                 `json:"total"`
}

type CalendarResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []CalendarDay `json:"days"`
}

type PaymentActionRequest struct {
	SuccessURL string `json:"successUrl" binding:"required,url"`
	CancelURL  string `json:"cancelUrl" binding:"required,url"`
}
