package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"order-tracking-service/internal/domain"
)

func TestSummarize_DaysBuckets(t *testing.T) {
	now := time.Date(2024, 10, 10, 0, 0, 0, 0, time.Local)

	orders := []domain.Order{
		// shipping estimate of 5 days, no schedule: lands in 4-7
		{OrderID: "A", Status: domain.StatusProduction, CreatedAt: "2024-10-01", EstimatedShippingDaysMax: 5},
		// no schedule and no estimate: one-week default, also 4-7
		{OrderID: "B", Status: domain.StatusCreated, CreatedAt: "2024-10-09"},
		// long estimate lands in 15+
		{OrderID: "C", Status: domain.StatusProduction, CreatedAt: "2024-10-01", EstimatedShippingDaysMax: 20},
		// schedule already past its shipping end: overdue
		{
			OrderID: "D", Status: domain.StatusProduction, CreatedAt: "2024-09-01",
			TimelineData: &domain.TimelineData{
				Production: domain.TimelinePhase{Start: "2024-09-01", DurationDays: 5},
				Shipping:   &domain.TimelinePhase{DurationDays: 3},
				HasStarted: boolPtr(true),
			},
		},
	}

	summary := Summarize(orders, now)

	counts := map[string]int{}
	for _, b := range summary.DaysBuckets {
		counts[b.Label] = b.Count
	}
	assert.Equal(t, 2, counts["4-7"])
	assert.Equal(t, 1, counts["15+"])
	assert.Equal(t, 1, counts["overdue"])
	assert.Equal(t, 0, counts["0-3"])
	assert.Equal(t, 0, counts["8-14"])
	assert.Equal(t, 4, summary.TotalOrders)
}

func TestSummarize_BucketOrderIsFixed(t *testing.T) {
	summary := Summarize(nil, time.Now())

	labels := make([]string, 0, len(summary.DaysBuckets))
	for _, b := range summary.DaysBuckets {
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{"overdue", "0-3", "4-7", "8-14", "15+"}, labels)
}

func TestSummarize_StatusSegments(t *testing.T) {
	now := time.Date(2024, 10, 10, 0, 0, 0, 0, time.Local)

	orders := []domain.Order{
		{OrderID: "A", Status: domain.StatusProduction, CreatedAt: "2024-10-01"},
		{OrderID: "B", Status: domain.StatusProduction, CreatedAt: "2024-10-02"},
		{OrderID: "C", Status: domain.StatusCreated, CreatedAt: "2024-10-03"},
		{OrderID: "D", Status: domain.OrderStatus("ARCHIVED"), CreatedAt: "2024-10-04"},
	}

	summary := Summarize(orders, now)

	if assert.Len(t, summary.StatusSegments, 3) {
		// first-appearance order
		assert.Equal(t, "PRODUCTION", summary.StatusSegments[0].Status)
		assert.Equal(t, 2, summary.StatusSegments[0].Count)
		assert.Equal(t, 50, summary.StatusSegments[0].Percent)
		assert.Equal(t, "#0EA5E9", summary.StatusSegments[0].Color)

		assert.Equal(t, "CREATED", summary.StatusSegments[1].Status)
		assert.Equal(t, "#6B7280", summary.StatusSegments[1].Color)

		// unknown statuses get a deterministic fallback hue
		assert.Equal(t, "ARCHIVED", summary.StatusSegments[2].Status)
		assert.Equal(t, "hsl(120 70% 45%)", summary.StatusSegments[2].Color)
	}
}

func TestSummarize_Sparkline(t *testing.T) {
	now := time.Date(2024, 10, 14, 12, 0, 0, 0, time.Local)

	orders := []domain.Order{
		{OrderID: "A", Status: domain.StatusCreated, CreatedAt: now.Format(time.RFC3339)},
		{OrderID: "B", Status: domain.StatusCreated, CreatedAt: now.Format(time.RFC3339)},
		{OrderID: "C", Status: domain.StatusCreated, CreatedAt: now.AddDate(0, 0, -13).Format(time.RFC3339)},
		// outside the window, ignored
		{OrderID: "D", Status: domain.StatusCreated, CreatedAt: now.AddDate(0, 0, -20).Format(time.RFC3339)},
	}

	summary := Summarize(orders, now)

	if assert.Len(t, summary.Sparkline, 14) {
		assert.Equal(t, 1, summary.Sparkline[0])
		assert.Equal(t, 2, summary.Sparkline[13])

		total := 0
		for _, p := range summary.Sparkline {
			total += p
		}
		assert.Equal(t, 3, total)
	}
}

func TestStatusColor_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, "#10B981", StatusColor(domain.StatusProductionCompleted))
	assert.Equal(t, "#94A3B8", StatusColor(domain.OrderStatus("SOMETHING_ELSE")))
}
