package timeline

import (
	"fmt"
	"time"

	"order-tracking-service/internal/domain"
)

// Fixed per-status hues used by the dashboard donut and the calendar pills.
var statusColors = map[domain.OrderStatus]string{
	domain.StatusProductionCompleted: "#10B981",
	domain.StatusProduction:          "#0EA5E9",
	domain.StatusProductionPlanning:  "#60A5FA",
	domain.StatusInitialProcessing:   "#7C3AED",
	domain.StatusQualityAssurance:    "#F59E0B",
	domain.StatusComplianceCheck:     "#F97316",
	domain.StatusCreated:             "#6B7280",
}

const unknownStatusColor = "#94A3B8"

// StatusColor returns the fixed hue for a known status and a neutral gray
// for anything else.
func StatusColor(status domain.OrderStatus) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return unknownStatusColor
}

type StatusSegment struct {
	Status  string `json:"status"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
	Color   string `json:"color"`
}

type DaysBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary feeds the three dashboard widgets: status donut segments,
// days-remaining histogram buckets, and a 14-day creation sparkline
// (oldest day first, today last).
type Summary struct {
	StatusSegments []StatusSegment `json:"statusSegments"`
	DaysBuckets    []DaysBucket    `json:"daysBuckets"`
	Sparkline      []int           `json:"sparkline"`
	TotalOrders    int             `json:"totalOrders"`
}

var bucketLabels = []string{"overdue", "0-3", "4-7", "8-14", "15+"}

const sparklineDays = 14

// Summarize reduces an order list into the dashboard summary at the given
// instant. Status segments keep first-appearance order so the donut is
// stable across refreshes of the same list.
func Summarize(orders []domain.Order, now time.Time) Summary {
	statusCounts := map[string]int{}
	var statusOrder []string
	bucketCounts := map[string]int{}
	createdByDay := map[string]int{}

	for i := range orders {
		order := &orders[i]

		status := string(order.Status)
		if status == "" {
			status = "UNKNOWN"
		}
		if _, seen := statusCounts[status]; !seen {
			statusOrder = append(statusOrder, status)
		}
		statusCounts[status]++

		bucketCounts[bucketDays(RemainingDays(order, now))]++

		if created := parseDate(order.CreatedAt, ""); !created.IsZero() {
			createdByDay[dayKey(created)]++
		}
	}

	total := len(orders)
	denominator := total
	if denominator == 0 {
		denominator = 1
	}

	segments := make([]StatusSegment, 0, len(statusOrder))
	for idx, status := range statusOrder {
		count := statusCounts[status]
		color, ok := statusColors[domain.OrderStatus(status)]
		if !ok {
			color = fmt.Sprintf("hsl(%d 70%% 45%%)", (idx*60)%360)
		}
		segments = append(segments, StatusSegment{
			Status:  status,
			Count:   count,
			Percent: int(float64(count)/float64(denominator)*100 + 0.5),
			Color:   color,
		})
	}

	buckets := make([]DaysBucket, 0, len(bucketLabels))
	for _, label := range bucketLabels {
		buckets = append(buckets, DaysBucket{Label: label, Count: bucketCounts[label]})
	}

	points := make([]int, 0, sparklineDays)
	for i := sparklineDays - 1; i >= 0; i-- {
		points = append(points, createdByDay[dayKey(now.AddDate(0, 0, -i))])
	}

	return Summary{
		StatusSegments: segments,
		DaysBuckets:    buckets,
		Sparkline:      points,
		TotalOrders:    total,
	}
}

// bucketDays groups a days-remaining value for the histogram. Zero or less
// means the order is past due.
func bucketDays(days int) string {
	switch {
	case days <= 0:
		return "overdue"
	case days <= 3:
		return "0-3"
	case days <= 7:
		return "4-7"
	case days <= 14:
		return "8-14"
	default:
		return "15+"
	}
}
