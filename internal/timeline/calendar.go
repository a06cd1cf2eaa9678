package timeline

import (
	"sort"
	"time"

	"order-tracking-service/internal/domain"
)

const dayKeyFormat = "2006-01-02"

// DayOrder is one order's appearance on one calendar day. IsStart/IsEnd mark
// the first and last day the order occupies anywhere, so a month grid can
// render a continuous pill across days.
type DayOrder struct {
	OrderID     string             `json:"orderId"`
	ProductName string             `json:"productName"`
	Status      domain.OrderStatus `json:"status"`
	Color       string             `json:"color"`
	IsStart     bool               `json:"isStart"`
	IsEnd       bool               `json:"isEnd"`
}

// OrderDays expands an order into the sorted, de-duplicated set of local
// calendar days (YYYY-MM-DD) it occupies. With a schedule present both the
// production and shipping ranges are walked day by day; without one the
// order occupies only its creation day. Independent of the wall clock.
func OrderDays(order *domain.Order) []string {
	set := map[string]struct{}{}

	if order.TimelineData != nil {
		prod := order.TimelineData.Production

		prodStart := parseDate(prod.Start, order.CreatedAt)
		prodEnd := time.Time{}
		if prod.End != "" {
			prodEnd = parseDate(prod.End, "")
		} else if !prodStart.IsZero() {
			duration := firstNonZero(prod.DurationDays, prod.DurationDaysMax)
			prodEnd = prodStart.AddDate(0, 0, duration)
		}
		addDayRange(set, prodStart, prodEnd)

		if ship := order.TimelineData.Shipping; ship != nil {
			shipStart := prodEnd
			if ship.Start != "" {
				shipStart = parseDate(ship.Start, "")
			}
			shipEnd := time.Time{}
			if ship.End != "" {
				shipEnd = parseDate(ship.End, "")
			} else if !shipStart.IsZero() {
				duration := firstNonZero(ship.DurationDaysMax, ship.DurationDays)
				shipEnd = shipStart.AddDate(0, 0, duration)
			}
			addDayRange(set, shipStart, shipEnd)
		}
	} else if order.CreatedAt != "" {
		if created := parseDate(order.CreatedAt, ""); !created.IsZero() {
			set[dayKey(created)] = struct{}{}
		}
	}

	days := make([]string, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// MonthOccupancy buckets orders into the days of one month. Each day's list
// is sorted by order id so rendering is deterministic.
func MonthOccupancy(orders []domain.Order, year int, month time.Month) map[string][]DayOrder {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	nextMonth := monthStart.AddDate(0, 1, 0)

	grid := map[string][]DayOrder{}
	for i := range orders {
		order := &orders[i]
		days := OrderDays(order)
		if len(days) == 0 {
			continue
		}
		first := days[0]
		last := days[len(days)-1]

		for _, d := range days {
			day, err := time.ParseInLocation(dayKeyFormat, d, time.Local)
			if err != nil || day.Before(monthStart) || !day.Before(nextMonth) {
				continue
			}
			grid[d] = append(grid[d], DayOrder{
				OrderID:     order.OrderID,
				ProductName: order.ProductName(),
				Status:      order.Status,
				Color:       StatusColor(order.Status),
				IsStart:     d == first,
				IsEnd:       d == last,
			})
		}
	}

	for _, entries := range grid {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].OrderID < entries[j].OrderID
		})
	}
	return grid
}

// addDayRange walks [start, end] inclusive, one local calendar day at a time.
func addDayRange(set map[string]struct{}, start, end time.Time) {
	if start.IsZero() {
		return
	}
	if end.IsZero() || end.Before(start) {
		end = start
	}
	cur := midnight(start)
	stop := midnight(end)
	for !cur.After(stop) {
		set[dayKey(cur)] = struct{}{}
		cur = cur.AddDate(0, 0, 1)
	}
}

func midnight(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

func dayKey(t time.Time) string {
	return t.Local().Format(dayKeyFormat)
}
