package timeline

import (
	"math"
	"regexp"
	"time"

	"order-tracking-service/internal/domain"
)

type Phase string

const (
	PhaseProduction Phase = "production"
	PhaseShipping   Phase = "shipping"
	PhaseCompleted  Phase = "completed"
)

const dayMs = 24 * time.Hour

// Calculation is the per-order view-model consumed by the timeline bar and
// the order badges. Widths and positions are percentages on a 0-100 scale,
// progress values are fractions in [0,1]. Recomputed on every request,
// never stored.
type Calculation struct {
	TotalDurationDays   int     `json:"totalDurationDays"`
	ProductionDays      int     `json:"productionDays"`
	ShippingDays        int     `json:"shippingDays"`
	CurrentProgress     float64 `json:"currentProgress"`
	ProductionProgress  float64 `json:"productionProgress"`
	ShippingProgress    float64 `json:"shippingProgress"`
	IsOverdue           bool    `json:"isOverdue"`
	DaysRemaining       int     `json:"daysRemaining"`
	DaysRemainingMin    *int    `json:"daysRemainingMin,omitempty"`
	CurrentPhase        Phase   `json:"currentPhase"`
	ProductionWidth     float64 `json:"productionWidth"`
	ShippingWidth       float64 `json:"shippingWidth"`
	CurrentTimePosition float64 `json:"currentTimePosition"`
	HasShippingRange    bool    `json:"hasShippingRange,omitempty"`
	ShippingMinWidth    float64 `json:"shippingMinWidth,omitempty"`
	ShippingRangeWidth  float64 `json:"shippingRangeWidth,omitempty"`
}

// Calculate derives the timeline view-model for one order at the given
// instant. Pure: same (order, now) always yields the same result.
func Calculate(order *domain.Order, now time.Time) Calculation {
	if order.TimelineData == nil {
		return fallbackCalculation(order, now)
	}
	return calculateFromTimeline(order, order.TimelineData, now)
}

// CalculateAll maps every order to its calculation, keyed by order id.
func CalculateAll(orders []domain.Order, now time.Time) map[string]Calculation {
	calcs := make(map[string]Calculation, len(orders))
	for i := range orders {
		calcs[orders[i].OrderID] = Calculate(&orders[i], now)
	}
	return calcs
}

func calculateFromTimeline(order *domain.Order, td *domain.TimelineData, now time.Time) Calculation {
	if td.HasNotStarted() {
		return notStartedCalculation(td)
	}

	productionStart := parseDate(td.Production.Start, order.CreatedAt)
	productionEnd := productionStart.Add(time.Duration(td.Production.DurationDays) * dayMs)
	if td.Production.End != "" {
		productionEnd = parseDate(td.Production.End, "")
	}

	shippingEnd := productionEnd
	shippingEndMin := productionEnd
	var shippingTime time.Duration
	hasRange := false
	shippingMinWidth := 0.0
	shippingRangeWidth := 0.0

	if td.Shipping != nil {
		shipMax := firstNonZero(td.Shipping.DurationDaysMax, td.Shipping.DurationDays)
		shipMin := firstNonZero(td.Shipping.DurationDaysMin, shipMax)
		hasRange = shipMin != shipMax

		shippingStart := productionEnd
		if td.Shipping.Start != "" {
			shippingStart = parseDate(td.Shipping.Start, "")
		}

		if td.Shipping.End != "" {
			shippingEnd = parseDate(td.Shipping.End, "")
			shippingEndMin = shippingEnd
		} else {
			shippingEnd = shippingStart.Add(time.Duration(shipMax) * dayMs)
			shippingEndMin = shippingStart.Add(time.Duration(shipMin) * dayMs)
		}

		shippingTime = shippingEnd.Sub(productionEnd)
	}

	totalTime := shippingEnd.Sub(productionStart)
	productionTime := productionEnd.Sub(productionStart)

	elapsed := now.Sub(productionStart)
	if elapsed < 0 {
		elapsed = 0
	}
	totalProgress := progressRatio(elapsed, totalTime)

	currentPhase := PhaseProduction
	productionProgress := 0.0
	shippingProgress := 0.0

	if order.Status == domain.StatusProductionCompleted {
		currentPhase = PhaseCompleted
		if td.Shipping != nil {
			currentPhase = PhaseShipping
		}
		productionProgress = 1

		if td.Shipping != nil {
			switch {
			case order.ShipmentStatus == domain.ShipmentDelivered:
				shippingProgress = 1
				currentPhase = PhaseCompleted
			case order.ShipmentStatus != "" && order.ShipmentStatus != domain.ShipmentNotStarted:
				shippingProgress = shipmentProgress(order.ShipmentStatus)
			default:
				shippingElapsed := now.Sub(productionEnd)
				if shippingElapsed < 0 {
					shippingElapsed = 0
				}
				shippingProgress = progressRatio(shippingElapsed, shippingTime)
			}
		}
	} else {
		productionProgress = progressRatio(elapsed, productionTime)
	}

	productionDays := ceilDays(productionTime)
	shippingDays := ceilDays(shippingTime)
	totalDays := productionDays + shippingDays

	// zero-length schedules collapse to a pure production bar
	productionWidth := 100.0
	shippingWidth := 0.0
	if totalTime > 0 {
		productionWidth = clampPercent(float64(productionTime) / float64(totalTime) * 100)
		if td.Shipping != nil {
			shippingWidth = clampPercent(float64(shippingTime) / float64(totalTime) * 100)
		}
	}

	if hasRange && td.Shipping != nil {
		shipMin := firstNonZero(td.Shipping.DurationDaysMin, td.Shipping.DurationDays)
		shipMax := firstNonZero(td.Shipping.DurationDaysMax, td.Shipping.DurationDays)
		// the range split keeps the max duration in the denominator so the
		// solid and hatched segments line up with the primary width split
		totalForRange := productionDays + shipMax
		if totalForRange > 0 {
			shippingMinWidth = clampPercent(float64(shipMin) / float64(totalForRange) * 100)
			shippingRangeWidth = clampPercent(float64(shipMax-shipMin) / float64(totalForRange) * 100)
		}
	}

	position := math.Min(100, totalProgress*100)
	isOverdue := now.After(shippingEnd) && currentPhase != PhaseCompleted

	daysRemaining := remainingDaysUntil(shippingEnd, now)
	var daysRemainingMin *int
	if hasRange {
		min := remainingDaysUntil(shippingEndMin, now)
		daysRemainingMin = &min
	}

	totalDurationDays := firstNonZero(td.TotalDurationDays, totalDays)

	return Calculation{
		TotalDurationDays:   totalDurationDays,
		ProductionDays:      productionDays,
		ShippingDays:        shippingDays,
		CurrentProgress:     totalProgress,
		ProductionProgress:  productionProgress,
		ShippingProgress:    shippingProgress,
		IsOverdue:           isOverdue,
		DaysRemaining:       daysRemaining,
		DaysRemainingMin:    daysRemainingMin,
		CurrentPhase:        currentPhase,
		ProductionWidth:     productionWidth,
		ShippingWidth:       shippingWidth,
		CurrentTimePosition: position,
		HasShippingRange:    hasRange,
		ShippingMinWidth:    shippingMinWidth,
		ShippingRangeWidth:  shippingRangeWidth,
	}
}

// notStartedCalculation renders duration estimates only: the schedule has no
// dates yet, so every progress value is zero and the bar is split by the
// maximum durations.
func notStartedCalculation(td *domain.TimelineData) Calculation {
	productionDays := firstNonZero(td.Production.DurationDaysMax, td.Production.DurationDays)

	shippingMax := 0
	shippingMin := 0
	if td.Shipping != nil {
		shippingMax = firstNonZero(td.Shipping.DurationDaysMax, td.Shipping.DurationDays)
		shippingMin = firstNonZero(td.Shipping.DurationDaysMin, shippingMax)
	}

	totalMax := productionDays + shippingMax
	totalMin := productionDays + shippingMin
	hasRange := shippingMin != shippingMax && shippingMin > 0

	productionWidth := 100.0
	shippingWidth := 0.0
	if shippingMax > 0 && totalMax > 0 {
		productionWidth = clampPercent(float64(productionDays) / float64(totalMax) * 100)
		shippingWidth = clampPercent(float64(shippingMax) / float64(totalMax) * 100)
	}

	shippingMinWidth := shippingWidth
	shippingRangeWidth := 0.0
	if hasRange && totalMax > 0 {
		shippingMinWidth = clampPercent(float64(shippingMin) / float64(totalMax) * 100)
		shippingRangeWidth = clampPercent(float64(shippingMax-shippingMin) / float64(totalMax) * 100)
	}

	var daysRemainingMin *int
	if hasRange {
		min := totalMin
		daysRemainingMin = &min
	}

	return Calculation{
		TotalDurationDays:   totalMax,
		ProductionDays:      productionDays,
		ShippingDays:        shippingMax,
		CurrentProgress:     0,
		ProductionProgress:  0,
		ShippingProgress:    0,
		IsOverdue:           false,
		DaysRemaining:       totalMax,
		DaysRemainingMin:    daysRemainingMin,
		CurrentPhase:        PhaseProduction,
		ProductionWidth:     productionWidth,
		ShippingWidth:       shippingWidth,
		CurrentTimePosition: 0,
		HasShippingRange:    hasRange,
		ShippingMinWidth:    shippingMinWidth,
		ShippingRangeWidth:  shippingRangeWidth,
	}
}

// shipmentProgress maps a carrier milestone to a progress fraction. Unknown
// or not-started statuses count as no progress.
func shipmentProgress(status domain.ShipmentStatus) float64 {
	switch status {
	case domain.ShipmentExpecting:
		return 0.1
	case domain.ShipmentPickedUp:
		return 0.3
	case domain.ShipmentInTransit:
		return 0.7
	case domain.ShipmentDelivered:
		return 1.0
	default:
		return 0
	}
}

var leadTimePattern = regexp.MustCompile(`(?i)(\d+)\s*days?`)

func fallbackCalculation(order *domain.Order, now time.Time) Calculation {
	createdAt := parseDate(order.CreatedAt, "")
	elapsedDays := now.Sub(createdAt).Hours() / 24
	if elapsedDays < 0 {
		elapsedDays = 0
	}

	productionDays := estimateProductionDays(order)
	shippingDays := estimateShippingDays(order)
	totalDays := productionDays + shippingDays

	totalProgress := progressRatio(
		time.Duration(elapsedDays*float64(dayMs)),
		time.Duration(totalDays)*dayMs,
	)
	productionProgress := progressRatio(
		time.Duration(elapsedDays*float64(dayMs)),
		time.Duration(productionDays)*dayMs,
	)

	shippingProgress := 0.0
	if order.OrderType != domain.TypeVideoSample && shippingDays > 0 {
		shippingProgress = clamp01((elapsedDays - float64(productionDays)) / float64(shippingDays))
	}

	currentPhase := PhaseProduction
	if order.Status == domain.StatusProductionCompleted {
		if order.OrderType == domain.TypeVideoSample {
			currentPhase = PhaseCompleted
		} else {
			currentPhase = PhaseShipping
		}
	}

	productionWidth := 100.0
	shippingWidth := 0.0
	if order.OrderType != domain.TypeVideoSample && totalDays > 0 {
		productionWidth = clampPercent(float64(productionDays) / float64(totalDays) * 100)
		shippingWidth = clampPercent(float64(shippingDays) / float64(totalDays) * 100)
	}

	daysRemaining := int(math.Ceil(float64(totalDays) - elapsedDays))
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	return Calculation{
		TotalDurationDays:   totalDays,
		ProductionDays:      productionDays,
		ShippingDays:        shippingDays,
		CurrentProgress:     totalProgress,
		ProductionProgress:  productionProgress,
		ShippingProgress:    shippingProgress,
		IsOverdue:           elapsedDays > float64(totalDays) && currentPhase != PhaseCompleted,
		DaysRemaining:       daysRemaining,
		CurrentPhase:        currentPhase,
		ProductionWidth:     productionWidth,
		ShippingWidth:       shippingWidth,
		CurrentTimePosition: math.Min(100, totalProgress*100),
	}
}

func estimateProductionDays(order *domain.Order) int {
	days := 10
	switch order.OrderType {
	case domain.TypeVideoSample:
		days = 2
	case domain.TypePhysicalSample:
		days = 5
	}

	if lead, ok := numericField(order.SampleDetails, "lead_time"); ok {
		return lead
	}
	if order.OrderType == domain.TypeVideoSample {
		if lead, ok := numericField(order.SampleDetails, "video_lead_time"); ok {
			return lead
		}
	}
	if order.Terms != nil {
		if raw, ok := order.Terms["lead_time"].(string); ok {
			if m := leadTimePattern.FindStringSubmatch(raw); m != nil {
				return parseLeadingInt(m[1])
			}
		}
	}
	return days
}

func estimateShippingDays(order *domain.Order) int {
	if order.OrderType == domain.TypeVideoSample {
		return 0
	}
	if order.EstimatedShippingDaysMax > 0 {
		return order.EstimatedShippingDaysMax
	}
	if order.EstimatedShippingDaysMin > 0 {
		return order.EstimatedShippingDaysMin
	}
	return 7
}

// RemainingDays is the single remaining-duration heuristic shared by the
// dashboard buckets and any badge that needs one number per order: the full
// calculator is authoritative when a schedule exists, otherwise the shipping
// estimate, otherwise a one-week default.
func RemainingDays(order *domain.Order, now time.Time) int {
	if order.TimelineData != nil {
		return Calculate(order, now).DaysRemaining
	}
	if order.EstimatedShippingDaysMax > 0 {
		return order.EstimatedShippingDaysMax
	}
	return 7
}

// numericField reads a lead-time value that the order API serializes either
// as a number or as a string like "30 days".
func numericField(m map[string]any, key string) (int, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		if n := parseLeadingInt(v); n > 0 {
			return n, true
		}
	}
	return 0, false
}

var leadingDigits = regexp.MustCompile(`^\s*(\d+)`)

func parseLeadingInt(s string) int {
	m := leadingDigits.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n := 0
	for _, c := range m[1] {
		n = n*10 + int(c-'0')
	}
	return n
}

// parseDate accepts both RFC3339 timestamps and bare dates; fallback is used
// when the primary value is empty.
func parseDate(value, fallback string) time.Time {
	if value == "" {
		value = fallback
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}

// progressRatio divides elapsed by total clamped to [0,1]; a zero-length
// interval counts as already complete rather than propagating NaN.
func progressRatio(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return clamp01(float64(elapsed) / float64(total))
}

func remainingDaysUntil(deadline, now time.Time) int {
	days := int(math.Ceil(float64(deadline.Sub(now)) / float64(dayMs)))
	if days < 0 {
		return 0
	}
	return days
}

func ceilDays(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(float64(d) / float64(dayMs)))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
