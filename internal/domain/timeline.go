package domain

// TimelinePhase is one scheduled interval of an order. Zero values mean the
// field was not supplied by the order API; every consumer falls back the same
// way the API's own clients do.
type TimelinePhase struct {
	Start           string `json:"start,omitempty"`
	End             string `json:"end,omitempty"`
	DurationDays    int    `json:"duration_days"`
	DurationDaysMin int    `json:"duration_days_min,omitempty"`
	DurationDaysMax int    `json:"duration_days_max,omitempty"`
	Note            string `json:"note,omitempty"`
}

// TimelineData is the authoritative schedule attached to an order. When it is
// absent the timeline package derives a heuristic estimate instead.
type TimelineData struct {
	OrderType         OrderType      `json:"orderType,omitempty"`
	Production        TimelinePhase  `json:"production"`
	Shipping          *TimelinePhase `json:"shipping,omitempty"`
	TotalDurationDays int            `json:"total_duration_days,omitempty"`
	BufferApplied     int            `json:"buffer_applied,omitempty"`
	HasStarted        *bool          `json:"has_started,omitempty"`
}

// HasNotStarted reports whether the schedule carries no usable dates yet:
// either the API said so explicitly or the production phase has no start.
func (t *TimelineData) HasNotStarted() bool {
	if t.HasStarted != nil && !*t.HasStarted {
		return true
	}
	return t.Production.Start == ""
}
