package model

import "time"

// Reason is the closed set of codes explaining why a slot cannot be
// booked. Presentation layers map these to localized text; the engine
// never emits user-facing strings.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonNonWorkingDay   Reason = "non_working_day"
	ReasonOutsideHours    Reason = "outside_hours"
	ReasonLunchBreak      Reason = "lunch_break_conflict"
	ReasonBookingConflict Reason = "booking_conflict"
)

// Segment buckets a slot by its start hour for display grouping.
type Segment string

const (
	SegmentMorning   Segment = "morning"   // start hour < 12
	SegmentAfternoon Segment = "afternoon" // 12 <= start hour < 18
	SegmentEvening   Segment = "evening"   // start hour >= 18
)

// Segments lists the buckets in display order.
var Segments = []Segment{SegmentMorning, SegmentAfternoon, SegmentEvening}

// Slot is one candidate window under evaluation. Ephemeral: computed
// fresh per request, never persisted.
type Slot struct {
	StartMinute int     `json:"start_minute"`
	EndMinute   int     `json:"end_minute"`
	Segment     Segment `json:"segment"`
	Available   bool    `json:"available"`
	Reason      Reason  `json:"reason,omitempty"`
}

// SegmentSlots is one display bucket with its (possibly empty) ordered
// candidates. An all-unavailable bucket is still returned so callers can
// tell "no candidates" from "candidates, none free".
type SegmentSlots struct {
	Segment Segment `json:"segment"`
	Slots   []Slot  `json:"slots"`
}

// DayAvailability is the full engine output for one clinic-local day.
type DayAvailability struct {
	Date            time.Time      `json:"date"`
	DurationMinutes int            `json:"duration_minutes"`
	Slots           []Slot         `json:"slots"`
	Segments        []SegmentSlots `json:"segments"`
	HasAvailability bool           `json:"has_availability"`
}
