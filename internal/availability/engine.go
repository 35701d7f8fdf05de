// Package availability computes the bookable time windows for one
// clinic-local day. It is a pure computation over its inputs: callers
// fetch the clinic calendar and the day's bookings, the engine only
// enumerates and evaluates candidate windows. No I/O, no clock access,
// safe for concurrent use.
package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/careloop/scheduling-api/internal/model"
)

// SlotStepMinutes is the spacing between candidate start times.
const SlotStepMinutes = 30

// ErrInvalidInput marks rejected engine inputs: non-positive duration
// or a calendar violating its own invariants. Match with errors.Is.
var ErrInvalidInput = errors.New("invalid availability input")

// ComputeDay runs the full computation for one day: candidate slots in
// ascending start order, the per-segment grouping and the day summary.
func ComputeDay(cal model.ClinicCalendar, date time.Time, durationMinutes int, bookings []model.Booking) (*model.DayAvailability, error) {
	slots, err := ComputeSlots(cal, date, durationMinutes, bookings)
	if err != nil {
		return nil, err
	}
	return &model.DayAvailability{
		Date:            date,
		DurationMinutes: durationMinutes,
		Slots:           slots,
		Segments:        GroupBySegment(slots),
		HasAvailability: hasAvailable(slots),
	}, nil
}

// ComputeSlots enumerates candidate windows of the requested duration
// at a fixed 30-minute step across the working day and evaluates each
// one. Every emitted slot carries at most one reason, decided in fixed
// precedence: non-working day, then lunch overlap, then booking
// conflict. Candidates that would run past closing time are dropped
// entirely rather than emitted as unavailable; they are structurally
// impossible, not merely taken.
//
// Bookings must already be filtered to the target clinic and date;
// the engine never queries storage.
func ComputeSlots(cal model.ClinicCalendar, date time.Time, durationMinutes int, bookings []model.Booking) ([]model.Slot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInput, durationMinutes)
	}
	if err := cal.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// A non-working day does not abort the enumeration: slots are still
	// emitted, each marked non_working_day, so callers can render the
	// day and clinics can make same-day exceptions.
	working := cal.IsWorkingDay(date.Weekday())

	slots := make([]model.Slot, 0, (cal.WorkEnd-cal.WorkStart)/SlotStepMinutes)
	for start := cal.WorkStart; start < cal.WorkEnd; start += SlotStepMinutes {
		end := start + durationMinutes
		if end > cal.WorkEnd {
			continue
		}

		slot := model.Slot{
			StartMinute: start,
			EndMinute:   end,
			Segment:     segmentFor(start),
			Available:   true,
		}
		switch {
		case !working:
			slot.Available = false
			slot.Reason = model.ReasonNonWorkingDay
		case overlapsLunch(cal, start, end):
			slot.Available = false
			slot.Reason = model.ReasonLunchBreak
		case conflictsBooking(bookings, start, end):
			slot.Available = false
			slot.Reason = model.ReasonBookingConflict
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// overlapsLunch applies the half-open overlap test against the lunch
// window. A zero-width lunch never conflicts, even when the break flag
// is set.
func overlapsLunch(cal model.ClinicCalendar, start, end int) bool {
	if !cal.HasLunchBreak || cal.LunchStart >= cal.LunchEnd {
		return false
	}
	return start < cal.LunchEnd && end > cal.LunchStart
}

// conflictsBooking reports whether [start, end) overlaps any booking.
// Half-open semantics: a slot starting exactly when a booking ends, or
// ending exactly when one starts, does not conflict.
func conflictsBooking(bookings []model.Booking, start, end int) bool {
	for _, b := range bookings {
		if start < b.EndMinute() && end > b.StartMinute {
			return true
		}
	}
	return false
}

func segmentFor(startMinute int) model.Segment {
	switch hour := startMinute / 60; {
	case hour < 12:
		return model.SegmentMorning
	case hour < 18:
		return model.SegmentAfternoon
	default:
		return model.SegmentEvening
	}
}
