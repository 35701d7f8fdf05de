package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// minute-of-day bounds; 1440 == midnight of the following day
const MinutesPerDay = 24 * 60

// ClinicCalendar describes one clinic's operating calendar. All clock
// times are minute-of-day offsets; parsing "HH:MM" happens at the
// boundary, never in here.
type ClinicCalendar struct {
	ClinicID      uuid.UUID      `json:"clinic_id"`
	WorkingDays   []time.Weekday `json:"working_days"`
	WorkStart     int            `json:"work_start"`
	WorkEnd       int            `json:"work_end"`
	HasLunchBreak bool           `json:"has_lunch_break"`
	LunchStart    int            `json:"lunch_start,omitempty"`
	LunchEnd      int            `json:"lunch_end,omitempty"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// DefaultCalendar returns the calendar applied when a clinic has not
// configured one: Mon-Fri, 08:00-18:00, lunch 12:00-13:00.
func DefaultCalendar(clinicID uuid.UUID) ClinicCalendar {
	return ClinicCalendar{
		ClinicID: clinicID,
		WorkingDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		WorkStart:     8 * 60,
		WorkEnd:       18 * 60,
		HasLunchBreak: true,
		LunchStart:    12 * 60,
		LunchEnd:      13 * 60,
	}
}

func (c ClinicCalendar) Validate() error {
	if c.WorkStart < 0 || c.WorkStart > MinutesPerDay {
		return fmt.Errorf("work start %d is not a valid minute of day", c.WorkStart)
	}
	if c.WorkEnd < 0 || c.WorkEnd > MinutesPerDay {
		return fmt.Errorf("work end %d is not a valid minute of day", c.WorkEnd)
	}
	if c.WorkStart >= c.WorkEnd {
		return fmt.Errorf("work start %d must be before work end %d", c.WorkStart, c.WorkEnd)
	}
	if !c.HasLunchBreak {
		return nil
	}
	if c.LunchStart < 0 || c.LunchStart > MinutesPerDay {
		return fmt.Errorf("lunch start %d is not a valid minute of day", c.LunchStart)
	}
	if c.LunchEnd < 0 || c.LunchEnd > MinutesPerDay {
		return fmt.Errorf("lunch end %d is not a valid minute of day", c.LunchEnd)
	}
	if c.LunchStart > c.LunchEnd {
		return fmt.Errorf("lunch start %d must not be after lunch end %d", c.LunchStart, c.LunchEnd)
	}
	// zero-width lunch is tolerated and never conflicts
	if c.LunchStart == c.LunchEnd {
		return nil
	}
	if c.LunchStart < c.WorkStart || c.LunchEnd > c.WorkEnd {
		return fmt.Errorf("lunch break %d-%d must fall within working hours %d-%d",
			c.LunchStart, c.LunchEnd, c.WorkStart, c.WorkEnd)
	}
	return nil
}

// IsWorkingDay reports whether the clinic operates on the given weekday.
func (c ClinicCalendar) IsWorkingDay(day time.Weekday) bool {
	for _, d := range c.WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}
