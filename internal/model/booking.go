package model

import "time"

// Booking is the read-only slice of an appointment the availability
// engine cares about: when it starts and how long it runs, on a single
// clinic-local day. Rows are converted from Appointment at the service
// boundary; the engine never sees timestamps or IDs.
type Booking struct {
	Date            time.Time `json:"date"`
	StartMinute     int       `json:"start_minute"`
	DurationMinutes int       `json:"duration_minutes"`
}

func (b Booking) EndMinute() int {
	return b.StartMinute + b.DurationMinutes
}

// BookingFromAppointment projects a persisted appointment onto the
// minute-of-day form the engine consumes. The appointment's own date is
// kept so callers can filter before handing bookings to the engine.
func BookingFromAppointment(apt *Appointment) Booking {
	day := time.Date(apt.StartTime.Year(), apt.StartTime.Month(), apt.StartTime.Day(), 0, 0, 0, 0, apt.StartTime.Location())
	return Booking{
		Date:            day,
		StartMinute:     apt.StartTime.Hour()*60 + apt.StartTime.Minute(),
		DurationMinutes: int(apt.EndTime.Sub(apt.StartTime) / time.Minute),
	}
}
