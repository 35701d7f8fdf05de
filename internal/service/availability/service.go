package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	engine "github.com/careloop/scheduling-api/internal/availability"
	"github.com/careloop/scheduling-api/internal/model"
	"github.com/careloop/scheduling-api/internal/repository"
	"github.com/careloop/scheduling-api/pkg/timeutil"
)

// CalendarProvider is the slice of the clinic service the availability
// orchestrator needs.
type CalendarProvider interface {
	GetCalendar(ctx context.Context, clinicID uuid.UUID) (*model.ClinicCalendar, error)
}

// Service fetches the calendar and the day's bookings, hands both to
// the engine, and caches the computed day in Redis for a short window.
// All I/O stays here; the engine itself never waits on anything.
type Service struct {
	calendars    CalendarProvider
	appointments repository.AppointmentRepository
	rdb          *redis.Client
	cacheTTL     time.Duration
}

func NewService(calendars CalendarProvider, appointments repository.AppointmentRepository, rdb *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{
		calendars:    calendars,
		appointments: appointments,
		rdb:          rdb,
		cacheTTL:     cacheTTL,
	}
}

// GetDayAvailability computes the bookable windows for one clinic and
// one clinic-local day. The result is served from Redis when a fresh
// copy exists; a cache failure only costs the recomputation.
func (s *Service) GetDayAvailability(ctx context.Context, clinicID uuid.UUID, date time.Time, durationMinutes int) (*model.DayAvailability, error) {
	date = timeutil.DayStart(date)

	if day, ok := s.cachedDay(ctx, clinicID, date, durationMinutes); ok {
		return day, nil
	}

	cal, err := s.calendars.GetCalendar(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to load clinic calendar: %w", err)
	}

	bookings, err := s.dayBookings(ctx, clinicID, date)
	if err != nil {
		return nil, err
	}

	day, err := engine.ComputeDay(*cal, date, durationMinutes, bookings)
	if err != nil {
		return nil, err
	}

	s.storeDay(ctx, clinicID, date, durationMinutes, day)
	return day, nil
}

// dayBookings loads the day's occupying appointments and projects them
// onto the minute-of-day form the engine consumes, dropping anything
// that does not land on the requested day.
func (s *Service) dayBookings(ctx context.Context, clinicID uuid.UUID, day time.Time) ([]model.Booking, error) {
	appointments, err := s.appointments.ListForDay(ctx, clinicID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	bookings := make([]model.Booking, 0, len(appointments))
	for _, apt := range appointments {
		if !apt.Status.Occupying() {
			continue
		}
		b := model.BookingFromAppointment(apt)
		if !b.Date.Equal(day) {
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func cacheKey(clinicID uuid.UUID, date time.Time, durationMinutes int) string {
	return fmt.Sprintf("availability:%s:%s:%d", clinicID, date.Format("2006-01-02"), durationMinutes)
}

func (s *Service) cachedDay(ctx context.Context, clinicID uuid.UUID, date time.Time, durationMinutes int) (*model.DayAvailability, bool) {
	if s.rdb == nil {
		return nil, false
	}

	raw, err := s.rdb.Get(ctx, cacheKey(clinicID, date, durationMinutes)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("clinic_id", clinicID.String()).Msg("availability cache read failed")
		}
		return nil, false
	}

	var day model.DayAvailability
	if err := json.Unmarshal(raw, &day); err != nil {
		log.Warn().Err(err).Str("clinic_id", clinicID.String()).Msg("availability cache entry corrupt")
		return nil, false
	}
	return &day, true
}

func (s *Service) storeDay(ctx context.Context, clinicID uuid.UUID, date time.Time, durationMinutes int, day *model.DayAvailability) {
	if s.rdb == nil || s.cacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(day)
	if err != nil {
		log.Warn().Err(err).Str("clinic_id", clinicID.String()).Msg("availability cache encode failed")
		return
	}
	if err := s.rdb.Set(ctx, cacheKey(clinicID, date, durationMinutes), raw, s.cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("clinic_id", clinicID.String()).Msg("availability cache write failed")
	}
}
