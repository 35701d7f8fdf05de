package availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/careloop/scheduling-api/internal/availability"
	"github.com/careloop/scheduling-api/internal/model"
)

type fakeCalendars struct {
	cal   model.ClinicCalendar
	err   error
	calls int
}

func (f *fakeCalendars) GetCalendar(ctx context.Context, clinicID uuid.UUID) (*model.ClinicCalendar, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	cal := f.cal
	cal.ClinicID = clinicID
	return &cal, nil
}

type fakeAppointments struct {
	appointments []*model.Appointment
	err          error
}

func (f *fakeAppointments) Create(ctx context.Context, apt *model.Appointment) error { return nil }
func (f *fakeAppointments) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointments) Update(ctx context.Context, apt *model.Appointment) error { return nil }
func (f *fakeAppointments) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointments) ListForDay(ctx context.Context, clinicID uuid.UUID, day time.Time) ([]*model.Appointment, error) {
	return f.appointments, f.err
}

func defaultFakeCalendar() model.ClinicCalendar {
	return model.ClinicCalendar{
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

func appointmentAt(clinicID uuid.UUID, day time.Time, hour, durationMinutes int, status model.AppointmentStatus) *model.Appointment {
	start := day.Add(time.Duration(hour) * time.Hour)
	apt := &model.Appointment{
		ClinicID:  clinicID,
		PatientID: uuid.New(),
		StartTime: start,
		EndTime:   start.Add(time.Duration(durationMinutes) * time.Minute),
		Status:    status,
	}
	apt.ID = uuid.New()
	return apt
}

func TestGetDayAvailability(t *testing.T) {
	clinicID := uuid.New()
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC) // Monday

	appointments := &fakeAppointments{appointments: []*model.Appointment{
		appointmentAt(clinicID, day, 10, 30, model.AppointmentStatusConfirmed),
	}}
	svc := NewService(&fakeCalendars{cal: defaultFakeCalendar()}, appointments, nil, 0)

	result, err := svc.GetDayAvailability(context.Background(), clinicID, day, 30)
	require.NoError(t, err)

	assert.True(t, result.HasAvailability)
	assert.Len(t, result.Segments, 3)

	var taken *model.Slot
	for i := range result.Slots {
		if result.Slots[i].StartMinute == 10*60 {
			taken = &result.Slots[i]
		}
	}
	require.NotNil(t, taken)
	assert.False(t, taken.Available)
	assert.Equal(t, model.ReasonBookingConflict, taken.Reason)
}

func TestGetDayAvailabilityNormalizesDate(t *testing.T) {
	clinicID := uuid.New()
	// Mid-day timestamp: service must truncate to the day before
	// fetching and computing.
	at := time.Date(2025, 3, 3, 14, 45, 0, 0, time.UTC)

	svc := NewService(&fakeCalendars{cal: defaultFakeCalendar()}, &fakeAppointments{}, nil, 0)

	result, err := svc.GetDayAvailability(context.Background(), clinicID, at, 30)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), result.Date)
}

func TestGetDayAvailabilitySkipsNonOccupyingAppointments(t *testing.T) {
	clinicID := uuid.New()
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	appointments := &fakeAppointments{appointments: []*model.Appointment{
		appointmentAt(clinicID, day, 10, 30, model.AppointmentStatusCancelled),
		appointmentAt(clinicID, day, 11, 30, model.AppointmentStatusCompleted),
	}}
	svc := NewService(&fakeCalendars{cal: defaultFakeCalendar()}, appointments, nil, 0)

	result, err := svc.GetDayAvailability(context.Background(), clinicID, day, 30)
	require.NoError(t, err)

	for _, s := range result.Slots {
		assert.NotEqual(t, model.ReasonBookingConflict, s.Reason,
			"cancelled and completed appointments must not block slot %d", s.StartMinute)
	}
}

func TestGetDayAvailabilityDropsOtherDayBookings(t *testing.T) {
	clinicID := uuid.New()
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	nextDay := day.AddDate(0, 0, 1)

	// A sloppy repository returning a neighbouring day's appointment
	// must not poison the computation.
	appointments := &fakeAppointments{appointments: []*model.Appointment{
		appointmentAt(clinicID, nextDay, 10, 30, model.AppointmentStatusConfirmed),
	}}
	svc := NewService(&fakeCalendars{cal: defaultFakeCalendar()}, appointments, nil, 0)

	result, err := svc.GetDayAvailability(context.Background(), clinicID, day, 30)
	require.NoError(t, err)
	for _, s := range result.Slots {
		assert.NotEqual(t, model.ReasonBookingConflict, s.Reason)
	}
}

func TestGetDayAvailabilityInvalidDuration(t *testing.T) {
	svc := NewService(&fakeCalendars{cal: defaultFakeCalendar()}, &fakeAppointments{}, nil, 0)

	_, err := svc.GetDayAvailability(context.Background(), uuid.New(), time.Now(), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestGetDayAvailabilityCalendarError(t *testing.T) {
	calendars := &fakeCalendars{err: assert.AnError}
	svc := NewService(calendars, &fakeAppointments{}, nil, 0)

	_, err := svc.GetDayAvailability(context.Background(), uuid.New(), time.Now(), 30)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGetDayAvailabilityAppointmentsError(t *testing.T) {
	appointments := &fakeAppointments{err: assert.AnError}
	svc := NewService(&fakeCalendars{cal: defaultFakeCalendar()}, appointments, nil, 0)

	_, err := svc.GetDayAvailability(context.Background(), uuid.New(), time.Now(), 30)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
