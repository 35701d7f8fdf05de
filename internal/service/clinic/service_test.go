package clinic

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careloop/scheduling-api/internal/model"
)

type fakeClinicRepo struct {
	calendars    map[uuid.UUID]*model.ClinicCalendar
	getCalCalls  int
	upsertCalled bool
}

func newFakeClinicRepo() *fakeClinicRepo {
	return &fakeClinicRepo{calendars: make(map[uuid.UUID]*model.ClinicCalendar)}
}

func (f *fakeClinicRepo) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	return &model.Clinic{Name: "Test Clinic"}, nil
}

func (f *fakeClinicRepo) List(ctx context.Context, organizationID uuid.UUID) ([]*model.Clinic, error) {
	return nil, nil
}

func (f *fakeClinicRepo) GetCalendar(ctx context.Context, clinicID uuid.UUID) (*model.ClinicCalendar, error) {
	f.getCalCalls++
	if cal, ok := f.calendars[clinicID]; ok {
		c := *cal
		return &c, nil
	}
	cal := model.DefaultCalendar(clinicID)
	return &cal, nil
}

func (f *fakeClinicRepo) UpsertCalendar(ctx context.Context, cal *model.ClinicCalendar) error {
	f.upsertCalled = true
	c := *cal
	f.calendars[cal.ClinicID] = &c
	return nil
}

func TestGetCalendarUsesCache(t *testing.T) {
	repo := newFakeClinicRepo()
	svc := NewService(repo)
	clinicID := uuid.New()

	first, err := svc.GetCalendar(context.Background(), clinicID)
	require.NoError(t, err)
	second, err := svc.GetCalendar(context.Background(), clinicID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.getCalCalls, "second read should come from cache")
}

func TestGetCalendarDefaultsForUnknownClinic(t *testing.T) {
	svc := NewService(newFakeClinicRepo())

	cal, err := svc.GetCalendar(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 8*60, cal.WorkStart)
	assert.Equal(t, 18*60, cal.WorkEnd)
	assert.True(t, cal.HasLunchBreak)
	assert.Len(t, cal.WorkingDays, 5)
}

func TestUpdateCalendar(t *testing.T) {
	repo := newFakeClinicRepo()
	svc := NewService(repo)
	clinicID := uuid.New()

	// Warm the cache so we can verify invalidation.
	_, err := svc.GetCalendar(context.Background(), clinicID)
	require.NoError(t, err)

	cal, err := svc.UpdateCalendar(context.Background(), clinicID, &model.UpdateCalendarRequest{
		WorkingDays:   []string{"monday", "wednesday", "friday"},
		WorkStart:     "09:00",
		WorkEnd:       "17:00",
		HasLunchBreak: true,
		LunchStart:    "13:00",
		LunchEnd:      "14:00",
	})
	require.NoError(t, err)
	assert.True(t, repo.upsertCalled)
	assert.Equal(t, 9*60, cal.WorkStart)
	assert.Equal(t, 17*60, cal.WorkEnd)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, cal.WorkingDays)

	// Cache was invalidated: the next read reflects the new calendar.
	fresh, err := svc.GetCalendar(context.Background(), clinicID)
	require.NoError(t, err)
	assert.Equal(t, 9*60, fresh.WorkStart)
}

func TestUpdateCalendarRejectsInvalid(t *testing.T) {
	svc := NewService(newFakeClinicRepo())

	tests := []struct {
		name string
		req  model.UpdateCalendarRequest
	}{
		{"inverted working hours", model.UpdateCalendarRequest{
			WorkingDays: []string{"monday"},
			WorkStart:   "18:00",
			WorkEnd:     "08:00",
		}},
		{"unparseable time", model.UpdateCalendarRequest{
			WorkingDays: []string{"monday"},
			WorkStart:   "8 o'clock",
			WorkEnd:     "17:00",
		}},
		{"unknown weekday", model.UpdateCalendarRequest{
			WorkingDays: []string{"funday"},
			WorkStart:   "08:00",
			WorkEnd:     "17:00",
		}},
		{"lunch outside hours", model.UpdateCalendarRequest{
			WorkingDays:   []string{"monday"},
			WorkStart:     "08:00",
			WorkEnd:       "17:00",
			HasLunchBreak: true,
			LunchStart:    "06:00",
			LunchEnd:      "07:00",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateCalendar(context.Background(), uuid.New(), &tt.req)
			assert.Error(t, err)
		})
	}
}
