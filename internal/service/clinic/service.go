package clinic

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/careloop/scheduling-api/internal/model"
	"github.com/careloop/scheduling-api/internal/repository"
	"github.com/careloop/scheduling-api/pkg/timeutil"
)

const (
	calendarCacheTTL     = 5 * time.Minute
	calendarCacheCleanup = 15 * time.Minute
)

type ClinicServicer interface {
	GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	ListClinics(ctx context.Context, organizationID uuid.UUID) ([]*model.Clinic, error)
	GetCalendar(ctx context.Context, clinicID uuid.UUID) (*model.ClinicCalendar, error)
	UpdateCalendar(ctx context.Context, clinicID uuid.UUID, req *model.UpdateCalendarRequest) (*model.ClinicCalendar, error)
}

type Service struct {
	repo     repository.ClinicRepository
	calCache *cache.Cache
}

func NewService(repo repository.ClinicRepository) *Service {
	return &Service{
		repo:     repo,
		calCache: cache.New(calendarCacheTTL, calendarCacheCleanup),
	}
}

func (s *Service) GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return clinic, nil
}

func (s *Service) ListClinics(ctx context.Context, organizationID uuid.UUID) ([]*model.Clinic, error) {
	clinics, err := s.repo.List(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

// GetCalendar returns the clinic's operating calendar, cached for a few
// minutes. Calendars change rarely and every availability query needs
// one, so a short in-process TTL is enough.
func (s *Service) GetCalendar(ctx context.Context, clinicID uuid.UUID) (*model.ClinicCalendar, error) {
	if cached, ok := s.calCache.Get(clinicID.String()); ok {
		cal := cached.(model.ClinicCalendar)
		return &cal, nil
	}

	cal, err := s.repo.GetCalendar(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic calendar: %w", err)
	}

	s.calCache.SetDefault(clinicID.String(), *cal)
	return cal, nil
}

func (s *Service) UpdateCalendar(ctx context.Context, clinicID uuid.UUID, req *model.UpdateCalendarRequest) (*model.ClinicCalendar, error) {
	cal, err := calendarFromRequest(clinicID, req)
	if err != nil {
		return nil, err
	}
	if err := cal.Validate(); err != nil {
		return nil, fmt.Errorf("invalid calendar: %w", err)
	}

	if err := s.repo.UpsertCalendar(ctx, cal); err != nil {
		return nil, fmt.Errorf("failed to save clinic calendar: %w", err)
	}

	s.calCache.Delete(clinicID.String())
	return cal, nil
}

func calendarFromRequest(clinicID uuid.UUID, req *model.UpdateCalendarRequest) (*model.ClinicCalendar, error) {
	cal := &model.ClinicCalendar{
		ClinicID:      clinicID,
		HasLunchBreak: req.HasLunchBreak,
	}

	for _, name := range req.WorkingDays {
		day, err := timeutil.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("invalid working day: %w", err)
		}
		cal.WorkingDays = append(cal.WorkingDays, day)
	}

	var err error
	if cal.WorkStart, err = timeutil.ParseMinuteOfDay(req.WorkStart); err != nil {
		return nil, fmt.Errorf("invalid work start: %w", err)
	}
	if cal.WorkEnd, err = timeutil.ParseMinuteOfDay(req.WorkEnd); err != nil {
		return nil, fmt.Errorf("invalid work end: %w", err)
	}
	if req.HasLunchBreak {
		if cal.LunchStart, err = timeutil.ParseMinuteOfDay(req.LunchStart); err != nil {
			return nil, fmt.Errorf("invalid lunch start: %w", err)
		}
		if cal.LunchEnd, err = timeutil.ParseMinuteOfDay(req.LunchEnd); err != nil {
			return nil, fmt.Errorf("invalid lunch end: %w", err)
		}
	}
	return cal, nil
}
