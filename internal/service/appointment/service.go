package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/scheduling-api/internal/model"
	"github.com/careloop/scheduling-api/internal/repository"
	"github.com/careloop/scheduling-api/pkg/timeutil"
)

const (
	MinAppointmentDuration = 15 * time.Minute
	MaxAppointmentDuration = 4 * time.Hour
)

type Service struct {
	repo repository.AppointmentRepository
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateAppointment(ctx context.Context, apt *model.Appointment) error {
	if err := s.validateAppointment(ctx, apt); err != nil {
		return fmt.Errorf("invalid appointment: %w", err)
	}

	apt.ID = uuid.New()
	apt.Status = model.AppointmentStatusScheduled
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	if err := s.repo.Create(ctx, apt); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return apt, nil
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID, reason string) error {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if apt.Status == model.AppointmentStatusCancelled {
		return fmt.Errorf("appointment is already cancelled")
	}
	if apt.Status == model.AppointmentStatusCompleted {
		return fmt.Errorf("cannot cancel a completed appointment")
	}

	apt.Status = model.AppointmentStatusCancelled
	apt.CancelReason = &reason
	apt.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, apt); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}
	return nil
}

func (s *Service) validateAppointment(ctx context.Context, apt *model.Appointment) error {
	if apt.PatientID == uuid.Nil {
		return fmt.Errorf("patient ID is required")
	}
	if apt.ClinicID == uuid.Nil {
		return fmt.Errorf("clinic ID is required")
	}

	duration := apt.EndTime.Sub(apt.StartTime)
	if duration < MinAppointmentDuration || duration > MaxAppointmentDuration {
		return fmt.Errorf("invalid appointment duration: must be between %v and %v", MinAppointmentDuration, MaxAppointmentDuration)
	}

	conflict, err := s.hasConflict(ctx, apt)
	if err != nil {
		return fmt.Errorf("failed to check conflicts: %w", err)
	}
	if conflict {
		return fmt.Errorf("appointment conflicts with existing booking")
	}
	return nil
}

// hasConflict applies the same half-open overlap rule as the
// availability engine: back-to-back appointments sharing an endpoint
// do not conflict.
func (s *Service) hasConflict(ctx context.Context, apt *model.Appointment) (bool, error) {
	day := timeutil.DayStart(apt.StartTime)
	existing, err := s.repo.ListForDay(ctx, apt.ClinicID, day)
	if err != nil {
		return false, err
	}

	for _, other := range existing {
		if other.ID == apt.ID || !other.Status.Occupying() {
			continue
		}
		if apt.StartTime.Before(other.EndTime) && apt.EndTime.After(other.StartTime) {
			return true, nil
		}
	}
	return false, nil
}
