package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/scheduling-api/internal/model"
)

type ClinicRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	List(ctx context.Context, organizationID uuid.UUID) ([]*model.Clinic, error)
	GetCalendar(ctx context.Context, clinicID uuid.UUID) (*model.ClinicCalendar, error)
	UpsertCalendar(ctx context.Context, cal *model.ClinicCalendar) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Update(ctx context.Context, apt *model.Appointment) error
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	// ListForDay returns the occupying appointments of a clinic whose
	// start falls on the given clinic-local day, ordered by start time.
	ListForDay(ctx context.Context, clinicID uuid.UUID, day time.Time) ([]*model.Appointment, error)
}
