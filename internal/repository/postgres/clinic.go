package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/careloop/scheduling-api/internal/model"
	"github.com/careloop/scheduling-api/internal/repository"
	"github.com/careloop/scheduling-api/pkg/timeutil"
)

type clinicRepository struct {
	db *sqlx.DB
}

func NewClinicRepository(db *sqlx.DB) repository.ClinicRepository {
	return &clinicRepository{db: db}
}

func (r *clinicRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	query := `
		SELECT id, organization_id, name, location, status, created_at, updated_at
		FROM clinics
		WHERE id = $1 AND deleted_at IS NULL
	`
	var clinic model.Clinic
	if err := r.db.GetContext(ctx, &clinic, query, id); err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return &clinic, nil
}

func (r *clinicRepository) List(ctx context.Context, organizationID uuid.UUID) ([]*model.Clinic, error) {
	query := `
		SELECT id, organization_id, name, location, status, created_at, updated_at
		FROM clinics
		WHERE organization_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
	`
	var clinics []*model.Clinic
	if err := r.db.SelectContext(ctx, &clinics, query, organizationID); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

// calendarRow is the storage shape of a clinic calendar: weekday names
// in a text array, clock times as minute-of-day smallints.
type calendarRow struct {
	ClinicID      uuid.UUID      `db:"clinic_id"`
	WorkingDays   pq.StringArray `db:"working_days"`
	WorkStart     int            `db:"work_start"`
	WorkEnd       int            `db:"work_end"`
	HasLunchBreak bool           `db:"has_lunch_break"`
	LunchStart    int            `db:"lunch_start"`
	LunchEnd      int            `db:"lunch_end"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// GetCalendar loads a clinic's operating calendar. Clinics that never
// configured one get the package defaults, per the API contract.
func (r *clinicRepository) GetCalendar(ctx context.Context, clinicID uuid.UUID) (*model.ClinicCalendar, error) {
	query := `
		SELECT clinic_id, working_days, work_start, work_end,
		       has_lunch_break, lunch_start, lunch_end, updated_at
		FROM clinic_calendars
		WHERE clinic_id = $1
	`
	var row calendarRow
	if err := r.db.GetContext(ctx, &row, query, clinicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			cal := model.DefaultCalendar(clinicID)
			return &cal, nil
		}
		return nil, fmt.Errorf("failed to get clinic calendar: %w", err)
	}

	cal := model.ClinicCalendar{
		ClinicID:      row.ClinicID,
		WorkStart:     row.WorkStart,
		WorkEnd:       row.WorkEnd,
		HasLunchBreak: row.HasLunchBreak,
		LunchStart:    row.LunchStart,
		LunchEnd:      row.LunchEnd,
		UpdatedAt:     row.UpdatedAt,
	}
	for _, name := range row.WorkingDays {
		day, err := timeutil.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("corrupt working day in clinic calendar: %w", err)
		}
		cal.WorkingDays = append(cal.WorkingDays, day)
	}
	return &cal, nil
}

func (r *clinicRepository) UpsertCalendar(ctx context.Context, cal *model.ClinicCalendar) error {
	query := `
		INSERT INTO clinic_calendars (
			clinic_id, working_days, work_start, work_end,
			has_lunch_break, lunch_start, lunch_end, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (clinic_id) DO UPDATE SET
			working_days = EXCLUDED.working_days,
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			has_lunch_break = EXCLUDED.has_lunch_break,
			lunch_start = EXCLUDED.lunch_start,
			lunch_end = EXCLUDED.lunch_end,
			updated_at = EXCLUDED.updated_at
	`
	days := make(pq.StringArray, 0, len(cal.WorkingDays))
	for _, d := range cal.WorkingDays {
		days = append(days, d.String())
	}
	cal.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		cal.ClinicID,
		days,
		cal.WorkStart,
		cal.WorkEnd,
		cal.HasLunchBreak,
		cal.LunchStart,
		cal.LunchEnd,
		cal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert clinic calendar: %w", err)
	}
	return nil
}
