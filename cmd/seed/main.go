// Development seeder: fills the database with a handful of clinics,
// their calendars and a spread of appointments so the availability
// endpoints have something to chew on locally.
package main

import (
	"context"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/careloop/scheduling-api/internal/config"
	"github.com/careloop/scheduling-api/internal/model"
	"github.com/careloop/scheduling-api/internal/repository"
	"github.com/careloop/scheduling-api/internal/repository/postgres"
	"github.com/careloop/scheduling-api/pkg/logger"
	"github.com/careloop/scheduling-api/pkg/timeutil"
)

const (
	clinicCount          = 5
	appointmentsPerDay   = 8
	daysToSeed           = 14
	slotDurationMinutes  = 30
	appointmentStartHour = 9
)

func main() {
	_ = godotenv.Load()
	logger.Setup(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	gofakeit.Seed(time.Now().UnixNano())

	clinicRepo := postgres.NewClinicRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	ctx := context.Background()
	for i := 0; i < clinicCount; i++ {
		clinicID := uuid.New()
		if err := seedCalendar(ctx, clinicRepo, clinicID); err != nil {
			log.Fatal().Err(err).Msg("failed to seed calendar")
		}
		if err := seedAppointments(ctx, appointmentRepo, clinicID); err != nil {
			log.Fatal().Err(err).Msg("failed to seed appointments")
		}
		log.Info().Str("clinic_id", clinicID.String()).Msg("seeded clinic")
	}

	log.Info().Msg("seed complete")
}

func seedCalendar(ctx context.Context, repo repository.ClinicRepository, clinicID uuid.UUID) error {
	cal := model.DefaultCalendar(clinicID)

	// Give some clinics a Saturday shift and some a late close.
	if gofakeit.Bool() {
		cal.WorkingDays = append(cal.WorkingDays, time.Saturday)
	}
	if gofakeit.Bool() {
		cal.WorkEnd = 20 * 60
	}

	return repo.UpsertCalendar(ctx, &cal)
}

func seedAppointments(ctx context.Context, repo repository.AppointmentRepository, clinicID uuid.UUID) error {
	day := timeutil.DayStart(time.Now())

	for d := 0; d < daysToSeed; d++ {
		date := day.AddDate(0, 0, d)
		for n := 0; n < appointmentsPerDay; n++ {
			// Random slot-aligned start inside the working day.
			offset := gofakeit.Number(0, 15) * slotDurationMinutes
			start := date.Add(time.Duration(appointmentStartHour)*time.Hour + time.Duration(offset)*time.Minute)

			apt := &model.Appointment{
				ClinicID:  clinicID,
				PatientID: uuid.New(),
				StartTime: start,
				EndTime:   start.Add(slotDurationMinutes * time.Minute),
				Status:    model.AppointmentStatusConfirmed,
				Notes:     gofakeit.Sentence(6),
			}
			apt.ID = uuid.New()
			apt.CreatedAt = time.Now()
			apt.UpdatedAt = time.Now()

			if err := repo.Create(ctx, apt); err != nil {
				return err
			}
		}
	}
	return nil
}
