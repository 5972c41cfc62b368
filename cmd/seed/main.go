package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/medico-api/config"
	"github.com/oksasatya/medico-api/internal/domain/entity"
	repo "github.com/oksasatya/medico-api/internal/domain/repository"
	pginfra "github.com/oksasatya/medico-api/internal/infrastructure/postgres"
	"github.com/oksasatya/medico-api/pkg/helpers"
)

const seedPassword = "password123"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, pginfra.PoolOptions{
		DSN:             cfg.PostgresDSN(),
		AppName:         cfg.AppName,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	users := pginfra.NewUserRepository(pool)
	appointments := pginfra.NewAppointmentRepository(pool)
	prescriptions := pginfra.NewPrescriptionRepository(pool)

	doctor := ensureUser(ctx, users, logger, "dr. Kasyfil", "kasyfil@medico.test", entity.RoleDoctor)
	patient := ensureUser(ctx, users, logger, "Bryan", "bryan@medico.test", entity.RolePatient)
	ensureUser(ctx, users, logger, "Apoteker Sari", "sari@medico.test", entity.RolePharmacist)

	existing, err := appointments.ListByPatient(ctx, patient.ID)
	if err != nil {
		logger.WithError(err).Fatal("failed to list appointments")
	}
	if len(existing) > 0 {
		logger.Info("appointments already seeded")
		return
	}

	fee := 150000.0
	a := &entity.Appointment{
		Date:           time.Now().AddDate(0, 0, 3).Truncate(24 * time.Hour),
		Complaint:      "Persistent headache for three days",
		MedicalHistory: "None",
		PatientID:      patient.ID,
		DoctorID:       doctor.ID,
		Status:         entity.AppointmentPending,
		Payment:        &fee,
	}
	if err := appointments.Create(ctx, a); err != nil {
		logger.WithError(err).Fatal("failed to seed appointment")
	}
	if _, err := appointments.UpdateStatus(ctx, a.ID, doctor.ID, entity.AppointmentApproved); err != nil {
		logger.WithError(err).Fatal("failed to approve appointment")
	}

	desc := "500mg, three times a day after meals"
	rx := &entity.Prescription{
		AppointmentID: a.ID,
		PatientID:     patient.ID,
		DoctorID:      doctor.ID,
		Status:        entity.PrescriptionPending,
		Medicines:     []entity.Medicine{{Name: "Paracetamol", Description: &desc}},
	}
	if err := prescriptions.Create(ctx, rx); err != nil {
		logger.WithError(err).Fatal("failed to seed prescription")
	}

	logger.WithFields(logrus.Fields{
		"appointment_id":  a.ID,
		"prescription_id": rx.ID,
		"password":        seedPassword,
	}).Info("seed complete")
}

func ensureUser(ctx context.Context, users repo.UserRepository, logger *logrus.Logger, name, email string, role entity.Role) *entity.User {
	if u, err := users.GetByEmail(ctx, email); err == nil {
		return u
	} else if !errors.Is(err, repo.ErrNotFound) {
		logger.WithError(err).Fatal("failed to look up user")
	}

	hash, err := helpers.HashPassword(seedPassword)
	if err != nil {
		logger.WithError(err).Fatal("failed to hash password")
	}
	u := &entity.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := users.Create(ctx, u); err != nil {
		logger.WithError(err).Fatal("failed to seed user")
	}
	logger.WithFields(logrus.Fields{"id": u.ID, "email": email, "role": role}).Info("seeded user")
	return u
}
