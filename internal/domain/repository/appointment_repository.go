package repository

import (
	"context"

	"github.com/oksasatya/medico-api/internal/domain/entity"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *entity.Appointment) error
	// GetByID loads the appointment with patient, doctor and prescription.
	GetByID(ctx context.Context, id string) (*entity.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]entity.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]entity.Appointment, error)
	// UpdateStatus only touches the appointment when it belongs to doctorID,
	// otherwise it returns ErrNotFound.
	UpdateStatus(ctx context.Context, id, doctorID string, status entity.AppointmentStatus) (*entity.Appointment, error)
}
