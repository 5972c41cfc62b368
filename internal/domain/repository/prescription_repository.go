package repository

import (
	"context"

	"github.com/oksasatya/medico-api/internal/domain/entity"
)

// PrescriptionFilter narrows List; empty fields match everything.
type PrescriptionFilter struct {
	PatientID string
	DoctorID  string
}

type PrescriptionRepository interface {
	// Create writes the prescription and its medicines atomically.
	// ErrDuplicate means the appointment already has a prescription.
	Create(ctx context.Context, p *entity.Prescription) error
	GetByID(ctx context.Context, id string) (*entity.Prescription, error)
	List(ctx context.Context, f PrescriptionFilter) ([]entity.Prescription, error)
	UpdateStatus(ctx context.Context, id string, status entity.PrescriptionStatus) (*entity.Prescription, error)
	AddMedicine(ctx context.Context, m *entity.Medicine) error
	RemoveMedicine(ctx context.Context, prescriptionID, medicineID string) error
}
