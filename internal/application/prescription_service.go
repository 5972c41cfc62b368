package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/internal/domain/policy"
	repo "github.com/oksasatya/medico-api/internal/domain/repository"
	"github.com/oksasatya/medico-api/pkg/apperror"
)

const msgPrescriptionNotFound = "Prescription not found"

type PrescriptionService struct {
	Repo         repo.PrescriptionRepository
	Appointments repo.AppointmentRepository
	Notifier     Notifier
	Logger       *logrus.Logger
}

func NewPrescriptionService(r repo.PrescriptionRepository, appointments repo.AppointmentRepository, notifier Notifier, logger *logrus.Logger) *PrescriptionService {
	return &PrescriptionService{Repo: r, Appointments: appointments, Notifier: notifier, Logger: logger}
}

type MedicineInput struct {
	Name        string
	Description *string
	ImageURL    *string
}

func (in MedicineInput) toEntity() entity.Medicine {
	return entity.Medicine{Name: in.Name, Description: in.Description, ImageURL: in.ImageURL}
}

type CreatePrescriptionInput struct {
	AppointmentID string
	Medicines     []MedicineInput
}

func (s *PrescriptionService) Create(ctx context.Context, actor *entity.User, in CreatePrescriptionInput) (*entity.Prescription, error) {
	if !policy.CanWritePrescription(actor) {
		return nil, apperror.Forbidden("Only doctors can create prescriptions")
	}

	a, err := s.Appointments.GetByID(ctx, in.AppointmentID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.Store("Failed to create prescription", err)
	}
	if err != nil || !policy.OwnsAppointment(actor, a) {
		return nil, apperror.NotFound("Appointment not found")
	}
	if a.Prescription != nil {
		return nil, apperror.Validation("Appointment already has a prescription")
	}

	p := &entity.Prescription{
		AppointmentID: a.ID,
		PatientID:     a.PatientID,
		DoctorID:      actor.ID,
		Status:        entity.PrescriptionPending,
		Medicines:     make([]entity.Medicine, 0, len(in.Medicines)),
	}
	for _, m := range in.Medicines {
		p.Medicines = append(p.Medicines, m.toEntity())
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Validation("Appointment already has a prescription")
		}
		return nil, apperror.Store("Failed to create prescription", err)
	}
	doctor := actor.Summary()
	p.Patient, p.Doctor = a.Patient, &doctor

	s.Notifier.Notify(ctx, p.PatientID, entity.NotificationPrescription,
		"New Prescription",
		"Dr. "+actor.Name+" has created a new prescription for you")

	return p, nil
}

// List is scoped by role: patients and doctors see their own, pharmacists see all.
func (s *PrescriptionService) List(ctx context.Context, actor *entity.User) ([]entity.Prescription, error) {
	patientID, doctorID, ok := policy.PrescriptionScope(actor)
	if !ok {
		return nil, apperror.Forbidden("Invalid user role")
	}
	list, err := s.Repo.List(ctx, repo.PrescriptionFilter{PatientID: patientID, DoctorID: doctorID})
	if err != nil {
		return nil, apperror.Store("Failed to fetch prescriptions", err)
	}
	return list, nil
}

func (s *PrescriptionService) Get(ctx context.Context, actor *entity.User, id string) (*entity.Prescription, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewPrescription(actor, p) {
		return nil, apperror.Forbidden("You do not have access to this prescription")
	}
	return p, nil
}

func (s *PrescriptionService) UpdateStatus(ctx context.Context, actor *entity.User, id string, status entity.PrescriptionStatus) (*entity.Prescription, error) {
	if !policy.CanChangePrescriptionStatus(actor) {
		return nil, apperror.Forbidden("Only pharmacists can update prescription status")
	}
	if !status.Valid() {
		return nil, apperror.Validation("Invalid prescription status")
	}

	p, err := s.Repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(msgPrescriptionNotFound)
		}
		return nil, apperror.Store("Failed to update prescription", err)
	}

	if status == entity.PrescriptionReady {
		s.Notifier.Notify(ctx, p.PatientID, entity.NotificationPrescription,
			"Prescription Ready",
			"Your prescription is ready for pickup")
	}
	return p, nil
}

func (s *PrescriptionService) AddMedicine(ctx context.Context, actor *entity.User, prescriptionID string, in MedicineInput) (*entity.Medicine, error) {
	if !policy.CanWritePrescription(actor) {
		return nil, apperror.Forbidden("Only doctors can add medicines")
	}
	if _, err := s.owned(ctx, actor, prescriptionID); err != nil {
		return nil, err
	}

	m := in.toEntity()
	m.PrescriptionID = prescriptionID
	if err := s.Repo.AddMedicine(ctx, &m); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(msgPrescriptionNotFound)
		}
		return nil, apperror.Store("Failed to add medicine", err)
	}
	return &m, nil
}

func (s *PrescriptionService) RemoveMedicine(ctx context.Context, actor *entity.User, prescriptionID, medicineID string) error {
	if !policy.CanWritePrescription(actor) {
		return apperror.Forbidden("Only doctors can remove medicines")
	}
	if _, err := s.owned(ctx, actor, prescriptionID); err != nil {
		return err
	}

	if err := s.Repo.RemoveMedicine(ctx, prescriptionID, medicineID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperror.NotFound("Medicine not found")
		}
		return apperror.Store("Failed to remove medicine", err)
	}
	return nil
}

func (s *PrescriptionService) find(ctx context.Context, id string) (*entity.Prescription, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(msgPrescriptionNotFound)
		}
		return nil, apperror.Store("Failed to fetch prescription", err)
	}
	return p, nil
}

// owned loads a prescription the doctor may edit; someone else's reads as missing.
func (s *PrescriptionService) owned(ctx context.Context, actor *entity.User, id string) (*entity.Prescription, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.OwnsPrescription(actor, p) {
		return nil, apperror.NotFound(msgPrescriptionNotFound)
	}
	return p, nil
}
