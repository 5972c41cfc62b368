package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/internal/domain/policy"
	repo "github.com/oksasatya/medico-api/internal/domain/repository"
	"github.com/oksasatya/medico-api/pkg/apperror"
)

// notificationDateLayout renders appointment dates inside notification messages.
const notificationDateLayout = "January 2, 2006"

type AppointmentService struct {
	Repo     repo.AppointmentRepository
	Users    repo.UserRepository
	Notifier Notifier
	Logger   *logrus.Logger
}

func NewAppointmentService(r repo.AppointmentRepository, users repo.UserRepository, notifier Notifier, logger *logrus.Logger) *AppointmentService {
	return &AppointmentService{Repo: r, Users: users, Notifier: notifier, Logger: logger}
}

type CreateAppointmentInput struct {
	Date           time.Time
	Complaint      string
	MedicalHistory string
	DoctorID       string
	Payment        *float64
}

func (s *AppointmentService) Create(ctx context.Context, actor *entity.User, in CreateAppointmentInput) (*entity.Appointment, error) {
	if !policy.CanCreateAppointment(actor) {
		return nil, apperror.Forbidden("Only patients can create appointments")
	}

	doctor, err := s.Users.GetByID(ctx, in.DoctorID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound("Doctor not found")
		}
		return nil, apperror.Store("Failed to create appointment", err)
	}
	if doctor.Role != entity.RoleDoctor {
		return nil, apperror.NotFound("Doctor not found")
	}

	a := &entity.Appointment{
		Date:           in.Date.UTC(),
		Complaint:      in.Complaint,
		MedicalHistory: in.MedicalHistory,
		PatientID:      actor.ID,
		DoctorID:       doctor.ID,
		Status:         entity.AppointmentPending,
		Payment:        in.Payment,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, apperror.Store("Failed to create appointment", err)
	}
	patient, doc := actor.Summary(), doctor.Summary()
	a.Patient, a.Doctor = &patient, &doc

	s.Notifier.Notify(ctx, doctor.ID, entity.NotificationAppointment,
		"New Appointment Request",
		"You have a new appointment request from "+actor.Name)

	return a, nil
}

// List returns the actor's appointments as patient or as doctor.
func (s *AppointmentService) List(ctx context.Context, actor *entity.User) ([]entity.Appointment, error) {
	if !policy.CanListAppointments(actor) {
		return nil, apperror.Forbidden("Only patients and doctors have appointments")
	}

	var (
		list []entity.Appointment
		err  error
	)
	if actor.Role == entity.RoleDoctor {
		list, err = s.Repo.ListByDoctor(ctx, actor.ID)
	} else {
		list, err = s.Repo.ListByPatient(ctx, actor.ID)
	}
	if err != nil {
		return nil, apperror.Store("Failed to fetch appointments", err)
	}
	return list, nil
}

func (s *AppointmentService) Get(ctx context.Context, actor *entity.User, id string) (*entity.Appointment, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound("Appointment not found")
		}
		return nil, apperror.Store("Failed to fetch appointment", err)
	}
	if !policy.CanViewAppointment(actor, a) {
		return nil, apperror.Forbidden("You do not have access to this appointment")
	}
	return a, nil
}

// UpdateStatus lets the assigned doctor move the appointment. The patient
// hears about approvals and cancellations.
func (s *AppointmentService) UpdateStatus(ctx context.Context, actor *entity.User, id string, status entity.AppointmentStatus) (*entity.Appointment, error) {
	if !policy.CanChangeAppointmentStatus(actor) {
		return nil, apperror.Forbidden("Only doctors can update appointment status")
	}
	if !status.Valid() {
		return nil, apperror.Validation("Invalid appointment status")
	}

	a, err := s.Repo.UpdateStatus(ctx, id, actor.ID, status)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound("Appointment not found")
		}
		return nil, apperror.Store("Failed to update appointment", err)
	}

	date := a.Date.Format(notificationDateLayout)
	switch status {
	case entity.AppointmentApproved:
		s.Notifier.Notify(ctx, a.PatientID, entity.NotificationAppointment,
			"Appointment Approved",
			"Your appointment for "+date+" with Dr. "+actor.Name+" has been approved")
	case entity.AppointmentCancelled:
		s.Notifier.Notify(ctx, a.PatientID, entity.NotificationAppointment,
			"Appointment Cancelled",
			"Your appointment for "+date+" has been cancelled")
	}
	return a, nil
}

// Schedule is the doctor's own agenda, earliest first.
func (s *AppointmentService) Schedule(ctx context.Context, actor *entity.User) ([]entity.Appointment, error) {
	if !policy.CanViewSchedule(actor) {
		return nil, apperror.Forbidden("Only doctors have a schedule")
	}
	list, err := s.Repo.ListByDoctor(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Store("Failed to fetch schedule", err)
	}
	return list, nil
}
