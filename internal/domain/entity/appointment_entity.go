package entity

import "time"

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentApproved  AppointmentStatus = "APPROVED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentApproved, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment is a consultation between exactly one patient and one doctor.
// Patient, Doctor and Prescription are populated by reads that join them.
type Appointment struct {
	ID             string            `json:"id"`
	Date           time.Time         `json:"date"`
	Complaint      string            `json:"complaint"`
	MedicalHistory string            `json:"medicalHistory"`
	PatientID      string            `json:"patientId"`
	DoctorID       string            `json:"doctorId"`
	Status         AppointmentStatus `json:"status"`
	Payment        *float64          `json:"payment"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`

	Patient      *UserSummary  `json:"patient,omitempty"`
	Doctor       *UserSummary  `json:"doctor,omitempty"`
	Prescription *Prescription `json:"prescription,omitempty"`
}
