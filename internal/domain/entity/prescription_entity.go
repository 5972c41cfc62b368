package entity

import "time"

type PrescriptionStatus string

const (
	PrescriptionPending   PrescriptionStatus = "PENDING"
	PrescriptionReady     PrescriptionStatus = "READY"
	PrescriptionCompleted PrescriptionStatus = "COMPLETED"
	PrescriptionCancelled PrescriptionStatus = "CANCELLED"
)

func (s PrescriptionStatus) Valid() bool {
	switch s {
	case PrescriptionPending, PrescriptionReady, PrescriptionCompleted, PrescriptionCancelled:
		return true
	}
	return false
}

// Prescription is issued by the doctor of one appointment and fulfilled by a pharmacist.
type Prescription struct {
	ID            string             `json:"id"`
	AppointmentID string             `json:"appointmentId"`
	PatientID     string             `json:"patientId"`
	DoctorID      string             `json:"doctorId"`
	Status        PrescriptionStatus `json:"status"`
	Medicines     []Medicine         `json:"medicines"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`

	Patient *UserSummary `json:"patient,omitempty"`
	Doctor  *UserSummary `json:"doctor,omitempty"`
}

type Medicine struct {
	ID             string    `json:"id"`
	PrescriptionID string    `json:"prescriptionId"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	ImageURL       *string   `json:"imageUrl"`
	CreatedAt      time.Time `json:"createdAt"`
}
