package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/medico-api/internal/domain/entity"
)

var (
	patient    = &entity.User{ID: "p1", Role: entity.RolePatient}
	doctor     = &entity.User{ID: "d1", Role: entity.RoleDoctor}
	otherDoc   = &entity.User{ID: "d2", Role: entity.RoleDoctor}
	pharmacist = &entity.User{ID: "ph1", Role: entity.RolePharmacist}
)

func TestAppointmentRules(t *testing.T) {
	a := &entity.Appointment{PatientID: "p1", DoctorID: "d1"}

	assert.True(t, CanCreateAppointment(patient))
	assert.False(t, CanCreateAppointment(doctor))
	assert.False(t, CanCreateAppointment(nil))

	assert.True(t, CanListAppointments(patient))
	assert.True(t, CanListAppointments(doctor))
	assert.False(t, CanListAppointments(pharmacist))

	assert.True(t, CanViewAppointment(patient, a))
	assert.True(t, CanViewAppointment(doctor, a))
	assert.False(t, CanViewAppointment(otherDoc, a))
	assert.False(t, CanViewAppointment(pharmacist, a))

	assert.True(t, CanChangeAppointmentStatus(doctor))
	assert.False(t, CanChangeAppointmentStatus(patient))
	assert.True(t, CanViewSchedule(doctor))
	assert.False(t, CanViewSchedule(pharmacist))
}

func TestPrescriptionRules(t *testing.T) {
	a := &entity.Appointment{PatientID: "p1", DoctorID: "d1"}
	p := &entity.Prescription{PatientID: "p1", DoctorID: "d1"}

	assert.True(t, CanWritePrescription(doctor))
	assert.False(t, CanWritePrescription(pharmacist))
	assert.True(t, OwnsAppointment(doctor, a))
	assert.False(t, OwnsAppointment(otherDoc, a))
	assert.False(t, OwnsAppointment(patient, a))
	assert.True(t, OwnsPrescription(doctor, p))
	assert.False(t, OwnsPrescription(otherDoc, p))

	assert.True(t, CanChangePrescriptionStatus(pharmacist))
	assert.False(t, CanChangePrescriptionStatus(doctor))

	assert.True(t, CanViewPrescription(patient, p))
	assert.True(t, CanViewPrescription(doctor, p))
	assert.True(t, CanViewPrescription(pharmacist, p))
	assert.False(t, CanViewPrescription(otherDoc, p))
	assert.False(t, CanViewPrescription(&entity.User{ID: "p2", Role: entity.RolePatient}, p))
}

func TestPrescriptionScope(t *testing.T) {
	tests := []struct {
		name            string
		user            *entity.User
		patient, doctor string
		ok              bool
	}{
		{"patient", patient, "p1", "", true},
		{"doctor", doctor, "", "d1", true},
		{"pharmacist", pharmacist, "", "", true},
		{"anonymous", nil, "", "", false},
		{"unknown role", &entity.User{ID: "x", Role: "ADMIN"}, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pid, did, ok := PrescriptionScope(tt.user)
			assert.Equal(t, tt.patient, pid)
			assert.Equal(t, tt.doctor, did)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
