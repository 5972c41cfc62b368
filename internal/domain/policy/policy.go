// Package policy holds the authorization predicates shared by every resource.
// Services ask these questions instead of comparing roles inline.
package policy

import "github.com/oksasatya/medico-api/internal/domain/entity"

func is(u *entity.User, role entity.Role) bool {
	return u != nil && u.Role == role
}

// Appointments

func CanCreateAppointment(u *entity.User) bool { return is(u, entity.RolePatient) }

// CanListAppointments is true for the roles that take part in appointments.
func CanListAppointments(u *entity.User) bool {
	return is(u, entity.RolePatient) || is(u, entity.RoleDoctor)
}

func CanViewAppointment(u *entity.User, a *entity.Appointment) bool {
	if u == nil || a == nil {
		return false
	}
	switch u.Role {
	case entity.RolePatient:
		return a.PatientID == u.ID
	case entity.RoleDoctor:
		return a.DoctorID == u.ID
	}
	return false
}

// CanChangeAppointmentStatus is the role half of the rule; ownership is
// enforced by the store update being scoped to the doctor.
func CanChangeAppointmentStatus(u *entity.User) bool { return is(u, entity.RoleDoctor) }

func CanViewSchedule(u *entity.User) bool { return is(u, entity.RoleDoctor) }

// Prescriptions

func CanWritePrescription(u *entity.User) bool { return is(u, entity.RoleDoctor) }

// OwnsAppointment reports whether the doctor u may prescribe for a.
func OwnsAppointment(u *entity.User, a *entity.Appointment) bool {
	return is(u, entity.RoleDoctor) && a != nil && a.DoctorID == u.ID
}

// OwnsPrescription reports whether the doctor u may edit p's medicines.
func OwnsPrescription(u *entity.User, p *entity.Prescription) bool {
	return is(u, entity.RoleDoctor) && p != nil && p.DoctorID == u.ID
}

func CanChangePrescriptionStatus(u *entity.User) bool { return is(u, entity.RolePharmacist) }

func CanViewPrescription(u *entity.User, p *entity.Prescription) bool {
	if u == nil || p == nil {
		return false
	}
	switch u.Role {
	case entity.RolePatient:
		return p.PatientID == u.ID
	case entity.RoleDoctor:
		return p.DoctorID == u.ID
	case entity.RolePharmacist:
		return true
	}
	return false
}

// PrescriptionScope returns the patient/doctor ids a listing must be filtered by.
// ok is false for users with no access to prescriptions.
func PrescriptionScope(u *entity.User) (patientID, doctorID string, ok bool) {
	if u == nil {
		return "", "", false
	}
	switch u.Role {
	case entity.RolePatient:
		return u.ID, "", true
	case entity.RoleDoctor:
		return "", u.ID, true
	case entity.RolePharmacist:
		return "", "", true
	}
	return "", "", false
}
