package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/internal/domain/repository"
)

type AppointmentRepository struct {
	s *Store
}

// hydrateAppointment must be called with mu held.
func (s *Store) hydrateAppointment(a entity.Appointment) entity.Appointment {
	a.Patient = s.summary(a.PatientID)
	a.Doctor = s.summary(a.DoctorID)
	a.Prescription = nil
	return a
}

func (r *AppointmentRepository) Create(_ context.Context, a *entity.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[a.PatientID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.users[a.DoctorID]; !ok {
		return repository.ErrNotFound
	}
	id, seq, now := r.s.next()
	a.ID, a.CreatedAt, a.UpdatedAt = id, now, now
	stored := *a
	stored.Patient, stored.Doctor, stored.Prescription = nil, nil, nil
	r.s.appointments[id] = &row[entity.Appointment]{seq: seq, val: stored}
	return nil
}

func (r *AppointmentRepository) GetByID(_ context.Context, id string) (*entity.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a := r.s.hydrateAppointment(rec.val)
	for _, rx := range r.s.prescriptions {
		if rx.val.AppointmentID == id {
			p := r.s.hydratePrescription(rx.val)
			a.Prescription = &p
			break
		}
	}
	return &a, nil
}

func (r *AppointmentRepository) ListByPatient(_ context.Context, patientID string) ([]entity.Appointment, error) {
	return r.list(func(a *entity.Appointment) bool { return a.PatientID == patientID }), nil
}

func (r *AppointmentRepository) ListByDoctor(_ context.Context, doctorID string) ([]entity.Appointment, error) {
	return r.list(func(a *entity.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (r *AppointmentRepository) list(match func(*entity.Appointment) bool) []entity.Appointment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	recs := []*row[entity.Appointment]{}
	for _, rec := range r.s.appointments {
		if match(&rec.val) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].val.Date.Equal(recs[j].val.Date) {
			return recs[i].val.Date.Before(recs[j].val.Date)
		}
		return recs[i].seq < recs[j].seq
	})

	out := make([]entity.Appointment, 0, len(recs))
	for _, rec := range recs {
		out = append(out, r.s.hydrateAppointment(rec.val))
	}
	return out
}

func (r *AppointmentRepository) UpdateStatus(_ context.Context, id, doctorID string, status entity.AppointmentStatus) (*entity.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.appointments[id]
	if !ok || rec.val.DoctorID != doctorID {
		return nil, repository.ErrNotFound
	}
	rec.val.Status = status
	rec.val.UpdatedAt = r.s.now().UTC()
	a := r.s.hydrateAppointment(rec.val)
	return &a, nil
}

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)
