package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/internal/domain/repository"
)

type PrescriptionRepository struct {
	s *Store
}

// hydratePrescription must be called with mu held.
func (s *Store) hydratePrescription(p entity.Prescription) entity.Prescription {
	p.Patient = s.summary(p.PatientID)
	p.Doctor = s.summary(p.DoctorID)

	recs := []*row[entity.Medicine]{}
	for _, m := range s.medicines {
		if m.val.PrescriptionID == p.ID {
			recs = append(recs, m)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	p.Medicines = make([]entity.Medicine, 0, len(recs))
	for _, m := range recs {
		p.Medicines = append(p.Medicines, m.val)
	}
	return p
}

func (r *PrescriptionRepository) Create(_ context.Context, p *entity.Prescription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[p.AppointmentID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range r.s.prescriptions {
		if existing.val.AppointmentID == p.AppointmentID {
			return repository.ErrDuplicate
		}
	}

	id, seq, now := r.s.next()
	p.ID, p.CreatedAt, p.UpdatedAt = id, now, now
	for i := range p.Medicines {
		m := &p.Medicines[i]
		mid, mseq, mnow := r.s.next()
		m.ID, m.PrescriptionID, m.CreatedAt = mid, id, mnow
		r.s.medicines[mid] = &row[entity.Medicine]{seq: mseq, val: *m}
	}

	stored := *p
	stored.Medicines, stored.Patient, stored.Doctor = nil, nil, nil
	r.s.prescriptions[id] = &row[entity.Prescription]{seq: seq, val: stored}
	return nil
}

func (r *PrescriptionRepository) GetByID(_ context.Context, id string) (*entity.Prescription, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.prescriptions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := r.s.hydratePrescription(rec.val)
	return &p, nil
}

func (r *PrescriptionRepository) List(_ context.Context, f repository.PrescriptionFilter) ([]entity.Prescription, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	recs := []*row[entity.Prescription]{}
	for _, rec := range r.s.prescriptions {
		if f.PatientID != "" && rec.val.PatientID != f.PatientID {
			continue
		}
		if f.DoctorID != "" && rec.val.DoctorID != f.DoctorID {
			continue
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })

	out := make([]entity.Prescription, 0, len(recs))
	for _, rec := range recs {
		out = append(out, r.s.hydratePrescription(rec.val))
	}
	return out, nil
}

func (r *PrescriptionRepository) UpdateStatus(_ context.Context, id string, status entity.PrescriptionStatus) (*entity.Prescription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.prescriptions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rec.val.Status = status
	rec.val.UpdatedAt = r.s.now().UTC()
	p := r.s.hydratePrescription(rec.val)
	return &p, nil
}

func (r *PrescriptionRepository) AddMedicine(_ context.Context, m *entity.Medicine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.prescriptions[m.PrescriptionID]; !ok {
		return repository.ErrNotFound
	}
	id, seq, now := r.s.next()
	m.ID, m.CreatedAt = id, now
	r.s.medicines[id] = &row[entity.Medicine]{seq: seq, val: *m}
	return nil
}

func (r *PrescriptionRepository) RemoveMedicine(_ context.Context, prescriptionID, medicineID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.medicines[medicineID]
	if !ok || m.val.PrescriptionID != prescriptionID {
		return repository.ErrNotFound
	}
	delete(r.s.medicines, medicineID)
	return nil
}

var _ repository.PrescriptionRepository = (*PrescriptionRepository)(nil)
