package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/internal/domain/repository"
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// appointmentSelect expects the appointment aliased as a.
const appointmentSelect = `
	SELECT a.id, a.date, a.complaint, a.medical_history, a.patient_id, a.doctor_id,
	       a.status, a.payment::float8, a.created_at, a.updated_at,
	       p.id, p.name, p.email, p.role, p.image_url,
	       d.id, d.name, d.email, d.role, d.image_url
	FROM %s a
	JOIN users p ON p.id = a.patient_id
	JOIN users d ON d.id = a.doctor_id
`

func appointmentFrom(source string) string {
	return replaceSource(appointmentSelect, source)
}

func scanAppointment(row pgx.Row) (*entity.Appointment, error) {
	a := &entity.Appointment{}
	p := &entity.UserSummary{}
	d := &entity.UserSummary{}
	if err := row.Scan(&a.ID, &a.Date, &a.Complaint, &a.MedicalHistory, &a.PatientID, &a.DoctorID,
		&a.Status, &a.Payment, &a.CreatedAt, &a.UpdatedAt,
		&p.ID, &p.Name, &p.Email, &p.Role, &p.ImageURL,
		&d.ID, &d.Name, &d.Email, &d.Role, &d.ImageURL); err != nil {
		return nil, mapErr(err)
	}
	a.Patient = p
	a.Doctor = d
	return a, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	if err := checkIDs(a.PatientID, a.DoctorID); err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (date, complaint, medical_history, patient_id, doctor_id, status, payment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, a.Date, a.Complaint, a.MedicalHistory, a.PatientID, a.DoctorID, a.Status, a.Payment)

	return mapErr(row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt))
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	if err := checkIDs(id); err != nil {
		return nil, err
	}
	a, err := scanAppointment(r.pool.QueryRow(ctx, appointmentFrom("appointments")+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, err
	}
	p, err := getPrescription(ctx, r.pool, `WHERE rx.appointment_id = $1`, a.ID)
	switch {
	case err == nil:
		a.Prescription = p
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	return a, nil
}

func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]entity.Appointment, error) {
	return r.list(ctx, `WHERE a.patient_id = $1`, patientID)
}

func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]entity.Appointment, error) {
	return r.list(ctx, `WHERE a.doctor_id = $1`, doctorID)
}

func (r *AppointmentRepository) list(ctx context.Context, where string, arg string) ([]entity.Appointment, error) {
	rows, err := r.pool.Query(ctx, appointmentFrom("appointments")+where+` ORDER BY a.date ASC`, arg)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []entity.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id, doctorID string, status entity.AppointmentStatus) (*entity.Appointment, error) {
	if err := checkIDs(id, doctorID); err != nil {
		return nil, err
	}
	q := `WITH updated AS (
		UPDATE appointments
		SET status = $1, updated_at = now()
		WHERE id = $2 AND doctor_id = $3
		RETURNING *
	)` + appointmentFrom("updated")
	return scanAppointment(r.pool.QueryRow(ctx, q, status, id, doctorID))
}

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)
