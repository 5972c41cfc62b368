package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/internal/domain/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PrescriptionRepository struct {
	pool *pgxpool.Pool
}

func NewPrescriptionRepository(pool *pgxpool.Pool) *PrescriptionRepository {
	return &PrescriptionRepository{pool: pool}
}

const prescriptionSelect = `
	SELECT rx.id, rx.appointment_id, rx.patient_id, rx.doctor_id, rx.status, rx.created_at, rx.updated_at,
	       p.id, p.name, p.email, p.role, p.image_url,
	       d.id, d.name, d.email, d.role, d.image_url
	FROM %s rx
	JOIN users p ON p.id = rx.patient_id
	JOIN users d ON d.id = rx.doctor_id
`

const medicineColumns = `id, prescription_id, name, description, image_url, created_at`

func scanPrescription(row pgx.Row) (*entity.Prescription, error) {
	rx := &entity.Prescription{Medicines: []entity.Medicine{}}
	p := &entity.UserSummary{}
	d := &entity.UserSummary{}
	if err := row.Scan(&rx.ID, &rx.AppointmentID, &rx.PatientID, &rx.DoctorID, &rx.Status, &rx.CreatedAt, &rx.UpdatedAt,
		&p.ID, &p.Name, &p.Email, &p.Role, &p.ImageURL,
		&d.ID, &d.Name, &d.Email, &d.Role, &d.ImageURL); err != nil {
		return nil, mapErr(err)
	}
	rx.Patient = p
	rx.Doctor = d
	return rx, nil
}

func scanMedicine(row pgx.Row) (entity.Medicine, error) {
	var m entity.Medicine
	err := row.Scan(&m.ID, &m.PrescriptionID, &m.Name, &m.Description, &m.ImageURL, &m.CreatedAt)
	return m, mapErr(err)
}

func getPrescription(ctx context.Context, q querier, where string, arg any) (*entity.Prescription, error) {
	rx, err := scanPrescription(q.QueryRow(ctx, replaceSource(prescriptionSelect, "prescriptions")+where, arg))
	if err != nil {
		return nil, err
	}
	if err := loadMedicines(ctx, q, []*entity.Prescription{rx}); err != nil {
		return nil, err
	}
	return rx, nil
}

// loadMedicines fills Medicines for every prescription with a single query.
func loadMedicines(ctx context.Context, q querier, list []*entity.Prescription) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, 0, len(list))
	byID := make(map[string]*entity.Prescription, len(list))
	for _, rx := range list {
		ids = append(ids, rx.ID)
		byID[rx.ID] = rx
	}

	rows, err := q.Query(ctx, `
		SELECT `+medicineColumns+`
		FROM medicines
		WHERE prescription_id = ANY($1::uuid[])
		ORDER BY created_at, id
	`, ids)
	if err != nil {
		return mapErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return err
		}
		if rx, ok := byID[m.PrescriptionID]; ok {
			rx.Medicines = append(rx.Medicines, m)
		}
	}
	return rows.Err()
}

func (r *PrescriptionRepository) Create(ctx context.Context, rx *entity.Prescription) error {
	if err := checkIDs(rx.AppointmentID, rx.PatientID, rx.DoctorID); err != nil {
		return err
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO prescriptions (appointment_id, patient_id, doctor_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, rx.AppointmentID, rx.PatientID, rx.DoctorID, rx.Status)
	if err := row.Scan(&rx.ID, &rx.CreatedAt, &rx.UpdatedAt); err != nil {
		return mapErr(err)
	}

	for i := range rx.Medicines {
		m := &rx.Medicines[i]
		m.PrescriptionID = rx.ID
		if err := insertMedicine(ctx, tx, m); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func insertMedicine(ctx context.Context, q querier, m *entity.Medicine) error {
	row := q.QueryRow(ctx, `
		INSERT INTO medicines (prescription_id, name, description, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, m.PrescriptionID, m.Name, m.Description, m.ImageURL)
	return mapErr(row.Scan(&m.ID, &m.CreatedAt))
}

func (r *PrescriptionRepository) GetByID(ctx context.Context, id string) (*entity.Prescription, error) {
	if err := checkIDs(id); err != nil {
		return nil, err
	}
	return getPrescription(ctx, r.pool, `WHERE rx.id = $1`, id)
}

func (r *PrescriptionRepository) List(ctx context.Context, f repository.PrescriptionFilter) ([]entity.Prescription, error) {
	rows, err := r.pool.Query(ctx, replaceSource(prescriptionSelect, "prescriptions")+`
		WHERE ($1 = '' OR rx.patient_id::text = $1)
		  AND ($2 = '' OR rx.doctor_id::text = $2)
		ORDER BY rx.created_at DESC
	`, f.PatientID, f.DoctorID)
	if err != nil {
		return nil, mapErr(err)
	}

	var list []*entity.Prescription
	for rows.Next() {
		rx, err := scanPrescription(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		list = append(list, rx)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}

	if err := loadMedicines(ctx, r.pool, list); err != nil {
		return nil, err
	}

	out := make([]entity.Prescription, 0, len(list))
	for _, rx := range list {
		out = append(out, *rx)
	}
	return out, nil
}

func (r *PrescriptionRepository) UpdateStatus(ctx context.Context, id string, status entity.PrescriptionStatus) (*entity.Prescription, error) {
	if err := checkIDs(id); err != nil {
		return nil, err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE prescriptions SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return nil, mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PrescriptionRepository) AddMedicine(ctx context.Context, m *entity.Medicine) error {
	if err := checkIDs(m.PrescriptionID); err != nil {
		return err
	}
	return insertMedicine(ctx, r.pool, m)
}

func (r *PrescriptionRepository) RemoveMedicine(ctx context.Context, prescriptionID, medicineID string) error {
	if err := checkIDs(prescriptionID, medicineID); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM medicines WHERE id = $1 AND prescription_id = $2
	`, medicineID, prescriptionID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PrescriptionRepository = (*PrescriptionRepository)(nil)
