package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

const selectTreatments = `
	SELECT
		t.treatment_date,
		t.patient_id,
		t.attending_doctor_id,
		p.first_name || ' ' || p.last_name AS patient_name,
		d.first_name || ' ' || d.last_name AS doctor_name,
		dept.department_number,
		ARRAY_AGG(tm.medication_code) FILTER (WHERE tm.medication_code IS NOT NULL) AS medications
	FROM treatment t
	JOIN person p ON t.patient_id = p.id_number
	JOIN person d ON t.attending_doctor_id = d.id_number
	JOIN attending_doctor ad ON t.attending_doctor_id = ad.id_number
	JOIN department dept ON ad.department_number = dept.department_number
	LEFT JOIN treatment_medication tm ON t.treatment_date = tm.treatment_date
	                                 AND t.patient_id = tm.patient_id
	                                 AND t.attending_doctor_id = tm.attending_doctor_id
`

const groupTreatments = `
	GROUP BY t.treatment_date, t.patient_id, t.attending_doctor_id,
	         p.first_name, p.last_name, d.first_name, d.last_name, dept.department_number
`

const keyFilter = `treatment_date = $1 AND patient_id = $2 AND attending_doctor_id = $3`

const msgTreatmentExists = "treatment already exists for this date, patient, and doctor"

type treatmentRow struct {
	model.Treatment
	MedicationCodes pq.StringArray `db:"medications"`
}

func (row *treatmentRow) toModel() *model.Treatment {
	t := row.Treatment
	t.Medications = []string(row.MedicationCodes)
	if t.Medications == nil {
		t.Medications = []string{}
	}
	return &t
}

type treatmentRepository struct {
	BaseRepository
}

func NewTreatmentRepository(db *sqlx.DB, m *metrics.Metrics) repository.TreatmentRepository {
	return &treatmentRepository{BaseRepository: NewBaseRepository(db, m)}
}

// Create rejects an existing key, then inserts the treatment and one
// medication row per code in the same transaction. A unique violation from
// the insert itself (a concurrent create that passed the same check) is
// reported as a conflict too.
func (r *treatmentRepository) Create(ctx context.Context, key model.TreatmentKey, medications []string) error {
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		exists, err := treatmentExists(ctx, tx, key)
		if err != nil {
			return err
		}
		if exists {
			return errors.Conflict(msgTreatmentExists, nil)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO treatment (treatment_date, patient_id, attending_doctor_id) VALUES ($1, $2, $3)`,
			key.TreatmentDate, key.PatientID, key.AttendingDoctorID,
		); err != nil {
			return fmt.Errorf("failed to create treatment: %w", err)
		}

		return insertMedications(ctx, tx, key, medications)
	})
	if isUniqueViolation(err) {
		return errors.Conflict(msgTreatmentExists, err)
	}
	return translate("treatment", err)
}

func (r *treatmentRepository) Get(ctx context.Context, key model.TreatmentKey) (*model.Treatment, error) {
	var row treatmentRow
	query := selectTreatments + ` WHERE t.treatment_date = $1 AND t.patient_id = $2 AND t.attending_doctor_id = $3 ` + groupTreatments
	if err := r.db.GetContext(ctx, &row, query, key.TreatmentDate, key.PatientID, key.AttendingDoctorID); err != nil {
		return nil, translate("treatment", fmt.Errorf("failed to get treatment: %w", err))
	}
	return row.toModel(), nil
}

// ReplaceMedications discards the treatment's medication set and inserts
// medications in its place.
func (r *treatmentRepository) ReplaceMedications(ctx context.Context, key model.TreatmentKey, medications []string) error {
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		exists, err := treatmentExists(ctx, tx, key)
		if err != nil {
			return err
		}
		if !exists {
			return errors.NotFound("treatment", nil)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM treatment_medication WHERE `+keyFilter,
			key.TreatmentDate, key.PatientID, key.AttendingDoctorID,
		); err != nil {
			return fmt.Errorf("failed to clear treatment medications: %w", err)
		}

		return insertMedications(ctx, tx, key, medications)
	})
	return translate("treatment medication", err)
}

// Delete removes the treatment; medication rows cascade in the schema.
func (r *treatmentRepository) Delete(ctx context.Context, key model.TreatmentKey) error {
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM treatment WHERE `+keyFilter,
			key.TreatmentDate, key.PatientID, key.AttendingDoctorID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete treatment: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return errors.NotFound("treatment", nil)
		}
		return nil
	})
	return translate("treatment", err)
}

func (r *treatmentRepository) List(ctx context.Context) ([]*model.Treatment, error) {
	var rows []treatmentRow
	query := selectTreatments + groupTreatments + ` ORDER BY t.treatment_date DESC, p.last_name, p.first_name`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, translate("treatment", fmt.Errorf("failed to list treatments: %w", err))
	}

	treatments := make([]*model.Treatment, 0, len(rows))
	for i := range rows {
		treatments = append(treatments, rows[i].toModel())
	}
	return treatments, nil
}

func treatmentExists(ctx context.Context, tx *sqlx.Tx, key model.TreatmentKey) (bool, error) {
	var exists bool
	err := tx.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM treatment WHERE `+keyFilter+`)`,
		key.TreatmentDate, key.PatientID, key.AttendingDoctorID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to check treatment: %w", err)
	}
	return exists, nil
}

func insertMedications(ctx context.Context, tx *sqlx.Tx, key model.TreatmentKey, codes []string) error {
	for _, code := range codes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO treatment_medication (treatment_date, patient_id, attending_doctor_id, medication_code)
			VALUES ($1, $2, $3, $4)
		`, key.TreatmentDate, key.PatientID, key.AttendingDoctorID, code); err != nil {
			return fmt.Errorf("failed to add medication %s: %w", code, err)
		}
	}
	return nil
}
