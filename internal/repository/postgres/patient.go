package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

const selectPatients = `
	SELECT p.id_number, p.first_name, p.last_name,
	       COALESCE(p.phone_number, '') AS phone_number,
	       pt.birth_date, pt.blood_type,
	       a.city, a.street, a.apartment_number,
	       p.address_zip_code
	FROM patient pt
	JOIN person p ON pt.id_number = p.id_number
	JOIN address a ON p.address_zip_code = a.zip_code
`

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB, m *metrics.Metrics) repository.PatientRepository {
	return &patientRepository{BaseRepository: NewBaseRepository(db, m)}
}

// Create inserts the address (when the zip code is new), the person and the
// patient rows as one unit.
func (r *patientRepository) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM address WHERE zip_code = $1)`, req.AddressZipCode); err != nil {
			return fmt.Errorf("failed to look up address: %w", err)
		}

		if !exists {
			addr := req.Address()
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO address (zip_code, city, street, apartment_number) VALUES ($1, $2, $3, $4)`,
				addr.ZipCode, addr.City, addr.Street, addr.ApartmentNumber,
			); err != nil {
				return fmt.Errorf("failed to create address: %w", err)
			}
		}

		person := req.Person()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO person (id_number, first_name, last_name, phone_number, address_zip_code)
			VALUES ($1, $2, $3, $4, $5)
		`, person.IDNumber, person.FirstName, person.LastName, person.PhoneNumber, person.AddressZipCode); err != nil {
			return fmt.Errorf("failed to create person: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO patient (id_number, birth_date, blood_type) VALUES ($1, $2, $3)`,
			req.IDNumber, req.BirthDate, req.BloodType,
		); err != nil {
			return fmt.Errorf("failed to create patient: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, translate("patient", err)
	}

	return r.Get(ctx, req.IDNumber)
}

func (r *patientRepository) Get(ctx context.Context, id model.ID) (*model.Patient, error) {
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, selectPatients+` WHERE p.id_number = $1`, id); err != nil {
		return nil, translate("patient", fmt.Errorf("failed to get patient: %w", err))
	}
	return &patient, nil
}

// Update changes the person and patient rows together. The address row is
// never modified; only the zip code reference may change.
func (r *patientRepository) Update(ctx context.Context, id model.ID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE person
			SET first_name = COALESCE($1, first_name),
			    last_name = COALESCE($2, last_name),
			    phone_number = COALESCE($3, phone_number),
			    address_zip_code = COALESCE($4, address_zip_code)
			WHERE id_number = $5
		`, req.FirstName, req.LastName, req.PhoneNumber, req.AddressZipCode, id)
		if err != nil {
			return fmt.Errorf("failed to update person: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return errors.NotFound("patient", nil)
		}

		res, err = tx.ExecContext(ctx, `
			UPDATE patient
			SET birth_date = COALESCE($1, birth_date),
			    blood_type = COALESCE($2, blood_type)
			WHERE id_number = $3
		`, req.BirthDate, req.BloodType, id)
		if err != nil {
			return fmt.Errorf("failed to update patient: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return errors.NotFound("patient", nil)
		}
		return nil
	})
	if err != nil {
		return nil, translate("patient", err)
	}

	return r.Get(ctx, id)
}

// Delete removes the patient row; the schema cascades to person.
func (r *patientRepository) Delete(ctx context.Context, id model.ID) error {
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM patient WHERE id_number = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete patient: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return errors.NotFound("patient", nil)
		}
		return nil
	})
	return translate("patient", err)
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, selectPatients+` ORDER BY p.last_name, p.first_name`); err != nil {
		return nil, translate("patient", fmt.Errorf("failed to list patients: %w", err))
	}
	return patients, nil
}
