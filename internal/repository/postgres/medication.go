package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
)

type medicationRepository struct {
	db *sqlx.DB
}

func NewMedicationRepository(db *sqlx.DB) repository.MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) Create(ctx context.Context, medication *model.Medication) (*model.Medication, error) {
	var created model.Medication
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO medication (medication_code, medication_name, price)
		VALUES ($1, $2, $3)
		RETURNING medication_code, medication_name, price
	`, medication.MedicationCode, medication.MedicationName, medication.Price)
	if err != nil {
		return nil, translate("medication", fmt.Errorf("failed to create medication: %w", err))
	}
	return &created, nil
}

func (r *medicationRepository) Get(ctx context.Context, code string) (*model.Medication, error) {
	var medication model.Medication
	err := r.db.GetContext(ctx, &medication, `
		SELECT medication_code, medication_name, price
		FROM medication
		WHERE medication_code = $1
	`, code)
	if err != nil {
		return nil, translate("medication", fmt.Errorf("failed to get medication: %w", err))
	}
	return &medication, nil
}

func (r *medicationRepository) Update(ctx context.Context, code string, req *model.UpdateMedicationRequest) (*model.Medication, error) {
	var updated model.Medication
	err := r.db.GetContext(ctx, &updated, `
		UPDATE medication
		SET medication_name = COALESCE($1, medication_name),
		    price = COALESCE($2, price)
		WHERE medication_code = $3
		RETURNING medication_code, medication_name, price
	`, req.MedicationName, req.Price, code)
	if err != nil {
		return nil, translate("medication", fmt.Errorf("failed to update medication: %w", err))
	}
	return &updated, nil
}

func (r *medicationRepository) Delete(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medication WHERE medication_code = $1`, code)
	if err != nil {
		return translate("medication", fmt.Errorf("failed to delete medication: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Internal(err)
	}
	if n == 0 {
		return errors.NotFound("medication", nil)
	}
	return nil
}

func (r *medicationRepository) List(ctx context.Context) ([]*model.Medication, error) {
	medications := []*model.Medication{}
	err := r.db.SelectContext(ctx, &medications, `
		SELECT medication_code, medication_name, price
		FROM medication
		ORDER BY medication_name
	`)
	if err != nil {
		return nil, translate("medication", fmt.Errorf("failed to list medications: %w", err))
	}
	return medications, nil
}
