package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
)

// Staff counts are computed at read time; a department without staff counts 0.
const selectDepartments = `
	SELECT d.department_number, d.department_phone_number, d.number_of_beds,
	       COUNT(DISTINCT ad.id_number) AS doctor_count,
	       COUNT(DISTINCT n.id_number) AS nurse_count
	FROM department d
	LEFT JOIN attending_doctor ad ON d.department_number = ad.department_number
	LEFT JOIN nurse n ON d.department_number = n.department_number
`

const groupDepartments = `
	GROUP BY d.department_number, d.department_phone_number, d.number_of_beds
`

type departmentRepository struct {
	db *sqlx.DB
}

func NewDepartmentRepository(db *sqlx.DB) repository.DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, req *model.CreateDepartmentRequest) (*model.Department, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO department (department_number, department_phone_number, number_of_beds)
		VALUES ($1, $2, $3)
	`, req.DepartmentNumber, req.DepartmentPhoneNumber, req.NumberOfBeds)
	if err != nil {
		return nil, translate("department", fmt.Errorf("failed to create department: %w", err))
	}
	return r.Get(ctx, req.DepartmentNumber)
}

func (r *departmentRepository) Get(ctx context.Context, number int) (*model.Department, error) {
	var department model.Department
	query := selectDepartments + ` WHERE d.department_number = $1 ` + groupDepartments
	if err := r.db.GetContext(ctx, &department, query, number); err != nil {
		return nil, translate("department", fmt.Errorf("failed to get department: %w", err))
	}
	return &department, nil
}

func (r *departmentRepository) Update(ctx context.Context, number int, req *model.UpdateDepartmentRequest) (*model.Department, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE department
		SET department_phone_number = COALESCE($1, department_phone_number),
		    number_of_beds = COALESCE($2, number_of_beds)
		WHERE department_number = $3
	`, req.DepartmentPhoneNumber, req.NumberOfBeds, number)
	if err != nil {
		return nil, translate("department", fmt.Errorf("failed to update department: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Internal(err)
	}
	if n == 0 {
		return nil, errors.NotFound("department", nil)
	}
	return r.Get(ctx, number)
}

func (r *departmentRepository) Delete(ctx context.Context, number int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM department WHERE department_number = $1`, number)
	if err != nil {
		return translate("department", fmt.Errorf("failed to delete department: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Internal(err)
	}
	if n == 0 {
		return errors.NotFound("department", nil)
	}
	return nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	departments := []*model.Department{}
	query := selectDepartments + groupDepartments + ` ORDER BY d.department_number`
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, translate("department", fmt.Errorf("failed to list departments: %w", err))
	}
	return departments, nil
}
