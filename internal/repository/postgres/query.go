package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

type queryRepository struct {
	db *sqlx.DB
}

func NewQueryRepository(db *sqlx.DB) repository.QueryRepository {
	return &queryRepository{db: db}
}

// DoctorShifts counts the distinct patients each doctor treated on each of
// their shift dates, keeping shifts with at least one patient.
func (r *queryRepository) DoctorShifts(ctx context.Context) ([]*model.DoctorShift, error) {
	shifts := []*model.DoctorShift{}
	err := r.db.SelectContext(ctx, &shifts, `
		SELECT
			ss.shift_date,
			ss.start_time,
			ss.end_time,
			ad.id_number AS attending_doctor_id,
			p.first_name || ' ' || p.last_name AS doctor_name,
			COUNT(DISTINCT t.patient_id) AS patients_treated
		FROM staff_shift ss
		JOIN attending_doctor ad ON ss.staff_id = ad.id_number
		LEFT JOIN treatment t ON ad.id_number = t.attending_doctor_id
		                     AND t.treatment_date = ss.shift_date
		JOIN person p ON ad.id_number = p.id_number
		GROUP BY ss.shift_date, ss.start_time, ss.end_time, ad.id_number, p.first_name, p.last_name
		HAVING COUNT(DISTINCT t.patient_id) > 0
		ORDER BY ss.shift_date DESC, ss.start_time
	`)
	if err != nil {
		return nil, translate("doctor shift", fmt.Errorf("failed to query doctor shifts: %w", err))
	}
	return shifts, nil
}

func (r *queryRepository) DepartmentMedications(ctx context.Context) ([]*model.DepartmentMedication, error) {
	usage := []*model.DepartmentMedication{}
	err := r.db.SelectContext(ctx, &usage, `
		SELECT d.department_number, m.medication_name, COUNT(*) AS medication_count
		FROM treatment_medication tm
		JOIN treatment t ON tm.treatment_date = t.treatment_date
		                AND tm.patient_id = t.patient_id
		                AND tm.attending_doctor_id = t.attending_doctor_id
		JOIN attending_doctor ad ON t.attending_doctor_id = ad.id_number
		JOIN department d ON ad.department_number = d.department_number
		JOIN medication m ON tm.medication_code = m.medication_code
		GROUP BY d.department_number, m.medication_name
		ORDER BY d.department_number
	`)
	if err != nil {
		return nil, translate("department medication", fmt.Errorf("failed to query department medications: %w", err))
	}
	return usage, nil
}

func (r *queryRepository) Nurses(ctx context.Context) ([]*model.Nurse, error) {
	nurses := []*model.Nurse{}
	err := r.db.SelectContext(ctx, &nurses, `
		SELECT n.id_number, p.first_name, p.last_name, n.department_number
		FROM nurse n
		JOIN person p ON n.id_number = p.id_number
		ORDER BY p.last_name, p.first_name
	`)
	if err != nil {
		return nil, translate("nurse", fmt.Errorf("failed to query nurses: %w", err))
	}
	return nurses, nil
}

func (r *queryRepository) Departments(ctx context.Context) ([]*model.DepartmentRef, error) {
	departments := []*model.DepartmentRef{}
	err := r.db.SelectContext(ctx, &departments,
		`SELECT department_number FROM department ORDER BY department_number`)
	if err != nil {
		return nil, translate("department", fmt.Errorf("failed to query departments: %w", err))
	}
	return departments, nil
}

func (r *queryRepository) Doctors(ctx context.Context) ([]*model.Doctor, error) {
	doctors := []*model.Doctor{}
	err := r.db.SelectContext(ctx, &doctors, `
		SELECT ad.id_number, p.first_name, p.last_name
		FROM attending_doctor ad
		JOIN person p ON ad.id_number = p.id_number
		ORDER BY p.last_name, p.first_name
	`)
	if err != nil {
		return nil, translate("doctor", fmt.Errorf("failed to query doctors: %w", err))
	}
	return doctors, nil
}

func (r *queryRepository) DoctorDrugUsage(ctx context.Context, doctorID model.ID) ([]*model.DrugUsage, error) {
	usage := []*model.DrugUsage{}
	err := r.db.SelectContext(ctx, &usage, `
		SELECT m.medication_name, COUNT(*) AS usage_count
		FROM treatment_medication tm
		JOIN medication m ON tm.medication_code = m.medication_code
		WHERE tm.attending_doctor_id = $1
		GROUP BY m.medication_name
		ORDER BY usage_count DESC
	`, doctorID)
	if err != nil {
		return nil, translate("drug usage", fmt.Errorf("failed to query drug usage: %w", err))
	}
	return usage, nil
}

func (r *queryRepository) AssignNurseToDepartment(ctx context.Context, nurseID model.ID, departmentNumber int) error {
	if _, err := r.db.ExecContext(ctx, `CALL public.assign_nurse_to_department($1, $2)`, nurseID, departmentNumber); err != nil {
		return translate("nurse", fmt.Errorf("failed to assign nurse: %w", err))
	}
	return nil
}

func (r *queryRepository) CalculateDoctorDrugUsage(ctx context.Context, doctorID model.ID) error {
	if _, err := r.db.ExecContext(ctx, `CALL public.calculate_doctor_drug_usage($1)`, doctorID); err != nil {
		return translate("doctor", fmt.Errorf("failed to calculate drug usage: %w", err))
	}
	return nil
}

type personRolesRow struct {
	model.Person
	IsPatient bool `db:"is_patient"`
	IsDoctor  bool `db:"is_attending_doctor"`
	IsNurse   bool `db:"is_nurse"`
}

// PersonRoles loads a person and checks each specialization table for a row
// with the same id.
func (r *queryRepository) PersonRoles(ctx context.Context, id model.ID) (*model.PersonRoles, error) {
	var row personRolesRow
	err := r.db.GetContext(ctx, &row, `
		SELECT p.id_number, p.first_name, p.last_name,
		       COALESCE(p.phone_number, '') AS phone_number,
		       COALESCE(p.address_zip_code, '') AS address_zip_code,
		       EXISTS(SELECT 1 FROM patient WHERE id_number = p.id_number) AS is_patient,
		       EXISTS(SELECT 1 FROM attending_doctor WHERE id_number = p.id_number) AS is_attending_doctor,
		       EXISTS(SELECT 1 FROM nurse WHERE id_number = p.id_number) AS is_nurse
		FROM person p
		WHERE p.id_number = $1
	`, id)
	if err != nil {
		return nil, translate("person", fmt.Errorf("failed to get person: %w", err))
	}

	roles := &model.PersonRoles{Person: row.Person, Roles: []model.Role{}}
	if row.IsPatient {
		roles.Roles = append(roles.Roles, model.RolePatient)
	}
	if row.IsDoctor {
		roles.Roles = append(roles.Roles, model.RoleAttendingDoctor)
	}
	if row.IsNurse {
		roles.Roles = append(roles.Roles, model.RoleNurse)
	}
	return roles, nil
}
