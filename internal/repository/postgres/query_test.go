package postgres

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

func TestDoctorShifts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQueryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("HAVING COUNT(DISTINCT t.patient_id) > 0")).
		WillReturnRows(sqlmock.NewRows([]string{"shift_date", "start_time", "end_time", "attending_doctor_id", "doctor_name", "patients_treated"}).
			AddRow("01/02/2024", "08:00:00", "16:00:00", "D1", "Avi Cohen", 3))

	shifts, err := repo.DoctorShifts(context.Background())
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "2024-01-02", shifts[0].ShiftDate.String())
	assert.Equal(t, 3, shifts[0].PatientsTreated)
}

func TestDoctorShifts_TimeColumns(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQueryRepository(db)

	start, err := time.Parse("15:04:05", "08:00:00")
	require.NoError(t, err)
	end, err := time.Parse("15:04:05", "16:00:00")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("HAVING COUNT(DISTINCT t.patient_id) > 0")).
		WillReturnRows(sqlmock.NewRows([]string{"shift_date", "start_time", "end_time", "attending_doctor_id", "doctor_name", "patients_treated"}).
			AddRow(time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), start, end, "D1", "Avi Cohen", 3))

	shifts, err := repo.DoctorShifts(context.Background())
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, model.TimeOfDay("08:00:00"), shifts[0].StartTime)
	assert.Equal(t, model.TimeOfDay("16:00:00"), shifts[0].EndTime)

	out, err := json.Marshal(shifts[0])
	require.NoError(t, err)
	assert.Contains(t, string(out), `"start_time":"08:00:00"`)
	assert.Contains(t, string(out), `"end_time":"16:00:00"`)
}

func TestDoctorDrugUsage(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQueryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE tm.attending_doctor_id = $1")).
		WithArgs("D1").
		WillReturnRows(sqlmock.NewRows([]string{"medication_name", "usage_count"}).
			AddRow("Ibuprofen", 5).
			AddRow("Amoxicillin", 2))

	usage, err := repo.DoctorDrugUsage(context.Background(), "D1")
	require.NoError(t, err)
	assert.Equal(t, []*model.DrugUsage{
		{MedicationName: "Ibuprofen", UsageCount: 5},
		{MedicationName: "Amoxicillin", UsageCount: 2},
	}, usage)
}

func TestNurses_NullDepartment(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQueryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM nurse n")).
		WillReturnRows(sqlmock.NewRows([]string{"id_number", "first_name", "last_name", "department_number"}).
			AddRow("N1", "Maya", "Katz", nil).
			AddRow("N2", "Tal", "Mor", 2))

	nurses, err := repo.Nurses(context.Background())
	require.NoError(t, err)
	require.Len(t, nurses, 2)
	assert.Nil(t, nurses[0].DepartmentNumber)
	require.NotNil(t, nurses[1].DepartmentNumber)
	assert.Equal(t, 2, *nurses[1].DepartmentNumber)
}

func TestAssignNurseToDepartment(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQueryRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("CALL public.assign_nurse_to_department($1, $2)")).
		WithArgs("N1", 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.AssignNurseToDepartment(context.Background(), "N1", 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalculateDoctorDrugUsage(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQueryRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("CALL public.calculate_doctor_drug_usage($1)")).
		WithArgs("D1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.CalculateDoctorDrugUsage(context.Background(), "D1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRoles(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQueryRepository(db)
	columns := []string{"id_number", "first_name", "last_name", "phone_number", "address_zip_code", "is_patient", "is_attending_doctor", "is_nurse"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM person p")).
		WithArgs("X1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("X1", "Avi", "Cohen", "", "12345", true, true, false))

	roles, err := repo.PersonRoles(context.Background(), "X1")
	require.NoError(t, err)
	assert.Equal(t, []model.Role{model.RolePatient, model.RoleAttendingDoctor}, roles.Roles)
	assert.Equal(t, "Cohen", roles.LastName)

	mock.ExpectQuery(regexp.QuoteMeta("FROM person p")).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err = repo.PersonRoles(context.Background(), "nobody")
	assert.True(t, apperrors.IsNotFound(err))
}
