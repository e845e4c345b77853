package repository

import (
	"context"

	"github.com/jwalitptl/hospital-api/internal/model"
)

// All repository interfaces in one file
type (
	// PatientRepository writes patients together with their person and
	// address rows.
	PatientRepository interface {
		Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
		Get(ctx context.Context, id model.ID) (*model.Patient, error)
		Update(ctx context.Context, id model.ID, req *model.UpdatePatientRequest) (*model.Patient, error)
		Delete(ctx context.Context, id model.ID) error
		List(ctx context.Context) ([]*model.Patient, error)
	}

	MedicationRepository interface {
		Create(ctx context.Context, medication *model.Medication) (*model.Medication, error)
		Get(ctx context.Context, code string) (*model.Medication, error)
		Update(ctx context.Context, code string, req *model.UpdateMedicationRequest) (*model.Medication, error)
		Delete(ctx context.Context, code string) error
		List(ctx context.Context) ([]*model.Medication, error)
	}

	DepartmentRepository interface {
		Create(ctx context.Context, req *model.CreateDepartmentRequest) (*model.Department, error)
		Get(ctx context.Context, number int) (*model.Department, error)
		Update(ctx context.Context, number int, req *model.UpdateDepartmentRequest) (*model.Department, error)
		Delete(ctx context.Context, number int) error
		List(ctx context.Context) ([]*model.Department, error)
	}

	// TreatmentRepository owns treatments and their medication set.
	TreatmentRepository interface {
		Create(ctx context.Context, key model.TreatmentKey, medications []string) error
		Get(ctx context.Context, key model.TreatmentKey) (*model.Treatment, error)
		ReplaceMedications(ctx context.Context, key model.TreatmentKey, medications []string) error
		Delete(ctx context.Context, key model.TreatmentKey) error
		List(ctx context.Context) ([]*model.Treatment, error)
	}

	// QueryRepository runs the read-only reports and the stored procedure
	// calls.
	QueryRepository interface {
		DoctorShifts(ctx context.Context) ([]*model.DoctorShift, error)
		DepartmentMedications(ctx context.Context) ([]*model.DepartmentMedication, error)
		Nurses(ctx context.Context) ([]*model.Nurse, error)
		Departments(ctx context.Context) ([]*model.DepartmentRef, error)
		Doctors(ctx context.Context) ([]*model.Doctor, error)
		DoctorDrugUsage(ctx context.Context, doctorID model.ID) ([]*model.DrugUsage, error)
		AssignNurseToDepartment(ctx context.Context, nurseID model.ID, departmentNumber int) error
		CalculateDoctorDrugUsage(ctx context.Context, doctorID model.ID) error
		PersonRoles(ctx context.Context, id model.ID) (*model.PersonRoles, error)
	}
)
