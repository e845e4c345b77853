package model

type DoctorShift struct {
	ShiftDate         Date      `json:"shift_date" db:"shift_date"`
	StartTime         TimeOfDay `json:"start_time" db:"start_time"`
	EndTime           TimeOfDay `json:"end_time" db:"end_time"`
	AttendingDoctorID ID        `json:"attending_doctor_id" db:"attending_doctor_id"`
	DoctorName        string    `json:"doctor_name" db:"doctor_name"`
	PatientsTreated   int       `json:"patients_treated" db:"patients_treated"`
}

type DepartmentMedication struct {
	DepartmentNumber int    `json:"department_number" db:"department_number"`
	MedicationName   string `json:"medication_name" db:"medication_name"`
	MedicationCount  int    `json:"medication_count" db:"medication_count"`
}

type Nurse struct {
	IDNumber         ID     `json:"id_number" db:"id_number"`
	FirstName        string `json:"first_name" db:"first_name"`
	LastName         string `json:"last_name" db:"last_name"`
	DepartmentNumber *int   `json:"department_number" db:"department_number"`
}

type DepartmentRef struct {
	DepartmentNumber int `json:"department_number" db:"department_number"`
}

type Doctor struct {
	IDNumber  ID     `json:"id_number" db:"id_number"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
}

type DrugUsage struct {
	MedicationName string `json:"medication_name" db:"medication_name"`
	UsageCount     int    `json:"usage_count" db:"usage_count"`
}

type AssignNurseRequest struct {
	NurseID          ID  `json:"nurse_id" binding:"required"`
	DepartmentNumber int `json:"department_number" binding:"required,min=1"`
}

type DoctorDrugUsageRequest struct {
	DoctorID ID `json:"doctorId" binding:"required"`
}
