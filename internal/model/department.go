package model

type Department struct {
	DepartmentNumber      int    `json:"department_number" db:"department_number"`
	DepartmentPhoneNumber string `json:"department_phone_number" db:"department_phone_number"`
	NumberOfBeds          int    `json:"number_of_beds" db:"number_of_beds"`
	DoctorCount           int    `json:"doctor_count" db:"doctor_count"`
	NurseCount            int    `json:"nurse_count" db:"nurse_count"`
}

type CreateDepartmentRequest struct {
	DepartmentNumber      int    `json:"department_number" binding:"required,min=1"`
	DepartmentPhoneNumber string `json:"department_phone_number" binding:"required,max=20"`
	NumberOfBeds          *int   `json:"number_of_beds" binding:"required,min=0"`
}

type UpdateDepartmentRequest struct {
	DepartmentPhoneNumber *string `json:"department_phone_number" binding:"omitempty,min=1,max=20"`
	NumberOfBeds          *int    `json:"number_of_beds" binding:"omitempty,min=0"`
}
