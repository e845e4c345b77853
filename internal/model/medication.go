package model

type Medication struct {
	MedicationCode string  `json:"medication_code" db:"medication_code"`
	MedicationName string  `json:"medication_name" db:"medication_name"`
	Price          float64 `json:"price" db:"price"`
}

type CreateMedicationRequest struct {
	// MedicationCode is generated when empty.
	MedicationCode string   `json:"medication_code" binding:"omitempty,max=50"`
	MedicationName string   `json:"medication_name" binding:"required,max=200"`
	Price          *float64 `json:"price" binding:"required,min=0"`
}

type UpdateMedicationRequest struct {
	MedicationName *string  `json:"medication_name" binding:"omitempty,min=1,max=200"`
	Price          *float64 `json:"price" binding:"omitempty,min=0"`
}
