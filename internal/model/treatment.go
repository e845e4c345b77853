package model

import "fmt"

// TreatmentKey identifies a treatment by date, patient and doctor.
type TreatmentKey struct {
	TreatmentDate     Date `json:"treatment_date" db:"treatment_date"`
	PatientID         ID   `json:"patient_id" db:"patient_id"`
	AttendingDoctorID ID   `json:"attending_doctor_id" db:"attending_doctor_id"`
}

func (k TreatmentKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.TreatmentDate, k.PatientID, k.AttendingDoctorID)
}

type Treatment struct {
	TreatmentKey
	PatientName      string   `json:"patient_name" db:"patient_name"`
	DoctorName       string   `json:"doctor_name" db:"doctor_name"`
	DepartmentNumber int      `json:"department_number" db:"department_number"`
	Medications      []string `json:"medications" db:"-"`
}

type CreateTreatmentRequest struct {
	TreatmentDate     Date     `json:"treatment_date"`
	PatientID         ID       `json:"patient_id" binding:"required"`
	AttendingDoctorID ID       `json:"attending_doctor_id" binding:"required"`
	Medications       []string `json:"medications" binding:"omitempty,dive,required"`
}

func (r *CreateTreatmentRequest) Key() TreatmentKey {
	return TreatmentKey{
		TreatmentDate:     r.TreatmentDate,
		PatientID:         r.PatientID,
		AttendingDoctorID: r.AttendingDoctorID,
	}
}

// UpdateTreatmentRequest replaces the full medication set; an empty or
// missing list removes every medication.
type UpdateTreatmentRequest struct {
	Medications []string `json:"medications" binding:"omitempty,dive,required"`
}

// UniqueCodes drops repeated and blank medication codes, keeping the first
// occurrence order.
func UniqueCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
