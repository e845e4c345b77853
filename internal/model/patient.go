package model

// Patient is a patient row joined with its person and address.
type Patient struct {
	IDNumber        ID     `json:"id_number" db:"id_number"`
	FirstName       string `json:"first_name" db:"first_name"`
	LastName        string `json:"last_name" db:"last_name"`
	PhoneNumber     string `json:"phone_number" db:"phone_number"`
	BirthDate       Date   `json:"birth_date" db:"birth_date"`
	BloodType       string `json:"blood_type" db:"blood_type"`
	City            string `json:"city" db:"city"`
	Street          string `json:"street" db:"street"`
	ApartmentNumber int    `json:"apartment_number" db:"apartment_number"`
	AddressZipCode  string `json:"address_zip_code" db:"address_zip_code"`
}

type CreatePatientRequest struct {
	IDNumber        ID     `json:"id_number" binding:"required"`
	FirstName       string `json:"first_name" binding:"required,max=100"`
	LastName        string `json:"last_name" binding:"required,max=100"`
	PhoneNumber     string `json:"phone_number" binding:"omitempty,max=20"`
	AddressZipCode  string `json:"address_zip_code" binding:"required,zipcode"`
	BirthDate       Date   `json:"birth_date"`
	BloodType       string `json:"blood_type" binding:"required,bloodtype"`
	City            string `json:"city" binding:"omitempty,max=100"`
	Street          string `json:"street" binding:"omitempty,max=100"`
	ApartmentNumber *int   `json:"apartment_number" binding:"omitempty,min=1"`
}

// Address returns the address to create if the zip code is new, with
// defaults for the fields the request left empty.
func (r *CreatePatientRequest) Address() Address {
	addr := Address{
		ZipCode:         r.AddressZipCode,
		City:            r.City,
		Street:          r.Street,
		ApartmentNumber: DefaultApartmentNumber,
	}
	if addr.City == "" {
		addr.City = DefaultCity
	}
	if addr.Street == "" {
		addr.Street = DefaultStreet
	}
	if r.ApartmentNumber != nil {
		addr.ApartmentNumber = *r.ApartmentNumber
	}
	return addr
}

func (r *CreatePatientRequest) Person() Person {
	return Person{
		IDNumber:       r.IDNumber,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		PhoneNumber:    r.PhoneNumber,
		AddressZipCode: r.AddressZipCode,
	}
}

// UpdatePatientRequest carries the fields to change; nil fields keep their
// stored value.
type UpdatePatientRequest struct {
	FirstName      *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName       *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	PhoneNumber    *string `json:"phone_number" binding:"omitempty,max=20"`
	AddressZipCode *string `json:"address_zip_code" binding:"omitempty,zipcode"`
	BirthDate      *Date   `json:"birth_date"`
	BloodType      *string `json:"blood_type" binding:"omitempty,bloodtype"`
}
