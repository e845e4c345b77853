package model

// Person is the shared row behind patients, doctors and nurses.
type Person struct {
	IDNumber       ID     `json:"id_number" db:"id_number"`
	FirstName      string `json:"first_name" db:"first_name"`
	LastName       string `json:"last_name" db:"last_name"`
	PhoneNumber    string `json:"phone_number" db:"phone_number"`
	AddressZipCode string `json:"address_zip_code" db:"address_zip_code"`
}

type Address struct {
	ZipCode         string `json:"zip_code" db:"zip_code"`
	City            string `json:"city" db:"city"`
	Street          string `json:"street" db:"street"`
	ApartmentNumber int    `json:"apartment_number" db:"apartment_number"`
}

// Address defaults applied when a patient introduces a new zip code.
const (
	DefaultCity            = "Unknown"
	DefaultStreet          = "Unknown"
	DefaultApartmentNumber = 1
)

// Role names a specialization table a person appears in.
type Role string

const (
	RolePatient         Role = "patient"
	RoleAttendingDoctor Role = "attending_doctor"
	RoleNurse           Role = "nurse"
)

// PersonRoles is a person together with every role they hold.
type PersonRoles struct {
	Person
	Roles []Role `json:"roles"`
}

func (p *PersonRoles) Has(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
