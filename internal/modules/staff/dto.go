package staff

const dateLayout = "2006-01-02"

type CreateStaffRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	FullName         string `json:"full_name" validate:"required,max=150"`
	Gender           string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	DateOfBirth      string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	ContactDetails   string `json:"contact_details" validate:"max=100"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact" validate:"max=100"`
	Role             string `json:"role" validate:"required,oneof=Manager Receptionist Cleaner Chef Other"`
	DateOfEmployment string `json:"date_of_employment" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateStaffRequest struct {
	FullName         string `json:"full_name" validate:"required,max=150"`
	Gender           string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	DateOfBirth      string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	ContactDetails   string `json:"contact_details" validate:"max=100"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact" validate:"max=100"`
	Role             string `json:"role" validate:"required,oneof=Manager Receptionist Cleaner Chef Other"`
	DateOfEmployment string `json:"date_of_employment" validate:"omitempty,datetime=2006-01-02"`
	EmploymentStatus string `json:"employment_status" validate:"required,oneof=Active 'On leave' Retired Terminated"`
}
