package domain

import "time"

type StaffRole string

const (
	StaffManager      StaffRole = "Manager"
	StaffReceptionist StaffRole = "Receptionist"
	StaffCleaner      StaffRole = "Cleaner"
	StaffChef         StaffRole = "Chef"
	StaffOther        StaffRole = "Other"
)

type EmploymentStatus string

const (
	EmploymentActive     EmploymentStatus = "Active"
	EmploymentOnLeave    EmploymentStatus = "On leave"
	EmploymentRetired    EmploymentStatus = "Retired"
	EmploymentTerminated EmploymentStatus = "Terminated"
)

// Staff is an employee profile. Staff are deactivated, never deleted.
type Staff struct {
	ID               int64            `gorm:"primaryKey" json:"id"`
	UserID           int64            `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName         string           `gorm:"type:varchar(150);not null" json:"full_name" validate:"required,max=150"`
	Gender           string           `gorm:"type:varchar(10)" json:"gender" validate:"omitempty,oneof=Male Female Other"`
	DateOfBirth      *time.Time       `gorm:"type:date" json:"date_of_birth,omitempty"`
	ContactDetails   string           `gorm:"type:varchar(100)" json:"contact_details" validate:"max=100"`
	Address          string           `gorm:"type:text" json:"address,omitempty"`
	EmergencyContact string           `gorm:"type:varchar(100)" json:"emergency_contact" validate:"max=100"`
	Role             StaffRole        `gorm:"type:varchar(50);not null" json:"role" validate:"required,oneof=Manager Receptionist Cleaner Chef Other"`
	DateOfEmployment *time.Time       `gorm:"type:date" json:"date_of_employment,omitempty"`
	EmploymentStatus EmploymentStatus `gorm:"type:varchar(20);not null" json:"employment_status" validate:"required,oneof=Active 'On leave' Retired Terminated"`
	IsActive         bool             `gorm:"not null" json:"is_active"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (Staff) TableName() string { return "staff" }

// Customer is a guest record kept by the front desk. Customers are
// deactivated, never deleted, since bookings reference them.
type Customer struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	FullName    string     `gorm:"type:varchar(150);not null" json:"full_name" validate:"required,max=150"`
	Gender      string     `gorm:"type:varchar(10)" json:"gender" validate:"omitempty,oneof=Male Female"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Nationality string     `gorm:"type:varchar(100)" json:"nationality" validate:"max=100"`
	PhoneNumber string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone_number" validate:"required,max=20"`
	Email       string     `gorm:"type:varchar(254);uniqueIndex;not null" json:"email" validate:"required,email"`
	HomeAddress string     `gorm:"type:text" json:"home_address,omitempty"`
	IsActive    bool       `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }
