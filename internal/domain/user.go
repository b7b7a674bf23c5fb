package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleStaff    UserRole = "staff"
	RoleAdmin    UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleCustomer || r == RoleStaff || r == RoleAdmin
}

// IsElevated is true for roles allowed to manage other guests' bookings.
func (r UserRole) IsElevated() bool {
	return r == RoleStaff || r == RoleAdmin
}

type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null" json:"role"`
	Name         string    `gorm:"type:varchar(150)" json:"name"`
	Phone        string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	// IsDisabled blocks login and rejects tokens issued before it was set.
	IsDisabled bool       `gorm:"not null;default:false" json:"is_disabled"`
	DisabledAt *time.Time `json:"disabled_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Actor is the authenticated caller as seen by services: an id and a role,
// never credentials.
type Actor struct {
	UserID int64
	Role   UserRole
}
