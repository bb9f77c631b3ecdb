package model

import "time"

// Staff roles.  ADMIN may delete records; CLERK covers day-to-day
// counter operations.
const (
	StaffRoleAdmin = "ADMIN"
	StaffRoleClerk = "CLERK"
)

// Staff represents a shop employee account used to authenticate
// against the API.  Passwords are stored as bcrypt hashes.  This
// struct corresponds to a row in the `staff` table.
type Staff struct {
	ID           uint64    // staff.id
	Email        string    // staff.email
	PasswordHash string    // staff.password_hash
	Role         string    // staff.role
	IsActive     bool      // staff.is_active
	CreatedAt    time.Time // staff.created_at
	UpdatedAt    time.Time // staff.updated_at
}
