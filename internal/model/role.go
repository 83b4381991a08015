package model

import (
	"time"

	"github.com/google/uuid"
)

// Role name constants
const (
	RoleBorrower   = "borrower"
	RoleOwner      = "owner"
	RoleHeadmaster = "headmaster"
	RoleAdmin      = "admin"
)

// ValidRole reports whether name is one of the known role names.
func ValidRole(name string) bool {
	switch name {
	case RoleBorrower, RoleOwner, RoleHeadmaster, RoleAdmin:
		return true
	}
	return false
}

// Department groups items; an owner role may be scoped to a department.
type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// UserRole assigns one role to one user. Owners additionally carry the
// department they are responsible for: DepartmentID when the schema has the
// column, otherwise only the free-text Department name which is resolved
// against the departments table by name.
type UserRole struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_role" json:"user_id"`
	User         *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role         string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_role" json:"role"`
	Department   string     `gorm:"type:varchar(255)" json:"department"`
	DepartmentID *uuid.UUID `gorm:"type:uuid" json:"department_id,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
