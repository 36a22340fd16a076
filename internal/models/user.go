package models

import "time"

type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleAdmin      UserRole = "admin"
	RoleUser       UserRole = "user"
)

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	switch UserRole(s) {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	Name         string   `gorm:"size:100;not null"`
	EmployeeID   string   `gorm:"uniqueIndex;size:50;not null"`
	Phone        string   `gorm:"size:20;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null"`
	// NULL for the super admin only
	Team *string `gorm:"size:100"`
}

// TeamName returns the team or "" when the user has none.
func (u *User) TeamName() string {
	if u.Team == nil {
		return ""
	}
	return *u.Team
}
