package entity

import (
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Role determines which operations a user is authorized to perform.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleClubManager Role = "club_manager"
	RoleMember      Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClubManager, RoleMember:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'member'"`
	Bio          string
	City         string
	Interests    pq.StringArray `gorm:"type:text[]"`
	// Disabled accounts cannot authenticate. Users are never hard-deleted so
	// their registration history stays intact.
	Disabled bool `gorm:"not null;default:false"`
}

func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}
