package entity

import (
	"time"

	"gorm.io/gorm"
)

type Club struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
	Name        string `gorm:"not null"`
	Description string `gorm:"not null"`
	Category    string `gorm:"not null"`
	City        string `gorm:"not null"`
	ManagerID   uint   `gorm:"not null"`
	Manager     User
}
