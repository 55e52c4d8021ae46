package entity

import "gorm.io/gorm"

type ContactMessage struct {
	gorm.Model
	Name    string `gorm:"not null"`
	Email   string `gorm:"not null"`
	Message string `gorm:"not null"`
}
