package entity

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Category    string `gorm:"not null"`
	Location    string `gorm:"not null"`
	City        string `gorm:"not null"`
	StartTime   time.Time `gorm:"not null"`
	// PriceMinor is the ticket price in the smallest currency unit.
	// Monetary values never touch floating point.
	PriceMinor int64 `gorm:"not null;default:0"`
	Capacity   int   `gorm:"not null"`
	CreatorID  uint  `gorm:"not null"`
	Creator    User
	ClubID     *string `gorm:"type:uuid"`
	Club       *Club
}

func (e *Event) IsFree() bool {
	return e.PriceMinor == 0
}

// IsUpcoming reports whether the event has not started yet.
func (e *Event) IsUpcoming() bool {
	return e.StartTime.After(time.Now())
}
