package dto

import (
	"time"

	"github.com/aitbenali/medina-journeys/internal/domain/entity"
)

// UserEvent is a registration joined with its event, used for the dashboard
// and "my registrations" views.
type UserEvent struct {
	RegistrationID string               `json:"registration_id"`
	PaymentStatus  entity.PaymentStatus `json:"payment_status"`
	RegisteredAt   time.Time            `json:"registered_at"`
	EventID        string               `json:"event_id"`
	Title          string               `json:"title"`
	Category       string               `json:"category"`
	Location       string               `json:"location"`
	City           string               `json:"city"`
	StartTime      time.Time            `json:"start_time"`
	Price          string               `json:"price"`
}

func NewUserEvent(reg entity.EventRegistration, price string) UserEvent {
	return UserEvent{
		RegistrationID: reg.ID,
		PaymentStatus:  reg.PaymentStatus,
		RegisteredAt:   reg.CreatedAt,
		EventID:        reg.EventID,
		Title:          reg.Event.Title,
		Category:       reg.Event.Category,
		Location:       reg.Event.Location,
		City:           reg.Event.City,
		StartTime:      reg.Event.StartTime,
		Price:          price,
	}
}
