package entity

import (
	"time"

	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
)

// PaymentStatus is the lifecycle state of a registration's payment attempt.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// paymentTransitions is the full set of permitted status changes:
// pending -> paid, pending -> failed, failed -> pending (retry),
// paid -> refunded.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPaid, PaymentFailed},
	PaymentFailed:  {PaymentPending},
	PaymentPaid:    {PaymentRefunded},
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Active reports whether the registration holds a seat.
func (s PaymentStatus) Active() bool {
	return s == PaymentPending || s == PaymentPaid
}

// EventRegistration is the durable record of a user's booking and payment
// attempts for an event. Rows are never deleted, only status-transitioned.
type EventRegistration struct {
	ID            string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	UserID        uint   `gorm:"not null;uniqueIndex:idx_registration_user_event"`
	User          User
	EventID       string `gorm:"not null;type:uuid;uniqueIndex:idx_registration_user_event"`
	Event         Event
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	// GatewayPaymentID is the payment gateway's identifier for the charge,
	// set once a charge succeeds and required for refunds.
	GatewayPaymentID string
}

// TransitionTo moves the registration along the payment state machine,
// rejecting any path that is not explicitly permitted.
func (r *EventRegistration) TransitionTo(next PaymentStatus) error {
	if !r.PaymentStatus.CanTransitionTo(next) {
		return errorz.ErrInvalidTransition
	}
	r.PaymentStatus = next
	return nil
}
