package errorz

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both unknown identity and password
	// mismatch so login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("account is disabled")
	ErrSessionExpired     = errors.New("session expired")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")

	ErrEventFull         = errors.New("event is full")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrAlreadyMember     = errors.New("already a member of this club")
	ErrHasRegistrations  = errors.New("active registrations reference this event")

	// ErrPaymentDeclined is terminal for the attempt; ErrGatewayUnavailable
	// means the charge never completed and may be retried.
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrInvalidTransition  = errors.New("invalid payment status transition")
)

// ValidationError reports malformed input for a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
