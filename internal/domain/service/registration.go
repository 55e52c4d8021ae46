package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/aitbenali/medina-journeys/internal/domain/authz"
	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/dto"
	"github.com/aitbenali/medina-journeys/internal/domain/entity"
	"github.com/aitbenali/medina-journeys/pkg/logger/types"
	"github.com/aitbenali/medina-journeys/pkg/money"
)

type RegistrationStorage interface {
	// CreateForEvent inserts the registration while holding a row lock on
	// the event, so the capacity check and the insert are one atomic unit.
	CreateForEvent(ctx context.Context, registration *entity.EventRegistration) (*entity.EventRegistration, error)
	Get(ctx context.Context, id string) (*entity.EventRegistration, error)
	Update(ctx context.Context, registration *entity.EventRegistration) (*entity.EventRegistration, error)
	GetActiveByUserID(ctx context.Context, userID uint) ([]entity.EventRegistration, error)
	GetByUserID(ctx context.Context, userID uint) ([]entity.EventRegistration, error)
}

type registrationEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

// ChargeResult is what a successful gateway charge reports back.
type ChargeResult struct {
	PaymentID string
}

// Gateway is the external payment processor. Implementations must return
// errors wrapping errorz.ErrPaymentDeclined for declines and
// errorz.ErrGatewayUnavailable for transport failures, so callers can offer
// retry only for the latter.
type Gateway interface {
	Charge(ctx context.Context, amountMinor int64, methodToken string) (*ChargeResult, error)
	Refund(ctx context.Context, paymentID string) error
}

type RegistrationService struct {
	logger *types.Logger

	storage RegistrationStorage
	events  registrationEventStorage
	gateway Gateway

	chargeTimeout time.Duration
}

func NewRegistrationService(
	logger *types.Logger,
	storage RegistrationStorage,
	events registrationEventStorage,
	gateway Gateway,
	chargeTimeout time.Duration,
) *RegistrationService {
	return &RegistrationService{
		logger:        logger,
		storage:       storage,
		events:        events,
		gateway:       gateway,
		chargeTimeout: chargeTimeout,
	}
}

// Register books a seat for the user. Free events are paid immediately;
// priced events start out pending and are charged via Pay.
func (s *RegistrationService) Register(ctx context.Context, user *entity.User, eventID string) (*entity.EventRegistration, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrNotFound
		}
		return nil, err
	}
	if !event.IsUpcoming() {
		return nil, errorz.Validation("event", "registration closed, event already started")
	}

	status := entity.PaymentPending
	if event.IsFree() {
		status = entity.PaymentPaid
	}

	registration, err := s.storage.CreateForEvent(ctx, &entity.EventRegistration{
		UserID:        user.ID,
		EventID:       eventID,
		PaymentStatus: status,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infof("(user: %d) registered for event %s (%s)", user.ID, eventID, status)
	return registration, nil
}

// Pay charges a pending registration, or retries a failed one. A decline
// marks the registration failed and keeps the row for audit and retry; a
// gateway failure leaves the status untouched so the caller can retry.
func (s *RegistrationService) Pay(ctx context.Context, actor *entity.User, registrationID, methodToken string) (*entity.EventRegistration, error) {
	registration, err := s.getOwned(ctx, actor, registrationID)
	if err != nil {
		return nil, err
	}

	if registration.PaymentStatus == entity.PaymentFailed {
		if err = registration.TransitionTo(entity.PaymentPending); err != nil {
			return nil, err
		}
		if registration, err = s.storage.Update(ctx, registration); err != nil {
			return nil, err
		}
	}
	if registration.PaymentStatus != entity.PaymentPending {
		return nil, errorz.ErrInvalidTransition
	}

	event, err := s.events.Get(ctx, registration.EventID)
	if err != nil {
		return nil, err
	}

	chargeCtx, cancel := context.WithTimeout(ctx, s.chargeTimeout)
	defer cancel()

	result, err := s.gateway.Charge(chargeCtx, event.PriceMinor, methodToken)
	if err != nil {
		if errors.Is(err, errorz.ErrPaymentDeclined) {
			s.logger.Infof("(user: %d) charge declined for registration %s: %v", actor.ID, registration.ID, err)
			if transitionErr := registration.TransitionTo(entity.PaymentFailed); transitionErr != nil {
				return nil, transitionErr
			}
			if _, updateErr := s.storage.Update(ctx, registration); updateErr != nil {
				return nil, updateErr
			}
			return registration, err
		}
		s.logger.Errorf("(user: %d) gateway error for registration %s: %v", actor.ID, registration.ID, err)
		return registration, fmt.Errorf("%w: %v", errorz.ErrGatewayUnavailable, err)
	}

	if err = registration.TransitionTo(entity.PaymentPaid); err != nil {
		return nil, err
	}
	registration.GatewayPaymentID = result.PaymentID
	return s.storage.Update(ctx, registration)
}

// Refund reverses a paid registration through the gateway.
func (s *RegistrationService) Refund(ctx context.Context, actor *entity.User, registrationID string) (*entity.EventRegistration, error) {
	if err := authz.Require(actor.Role, authz.RefundPayments); err != nil {
		return nil, err
	}
	registration, err := s.get(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if !registration.PaymentStatus.CanTransitionTo(entity.PaymentRefunded) {
		return nil, errorz.ErrInvalidTransition
	}

	// Free-event registrations are paid without a charge, so there is
	// nothing for the gateway to reverse.
	if registration.GatewayPaymentID != "" {
		refundCtx, cancel := context.WithTimeout(ctx, s.chargeTimeout)
		defer cancel()
		if err = s.gateway.Refund(refundCtx, registration.GatewayPaymentID); err != nil {
			return nil, err
		}
	}

	if err = registration.TransitionTo(entity.PaymentRefunded); err != nil {
		return nil, err
	}
	return s.storage.Update(ctx, registration)
}

func (s *RegistrationService) Get(ctx context.Context, actor *entity.User, registrationID string) (*entity.EventRegistration, error) {
	return s.getOwned(ctx, actor, registrationID)
}

// Ticket renders a QR pass for a paid registration.
func (s *RegistrationService) Ticket(ctx context.Context, actor *entity.User, registrationID string) ([]byte, error) {
	registration, err := s.getOwned(ctx, actor, registrationID)
	if err != nil {
		return nil, err
	}
	if registration.PaymentStatus != entity.PaymentPaid {
		return nil, errorz.Validation("registration", "ticket is only available once paid")
	}
	return qrcode.Encode(fmt.Sprintf("medina-journeys:registration:%s", registration.ID), qrcode.Medium, 256)
}

// ListForUser returns all of the user's registrations, newest first.
func (s *RegistrationService) ListForUser(ctx context.Context, userID uint) ([]dto.UserEvent, error) {
	registrations, err := s.storage.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserEvents(registrations), nil
}

// UpcomingForUser returns the user's active registrations for events that
// have not started yet, soonest first.
func (s *RegistrationService) UpcomingForUser(ctx context.Context, userID uint) ([]dto.UserEvent, error) {
	registrations, err := s.storage.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	upcoming := registrations[:0]
	for _, registration := range registrations {
		if registration.Event.IsUpcoming() {
			upcoming = append(upcoming, registration)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Event.StartTime.Before(upcoming[j].Event.StartTime)
	})
	return toUserEvents(upcoming), nil
}

func (s *RegistrationService) get(ctx context.Context, id string) (*entity.EventRegistration, error) {
	registration, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrNotFound
		}
		return nil, err
	}
	return registration, nil
}

func (s *RegistrationService) getOwned(ctx context.Context, actor *entity.User, id string) (*entity.EventRegistration, error) {
	registration, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if registration.UserID != actor.ID && actor.Role != entity.RoleAdmin {
		return nil, errorz.ErrForbidden
	}
	return registration, nil
}

func toUserEvents(registrations []entity.EventRegistration) []dto.UserEvent {
	events := make([]dto.UserEvent, 0, len(registrations))
	for _, registration := range registrations {
		events = append(events, dto.NewUserEvent(registration, money.FormatAmount(registration.Event.PriceMinor)))
	}
	return events
}
