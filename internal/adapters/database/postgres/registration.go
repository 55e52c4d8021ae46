package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/entity"
)

type RegistrationStorage struct {
	db *gorm.DB
}

func NewRegistrationStorage(db *gorm.DB) *RegistrationStorage {
	return &RegistrationStorage{
		db: db,
	}
}

// CreateForEvent inserts a registration while holding a row lock on the
// event. Locking the event row serialises concurrent bookings, so the
// capacity check and the insert behave as one atomic unit and the event can
// never be oversold. The unique (user_id, event_id) index backs the
// duplicate check as a second line of defense.
func (s *RegistrationStorage) CreateForEvent(ctx context.Context, registration *entity.EventRegistration) (*entity.EventRegistration, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event entity.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", registration.EventID).
			First(&event).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorz.ErrNotFound
			}
			return err
		}

		var existing int64
		err = tx.Model(&entity.EventRegistration{}).
			Where("event_id = ? AND user_id = ?", registration.EventID, registration.UserID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return errorz.ErrAlreadyRegistered
		}

		var active int64
		err = tx.Model(&entity.EventRegistration{}).
			Where("event_id = ? AND payment_status IN ?", registration.EventID, []entity.PaymentStatus{entity.PaymentPending, entity.PaymentPaid}).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active >= int64(event.Capacity) {
			return errorz.ErrEventFull
		}

		return tx.Create(registration).Error
	})
	return registration, err
}

func (s *RegistrationStorage) Get(ctx context.Context, id string) (*entity.EventRegistration, error) {
	var registration entity.EventRegistration
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&registration).Error
	return &registration, err
}

func (s *RegistrationStorage) Update(ctx context.Context, registration *entity.EventRegistration) (*entity.EventRegistration, error) {
	err := s.db.WithContext(ctx).Save(&registration).Error
	return registration, err
}

func (s *RegistrationStorage) GetByUserID(ctx context.Context, userID uint) ([]entity.EventRegistration, error) {
	var registrations []entity.EventRegistration
	err := s.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&registrations).Error
	return registrations, err
}

func (s *RegistrationStorage) GetActiveByUserID(ctx context.Context, userID uint) ([]entity.EventRegistration, error) {
	var registrations []entity.EventRegistration
	err := s.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ? AND payment_status IN ?", userID, []entity.PaymentStatus{entity.PaymentPending, entity.PaymentPaid}).
		Find(&registrations).Error
	return registrations, err
}
