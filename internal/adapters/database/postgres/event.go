package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aitbenali/medina-journeys/internal/domain/entity"
)

type EventStorage struct {
	db *gorm.DB
}

func NewEventStorage(db *gorm.DB) *EventStorage {
	return &EventStorage{
		db: db,
	}
}

func (s *EventStorage) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Create(&event).Error
	return event, err
}

func (s *EventStorage) Get(ctx context.Context, id string) (*entity.Event, error) {
	var event entity.Event
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	return &event, err
}

func (s *EventStorage) Update(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Save(&event).Error
	return event, err
}

func (s *EventStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Event{}).Error
}

func (s *EventStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Event{}).Count(&count).Error
	return count, err
}

// CountCities counts the distinct cities that host events.
func (s *EventStorage) CountCities(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Event{}).Distinct("city").Count(&count).Error
	return count, err
}

// GetUpcoming lists events that have not started yet, soonest first,
// optionally filtered by category and city.
func (s *EventStorage) GetUpcoming(ctx context.Context, limit, offset int, category, city string) ([]entity.Event, error) {
	var events []entity.Event
	query := s.db.WithContext(ctx).
		Where("start_time > ?", time.Now()).
		Order("start_time asc").
		Offset(offset).
		Limit(limit)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if city != "" {
		query = query.Where("city ILIKE ?", "%"+city+"%")
	}
	err := query.Find(&events).Error
	return events, err
}

func (s *EventStorage) GetUpcomingByClubID(ctx context.Context, clubID string) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).
		Where("club_id = ? AND start_time > ?", clubID, time.Now()).
		Order("start_time asc").
		Find(&events).Error
	return events, err
}

// CountActiveRegistrations counts the registrations that hold a seat.
func (s *EventStorage) CountActiveRegistrations(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.EventRegistration{}).
		Where("event_id = ? AND payment_status IN ?", eventID, []entity.PaymentStatus{entity.PaymentPending, entity.PaymentPaid}).
		Count(&count).Error
	return count, err
}
