package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/entity"
)

type ClubStorage struct {
	db *gorm.DB
}

func NewClubStorage(db *gorm.DB) *ClubStorage {
	return &ClubStorage{
		db: db,
	}
}

func (s *ClubStorage) Create(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	err := s.db.WithContext(ctx).Create(&club).Error
	return club, err
}

func (s *ClubStorage) Get(ctx context.Context, id string) (*entity.Club, error) {
	var club entity.Club
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&club).Error
	return &club, err
}

func (s *ClubStorage) GetByManagerID(ctx context.Context, managerID uint) ([]entity.Club, error) {
	var clubs []entity.Club
	err := s.db.WithContext(ctx).Where("manager_id = ?", managerID).Find(&clubs).Error
	return clubs, err
}

func (s *ClubStorage) Update(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	err := s.db.WithContext(ctx).Save(&club).Error
	return club, err
}

// Delete removes a club, its events and memberships in one transaction.
// It refuses when any of the club's events carries registrations: those are
// financial records and must not be lost to a cascade.
func (s *ClubStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var registrations int64
		err := tx.Model(&entity.EventRegistration{}).
			Joins("JOIN events ON events.id = event_registrations.event_id").
			Where("events.club_id = ?", id).
			Count(&registrations).Error
		if err != nil {
			return err
		}
		if registrations > 0 {
			return errorz.ErrHasRegistrations
		}

		if err = tx.Where("club_id = ?", id).Delete(&entity.Event{}).Error; err != nil {
			return err
		}
		if err = tx.Where("club_id = ?", id).Delete(&entity.ClubMembership{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Club{}).Error
	})
}

func (s *ClubStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Club{}).Count(&count).Error
	return count, err
}

func (s *ClubStorage) GetWithPagination(ctx context.Context, limit, offset int, category, city string) ([]entity.Club, error) {
	var clubs []entity.Club
	query := s.db.WithContext(ctx).Order("created_at desc").Offset(offset).Limit(limit)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if city != "" {
		query = query.Where("city ILIKE ?", "%"+city+"%")
	}
	err := query.Find(&clubs).Error
	return clubs, err
}
