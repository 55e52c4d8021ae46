package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/aitbenali/medina-journeys/internal/domain/entity"
)

type MembershipStorage struct {
	db *gorm.DB
}

func NewMembershipStorage(db *gorm.DB) *MembershipStorage {
	return &MembershipStorage{
		db: db,
	}
}

func (s *MembershipStorage) Create(ctx context.Context, membership *entity.ClubMembership) (*entity.ClubMembership, error) {
	err := s.db.WithContext(ctx).Create(&membership).Error
	return membership, err
}

func (s *MembershipStorage) GetByUserAndClub(ctx context.Context, userID uint, clubID string) (*entity.ClubMembership, error) {
	var membership entity.ClubMembership
	err := s.db.WithContext(ctx).Where("user_id = ? AND club_id = ?", userID, clubID).First(&membership).Error
	return &membership, err
}

func (s *MembershipStorage) Update(ctx context.Context, membership *entity.ClubMembership) (*entity.ClubMembership, error) {
	err := s.db.WithContext(ctx).Save(&membership).Error
	return membership, err
}

func (s *MembershipStorage) GetActiveClubsByUserID(ctx context.Context, userID uint) ([]entity.Club, error) {
	var clubs []entity.Club
	err := s.db.WithContext(ctx).
		Joins("JOIN club_memberships ON club_memberships.club_id = clubs.id").
		Where("club_memberships.user_id = ? AND club_memberships.status = ?", userID, entity.MembershipActive).
		Find(&clubs).Error
	return clubs, err
}

func (s *MembershipStorage) CountActiveByClubID(ctx context.Context, clubID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.ClubMembership{}).
		Where("club_id = ? AND status = ?", clubID, entity.MembershipActive).
		Count(&count).Error
	return count, err
}
