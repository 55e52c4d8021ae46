package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/entity"
)

type MembershipStorage interface {
	Create(ctx context.Context, membership *entity.ClubMembership) (*entity.ClubMembership, error)
	GetByUserAndClub(ctx context.Context, userID uint, clubID string) (*entity.ClubMembership, error)
	Update(ctx context.Context, membership *entity.ClubMembership) (*entity.ClubMembership, error)
	GetActiveClubsByUserID(ctx context.Context, userID uint) ([]entity.Club, error)
	CountActiveByClubID(ctx context.Context, clubID string) (int64, error)
}

type membershipClubStorage interface {
	Get(ctx context.Context, id string) (*entity.Club, error)
}

type MembershipService struct {
	storage MembershipStorage
	clubs   membershipClubStorage
}

func NewMembershipService(storage MembershipStorage, clubs membershipClubStorage) *MembershipService {
	return &MembershipService{
		storage: storage,
		clubs:   clubs,
	}
}

// Join makes the user an active member of the club. A membership that was
// left earlier is reactivated instead of duplicated.
func (s *MembershipService) Join(ctx context.Context, user *entity.User, clubID string) (*entity.ClubMembership, error) {
	if _, err := s.clubs.Get(ctx, clubID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrNotFound
		}
		return nil, err
	}

	membership, err := s.storage.GetByUserAndClub(ctx, user.ID, clubID)
	switch {
	case err == nil:
		if membership.Status == entity.MembershipActive {
			return nil, errorz.ErrAlreadyMember
		}
		membership.Status = entity.MembershipActive
		return s.storage.Update(ctx, membership)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.storage.Create(ctx, &entity.ClubMembership{
			UserID: user.ID,
			ClubID: clubID,
			Status: entity.MembershipActive,
		})
	default:
		return nil, err
	}
}

func (s *MembershipService) Leave(ctx context.Context, user *entity.User, clubID string) error {
	membership, err := s.storage.GetByUserAndClub(ctx, user.ID, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorz.ErrNotFound
		}
		return err
	}
	if membership.Status != entity.MembershipActive {
		return errorz.ErrNotFound
	}
	membership.Status = entity.MembershipLeft
	_, err = s.storage.Update(ctx, membership)
	return err
}

func (s *MembershipService) ClubsForUser(ctx context.Context, userID uint) ([]entity.Club, error) {
	return s.storage.GetActiveClubsByUserID(ctx, userID)
}

func (s *MembershipService) CountActiveByClubID(ctx context.Context, clubID string) (int64, error) {
	return s.storage.CountActiveByClubID(ctx, clubID)
}
