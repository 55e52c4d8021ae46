package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aitbenali/medina-journeys/internal/domain/authz"
	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/entity"
)

type ClubStorage interface {
	Create(ctx context.Context, club *entity.Club) (*entity.Club, error)
	Get(ctx context.Context, id string) (*entity.Club, error)
	GetByManagerID(ctx context.Context, managerID uint) ([]entity.Club, error)
	Update(ctx context.Context, club *entity.Club) (*entity.Club, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	GetWithPagination(ctx context.Context, limit, offset int, category, city string) ([]entity.Club, error)
}

type clubUserStorage interface {
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
}

type clubMembershipStorage interface {
	Create(ctx context.Context, membership *entity.ClubMembership) (*entity.ClubMembership, error)
}

type ClubService struct {
	storage     ClubStorage
	users       clubUserStorage
	memberships clubMembershipStorage
}

func NewClubService(storage ClubStorage, users clubUserStorage, memberships clubMembershipStorage) *ClubService {
	return &ClubService{
		storage:     storage,
		users:       users,
		memberships: memberships,
	}
}

type ClubInput struct {
	Name        string
	Description string
	Category    string
	City        string
}

func (i ClubInput) validate() error {
	if len(i.Name) < 3 {
		return errorz.Validation("name", "must be at least 3 characters")
	}
	if len(i.Description) < 20 {
		return errorz.Validation("description", "must be at least 20 characters")
	}
	if !validCategories[i.Category] {
		return errorz.Validation("category", "unknown category")
	}
	if i.City == "" {
		return errorz.Validation("city", "is required")
	}
	return nil
}

// Create opens a new club managed by the creator. A member who creates a
// club is promoted to club_manager and auto-joined as its first member.
func (s *ClubService) Create(ctx context.Context, creator *entity.User, input ClubInput) (*entity.Club, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	club, err := s.storage.Create(ctx, &entity.Club{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		City:        input.City,
		ManagerID:   creator.ID,
	})
	if err != nil {
		return nil, err
	}

	if creator.Role == entity.RoleMember {
		creator.Role = entity.RoleClubManager
		if _, err = s.users.Update(ctx, creator); err != nil {
			return nil, err
		}
	}

	_, err = s.memberships.Create(ctx, &entity.ClubMembership{
		UserID: creator.ID,
		ClubID: club.ID,
		Status: entity.MembershipActive,
	})
	if err != nil {
		return nil, err
	}
	return club, nil
}

func (s *ClubService) Get(ctx context.Context, id string) (*entity.Club, error) {
	club, err := s.storage.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrNotFound
	}
	return club, err
}

// Update edits a club. Club managers may only edit clubs they manage.
func (s *ClubService) Update(ctx context.Context, actor *entity.User, id string, input ClubInput) (*entity.Club, error) {
	if err := authz.Require(actor.Role, authz.ManageOwnClub); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	club, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != entity.RoleAdmin && club.ManagerID != actor.ID {
		return nil, errorz.ErrForbidden
	}

	club.Name = input.Name
	club.Description = input.Description
	club.Category = input.Category
	club.City = input.City
	return s.storage.Update(ctx, club)
}

// Delete removes a club and its events, but refuses when any event carries
// registrations: those rows are financial records and must survive.
func (s *ClubService) Delete(ctx context.Context, actor *entity.User, id string) error {
	if err := authz.Require(actor.Role, authz.ManageClubs); err != nil {
		return err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.storage.Delete(ctx, id)
}

func (s *ClubService) GetByManagerID(ctx context.Context, managerID uint) ([]entity.Club, error) {
	return s.storage.GetByManagerID(ctx, managerID)
}

func (s *ClubService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

func (s *ClubService) GetWithPagination(ctx context.Context, limit, offset int, category, city string) ([]entity.Club, error) {
	return s.storage.GetWithPagination(ctx, limit, offset, category, city)
}
