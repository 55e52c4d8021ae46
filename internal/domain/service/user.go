package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/entity"
)

type UserStorage interface {
	Get(ctx context.Context, id uint) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
	GetWithPagination(ctx context.Context, limit, offset int, search string) ([]entity.User, error)
}

type UserService struct {
	storage UserStorage
}

func NewUserService(storage UserStorage) *UserService {
	return &UserService{storage: storage}
}

func (s *UserService) Get(ctx context.Context, id uint) (*entity.User, error) {
	user, err := s.storage.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrNotFound
	}
	return user, err
}

type ProfileUpdate struct {
	FirstName string
	LastName  string
	Bio       string
	City      string
	Interests []string
}

// UpdateProfile applies a self-service edit to the user's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, user *entity.User, input ProfileUpdate) (*entity.User, error) {
	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	user.Bio = input.Bio
	if input.City != "" {
		user.City = input.City
	}
	if input.Interests != nil {
		user.Interests = input.Interests
	}
	return s.storage.Update(ctx, user)
}

// SetRole is an admin-only role change.
func (s *UserService) SetRole(ctx context.Context, id uint, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, errorz.Validation("role", "must be one of admin, club_manager, member")
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	return s.storage.Update(ctx, user)
}

// SetDisabled soft-disables (or re-enables) an account instead of deleting
// it, so registration history is preserved.
func (s *UserService) SetDisabled(ctx context.Context, id uint, disabled bool) (*entity.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Disabled = disabled
	return s.storage.Update(ctx, user)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

func (s *UserService) GetWithPagination(ctx context.Context, limit, offset int, search string) ([]entity.User, error) {
	return s.storage.GetWithPagination(ctx, limit, offset, search)
}
