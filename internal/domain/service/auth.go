package service

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/entity"
)

type AuthUserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// SessionStorage keeps opaque session tokens server-side with a TTL.
type SessionStorage interface {
	Set(ctx context.Context, token string, userID uint, ttl time.Duration) error
	Get(ctx context.Context, token string) (uint, error)
	Delete(ctx context.Context, token string) error
}

type SignUp struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	City      string
}

type AuthService struct {
	users      AuthUserStorage
	sessions   SessionStorage
	sessionTTL time.Duration
}

func NewAuthService(users AuthUserStorage, sessions SessionStorage, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Register creates a member account and opens a session for it.
func (s *AuthService) Register(ctx context.Context, input SignUp) (*entity.User, string, error) {
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, "", errorz.Validation("email", "invalid email address")
	}
	if len(input.Password) < 6 {
		return nil, "", errorz.Validation("password", "must be at least 6 characters")
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", errorz.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, errorz.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.Create(ctx, &entity.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		City:         input.City,
		Role:         entity.RoleMember,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, errorz.ErrNotFound) {
			return nil, "", errorz.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errorz.ErrInvalidCredentials
	}
	if user.Disabled {
		return nil, "", errorz.ErrUserDisabled
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// UserFromSession resolves a session token to its user.
func (s *AuthService) UserFromSession(ctx context.Context, token string) (*entity.User, error) {
	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrSessionExpired
		}
		return nil, err
	}
	if user.Disabled {
		return nil, errorz.ErrUserDisabled
	}
	return user, nil
}

func (s *AuthService) openSession(ctx context.Context, userID uint) (string, error) {
	token := uuid.New().String()
	if err := s.sessions.Set(ctx, token, userID, s.sessionTTL); err != nil {
		return "", err
	}
	return token, nil
}
