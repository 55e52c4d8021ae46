package service

import (
	"context"

	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/entity"
)

type ContactStorage interface {
	Create(ctx context.Context, message *entity.ContactMessage) (*entity.ContactMessage, error)
}

type ContactService struct {
	storage ContactStorage
}

func NewContactService(storage ContactStorage) *ContactService {
	return &ContactService{storage: storage}
}

func (s *ContactService) Submit(ctx context.Context, name, email, message string) (*entity.ContactMessage, error) {
	if len(message) < 10 {
		return nil, errorz.Validation("message", "must be at least 10 characters")
	}
	return s.storage.Create(ctx, &entity.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
	})
}
