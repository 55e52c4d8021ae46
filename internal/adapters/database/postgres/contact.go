package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/aitbenali/medina-journeys/internal/domain/entity"
)

type ContactStorage struct {
	db *gorm.DB
}

func NewContactStorage(db *gorm.DB) *ContactStorage {
	return &ContactStorage{
		db: db,
	}
}

func (s *ContactStorage) Create(ctx context.Context, message *entity.ContactMessage) (*entity.ContactMessage, error) {
	err := s.db.WithContext(ctx).Create(&message).Error
	return message, err
}
