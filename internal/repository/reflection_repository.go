package repository

import (
	"context"
	"first20_backend/internal/model"

	"gorm.io/gorm"
)

type ReflectionRepository struct {
	DB *gorm.DB
}

func NewReflectionRepository(db *gorm.DB) *ReflectionRepository {
	return &ReflectionRepository{DB: db}
}

func (r *ReflectionRepository) Create(ctx context.Context, reflection *model.Reflection) error {
	return r.DB.WithContext(ctx).Create(reflection).Error
}

func (r *ReflectionRepository) ListBySession(ctx context.Context, sessionID uint) ([]model.Reflection, error) {
	var reflections []model.Reflection
	err := r.DB.WithContext(ctx).Where("session_id = ?", sessionID).Order("id ASC").Find(&reflections).Error
	return reflections, err
}
