package repository

import (
	"context"
	"first20_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

// Ensure 按唯一名称插入目录条目，已存在时保持原样，返回库中的记录
func (r *BadgeRepository) Ensure(ctx context.Context, badge *model.Badge) (*model.Badge, error) {
	candidate := *badge
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&candidate).Error
	if err != nil {
		return nil, err
	}

	var stored model.Badge
	if err := r.DB.WithContext(ctx).Where("name = ?", badge.Name).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *BadgeRepository) ListCatalog(ctx context.Context) ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&badges).Error
	return badges, err
}

// Award 授予徽章；已拥有时不做任何事。返回本次是否新插入
func (r *BadgeRepository) Award(ctx context.Context, userID, badgeID uint, at time.Time) (bool, error) {
	userBadge := &model.UserBadge{
		UserID:   userID,
		BadgeID:  badgeID,
		EarnedAt: at,
	}
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
			DoNothing: true,
		}).
		Create(userBadge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *BadgeRepository) ListByUser(ctx context.Context, userID uint) ([]model.UserBadge, error) {
	var badges []model.UserBadge
	err := r.DB.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at ASC, id ASC").
		Find(&badges).Error
	return badges, err
}
