package repository

import (
	"context"
	"errors"
	"first20_backend/internal/model"
	"first20_backend/internal/util"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PlanRepository struct {
	DB *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{DB: db}
}

func preloadResources(db *gorm.DB) *gorm.DB {
	return db.Order("plan_resources.id ASC")
}

func (r *PlanRepository) ListBySkill(ctx context.Context, skillID uint) ([]model.DailyPlan, error) {
	var plans []model.DailyPlan
	err := r.DB.WithContext(ctx).
		Preload("Resources", preloadResources).
		Where("skill_id = ?", skillID).
		Order("day_number ASC").
		Find(&plans).Error
	return plans, err
}

// FindBySkillAndDay 没有对应计划日时返回 nil
func (r *PlanRepository) FindBySkillAndDay(ctx context.Context, skillID uint, day int) (*model.DailyPlan, error) {
	var plan model.DailyPlan
	err := r.DB.WithContext(ctx).
		Preload("Resources", preloadResources).
		Where("skill_id = ? AND day_number = ?", skillID, day).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) ownedQuery(ctx context.Context, userID, planID uint) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&model.DailyPlan{}).
		Joins("JOIN skills ON skills.id = daily_plans.skill_id AND skills.deleted_at IS NULL").
		Where("daily_plans.id = ? AND skills.user_id = ?", planID, userID)
}

func (r *PlanRepository) FindOwned(ctx context.Context, userID, planID uint) (*model.DailyPlan, error) {
	var plan model.DailyPlan
	err := r.ownedQuery(ctx, userID, planID).
		Preload("Resources", preloadResources).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPlanNotFound
	}
	return &plan, err
}

func (r *PlanRepository) Owns(ctx context.Context, userID, planID uint) (bool, error) {
	var count int64
	err := r.ownedQuery(ctx, userID, planID).Count(&count).Error
	return count > 0, err
}

// AppendResource 追加一条资料，单条 INSERT，无需读改写
func (r *PlanRepository) AppendResource(ctx context.Context, resource *model.PlanResource) error {
	return r.DB.WithContext(ctx).Create(resource).Error
}

func (r *PlanRepository) ListResources(ctx context.Context, planID uint) ([]model.PlanResource, error) {
	var resources []model.PlanResource
	err := r.DB.WithContext(ctx).Where("daily_plan_id = ?", planID).Order("id ASC").Find(&resources).Error
	return resources, err
}

// ShiftFrom 将 day_number >= fromDay 且已排期的计划日整体后移 days 天，返回受影响条数
func (r *PlanRepository) ShiftFrom(ctx context.Context, skillID uint, fromDay, days int) (int, error) {
	shifted := 0
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var plans []model.DailyPlan
		if err := tx.Where("skill_id = ? AND day_number >= ? AND scheduled_date IS NOT NULL", skillID, fromDay).
			Find(&plans).Error; err != nil {
			return err
		}
		for _, plan := range plans {
			if plan.ScheduledDate == nil {
				continue
			}
			next := datatypes.Date(time.Time(*plan.ScheduledDate).AddDate(0, 0, days))
			if err := tx.Model(&model.DailyPlan{}).
				Where("id = ?", plan.ID).
				Update("scheduled_date", next).Error; err != nil {
				return err
			}
			shifted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return shifted, nil
}
