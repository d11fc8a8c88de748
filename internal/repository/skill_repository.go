package repository

import (
	"context"
	"errors"
	"first20_backend/internal/model"
	"first20_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

// CreateWithPlans 在同一事务中写入技能及其全部计划日
func (r *SkillRepository) CreateWithPlans(ctx context.Context, skill *model.Skill, plans []model.DailyPlan) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(skill).Error; err != nil {
			return err
		}
		return insertPlans(tx, skill.ID, plans)
	})
}

// ActivateWithPlans 把技能切换为 active 并一次性生成计划
func (r *SkillRepository) ActivateWithPlans(ctx context.Context, skill *model.Skill, plans []model.DailyPlan) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Skill{}).
			Where("id = ? AND status <> ?", skill.ID, model.SkillActive).
			Update("status", model.SkillActive)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 并发请求已经激活过
			return nil
		}
		if err := insertPlans(tx, skill.ID, plans); err != nil {
			return err
		}
		skill.Status = model.SkillActive
		return nil
	})
}

func insertPlans(tx *gorm.DB, skillID uint, plans []model.DailyPlan) error {
	if len(plans) == 0 {
		return nil
	}
	for i := range plans {
		plans[i].SkillID = skillID
	}
	return tx.CreateInBatches(plans, 100).Error
}

func (r *SkillRepository) FindByID(ctx context.Context, id uint) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.WithContext(ctx).First(&skill, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSkillNotFound
	}
	return &skill, err
}

// FindOwned 只返回属于该用户的技能，不属于时与不存在同样处理
func (r *SkillRepository) FindOwned(ctx context.Context, userID, skillID uint) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", skillID, userID).First(&skill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSkillNotFound
	}
	return &skill, err
}

func (r *SkillRepository) Owns(ctx context.Context, userID, skillID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Skill{}).
		Where("id = ? AND user_id = ?", skillID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *SkillRepository) ListByUser(ctx context.Context, userID uint) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc, id desc").Find(&skills).Error
	return skills, err
}

// FindLatestActive 返回用户最近创建的 active 技能，没有时返回 nil
func (r *SkillRepository) FindLatestActive(ctx context.Context, userID uint) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.SkillActive).
		Order("created_at desc, id desc").
		First(&skill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepository) MarkCompleted(ctx context.Context, skill *model.Skill, at time.Time) error {
	err := r.DB.WithContext(ctx).Model(&model.Skill{}).
		Where("id = ?", skill.ID).
		Updates(map[string]interface{}{
			"status":       model.SkillCompleted,
			"completed_at": at,
		}).Error
	if err != nil {
		return err
	}
	skill.Status = model.SkillCompleted
	skill.CompletedAt = &at
	return nil
}
