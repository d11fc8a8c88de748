package repository

import (
	"context"
	"errors"
	"first20_backend/internal/model"
	"first20_backend/internal/util"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// UserTotals 用户在所有技能上的累计练习
type UserTotals struct {
	SessionCount int64 `json:"sessionCount"`
	TotalMinutes int64 `json:"totalMinutes"`
}

func (r *SessionRepository) Create(ctx context.Context, session *model.PracticeSession) error {
	return r.DB.WithContext(ctx).Create(session).Error
}

func (r *SessionRepository) ownedQuery(ctx context.Context, userID, sessionID uint) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&model.PracticeSession{}).
		Joins("JOIN skills ON skills.id = sessions.skill_id AND skills.deleted_at IS NULL").
		Where("sessions.id = ? AND skills.user_id = ?", sessionID, userID)
}

func (r *SessionRepository) FindOwned(ctx context.Context, userID, sessionID uint) (*model.PracticeSession, error) {
	var session model.PracticeSession
	err := r.ownedQuery(ctx, userID, sessionID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	return &session, err
}

func (r *SessionRepository) Owns(ctx context.Context, userID, sessionID uint) (bool, error) {
	var count int64
	err := r.ownedQuery(ctx, userID, sessionID).Count(&count).Error
	return count > 0, err
}

func (r *SessionRepository) ListBySkill(ctx context.Context, skillID uint) ([]model.PracticeSession, error) {
	var sessions []model.PracticeSession
	err := r.DB.WithContext(ctx).
		Preload("Reflections").
		Where("skill_id = ?", skillID).
		Order("date desc, id desc").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) TotalMinutesBySkill(ctx context.Context, skillID uint) (int, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.PracticeSession{}).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Where("skill_id = ?", skillID).
		Scan(&total).Error
	return int(total), err
}

// TotalMinutesBySkills 批量统计，未出现的技能视为 0
func (r *SessionRepository) TotalMinutesBySkills(ctx context.Context, skillIDs []uint) (map[uint]int, error) {
	totals := make(map[uint]int, len(skillIDs))
	if len(skillIDs) == 0 {
		return totals, nil
	}

	var rows []struct {
		SkillID uint
		Total   int64
	}
	err := r.DB.WithContext(ctx).Model(&model.PracticeSession{}).
		Select("skill_id, COALESCE(SUM(duration_minutes), 0) AS total").
		Where("skill_id IN ?", skillIDs).
		Group("skill_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		totals[row.SkillID] = int(row.Total)
	}
	return totals, nil
}

func (r *SessionRepository) UserTotals(ctx context.Context, userID uint) (UserTotals, error) {
	var totals UserTotals
	err := r.DB.WithContext(ctx).Model(&model.PracticeSession{}).
		Select("COUNT(sessions.id) AS session_count, COALESCE(SUM(sessions.duration_minutes), 0) AS total_minutes").
		Joins("JOIN skills ON skills.id = sessions.skill_id AND skills.deleted_at IS NULL").
		Where("skills.user_id = ?", userID).
		Scan(&totals).Error
	return totals, err
}
