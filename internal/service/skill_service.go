package service

import (
	"context"
	"first20_backend/internal/model"
	"first20_backend/internal/repository"
	"first20_backend/internal/util"
	"first20_backend/pkg/logger"
	"first20_backend/pkg/monitoring"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

type SkillService struct {
	SkillRepo   *repository.SkillRepository
	SessionRepo *repository.SessionRepository
	now         func() time.Time
}

func NewSkillService(skillRepo *repository.SkillRepository, sessionRepo *repository.SessionRepository) *SkillService {
	return &SkillService{
		SkillRepo:   skillRepo,
		SessionRepo: sessionRepo,
		now:         time.Now,
	}
}

type CreateSkillRequest struct {
	Name             string            `json:"name" binding:"required,max=255"`
	TargetDefinition string            `json:"targetDefinition"`
	DailyMinutes     int               `json:"dailyMinutes" binding:"required"`
	Status           model.SkillStatus `json:"status"`
}

// SkillWithProgress 技能及其进度
type SkillWithProgress struct {
	model.Skill
	Progress Progress `json:"progress"`
}

type SkillGroups struct {
	Active    []SkillWithProgress `json:"active"`
	Completed []SkillWithProgress `json:"completed"`
	Future    []SkillWithProgress `json:"future"`
}

// Create 创建技能；状态为 active 时在同一事务里生成计划
func (s *SkillService) Create(ctx context.Context, userID uint, req CreateSkillRequest) (*model.Skill, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("skill name is required: %w", util.ErrInvalidInput)
	}
	if req.DailyMinutes <= 0 {
		return nil, fmt.Errorf("daily minutes must be positive: %w", util.ErrInvalidInput)
	}

	status := req.Status
	if status == "" {
		status = model.SkillActive
	}
	if status != model.SkillActive && status != model.SkillFuture {
		return nil, fmt.Errorf("status must be active or future: %w", util.ErrInvalidInput)
	}

	skill := &model.Skill{
		UserID:           userID,
		Name:             name,
		TargetDefinition: req.TargetDefinition,
		DailyMinutes:     req.DailyMinutes,
		Status:           status,
	}

	var plans []model.DailyPlan
	if status == model.SkillActive {
		var err error
		plans, err = s.buildPlans(skill)
		if err != nil {
			return nil, err
		}
	}

	if err := s.SkillRepo.CreateWithPlans(ctx, skill, plans); err != nil {
		return nil, err
	}

	if len(plans) > 0 {
		s.recordPlanGenerated(skill, len(plans))
	}
	return skill, nil
}

// Start 启动 future 技能并生成计划；已是 active 时直接返回
func (s *SkillService) Start(ctx context.Context, userID, skillID uint) (*model.Skill, error) {
	skill, err := s.SkillRepo.FindOwned(ctx, userID, skillID)
	if err != nil {
		return nil, err
	}
	if skill.Status == model.SkillActive {
		return skill, nil
	}
	if skill.Status != model.SkillFuture {
		return nil, fmt.Errorf("only future skills can be started: %w", util.ErrInvalidInput)
	}

	plans, err := s.buildPlans(skill)
	if err != nil {
		return nil, err
	}
	if err := s.SkillRepo.ActivateWithPlans(ctx, skill, plans); err != nil {
		return nil, err
	}

	s.recordPlanGenerated(skill, len(plans))
	return s.SkillRepo.FindOwned(ctx, userID, skillID)
}

// Complete 标记技能完成
func (s *SkillService) Complete(ctx context.Context, userID, skillID uint) (*model.Skill, error) {
	skill, err := s.SkillRepo.FindOwned(ctx, userID, skillID)
	if err != nil {
		return nil, err
	}
	if skill.Status == model.SkillCompleted {
		return skill, nil
	}
	if skill.Status != model.SkillActive {
		return nil, fmt.Errorf("only active skills can be completed: %w", util.ErrInvalidInput)
	}
	if err := s.SkillRepo.MarkCompleted(ctx, skill, s.now()); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) buildPlans(skill *model.Skill) ([]model.DailyPlan, error) {
	drafts, err := GeneratePlan(skill.Name, skill.DailyMinutes)
	if err != nil {
		return nil, err
	}
	return SchedulePlan(drafts, s.now()), nil
}

func (s *SkillService) recordPlanGenerated(skill *model.Skill, days int) {
	monitoring.PlansGenerated.Inc()
	logger.Log.Info("Practice plan generated",
		zap.Uint("skillID", skill.ID),
		zap.Uint("userID", skill.UserID),
		zap.Int("dailyMinutes", skill.DailyMinutes),
		zap.Int("days", days),
	)
}

// List 按状态分组返回用户全部技能及进度
func (s *SkillService) List(ctx context.Context, userID uint) (*SkillGroups, error) {
	skills, err := s.SkillRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(skills))
	for i, skill := range skills {
		ids[i] = skill.ID
	}
	totals, err := s.SessionRepo.TotalMinutesBySkills(ctx, ids)
	if err != nil {
		return nil, err
	}

	groups := &SkillGroups{
		Active:    []SkillWithProgress{},
		Completed: []SkillWithProgress{},
		Future:    []SkillWithProgress{},
	}
	for _, skill := range skills {
		item := SkillWithProgress{
			Skill:    skill,
			Progress: CalculateProgress(totals[skill.ID], skill.DailyMinutes),
		}
		switch skill.Status {
		case model.SkillActive:
			groups.Active = append(groups.Active, item)
		case model.SkillCompleted:
			groups.Completed = append(groups.Completed, item)
		case model.SkillFuture:
			groups.Future = append(groups.Future, item)
		}
	}
	return groups, nil
}

// Active 返回最近的 active 技能，没有时返回 nil
func (s *SkillService) Active(ctx context.Context, userID uint) (*SkillWithProgress, error) {
	skill, err := s.SkillRepo.FindLatestActive(ctx, userID)
	if err != nil || skill == nil {
		return nil, err
	}
	return s.withProgress(ctx, skill)
}

func (s *SkillService) Get(ctx context.Context, userID, skillID uint) (*SkillWithProgress, error) {
	skill, err := s.SkillRepo.FindOwned(ctx, userID, skillID)
	if err != nil {
		return nil, err
	}
	return s.withProgress(ctx, skill)
}

func (s *SkillService) withProgress(ctx context.Context, skill *model.Skill) (*SkillWithProgress, error) {
	total, err := s.SessionRepo.TotalMinutesBySkill(ctx, skill.ID)
	if err != nil {
		return nil, err
	}
	return &SkillWithProgress{
		Skill:    *skill,
		Progress: CalculateProgress(total, skill.DailyMinutes),
	}, nil
}
