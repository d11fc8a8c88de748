package service

import (
	"context"
	"first20_backend/internal/model"
	"first20_backend/internal/repository"
	"first20_backend/internal/util"
	"first20_backend/pkg/logger"
	"first20_backend/pkg/monitoring"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

type PlanService struct {
	PlanRepo    *repository.PlanRepository
	SkillRepo   *repository.SkillRepository
	SessionRepo *repository.SessionRepository
}

func NewPlanService(
	planRepo *repository.PlanRepository,
	skillRepo *repository.SkillRepository,
	sessionRepo *repository.SessionRepository,
) *PlanService {
	return &PlanService{
		PlanRepo:    planRepo,
		SkillRepo:   skillRepo,
		SessionRepo: sessionRepo,
	}
}

type ResourceRequest struct {
	Title string `json:"title" binding:"required,max=255"`
	URL   string `json:"url" binding:"required,max=1024"`
	Type  string `json:"type" binding:"max=50"`
}

// ShiftResult 平移结果
type ShiftResult struct {
	Days       int `json:"days"`
	FromDay    int `json:"fromDay"`
	PlansMoved int `json:"plansMoved"`
}

func (s *PlanService) ListForSkill(ctx context.Context, userID, skillID uint) ([]model.DailyPlan, error) {
	if _, err := s.SkillRepo.FindOwned(ctx, userID, skillID); err != nil {
		return nil, err
	}
	return s.PlanRepo.ListBySkill(ctx, skillID)
}

// Shift 把尚未到达的计划日（day >= 当前天）后移 days 天，不幂等
func (s *PlanService) Shift(ctx context.Context, userID, skillID uint, days int) (*ShiftResult, error) {
	if days == 0 {
		return nil, fmt.Errorf("days must not be zero: %w", util.ErrInvalidInput)
	}

	skill, err := s.SkillRepo.FindOwned(ctx, userID, skillID)
	if err != nil {
		return nil, err
	}

	total, err := s.SessionRepo.TotalMinutesBySkill(ctx, skill.ID)
	if err != nil {
		return nil, err
	}
	fromDay := CalculateProgress(total, skill.DailyMinutes).CurrentDay

	moved, err := s.PlanRepo.ShiftFrom(ctx, skill.ID, fromDay, days)
	if err != nil {
		return nil, err
	}

	monitoring.SchedulesShifted.Inc()
	logger.Log.Info("Schedule shifted",
		zap.Uint("skillID", skill.ID),
		zap.Int("days", days),
		zap.Int("fromDay", fromDay),
		zap.Int("plansMoved", moved),
	)

	return &ShiftResult{Days: days, FromDay: fromDay, PlansMoved: moved}, nil
}

// AddResource 给用户自己的计划日追加资料，返回追加后的完整列表
func (s *PlanService) AddResource(ctx context.Context, userID, planID uint, req ResourceRequest) ([]model.PlanResource, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("resource title is required: %w", util.ErrInvalidInput)
	}
	parsed, err := url.ParseRequestURI(strings.TrimSpace(req.URL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("resource url must be an http(s) url: %w", util.ErrInvalidInput)
	}

	plan, err := s.PlanRepo.FindOwned(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	resourceType := strings.TrimSpace(req.Type)
	if resourceType == "" {
		resourceType = "link"
	}

	resource := &model.PlanResource{
		DailyPlanID: plan.ID,
		Title:       title,
		URL:         parsed.String(),
		Type:        resourceType,
	}
	if err := s.PlanRepo.AppendResource(ctx, resource); err != nil {
		return nil, err
	}

	return s.PlanRepo.ListResources(ctx, plan.ID)
}
