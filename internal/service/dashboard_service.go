package service

import (
	"context"
	"first20_backend/internal/model"
	"first20_backend/internal/repository"
)

type DashboardService struct {
	SkillRepo   *repository.SkillRepository
	PlanRepo    *repository.PlanRepository
	SessionRepo *repository.SessionRepository
	BadgeRepo   *repository.BadgeRepository
}

func NewDashboardService(
	skillRepo *repository.SkillRepository,
	planRepo *repository.PlanRepository,
	sessionRepo *repository.SessionRepository,
	badgeRepo *repository.BadgeRepository,
) *DashboardService {
	return &DashboardService{
		SkillRepo:   skillRepo,
		PlanRepo:    planRepo,
		SessionRepo: sessionRepo,
		BadgeRepo:   badgeRepo,
	}
}

type Dashboard struct {
	HasActiveSkill bool              `json:"hasActiveSkill"`
	Skill          *model.Skill      `json:"skill,omitempty"`
	CurrentPlan    *model.DailyPlan  `json:"currentPlan"`
	Progress       *Progress         `json:"progress,omitempty"`
	Badges         []model.UserBadge `json:"badges"`
}

// GetDashboard skillID 为空时使用最近的 active 技能
func (s *DashboardService) GetDashboard(ctx context.Context, userID uint, skillID *uint) (*Dashboard, error) {
	var (
		skill *model.Skill
		err   error
	)
	if skillID != nil {
		skill, err = s.SkillRepo.FindOwned(ctx, userID, *skillID)
	} else {
		skill, err = s.SkillRepo.FindLatestActive(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	badges, err := s.BadgeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if skill == nil {
		return &Dashboard{HasActiveSkill: false, Badges: badges}, nil
	}

	total, err := s.SessionRepo.TotalMinutesBySkill(ctx, skill.ID)
	if err != nil {
		return nil, err
	}
	progress := CalculateProgress(total, skill.DailyMinutes)

	plan, err := s.PlanRepo.FindBySkillAndDay(ctx, skill.ID, progress.CurrentDay)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		HasActiveSkill: true,
		Skill:          skill,
		CurrentPlan:    plan,
		Progress:       &progress,
		Badges:         badges,
	}, nil
}
