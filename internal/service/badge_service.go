package service

import (
	"context"
	"first20_backend/internal/model"
	"first20_backend/internal/repository"
	"first20_backend/pkg/logger"
	"first20_backend/pkg/monitoring"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// BadgeCatalogVersion 目录内容变更时递增
const BadgeCatalogVersion = 1

type BadgeDefinition struct {
	Name        string
	Description string
	Icon        string
	Criteria    model.BadgeCriteria
	Threshold   int
}

var badgeCatalog = []BadgeDefinition{
	{Name: "First Step", Description: "Completed your first session", Icon: "footprints", Criteria: model.CriteriaSessionCount, Threshold: 1},
	{Name: "High Five", Description: "Completed 5 hours of practice", Icon: "hand", Criteria: model.CriteriaMinuteTotal, Threshold: 300},
	{Name: "Mastery", Description: "Completed 20 hours", Icon: "trophy", Criteria: model.CriteriaMinuteTotal, Threshold: 1200},
}

// BadgeCatalog 返回目录副本
func BadgeCatalog() []BadgeDefinition {
	out := make([]BadgeDefinition, len(badgeCatalog))
	copy(out, badgeCatalog)
	return out
}

func (d BadgeDefinition) MetBy(totals repository.UserTotals) bool {
	switch d.Criteria {
	case model.CriteriaSessionCount:
		return totals.SessionCount >= int64(d.Threshold)
	case model.CriteriaMinuteTotal:
		return totals.TotalMinutes >= int64(d.Threshold)
	}
	return false
}

func (d BadgeDefinition) toModel() *model.Badge {
	return &model.Badge{
		Name:           d.Name,
		Description:    d.Description,
		IconName:       d.Icon,
		CriteriaType:   d.Criteria,
		Threshold:      d.Threshold,
		CatalogVersion: BadgeCatalogVersion,
	}
}

type BadgeService struct {
	BadgeRepo   *repository.BadgeRepository
	SessionRepo *repository.SessionRepository
	now         func() time.Time
}

func NewBadgeService(badgeRepo *repository.BadgeRepository, sessionRepo *repository.SessionRepository) *BadgeService {
	return &BadgeService{
		BadgeRepo:   badgeRepo,
		SessionRepo: sessionRepo,
		now:         time.Now,
	}
}

// SeedCatalog 启动时写入目录，可重复执行
func (s *BadgeService) SeedCatalog(ctx context.Context) error {
	for _, def := range badgeCatalog {
		if _, err := s.BadgeRepo.Ensure(ctx, def.toModel()); err != nil {
			return fmt.Errorf("seed badge %q: %w", def.Name, err)
		}
	}
	logger.Log.Info("Badge catalog seeded",
		zap.Int("version", BadgeCatalogVersion),
		zap.Int("badges", len(badgeCatalog)),
	)
	return nil
}

// Evaluate 按用户累计数据授予达标徽章，只返回本次新获得的徽章名。
// 依赖 (user_id, badge_id) 唯一约束，重复执行是安全的。
func (s *BadgeService) Evaluate(ctx context.Context, userID uint) ([]string, error) {
	totals, err := s.SessionRepo.UserTotals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user totals: %w", err)
	}

	awarded := []string{}
	for _, def := range badgeCatalog {
		if !def.MetBy(totals) {
			continue
		}

		badge, err := s.BadgeRepo.Ensure(ctx, def.toModel())
		if err != nil {
			return awarded, fmt.Errorf("ensure badge %q: %w", def.Name, err)
		}

		inserted, err := s.BadgeRepo.Award(ctx, userID, badge.ID, s.now())
		if err != nil {
			return awarded, fmt.Errorf("award badge %q: %w", def.Name, err)
		}
		if inserted {
			awarded = append(awarded, def.Name)
			monitoring.BadgesAwarded.WithLabelValues(def.Name).Inc()
		}
	}

	if len(awarded) > 0 {
		logger.Log.Info("Badges awarded",
			zap.Uint("userID", userID),
			zap.Strings("badges", awarded),
			zap.Int64("sessions", totals.SessionCount),
			zap.Int64("minutes", totals.TotalMinutes),
		)
	}

	return awarded, nil
}

func (s *BadgeService) ListUserBadges(ctx context.Context, userID uint) ([]model.UserBadge, error) {
	return s.BadgeRepo.ListByUser(ctx, userID)
}

func (s *BadgeService) ListCatalog(ctx context.Context) ([]model.Badge, error) {
	return s.BadgeRepo.ListCatalog(ctx)
}
