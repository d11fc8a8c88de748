package service

import (
	"context"
	"first20_backend/internal/model"
	"first20_backend/internal/repository"
	"first20_backend/internal/util"
	"first20_backend/pkg/logger"
	"first20_backend/pkg/monitoring"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type SessionService struct {
	SessionRepo    *repository.SessionRepository
	SkillRepo      *repository.SkillRepository
	ReflectionRepo *repository.ReflectionRepository
	Badges         *BadgeService
	now            func() time.Time
}

func NewSessionService(
	sessionRepo *repository.SessionRepository,
	skillRepo *repository.SkillRepository,
	reflectionRepo *repository.ReflectionRepository,
	badges *BadgeService,
) *SessionService {
	return &SessionService{
		SessionRepo:    sessionRepo,
		SkillRepo:      skillRepo,
		ReflectionRepo: reflectionRepo,
		Badges:         badges,
		now:            time.Now,
	}
}

type LogSessionRequest struct {
	SkillID         uint       `json:"skillId"`
	DurationMinutes int        `json:"durationMinutes" binding:"required"`
	Date            *time.Time `json:"date"`
}

type ReflectionRequest struct {
	SessionID   uint             `json:"sessionId" binding:"required"`
	Content     string           `json:"content"`
	Difficulty  model.Difficulty `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	KeyTakeaway string           `json:"keyTakeaway" binding:"max=500"`
}

// LogResult 记录结果及本次新获得的徽章
type LogResult struct {
	Session   *model.PracticeSession `json:"session"`
	NewBadges []string               `json:"newBadges"`
}

// Log 记录一次练习，随后评估徽章。评估失败只记录日志，不影响已写入的练习记录，
// 下次触发时会重新评估。
func (s *SessionService) Log(ctx context.Context, userID uint, req LogSessionRequest) (*LogResult, error) {
	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("duration must be positive: %w", util.ErrInvalidInput)
	}

	skill, err := s.SkillRepo.FindOwned(ctx, userID, req.SkillID)
	if err != nil {
		return nil, err
	}

	date := s.now()
	if req.Date != nil && !req.Date.IsZero() {
		date = *req.Date
	}

	session := &model.PracticeSession{
		SkillID:         skill.ID,
		DurationMinutes: req.DurationMinutes,
		Date:            date,
	}
	if err := s.SessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	monitoring.SessionsLogged.Inc()
	monitoring.MinutesLogged.Add(float64(req.DurationMinutes))

	newBadges, err := s.Badges.Evaluate(ctx, userID)
	if err != nil {
		logger.Log.Warn("Badge evaluation failed after session log",
			zap.Uint("userID", userID),
			zap.Uint("sessionID", session.ID),
			zap.Error(err),
		)
	}
	if newBadges == nil {
		newBadges = []string{}
	}

	return &LogResult{Session: session, NewBadges: newBadges}, nil
}

func (s *SessionService) ListForSkill(ctx context.Context, userID, skillID uint) ([]model.PracticeSession, error) {
	if _, err := s.SkillRepo.FindOwned(ctx, userID, skillID); err != nil {
		return nil, err
	}
	return s.SessionRepo.ListBySkill(ctx, skillID)
}

// SaveReflection 只允许给自己的练习记录写反思
func (s *SessionService) SaveReflection(ctx context.Context, userID uint, req ReflectionRequest) (*model.Reflection, error) {
	if req.Difficulty != "" && !req.Difficulty.Valid() {
		return nil, fmt.Errorf("difficulty must be Easy, Medium or Hard: %w", util.ErrInvalidInput)
	}

	session, err := s.SessionRepo.FindOwned(ctx, userID, req.SessionID)
	if err != nil {
		return nil, err
	}

	reflection := &model.Reflection{
		SessionID:   session.ID,
		Content:     req.Content,
		Difficulty:  req.Difficulty,
		KeyTakeaway: req.KeyTakeaway,
	}
	if err := s.ReflectionRepo.Create(ctx, reflection); err != nil {
		return nil, err
	}
	return reflection, nil
}
