package service

import (
	"context"
	"first20_backend/internal/config"
	"first20_backend/internal/model"
	"first20_backend/internal/repository"
	"first20_backend/internal/testutil"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"
)

// testEnv 在内存库上组装全部服务
type testEnv struct {
	db        *gorm.DB
	cfg       *config.Config
	auth      *AuthService
	skills    *SkillService
	plans     *PlanService
	sessions  *SessionService
	badges    *BadgeService
	dashboard *DashboardService
	calendar  *CalendarService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.OpenTestDB(t)

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		Storage: config.StorageConfig{
			Type:          "local",
			LocalPath:     t.TempDir(),
			PublicBaseURL: "http://files.test",
		},
	}

	userRepo := repository.NewUserRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	planRepo := repository.NewPlanRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	reflectionRepo := repository.NewReflectionRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)

	badges := NewBadgeService(badgeRepo, sessionRepo)
	env := &testEnv{
		db:        db,
		cfg:       cfg,
		auth:      NewAuthService(userRepo, cfg),
		skills:    NewSkillService(skillRepo, sessionRepo),
		plans:     NewPlanService(planRepo, skillRepo, sessionRepo),
		sessions:  NewSessionService(sessionRepo, skillRepo, reflectionRepo, badges),
		badges:    badges,
		dashboard: NewDashboardService(skillRepo, planRepo, sessionRepo, badgeRepo),
		calendar:  NewCalendarService(skillRepo, planRepo, NewStorageService(cfg)),
	}
	if err := badges.SeedCatalog(context.Background()); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return env
}

// fixClock 让技能排期从固定日期开始
func (e *testEnv) fixClock(now time.Time) {
	clock := func() time.Time { return now }
	e.skills.now = clock
	e.sessions.now = clock
	e.badges.now = clock
}

func (e *testEnv) createUser(t *testing.T, name string) *model.User {
	t.Helper()
	user := &model.User{
		Email:    fmt.Sprintf("%s@example.com", name),
		Username: name,
		Password: "not-a-real-hash",
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) createSkill(t *testing.T, userID uint, name string, daily int, status model.SkillStatus) *model.Skill {
	t.Helper()
	skill, err := e.skills.Create(context.Background(), userID, CreateSkillRequest{
		Name:         name,
		DailyMinutes: daily,
		Status:       status,
	})
	if err != nil {
		t.Fatalf("create skill: %v", err)
	}
	return skill
}

func (e *testEnv) logMinutes(t *testing.T, userID, skillID uint, minutes int) *LogResult {
	t.Helper()
	res, err := e.sessions.Log(context.Background(), userID, LogSessionRequest{
		SkillID:         skillID,
		DurationMinutes: minutes,
	})
	if err != nil {
		t.Fatalf("log session: %v", err)
	}
	return res
}
