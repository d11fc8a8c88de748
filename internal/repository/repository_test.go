package repository

import (
	"context"
	"errors"
	"first20_backend/internal/model"
	"first20_backend/internal/testutil"
	"first20_backend/internal/util"
	"testing"
	"time"

	"gorm.io/gorm"
)

func seedUserSkill(t *testing.T, db *gorm.DB, email string) (*model.User, *model.Skill) {
	t.Helper()
	user := &model.User{Email: email, Username: email, Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatal(err)
	}
	skill := &model.Skill{UserID: user.ID, Name: "Chess", DailyMinutes: 60, Status: model.SkillActive}
	if err := db.Create(skill).Error; err != nil {
		t.Fatal(err)
	}
	return user, skill
}

func TestBadgeAwardIsInsertOnce(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewBadgeRepository(db)
	ctx := context.Background()
	user, _ := seedUserSkill(t, db, "a@example.com")

	badge, err := repo.Ensure(ctx, &model.Badge{Name: "First Step", CriteriaType: model.CriteriaSessionCount, Threshold: 1})
	if err != nil {
		t.Fatal(err)
	}
	again, err := repo.Ensure(ctx, &model.Badge{Name: "First Step", Description: "changed", CriteriaType: model.CriteriaSessionCount, Threshold: 99})
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != badge.ID || again.Threshold != 1 {
		t.Errorf("ensure overwrote existing badge: %+v", again)
	}

	inserted, err := repo.Award(ctx, user.ID, badge.ID, time.Now())
	if err != nil || !inserted {
		t.Fatalf("first award: inserted=%v err=%v", inserted, err)
	}
	inserted, err = repo.Award(ctx, user.ID, badge.ID, time.Now())
	if err != nil || inserted {
		t.Fatalf("second award: inserted=%v err=%v", inserted, err)
	}

	owned, err := repo.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(owned) != 1 || owned[0].Badge.Name != "First Step" {
		t.Errorf("owned=%+v", owned)
	}
}

func TestCreateWithPlansRollsBack(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewSkillRepository(db)
	user, _ := seedUserSkill(t, db, "a@example.com")

	skill := &model.Skill{UserID: user.ID, Name: "Go", DailyMinutes: 600, Status: model.SkillActive}
	// 重复的 day_number 触发唯一索引冲突
	plans := []model.DailyPlan{
		{DayNumber: 1, FocusTopic: "a", SuggestedDurationMinutes: 600},
		{DayNumber: 1, FocusTopic: "b", SuggestedDurationMinutes: 600},
	}
	if err := repo.CreateWithPlans(context.Background(), skill, plans); err == nil {
		t.Fatal("expected unique index violation")
	}

	var n int64
	db.Model(&model.Skill{}).Where("name = ?", "Go").Count(&n)
	if n != 0 {
		t.Errorf("skill row survived failed transaction")
	}
}

func TestOwnershipScopedLookups(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	alice, skill := seedUserSkill(t, db, "alice@example.com")
	bob, _ := seedUserSkill(t, db, "bob@example.com")

	plan := &model.DailyPlan{SkillID: skill.ID, DayNumber: 1, FocusTopic: "x", SuggestedDurationMinutes: 60}
	if err := db.Create(plan).Error; err != nil {
		t.Fatal(err)
	}
	session := &model.PracticeSession{SkillID: skill.ID, DurationMinutes: 30, Date: time.Now()}
	if err := db.Create(session).Error; err != nil {
		t.Fatal(err)
	}

	skills := NewSkillRepository(db)
	plans := NewPlanRepository(db)
	sessions := NewSessionRepository(db)

	if ok, _ := skills.Owns(ctx, alice.ID, skill.ID); !ok {
		t.Error("alice should own skill")
	}
	if ok, _ := skills.Owns(ctx, bob.ID, skill.ID); ok {
		t.Error("bob should not own skill")
	}
	if _, err := plans.FindOwned(ctx, bob.ID, plan.ID); !errors.Is(err, util.ErrPlanNotFound) {
		t.Errorf("plan lookup by bob: %v", err)
	}
	if ok, _ := plans.Owns(ctx, alice.ID, plan.ID); !ok {
		t.Error("alice should own plan")
	}
	if _, err := sessions.FindOwned(ctx, bob.ID, session.ID); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("session lookup by bob: %v", err)
	}
	if ok, _ := sessions.Owns(ctx, alice.ID, session.ID); !ok {
		t.Error("alice should own session")
	}

	totals, err := sessions.UserTotals(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if totals.SessionCount != 1 || totals.TotalMinutes != 30 {
		t.Errorf("alice totals=%+v", totals)
	}
	empty, err := sessions.UserTotals(ctx, bob.ID)
	if err != nil {
		t.Fatal(err)
	}
	if empty.SessionCount != 0 || empty.TotalMinutes != 0 {
		t.Errorf("bob totals=%+v", empty)
	}
}
