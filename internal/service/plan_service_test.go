package service

import (
	"context"
	"errors"
	"first20_backend/internal/model"
	"first20_backend/internal/util"
	"testing"
	"time"
)

func planDates(t *testing.T, env *testEnv, userID, skillID uint) map[int]string {
	t.Helper()
	plans, err := env.plans.ListForSkill(context.Background(), userID, skillID)
	if err != nil {
		t.Fatal(err)
	}
	dates := make(map[int]string, len(plans))
	for _, p := range plans {
		if p.ScheduledDate != nil {
			dates[p.DayNumber] = time.Time(*p.ScheduledDate).Format(util.DateFormat)
		}
	}
	return dates
}

func TestShiftMovesRemainingDays(t *testing.T) {
	env := newTestEnv(t)
	env.fixClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	user := env.createUser(t, "alice")
	ctx := context.Background()

	skill := env.createSkill(t, user.ID, "Guitar", 60, model.SkillActive)
	env.logMinutes(t, user.ID, skill.ID, 120)

	res, err := env.plans.Shift(ctx, user.ID, skill.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if res.FromDay != 3 || res.PlansMoved != 18 || res.Days != 2 {
		t.Errorf("shift result=%+v", res)
	}

	dates := planDates(t, env, user.ID, skill.ID)
	if dates[2] != "2024-03-02" {
		t.Errorf("day 2 moved to %s", dates[2])
	}
	if dates[3] != "2024-03-05" {
		t.Errorf("day 3=%s, want 2024-03-05", dates[3])
	}
	if dates[20] != "2024-03-22" {
		t.Errorf("day 20=%s, want 2024-03-22", dates[20])
	}

	// 不幂等：再次平移会继续累加，负数向前移
	if _, err := env.plans.Shift(ctx, user.ID, skill.ID, -1); err != nil {
		t.Fatal(err)
	}
	if got := planDates(t, env, user.ID, skill.ID)[3]; got != "2024-03-04" {
		t.Errorf("day 3 after -1=%s", got)
	}
}

func TestShiftSkipsUnscheduledPlans(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	skill := env.createSkill(t, user.ID, "Chess", 200, model.SkillActive)

	if err := env.db.Model(&model.DailyPlan{}).
		Where("skill_id = ? AND day_number = ?", skill.ID, 4).
		Update("scheduled_date", nil).Error; err != nil {
		t.Fatal(err)
	}

	res, err := env.plans.Shift(context.Background(), user.ID, skill.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.PlansMoved != 5 {
		t.Errorf("moved=%d, want 5", res.PlansMoved)
	}
}

func TestShiftRejectsZeroAndForeignSkill(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	skill := env.createSkill(t, alice.ID, "Chess", 200, model.SkillActive)
	ctx := context.Background()

	if _, err := env.plans.Shift(ctx, alice.ID, skill.ID, 0); !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("days=0: err=%v", err)
	}
	if _, err := env.plans.Shift(ctx, bob.ID, skill.ID, 1); !errors.Is(err, util.ErrSkillNotFound) {
		t.Errorf("foreign skill: err=%v", err)
	}
}

func TestAddResourceAppendsInOrder(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	skill := env.createSkill(t, alice.ID, "Chess", 200, model.SkillActive)
	plans, _ := env.plans.ListForSkill(ctx, alice.ID, skill.ID)
	planID := plans[0].ID

	first, err := env.plans.AddResource(ctx, alice.ID, planID, ResourceRequest{Title: "Openings", URL: "https://lichess.org/study"})
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 || first[0].Type != "link" {
		t.Fatalf("first append=%+v", first)
	}

	all, err := env.plans.AddResource(ctx, alice.ID, planID, ResourceRequest{Title: "Endgames", URL: "https://example.com/endgames", Type: "video"})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Title != "Openings" || all[1].Title != "Endgames" || all[1].Type != "video" {
		t.Errorf("resources=%+v", all)
	}

	if _, err := env.plans.AddResource(ctx, bob.ID, planID, ResourceRequest{Title: "x", URL: "https://example.com"}); !errors.Is(err, util.ErrPlanNotFound) {
		t.Errorf("foreign plan: err=%v", err)
	}

	for _, bad := range []ResourceRequest{
		{Title: "", URL: "https://example.com"},
		{Title: "t", URL: "not a url"},
		{Title: "t", URL: "ftp://example.com/file"},
	} {
		if _, err := env.plans.AddResource(ctx, alice.ID, planID, bad); !errors.Is(err, util.ErrInvalidInput) {
			t.Errorf("AddResource(%+v) err=%v, want invalid input", bad, err)
		}
	}

	listed, _ := env.plans.ListForSkill(ctx, alice.ID, skill.ID)
	if len(listed[0].Resources) != 2 {
		t.Errorf("plan listing has %d resources", len(listed[0].Resources))
	}
}
