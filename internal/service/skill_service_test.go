package service

import (
	"context"
	"errors"
	"first20_backend/internal/model"
	"first20_backend/internal/util"
	"testing"
	"time"
)

func countPlans(t *testing.T, env *testEnv, skillID uint) int64 {
	t.Helper()
	var n int64
	if err := env.db.Model(&model.DailyPlan{}).Where("skill_id = ?", skillID).Count(&n).Error; err != nil {
		t.Fatalf("count plans: %v", err)
	}
	return n
}

func TestCreateActiveSkillGeneratesPlan(t *testing.T) {
	env := newTestEnv(t)
	env.fixClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	user := env.createUser(t, "alice")

	skill := env.createSkill(t, user.ID, "Guitar", 60, "")
	if skill.Status != model.SkillActive {
		t.Fatalf("status=%q, want active", skill.Status)
	}

	plans, err := env.plans.ListForSkill(context.Background(), user.ID, skill.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 20 {
		t.Fatalf("got %d plans, want 20", len(plans))
	}
	sum := 0
	for _, p := range plans {
		sum += p.SuggestedDurationMinutes
	}
	if sum != model.TargetMinutes {
		t.Errorf("plan minutes=%d", sum)
	}
	if got := time.Time(*plans[0].ScheduledDate).Format(util.DateFormat); got != "2024-03-01" {
		t.Errorf("day 1 date=%s", got)
	}
	if got := time.Time(*plans[19].ScheduledDate).Format(util.DateFormat); got != "2024-03-20" {
		t.Errorf("day 20 date=%s", got)
	}
}

func TestCreateSkillValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	tests := []struct {
		name string
		req  CreateSkillRequest
	}{
		{"blank name", CreateSkillRequest{Name: "  ", DailyMinutes: 30}},
		{"zero minutes", CreateSkillRequest{Name: "Chess", DailyMinutes: 0}},
		{"negative minutes", CreateSkillRequest{Name: "Chess", DailyMinutes: -5}},
		{"completed status", CreateSkillRequest{Name: "Chess", DailyMinutes: 30, Status: model.SkillCompleted}},
		{"unknown status", CreateSkillRequest{Name: "Chess", DailyMinutes: 30, Status: "paused"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.skills.Create(context.Background(), user.ID, tt.req)
			if !errors.Is(err, util.ErrInvalidInput) {
				t.Errorf("err=%v, want ErrInvalidInput", err)
			}
		})
	}

	var n int64
	env.db.Model(&model.Skill{}).Count(&n)
	if n != 0 {
		t.Errorf("%d skills written for invalid input", n)
	}
}

func TestFutureSkillStartsOnce(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	ctx := context.Background()

	skill := env.createSkill(t, user.ID, "Chess", 200, model.SkillFuture)
	if n := countPlans(t, env, skill.ID); n != 0 {
		t.Fatalf("future skill has %d plans", n)
	}

	started, err := env.skills.Start(ctx, user.ID, skill.ID)
	if err != nil {
		t.Fatal(err)
	}
	if started.Status != model.SkillActive {
		t.Errorf("status=%q after start", started.Status)
	}
	if n := countPlans(t, env, skill.ID); n != 6 {
		t.Fatalf("got %d plans, want 6", n)
	}

	// 已是 active，再次启动不会重复生成
	if _, err := env.skills.Start(ctx, user.ID, skill.ID); err != nil {
		t.Fatal(err)
	}
	if n := countPlans(t, env, skill.ID); n != 6 {
		t.Errorf("plans regenerated: %d", n)
	}
}

func TestStartAndCompleteRules(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	skill := env.createSkill(t, alice.ID, "Chess", 30, model.SkillActive)

	if _, err := env.skills.Start(ctx, bob.ID, skill.ID); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("start by non-owner: err=%v, want not found", err)
	}
	if _, err := env.skills.Complete(ctx, bob.ID, skill.ID); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("complete by non-owner: err=%v, want not found", err)
	}

	done, err := env.skills.Complete(ctx, alice.ID, skill.ID)
	if err != nil {
		t.Fatal(err)
	}
	if done.Status != model.SkillCompleted || done.CompletedAt == nil {
		t.Errorf("complete result=%+v", done)
	}
	if _, err := env.skills.Start(ctx, alice.ID, skill.ID); !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("start completed skill: err=%v, want invalid input", err)
	}

	future := env.createSkill(t, alice.ID, "Go", 30, model.SkillFuture)
	if _, err := env.skills.Complete(ctx, alice.ID, future.ID); !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("complete future skill: err=%v, want invalid input", err)
	}
}

func TestListSkillsGroupedWithProgress(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ctx := context.Background()

	guitar := env.createSkill(t, alice.ID, "Guitar", 60, model.SkillActive)
	env.createSkill(t, alice.ID, "Chess", 30, model.SkillFuture)
	env.createSkill(t, bob.ID, "Bob's skill", 30, model.SkillActive)
	env.logMinutes(t, alice.ID, guitar.ID, 600)

	groups, err := env.skills.List(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups.Active) != 1 || len(groups.Future) != 1 || len(groups.Completed) != 0 {
		t.Fatalf("groups: active=%d future=%d completed=%d", len(groups.Active), len(groups.Future), len(groups.Completed))
	}
	if p := groups.Active[0].Progress; p.Percentage != 50 || p.CurrentDay != 11 {
		t.Errorf("guitar progress=%+v", p)
	}
	if p := groups.Future[0].Progress; p.TotalMinutes != 0 {
		t.Errorf("chess progress=%+v", p)
	}
}

func TestActiveSkillIsMostRecent(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	ctx := context.Background()

	none, err := env.skills.Active(ctx, user.ID)
	if err != nil || none != nil {
		t.Fatalf("no skills: got %v, %v", none, err)
	}

	env.createSkill(t, user.ID, "Guitar", 60, model.SkillActive)
	latest := env.createSkill(t, user.ID, "Chess", 60, model.SkillActive)
	env.createSkill(t, user.ID, "Go", 60, model.SkillFuture)

	active, err := env.skills.Active(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if active == nil || active.ID != latest.ID {
		t.Errorf("active=%v, want skill %d", active, latest.ID)
	}
}
