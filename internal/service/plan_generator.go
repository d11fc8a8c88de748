package service

import (
	"first20_backend/internal/model"
	"first20_backend/internal/util"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// 三个阶段按开始当天的累计进度划分：前 20%、20%~50%、其余
const (
	PhaseDeconstruction  = "Deconstruction & Basics"
	PhaseSelfCorrection  = "Learning to Self-Correct"
	PhaseFocusedPractice = "Focused Practice"
)

// PlanDraft 尚未落库的计划日
type PlanDraft struct {
	DayNumber                int    `json:"dayNumber"`
	FocusTopic               string `json:"focusTopic"`
	ActionTask               string `json:"actionTask"`
	SuggestedDurationMinutes int    `json:"suggestedDurationMinutes"`
}

// GeneratePlan 按每日时长把 20 小时切成若干天，最后一天截断到恰好凑满。
// 纯函数，相同输入总得到相同结果。
func GeneratePlan(skillName string, dailyMinutes int) ([]PlanDraft, error) {
	if dailyMinutes <= 0 {
		return nil, fmt.Errorf("daily minutes must be positive, got %d: %w", dailyMinutes, util.ErrInvalidInput)
	}

	total := model.TargetMinutes
	drafts := make([]PlanDraft, 0, (total+dailyMinutes-1)/dailyMinutes)

	accumulated := 0
	for day := 1; accumulated < total; day++ {
		duration := min(dailyMinutes, total-accumulated)
		topic, task := phaseFor(skillName, accumulated, total)

		drafts = append(drafts, PlanDraft{
			DayNumber:                day,
			FocusTopic:               topic,
			ActionTask:               task,
			SuggestedDurationMinutes: duration,
		})
		accumulated += duration
	}

	return drafts, nil
}

// phaseFor 按已累计分钟数决定阶段
func phaseFor(skillName string, accumulated, total int) (string, string) {
	switch {
	case accumulated*5 < total:
		return PhaseDeconstruction, fmt.Sprintf(
			"Identify core components of %s. Research top resources. Deconstruct complex parts into smaller tasks.", skillName)
	case accumulated*2 < total:
		return PhaseSelfCorrection,
			"Practice core mechanisms. Focus on 'getting it right'. Identify mistakes immediately and correct them."
	default:
		return PhaseFocusedPractice, fmt.Sprintf(
			"Deep work session on %s. Remove all distractions. Push past the frustration barrier.", skillName)
	}
}

// SchedulePlan 第 N 天排在 start 之后 N-1 天
func SchedulePlan(drafts []PlanDraft, start time.Time) []model.DailyPlan {
	y, m, d := start.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	plans := make([]model.DailyPlan, 0, len(drafts))
	for _, draft := range drafts {
		date := datatypes.Date(first.AddDate(0, 0, draft.DayNumber-1))
		plans = append(plans, model.DailyPlan{
			DayNumber:                draft.DayNumber,
			FocusTopic:               draft.FocusTopic,
			ActionTask:               draft.ActionTask,
			SuggestedDurationMinutes: draft.SuggestedDurationMinutes,
			ScheduledDate:            &date,
		})
	}
	return plans
}
