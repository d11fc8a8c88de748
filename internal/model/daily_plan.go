package model

import (
	"time"

	"gorm.io/datatypes"
)

// DailyPlan 练习计划中的一天
// swagger:model DailyPlan
type DailyPlan struct {
	BaseModel
	SkillID                  uint            `gorm:"not null;uniqueIndex:idx_plan_skill_day" json:"skillId"`
	DayNumber                int             `gorm:"not null;uniqueIndex:idx_plan_skill_day" json:"dayNumber"`
	FocusTopic               string          `gorm:"size:100;not null" json:"focusTopic"`
	ActionTask               string          `gorm:"type:text" json:"actionTask"`
	SuggestedDurationMinutes int             `gorm:"not null" json:"suggestedDurationMinutes"`
	ScheduledDate            *datatypes.Date `gorm:"index" json:"scheduledDate"`

	Resources []PlanResource `gorm:"foreignKey:DailyPlanID;constraint:OnDelete:CASCADE" json:"resources"`
}

func (DailyPlan) TableName() string {
	return "daily_plans"
}

// PlanResource 计划日附带的学习资料，按插入顺序排列
type PlanResource struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DailyPlanID uint      `gorm:"index;not null" json:"dailyPlanId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	URL         string    `gorm:"size:1024;not null" json:"url"`
	Type        string    `gorm:"size:50;not null;default:'link'" json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (PlanResource) TableName() string {
	return "plan_resources"
}
