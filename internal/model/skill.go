package model

import "time"

// TargetMinutes 每项技能的练习目标：20 小时
const TargetMinutes = 20 * 60

type SkillStatus string

const (
	SkillActive    SkillStatus = "active"
	SkillCompleted SkillStatus = "completed"
	SkillFuture    SkillStatus = "future"
)

func (s SkillStatus) Valid() bool {
	switch s {
	case SkillActive, SkillCompleted, SkillFuture:
		return true
	}
	return false
}

// Skill 用户的一个 20 小时学习目标
// swagger:model Skill
type Skill struct {
	BaseModel
	UserID           uint        `gorm:"index;not null" json:"userId"`
	Name             string      `gorm:"size:255;not null;index" json:"name"`
	TargetDefinition string      `gorm:"type:text" json:"targetDefinition"`
	DailyMinutes     int         `gorm:"not null" json:"dailyMinutes"`
	Status           SkillStatus `gorm:"size:20;not null;default:'active';index" json:"status"`
	CompletedAt      *time.Time  `json:"completedAt"`

	Plans []DailyPlan `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Skill) TableName() string {
	return "skills"
}
