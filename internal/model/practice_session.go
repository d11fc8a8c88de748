package model

import "time"

// PracticeSession 一次练习记录，创建后不可修改
// swagger:model PracticeSession
type PracticeSession struct {
	BaseModel
	SkillID         uint      `gorm:"index;not null" json:"skillId"`
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`
	Date            time.Time `gorm:"index;not null" json:"date"`

	Reflections []Reflection `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"reflections,omitempty"`
}

func (PracticeSession) TableName() string {
	return "sessions"
}
