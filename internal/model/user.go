package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Email                  string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Username               string     `gorm:"size:100;not null" json:"username"`
	Password               string     `gorm:"size:100;not null" json:"-"`
	StreakFreezesAvailable int        `gorm:"default:3" json:"streakFreezesAvailable"`
	LastLogin              *time.Time `json:"lastLogin,omitempty"`
}

func (User) TableName() string {
	return "users"
}
