package model

import "time"

type BadgeCriteria string

const (
	CriteriaSessionCount BadgeCriteria = "session_count"
	CriteriaMinuteTotal  BadgeCriteria = "minute_total"
)

// Badge 全局徽章目录
// swagger:model Badge
type Badge struct {
	ID             uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string        `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description    string        `gorm:"size:255" json:"description"`
	IconName       string        `gorm:"size:50" json:"iconName"`
	CriteriaType   BadgeCriteria `gorm:"size:30;not null" json:"criteriaType"`
	Threshold      int           `gorm:"not null" json:"threshold"`
	CatalogVersion int           `gorm:"not null;default:1" json:"catalogVersion"`
	CreatedAt      time.Time     `json:"createdAt"`
}

func (Badge) TableName() string {
	return "badges"
}

// UserBadge 用户获得的徽章，(user_id, badge_id) 唯一
// swagger:model UserBadge
type UserBadge struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"userId"`
	BadgeID  uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"badgeId"`
	EarnedAt time.Time `gorm:"not null" json:"earnedAt"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
