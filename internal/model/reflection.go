package model

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Reflection 练习后的反思
// swagger:model
type Reflection struct {
	BaseModel
	SessionID   uint       `gorm:"index;not null;comment:练习记录ID" json:"sessionId"`
	Content     string     `gorm:"type:text" json:"content"`
	Difficulty  Difficulty `gorm:"size:20" json:"difficulty"`
	KeyTakeaway string     `gorm:"size:500" json:"keyTakeaway"`
}

func (Reflection) TableName() string {
	return "reflections"
}
