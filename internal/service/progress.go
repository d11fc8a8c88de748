package service

import (
	"first20_backend/internal/model"
	"math"
)

type Progress struct {
	TotalMinutes     int     `json:"totalMinutes"`
	RemainingMinutes int     `json:"remainingMinutes"`
	HoursDone        float64 `json:"hoursDone"`
	Percentage       float64 `json:"percentage"`
	CurrentDay       int     `json:"currentDay"`
}

// CalculateProgress 由累计分钟数推导进度。
// CurrentDay 按每 dailyMinutes 分钟算一天估算，截断的最后一天或平移过的日程下
// 可能与实际计划日不完全对应。
func CalculateProgress(totalMinutes, dailyMinutes int) Progress {
	if totalMinutes < 0 {
		totalMinutes = 0
	}

	percentage := math.Round(float64(totalMinutes)*1000/model.TargetMinutes) / 10
	percentage = math.Min(percentage, 100)

	currentDay := 1
	if dailyMinutes > 0 {
		currentDay = totalMinutes/dailyMinutes + 1
	}

	return Progress{
		TotalMinutes:     totalMinutes,
		RemainingMinutes: max(model.TargetMinutes-totalMinutes, 0),
		HoursDone:        math.Round(float64(totalMinutes)*100/60) / 100,
		Percentage:       percentage,
		CurrentDay:       currentDay,
	}
}
