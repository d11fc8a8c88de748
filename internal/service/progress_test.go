package service

import "testing"

func TestCalculateProgress(t *testing.T) {
	tests := []struct {
		name  string
		total int
		daily int
		want  Progress
	}{
		{"nothing yet", 0, 60, Progress{TotalMinutes: 0, RemainingMinutes: 1200, HoursDone: 0, Percentage: 0, CurrentDay: 1}},
		{"halfway", 600, 60, Progress{TotalMinutes: 600, RemainingMinutes: 600, HoursDone: 10, Percentage: 50, CurrentDay: 11}},
		{"done", 1200, 60, Progress{TotalMinutes: 1200, RemainingMinutes: 0, HoursDone: 20, Percentage: 100, CurrentDay: 21}},
		{"overshoot capped", 1500, 60, Progress{TotalMinutes: 1500, RemainingMinutes: 0, HoursDone: 25, Percentage: 100, CurrentDay: 26}},
		{"one minute", 1, 60, Progress{TotalMinutes: 1, RemainingMinutes: 1199, HoursDone: 0.02, Percentage: 0.1, CurrentDay: 1}},
		{"fractional hours", 100, 45, Progress{TotalMinutes: 100, RemainingMinutes: 1100, HoursDone: 1.67, Percentage: 8.3, CurrentDay: 3}},
		{"zero daily minutes", 300, 0, Progress{TotalMinutes: 300, RemainingMinutes: 900, HoursDone: 5, Percentage: 25, CurrentDay: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateProgress(tt.total, tt.daily)
			if got != tt.want {
				t.Errorf("CalculateProgress(%d, %d) = %+v, want %+v", tt.total, tt.daily, got, tt.want)
			}
		})
	}
}
