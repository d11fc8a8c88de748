package service

import (
	"bytes"
	"context"
	"first20_backend/internal/model"
	"first20_backend/internal/repository"
	"first20_backend/internal/util"
	"first20_backend/pkg/logger"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	icsProductID       = "-//First20Hours//App//EN"
	calendarFileSuffix = "_schedule.ics"
)

type CalendarService struct {
	SkillRepo *repository.SkillRepository
	PlanRepo  *repository.PlanRepository
	Storage   *StorageService
}

func NewCalendarService(skillRepo *repository.SkillRepository, planRepo *repository.PlanRepository, storage *StorageService) *CalendarService {
	return &CalendarService{
		SkillRepo: skillRepo,
		PlanRepo:  planRepo,
		Storage:   storage,
	}
}

// CalendarFile 导出的日历文件
type CalendarFile struct {
	Filename string
	Content  string
}

// RenderICS 只为有排期日期的计划生成 VEVENT
func RenderICS(skillName string, plans []model.DailyPlan) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + icsProductID,
		"CALSCALE:GREGORIAN",
	}

	for _, plan := range plans {
		if plan.ScheduledDate == nil {
			continue
		}
		date := time.Time(*plan.ScheduledDate).Format(util.ICSDateFormat)
		description := plan.ActionTask
		if description == "" {
			description = "Practice Session"
		}
		lines = append(lines,
			"BEGIN:VEVENT",
			fmt.Sprintf("UID:20hours-plan-%d-%s", plan.ID, date),
			"DTSTART;VALUE=DATE:"+date,
			fmt.Sprintf("SUMMARY:%s - Day %d", icsText(skillName), plan.DayNumber),
			"DESCRIPTION:"+icsText(description),
			"END:VEVENT",
		)
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\n")
}

var icsTextEscaper = strings.NewReplacer(
	"\\", "\\\\",
	";", "\\;",
	",", "\\,",
	"\r\n", "\\n",
	"\n", "\\n",
	"\r", "\\n",
)

// icsText 按 RFC 5545 TEXT 规则转义
func icsText(v string) string {
	return icsTextEscaper.Replace(v)
}

// CalendarFilename 例如 "Jazz Guitar" -> "jazz_guitar_schedule.ics"
// 只保留 [a-z0-9_-]，其余字符丢弃，结果为空时用 "skill"
func CalendarFilename(skillName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(skillName) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	slug := strings.Trim(b.String(), "_-")
	if slug == "" {
		slug = "skill"
	}
	return slug + calendarFileSuffix
}

func (s *CalendarService) Export(ctx context.Context, userID, skillID uint) (*CalendarFile, error) {
	skill, err := s.SkillRepo.FindOwned(ctx, userID, skillID)
	if err != nil {
		return nil, err
	}
	plans, err := s.PlanRepo.ListBySkill(ctx, skill.ID)
	if err != nil {
		return nil, err
	}
	return &CalendarFile{
		Filename: CalendarFilename(skill.Name),
		Content:  RenderICS(skill.Name, plans),
	}, nil
}

// Publish 上传日历到对象存储，返回可订阅的地址
func (s *CalendarService) Publish(ctx context.Context, userID, skillID uint) (string, error) {
	file, err := s.Export(ctx, userID, skillID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("calendars/%d/%d/%s", userID, skillID, file.Filename)
	data := []byte(file.Content)
	publicURL, err := s.Storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), util.MimeCalendar)
	if err != nil {
		return "", fmt.Errorf("publish calendar: %w", err)
	}

	logger.Log.Info("Calendar published",
		zap.Uint("userID", userID),
		zap.Uint("skillID", skillID),
		zap.String("key", key),
	)
	return publicURL, nil
}
