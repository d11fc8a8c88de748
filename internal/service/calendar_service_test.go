package service

import (
	"context"
	"errors"
	"first20_backend/internal/model"
	"first20_backend/internal/util"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gorm.io/datatypes"
)

func dateOf(y int, m time.Month, d int) *datatypes.Date {
	v := datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &v
}

func TestRenderICS(t *testing.T) {
	plans := []model.DailyPlan{
		{BaseModel: model.BaseModel{ID: 7}, DayNumber: 1, ActionTask: "Learn chords", ScheduledDate: dateOf(2024, 3, 1)},
		{BaseModel: model.BaseModel{ID: 8}, DayNumber: 2, ScheduledDate: dateOf(2024, 3, 2)},
		{BaseModel: model.BaseModel{ID: 9}, DayNumber: 3, ActionTask: "Unscheduled"},
	}

	got := RenderICS("Guitar", plans)
	want := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//First20Hours//App//EN",
		"CALSCALE:GREGORIAN",
		"BEGIN:VEVENT",
		"UID:20hours-plan-7-20240301",
		"DTSTART;VALUE=DATE:20240301",
		"SUMMARY:Guitar - Day 1",
		"DESCRIPTION:Learn chords",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:20hours-plan-8-20240302",
		"DTSTART;VALUE=DATE:20240302",
		"SUMMARY:Guitar - Day 2",
		"DESCRIPTION:Practice Session",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\n")

	if got != want {
		t.Errorf("RenderICS mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderICSEscapesText(t *testing.T) {
	plans := []model.DailyPlan{
		{BaseModel: model.BaseModel{ID: 1}, DayNumber: 1, ActionTask: "a;b,c\\d", ScheduledDate: dateOf(2024, 3, 1)},
	}

	got := RenderICS("Chess\nBEGIN:VEVENT", plans)
	events := 0
	for _, line := range strings.Split(got, "\n") {
		if line == "BEGIN:VEVENT" {
			events++
		}
	}
	if events != 1 {
		t.Errorf("newline in name injected an event:\n%s", got)
	}
	if !strings.Contains(got, "SUMMARY:Chess\\nBEGIN:VEVENT - Day 1\n") {
		t.Errorf("summary not escaped:\n%s", got)
	}
	if !strings.Contains(got, `DESCRIPTION:a\;b\,c\\d`) {
		t.Errorf("description not escaped:\n%s", got)
	}
}

func TestRenderICSWithoutScheduledPlans(t *testing.T) {
	got := RenderICS("Chess", []model.DailyPlan{{DayNumber: 1}})
	if strings.Contains(got, "VEVENT") {
		t.Errorf("unexpected event in %q", got)
	}
	if !strings.HasSuffix(got, "END:VCALENDAR") {
		t.Errorf("calendar not closed: %q", got)
	}
}

func TestCalendarFilename(t *testing.T) {
	tests := map[string]string{
		"Guitar":              "guitar_schedule.ics",
		"Jazz Guitar":         "jazz_guitar_schedule.ics",
		"Public Speaking 101": "public_speaking_101_schedule.ics",
		"../../x":             "x_schedule.ics",
		`Guitar "Pro"; v2`:    "guitar_pro_v2_schedule.ics",
		"C:\\Windows\\x":      "cwindowsx_schedule.ics",
		"吉他":                  "skill_schedule.ics",
		"../..":               "skill_schedule.ics",
	}
	for name, want := range tests {
		if got := CalendarFilename(name); got != want {
			t.Errorf("CalendarFilename(%q)=%q, want %q", name, got, want)
		}
	}
}

func TestCalendarExportAndPublish(t *testing.T) {
	env := newTestEnv(t)
	env.fixClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	skill := env.createSkill(t, alice.ID, "Jazz Guitar", 600, model.SkillActive)
	ctx := context.Background()

	file, err := env.calendar.Export(ctx, alice.ID, skill.ID)
	if err != nil {
		t.Fatal(err)
	}
	if file.Filename != "jazz_guitar_schedule.ics" {
		t.Errorf("filename=%q", file.Filename)
	}
	if strings.Count(file.Content, "BEGIN:VEVENT") != 2 {
		t.Errorf("want 2 events, got:\n%s", file.Content)
	}
	if !strings.Contains(file.Content, "DTSTART;VALUE=DATE:20240302") {
		t.Errorf("day 2 date missing:\n%s", file.Content)
	}

	if _, err := env.calendar.Export(ctx, bob.ID, skill.ID); !errors.Is(err, util.ErrSkillNotFound) {
		t.Errorf("foreign export: err=%v", err)
	}

	url, err := env.calendar.Publish(ctx, alice.ID, skill.ID)
	if err != nil {
		t.Fatal(err)
	}
	key := filepathKey(alice.ID, skill.ID)
	if want := "http://files.test/uploads/" + key; url != want {
		t.Errorf("url=%q, want %q", url, want)
	}
	stored, err := os.ReadFile(filepath.Join(env.cfg.Storage.LocalPath, filepath.FromSlash(key)))
	if err != nil {
		t.Fatal(err)
	}
	if string(stored) != file.Content {
		t.Errorf("published content differs from export")
	}
}

func filepathKey(userID, skillID uint) string {
	return fmt.Sprintf("calendars/%d/%d/jazz_guitar_schedule.ics", userID, skillID)
}

func TestCalendarPublishKeepsFilesUnderStorageRoot(t *testing.T) {
	env := newTestEnv(t)
	env.fixClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	alice := env.createUser(t, "alice")
	skill := env.createSkill(t, alice.ID, "../../../../escaped", 600, model.SkillActive)

	url, err := env.calendar.Publish(context.Background(), alice.ID, skill.ID)
	if err != nil {
		t.Fatal(err)
	}
	key := fmt.Sprintf("calendars/%d/%d/escaped_schedule.ics", alice.ID, skill.ID)
	if want := "http://files.test/uploads/" + key; url != want {
		t.Errorf("url=%q, want %q", url, want)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Storage.LocalPath, filepath.FromSlash(key))); err != nil {
		t.Errorf("published file missing: %v", err)
	}

	outside := filepath.Join(env.cfg.Storage.LocalPath, "calendars", "1", "1", "../../../../escaped_schedule.ics")
	if _, err := os.Stat(outside); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file written outside storage root: %s (err=%v)", outside, err)
	}
}
