package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/gateway/gatewaytest"
)

var (
	happy   = emotion.Definition{ID: "happy", Name: "Happy", ColorCode: "#FFD166", Mode: emotion.ModeMandatory}
	anxious = emotion.Definition{ID: "anxious", Name: "Anxious", ColorCode: "#9B5DE5", Mode: emotion.ModeOptional}
)

func newTestService(t *testing.T) (*Service, *gatewaytest.Fake) {
	t.Helper()
	f := gatewaytest.New()
	f.Mandatory = []emotion.Definition{happy}
	f.Optional = []emotion.Definition{anxious}
	f.Categories = []emotion.Category{{ID: "c1", Name: "work"}}
	f.SetHistory(emotion.RawEntry{ID: "r1", Date: "2024-03-04T08:00:00.000Z", SentimentState: happy})

	a, err := app.NewService(app.Options{
		Gateway: f,
		Clock: func() time.Time {
			return time.Date(2024, time.March, 6, 12, 0, 0, 0, time.Local)
		},
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return NewService(a), f
}

func TestServiceWeek(t *testing.T) {
	svc, _ := newTestService(t)

	week, err := svc.Week(context.Background())
	if err != nil {
		t.Fatalf("Week: %v", err)
	}
	if !week.Fresh {
		t.Fatalf("expected a fresh week")
	}
	if len(week.Days) != 3 {
		t.Fatalf("expected Monday through Wednesday, got %d days", len(week.Days))
	}
	if week.Days[0].ColorCode != "#FFD166" {
		t.Fatalf("Monday color = %q", week.Days[0].ColorCode)
	}
	if week.Today != nil {
		t.Fatalf("expected no entry for today, got %+v", week.Today)
	}
}

func TestServiceRecordToday(t *testing.T) {
	ctx := context.Background()
	svc, f := newTestService(t)

	entry, err := svc.Record(ctx, RecordOptions{EmotionID: "happy", Note: "sunny", Categories: "work"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if entry.Date.String() != "2024-03-06" {
		t.Fatalf("recorded on %s", entry.Date)
	}
	if len(entry.Categories) != 1 || entry.Categories[0].ID != "c1" {
		t.Fatalf("unexpected categories %+v", entry.Categories)
	}
	if len(f.Changes) != 1 || f.Changes[0].IsUpdate {
		t.Fatalf("expected one create, got %+v", f.Changes)
	}

	week, err := svc.Week(ctx)
	if err != nil {
		t.Fatalf("Week: %v", err)
	}
	if week.Today == nil || week.Today.Description != "sunny" {
		t.Fatalf("today not refreshed: %+v", week.Today)
	}
}

func TestServiceRecordSameDayTwice(t *testing.T) {
	ctx := context.Background()
	svc, f := newTestService(t)

	first, err := svc.Record(ctx, RecordOptions{EmotionID: "happy"})
	if err != nil {
		t.Fatalf("first Record: %v", err)
	}
	second, err := svc.Record(ctx, RecordOptions{EmotionID: "happy", Note: "still good"})
	if err != nil {
		t.Fatalf("second Record: %v", err)
	}
	if first.RecordID == "" || second.RecordID != first.RecordID {
		t.Fatalf("expected the same record id, got %q then %q", first.RecordID, second.RecordID)
	}
	if len(f.Changes) != 2 || !f.Changes[1].IsUpdate {
		t.Fatalf("expected create then update, got %+v", f.Changes)
	}
	if f.Changes[1].Request.RecordID != first.RecordID {
		t.Fatalf("update sent record id %q", f.Changes[1].Request.RecordID)
	}
}

func TestServiceRecordRejectsInactiveEmotion(t *testing.T) {
	svc, f := newTestService(t)

	_, err := svc.Record(context.Background(), RecordOptions{EmotionID: "anxious"})
	if err == nil {
		t.Fatalf("expected an error recording an unselected optional emotion")
	}
	if len(f.Changes) != 0 {
		t.Fatalf("gateway should not be called")
	}
}

func TestServiceRecordInvalidDate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Record(context.Background(), RecordOptions{EmotionID: "happy", On: "soon"})
	if err == nil || !strings.Contains(err.Error(), "invalid on value") {
		t.Fatalf("expected invalid on value error, got %v", err)
	}
}

func TestServiceSelectDeselect(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	sel, err := svc.Select(ctx, "anxious")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel.DeletionID == "" {
		t.Fatalf("expected a deletion token")
	}
	active, err := svc.Emotions(ctx, false)
	if err != nil {
		t.Fatalf("Emotions: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active emotions, got %d", len(active))
	}

	if err := svc.Deselect(ctx, "anxious"); err != nil {
		t.Fatalf("Deselect: %v", err)
	}
	active, _ = svc.Emotions(ctx, false)
	if len(active) != 1 {
		t.Fatalf("expected 1 active emotion, got %d", len(active))
	}
	if err := svc.Deselect(ctx, "anxious"); err == nil {
		t.Fatalf("expected deselecting twice to fail")
	}
}

func TestServiceCalendarAndDay(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	entries, err := svc.Calendar(ctx, "2024-03-05")
	if err != nil {
		t.Fatalf("Calendar: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries after the 5th, got %d", len(entries))
	}

	e, err := svc.Day(ctx, "2024-03-04")
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if e.RecordID != "r1" {
		t.Fatalf("unexpected record %q", e.RecordID)
	}
	if _, err := svc.Day(ctx, "2024-03-01"); err == nil {
		t.Fatalf("expected an error for an empty day")
	}
}

func TestServiceReport(t *testing.T) {
	svc, _ := newTestService(t)

	rep, err := svc.Report(context.Background(), "2024-03-01")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if rep.Total != 1 || len(rep.Sections) != 1 {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestServiceWithoutApp(t *testing.T) {
	var svc *Service
	if _, err := svc.Week(context.Background()); err == nil {
		t.Fatalf("expected an error without a mood service")
	}
}

func TestRunnerRequiresApp(t *testing.T) {
	if err := (Runner{}).Do(context.Background()); err == nil {
		t.Fatalf("expected an error without a mood service")
	}
}
