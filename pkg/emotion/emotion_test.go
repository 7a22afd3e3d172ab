package emotion

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDateTruncatesTimestamps(t *testing.T) {
	tests := map[string]string{
		"2024-03-05":               "2024-03-05",
		"2024-03-05T23:59:59.000Z": "2024-03-05",
		" 2024-12-31 08:00 ":       "2024-12-31",
	}
	for in, want := range tests {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", in, err)
		}
		if got.String() != want {
			t.Fatalf("ParseDate(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, in := range []string{"", "2024-3-5", "yesterday"} {
		if _, err := ParseDate(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestNewDateReadsDayInOwnLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2024-03-05 23:30 UTC is already the 6th in Tokyo.
	at := time.Date(2024, 3, 5, 23, 30, 0, 0, time.UTC).In(tokyo)
	got := NewDate(at)
	if got.String() != "2024-03-06" {
		t.Fatalf("expected 2024-03-06, got %s", got)
	}
	if got.Location() != time.UTC || got.Hour() != 0 {
		t.Fatalf("expected midnight UTC, got %v", got.Time)
	}
}

func TestTodayUsesLocalCalendarDay(t *testing.T) {
	now := time.Date(2024, 3, 5, 23, 30, 0, 0, time.Local)
	if got := Today(now).String(); got != "2024-03-05" {
		t.Fatalf("expected 2024-03-05, got %s", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	var e Entry
	if err := json.Unmarshal([]byte(`{"date":"2024-03-04T10:00:00Z","categories":[]}`), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Date.String() != "2024-03-04" {
		t.Fatalf("unexpected date %s", e.Date)
	}
	b, err := json.Marshal(e.Date)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-03-04"` {
		t.Fatalf("unexpected encoding %s", b)
	}
}

func TestWeekdayLabel(t *testing.T) {
	if got := MustDate("2024-03-04").WeekdayLabel(); got != "Mon" {
		t.Fatalf("expected Mon, got %s", got)
	}
	if got := MustDate("2024-03-10").WeekdayLabel(); got != "Sun" {
		t.Fatalf("expected Sun, got %s", got)
	}
}

func TestFlattenClearsSelectionFlags(t *testing.T) {
	raw := RawEntry{
		ID:   "rec-1",
		Date: "2024-03-05T08:00:00.000Z",
		SentimentState: Definition{
			ID:         "calm",
			ColorCode:  "#222",
			Mode:       ModeOptional,
			Selected:   true,
			DeletionID: "stale",
		},
		Categories: []Category{{ID: "work", Name: "Work"}},
	}
	e, err := raw.Flatten()
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if e.Date.String() != "2024-03-05" || e.RecordID != "rec-1" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.Emotion.Selected || e.Emotion.DeletionID != "" {
		t.Fatalf("expected inert selection fields, got %+v", e.Emotion)
	}
	if e.ColorCode() != "#222" {
		t.Fatalf("expected color #222, got %s", e.ColorCode())
	}
}

func TestDefinitionActive(t *testing.T) {
	if !(Definition{Mode: ModeMandatory}).Active() {
		t.Fatal("mandatory entries are always active")
	}
	if (Definition{Mode: ModeOptional}).Active() {
		t.Fatal("unselected optional entry should be inactive")
	}
	if !(Definition{Mode: ModeOptional, Selected: true}).Active() {
		t.Fatal("selected optional entry should be active")
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(" Optional "); err != nil || m != ModeOptional {
		t.Fatalf("unexpected %v %v", m, err)
	}
	if _, err := ParseMode("sometimes"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
