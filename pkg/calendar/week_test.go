package calendar

import (
	"testing"

	"tableflip.dev/moodlog/pkg/emotion"
)

func TestCurrentWeekMondayIsSingleDay(t *testing.T) {
	strip := CurrentWeek(emotion.MustDate("2024-03-04"), New(), "")
	if len(strip) != 1 {
		t.Fatalf("expected 1 day, got %d", len(strip))
	}
	if strip[0].Label != "Mon" {
		t.Fatalf("expected Mon, got %s", strip[0].Label)
	}
	if strip[0].ColorCode != NeutralColor {
		t.Fatalf("expected neutral color, got %s", strip[0].ColorCode)
	}
}

func TestCurrentWeekSundayIsFullWeek(t *testing.T) {
	strip := CurrentWeek(emotion.MustDate("2024-03-10"), New(), "")
	want := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if len(strip) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(strip))
	}
	for i, label := range want {
		if strip[i].Label != label {
			t.Fatalf("day %d: expected %s, got %s", i, label, strip[i].Label)
		}
	}
	if strip[0].Date.String() != "2024-03-04" || strip[6].Date.String() != "2024-03-10" {
		t.Fatalf("unexpected span %s..%s", strip[0].Date, strip[6].Date)
	}
}

func TestCurrentWeekScenario(t *testing.T) {
	c := New()
	c.Merge([]emotion.Entry{day("2024-03-04", "#111"), day("2024-03-05", "#222")})

	strip := CurrentWeek(emotion.MustDate("2024-03-05"), c, NeutralColor)
	if len(strip) != 2 {
		t.Fatalf("expected 2 days, got %d", len(strip))
	}
	if strip[0].Label != "Mon" || strip[0].ColorCode != "#111" {
		t.Fatalf("unexpected first cell %+v", strip[0])
	}
	if strip[1].Label != "Tue" || strip[1].ColorCode != "#222" {
		t.Fatalf("unexpected second cell %+v", strip[1])
	}
}

func TestCurrentWeekMissingDaysUseNeutralColor(t *testing.T) {
	c := New()
	c.Merge([]emotion.Entry{day("2024-03-06", "#333"), day("2024-03-01", "#999")})
	strip := CurrentWeek(emotion.MustDate("2024-03-07"), c, "#eee")
	want := []string{"#eee", "#eee", "#333", "#eee"}
	if len(strip) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(strip))
	}
	for i, color := range want {
		if strip[i].ColorCode != color {
			t.Fatalf("day %d: expected %s, got %s", i, color, strip[i].ColorCode)
		}
	}
}

func TestCurrentWeekEveryWeekday(t *testing.T) {
	start := emotion.MustDate("2023-12-25") // a Monday
	for i := 0; i < 400; i++ {
		today := start.AddDays(i)
		strip := CurrentWeek(today, nil, "")
		if len(strip) != i%7+1 {
			t.Fatalf("%s: expected %d days, got %d", today, i%7+1, len(strip))
		}
		if strip[0].Label != "Mon" {
			t.Fatalf("%s: strip must start on Monday, got %s", today, strip[0].Label)
		}
		last := strip[len(strip)-1]
		if !last.Date.Equal(today) {
			t.Fatalf("%s: strip must end today, got %s", today, last.Date)
		}
		for j := 1; j < len(strip); j++ {
			if !strip[j-1].Date.Before(strip[j].Date) {
				t.Fatalf("%s: strip not ascending at %d", today, j)
			}
		}
	}
}

func TestWeekStartAcrossMonthBoundary(t *testing.T) {
	if got := WeekStart(emotion.MustDate("2024-03-02")).String(); got != "2024-02-26" {
		t.Fatalf("expected 2024-02-26, got %s", got)
	}
}
