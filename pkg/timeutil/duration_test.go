package timeutil

import (
	"testing"

	"tableflip.dev/moodlog/pkg/emotion"
)

func TestParseWindowDefault(t *testing.T) {
	days, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 28 {
		t.Fatalf("expected 28 days, got %d", days)
	}
	if label != "4w" {
		t.Fatalf("expected label 4w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	days, label, err := ParseWindow("1mo2w3d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 47 {
		t.Fatalf("expected 47 days, got %d", days)
	}
	if label != "6w5d" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3h", "0d", "2w!"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Fatalf("expected error for window %q", in)
		}
	}
}

func TestSinceIncludesToday(t *testing.T) {
	today := emotion.MustDate("2024-03-05")

	since, label, err := Since("1w", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if since.String() != "2024-02-28" {
		t.Fatalf("expected 2024-02-28, got %s", since)
	}
	if label != "1w" {
		t.Fatalf("unexpected label: %s", label)
	}

	since, _, err = Since("1d", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !since.Equal(today) {
		t.Fatalf("one day window should start today, got %s", since)
	}
}
