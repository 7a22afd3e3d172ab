package options

import (
	"strings"
	"testing"
)

func TestWrapKeepsParagraphs(t *testing.T) {
	text := "one two three\nfour five six\n\nseven eight"
	got := Wrap(text, 9)
	want := "one two\nthree\nfour five\nsix\n\nseven\neight"
	if got != want {
		t.Fatalf("Wrap() = %q, want %q", got, want)
	}
}

func TestWrap80ShortTextUnchanged(t *testing.T) {
	in := "Track how each day felt."
	if got := Wrap80(in); got != in {
		t.Fatalf("Wrap80() = %q", got)
	}
	long := strings.Repeat("word ", 40)
	for _, line := range strings.Split(Wrap80(long), "\n") {
		if len(line) > 80 {
			t.Fatalf("line longer than 80: %q", line)
		}
	}
}
