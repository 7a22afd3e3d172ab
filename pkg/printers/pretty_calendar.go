package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/moodlog/pkg/emotion"
)

const width = len("11  12  13  14  15  16  17 ") // an example week

// Month prints a Monday-first month grid with each recorded day painted in
// its mood color. today is underlined when it falls in the month.
func (pp *PrettyPrint) Month(then, today emotion.Date, entries []emotion.Entry) {
	first := FirstOfMonth(then)
	colors := make(map[int]string, len(entries))
	for _, e := range entries {
		if e.Date.SameMonth(first) {
			colors[e.Date.Day()] = e.ColorCode()
		}
	}

	tf := color.New(color.FgWhite, color.Italic)
	m := fmt.Sprintf("%s %d", first.Month(), first.Year())
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)

	hdr := color.New(color.Faint)
	_, _ = hdr.Fprintln(pp.out(), "Mo  Tu  We  Th  Fr  Sa  Su")

	// Pad out the start of the month.
	offset := MondayOffset(first.Weekday())
	_, _ = fmt.Fprint(pp.out(), strings.Repeat("    ", offset))

	plain := color.New(color.Faint, color.FgWhite)
	now := color.New(color.Bold, color.Underline)
	col := offset
	for day := 1; day <= DaysIn(first); day++ {
		label := fmt.Sprintf("%2d", day)
		switch code, ok := colors[day]; {
		case ok:
			_, _ = fmt.Fprint(pp.out(), pp.swatch(label, code))
		case today.SameMonth(first) && today.Day() == day:
			_, _ = now.Fprint(pp.out(), label)
		default:
			_, _ = plain.Fprint(pp.out(), label)
		}

		col++
		if col == 7 {
			col = 0
			_, _ = fmt.Fprint(pp.out(), "\n")
		} else {
			_, _ = fmt.Fprint(pp.out(), "  ")
		}
	}
	if col != 0 {
		_, _ = fmt.Fprint(pp.out(), "\n")
	}
	_, _ = fmt.Fprint(pp.out(), "\n")
}

// Months prints every month from since through until.
func (pp *PrettyPrint) Months(since, until, today emotion.Date, entries []emotion.Entry) {
	for m := FirstOfMonth(since); !FirstOfMonth(until).Before(m); m = NextMonth(m) {
		pp.Month(m, today, entries)
	}
}

func FirstOfMonth(d emotion.Date) emotion.Date {
	return emotion.NewDate(time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC))
}

func NextMonth(d emotion.Date) emotion.Date {
	return emotion.NewDate(time.Date(d.Year(), d.Month()+1, 1, 0, 0, 0, 0, time.UTC))
}

func DaysIn(d emotion.Date) int {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MondayOffset is the column of w in a Monday-first week.
func MondayOffset(w time.Weekday) int {
	return (int(w) + 6) % 7
}
