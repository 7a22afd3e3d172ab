package calendar

import (
	"tableflip.dev/moodlog/pkg/emotion"
)

// NeutralColor is shown for days without a recorded mood.
const NeutralColor = "#F0F0F0"

// Lookup resolves the entry recorded for a day.
type Lookup interface {
	Get(day emotion.Date) (emotion.Entry, bool)
}

// WeekStart returns the Monday on or before today.
func WeekStart(today emotion.Date) emotion.Date {
	offset := (int(today.Weekday()) + 6) % 7
	return today.AddDays(-offset)
}

// CurrentWeek builds the week strip: one cell per day from the most recent
// Monday through today inclusive, oldest first. Days missing from days get
// the neutral color. The strip never contains days after today.
func CurrentWeek(today emotion.Date, days Lookup, neutral string) []emotion.WeekDay {
	if neutral == "" {
		neutral = NeutralColor
	}
	start := WeekStart(today)
	strip := make([]emotion.WeekDay, 0, 7)
	for day := start; !today.Before(day); day = day.AddDays(1) {
		color := neutral
		if days != nil {
			if e, ok := days.Get(day); ok && e.ColorCode() != "" {
				color = e.ColorCode()
			}
		}
		strip = append(strip, emotion.WeekDay{
			Label:     day.WeekdayLabel(),
			Date:      day,
			ColorCode: color,
		})
	}
	return strip
}
