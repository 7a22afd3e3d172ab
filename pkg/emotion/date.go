package emotion

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LayoutISO is the wire and cache layout for calendar days.
const LayoutISO = "2006-01-02"

// Date is a calendar day with no time or zone component. The zero value is
// an unset date.
type Date struct {
	time.Time
}

// NewDate takes the calendar day of t as read in t's location and stores
// it as midnight UTC.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today returns the calendar day of now in local time.
func Today(now time.Time) Date {
	return NewDate(now.Local())
}

// ParseDate accepts "YYYY-MM-DD" or any longer server timestamp that starts
// with it, such as "2024-03-05T10:11:12.000Z". Only the first ten characters
// are significant.
func ParseDate(v string) (Date, error) {
	v = strings.TrimSpace(v)
	if len(v) < len(LayoutISO) {
		return Date{}, fmt.Errorf("emotion: invalid date %q", v)
	}
	t, err := time.Parse(LayoutISO, v[:len(LayoutISO)])
	if err != nil {
		return Date{}, fmt.Errorf("emotion: invalid date %q: %w", v, err)
	}
	return Date{Time: t}, nil
}

// MustDate parses v and panics on error. Intended for tests and fixtures.
func MustDate(v string) Date {
	d, err := ParseDate(v)
	if err != nil {
		panic(err)
	}
	return d
}

// AddDays returns the day n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// Equal reports whether both values name the same calendar day.
func (d Date) Equal(o Date) bool {
	return d.String() == o.String()
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

// WeekdayLabel is the three letter English weekday key, "Mon" through "Sun".
func (d Date) WeekdayLabel() string {
	return d.Weekday().String()[:3]
}

// SameMonth reports whether d falls in the same year and month as o.
func (d Date) SameMonth(o Date) bool {
	return d.Year() == o.Year() && d.Month() == o.Month()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(LayoutISO)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML renders the date in its wire form.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
