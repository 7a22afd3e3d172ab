// Package emotion defines the mood catalog, calendar day records and the
// derived view values shared by the cache, the gateway and the printers.
package emotion

import (
	"fmt"
	"strings"
)

// Mode identifies whether a catalog emotion is always active.
type Mode string

const (
	// ModeMandatory entries are always part of the active catalog.
	ModeMandatory Mode = "mandatory"
	// ModeOptional entries are active only once the user opts in.
	ModeOptional Mode = "optional"
)

// ParseMode converts a string to a Mode or returns an error for unknown values.
func ParseMode(raw string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	switch m {
	case "":
		return ModeMandatory, nil
	case ModeMandatory, ModeOptional:
		return m, nil
	}
	return ModeMandatory, fmt.Errorf("emotion: unknown mode %q", raw)
}

// Definition is a catalog entry. Selected and DeletionID are only meaningful
// for optional entries inside the catalog; on a calendar entry snapshot they
// are inert.
type Definition struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	ColorCode   string `json:"color_code" yaml:"colorCode"`
	Mode        Mode   `json:"mode" yaml:"mode"`
	Selected    bool   `json:"isSelected" yaml:"selected"`
	DeletionID  string `json:"deletionId,omitempty" yaml:"deletionId,omitempty"`
}

// Optional reports whether the definition requires an explicit opt in.
func (d Definition) Optional() bool {
	return d.Mode == ModeOptional
}

// Active reports whether the definition belongs to the active catalog.
func (d Definition) Active() bool {
	if d.Optional() {
		return d.Selected
	}
	return true
}

// Snapshot returns a copy suitable for embedding in a calendar entry, with the
// catalog selection fields cleared.
func (d Definition) Snapshot() Definition {
	d.Selected = false
	d.DeletionID = ""
	return d
}

// Selection pairs an optional emotion with the server issued token required
// to remove it later.
type Selection struct {
	EmotionID  string `json:"emotionId" yaml:"emotionId"`
	DeletionID string `json:"deletionId" yaml:"deletionId"`
}

// Category tags a calendar entry.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Entry is the mood record for one calendar day.
type Entry struct {
	Date        Date       `json:"date" yaml:"date"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	RecordID    string     `json:"sentimentStateRecordId,omitempty" yaml:"recordId,omitempty"`
	Categories  []Category `json:"categories" yaml:"categories"`
	Emotion     Definition `json:"emotion" yaml:"emotion"`
}

// Clone returns a deep copy of e.
func (e Entry) Clone() Entry {
	if e.Categories != nil {
		e.Categories = append([]Category(nil), e.Categories...)
	}
	return e
}

// ColorCode is the color of the emotion recorded for the day.
func (e Entry) ColorCode() string {
	return e.Emotion.ColorCode
}

// RawEntry is a history row as the remote service returns it. Date may carry a
// full timestamp and SentimentState still holds catalog selection flags.
type RawEntry struct {
	ID             string     `json:"id"`
	Date           string     `json:"date"`
	Description    string     `json:"description,omitempty"`
	Categories     []Category `json:"categories"`
	SentimentState Definition `json:"sentimentState"`
}

// Flatten converts a history row into a calendar entry.
func (r RawEntry) Flatten() (Entry, error) {
	day, err := ParseDate(r.Date)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Date:        day,
		Description: r.Description,
		RecordID:    r.ID,
		Categories:  append([]Category(nil), r.Categories...),
		Emotion:     r.SentimentState.Snapshot(),
	}, nil
}

// WeekDay is one cell of the current week strip.
type WeekDay struct {
	Label     string `json:"day" yaml:"day"`
	Date      Date   `json:"date" yaml:"date"`
	ColorCode string `json:"colorCode" yaml:"colorCode"`
}

// MonthlyPoint is one summary point of the monthly mood graph.
type MonthlyPoint struct {
	Month     string `json:"month" yaml:"month"`
	EmotionID string `json:"emotionId" yaml:"emotionId"`
	Name      string `json:"name" yaml:"name"`
	ColorCode string `json:"color_code" yaml:"colorCode"`
	Count     int    `json:"count" yaml:"count"`
}

// ChangeRequest records or updates the mood for a day.
type ChangeRequest struct {
	RecordID    string     `json:"sentimentStateRecordId,omitempty"`
	EmotionID   string     `json:"sentimentStateId"`
	Date        Date       `json:"date"`
	Description string     `json:"description,omitempty"`
	Categories  []Category `json:"sentimentCategories"`
}
