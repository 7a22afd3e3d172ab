package app

import (
	"sort"

	"tableflip.dev/moodlog/pkg/emotion"
)

// ReportSection groups the days recorded with one emotion.
type ReportSection struct {
	Emotion emotion.Definition `json:"emotion" yaml:"emotion"`
	Days    []emotion.Date     `json:"days" yaml:"days"`
}

// ReportResult summarizes the cached calendar between two days, inclusive.
type ReportResult struct {
	Since    emotion.Date    `json:"since" yaml:"since"`
	Until    emotion.Date    `json:"until" yaml:"until"`
	Sections []ReportSection `json:"sections" yaml:"sections"`
	Total    int             `json:"total" yaml:"total"`
}

// Report groups cached entries between since and until by emotion, most
// frequent first. It reads the cache only; fetch history beforehand.
func (s *Service) Report(since, until emotion.Date) (ReportResult, error) {
	if until.Before(since) {
		since, until = until, since
	}
	entries, ok := s.calendar.Entries()
	if !ok {
		return ReportResult{Since: since, Until: until}, ErrNoData
	}

	grouped := make(map[string]*ReportSection)
	total := 0
	for _, e := range entries {
		if e.Date.Before(since) || until.Before(e.Date) {
			continue
		}
		key := e.Emotion.ID
		sec, ok := grouped[key]
		if !ok {
			sec = &ReportSection{Emotion: e.Emotion}
			grouped[key] = sec
		}
		sec.Days = append(sec.Days, e.Date)
		total++
	}

	sections := make([]ReportSection, 0, len(grouped))
	for _, sec := range grouped {
		sections = append(sections, *sec)
	}
	sort.Slice(sections, func(i, j int) bool {
		if len(sections[i].Days) != len(sections[j].Days) {
			return len(sections[i].Days) > len(sections[j].Days)
		}
		return sections[i].Emotion.Name < sections[j].Emotion.Name
	})

	return ReportResult{
		Since:    since,
		Until:    until,
		Sections: sections,
		Total:    total,
	}, nil
}
