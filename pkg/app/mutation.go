package app

import (
	"context"
	"fmt"

	"tableflip.dev/moodlog/pkg/catalog"
	"tableflip.dev/moodlog/pkg/emotion"
)

// RecordEmotionState creates (or with isUpdate, updates) the mood for a day.
// Only after the gateway confirms the change is current patched with the
// request categories and the stored record id, then upserted into the cache.
// Selections pointing at the same day are refreshed. On failure nothing local
// changes.
func (s *Service) RecordEmotionState(ctx context.Context, isUpdate bool, current emotion.Entry, req emotion.ChangeRequest) error {
	row, err := s.gw.ChangeEmotionState(ctx, req, isUpdate)
	if err != nil {
		s.log.Warnw("emotion state change failed", "date", req.Date, "update", isUpdate, "error", err)
		return fmt.Errorf("app: record emotion state: %w", err)
	}

	patched := current.Clone()
	if patched.Date.IsZero() {
		patched.Date = req.Date
	}
	if row.ID != "" {
		patched.RecordID = row.ID
	}
	patched.Categories = append([]emotion.Category(nil), req.Categories...)

	s.calendar.Upsert(patched)
	s.metrics.SetCachedDays(s.calendar.Len())

	s.mu.Lock()
	if patched.Date.Equal(s.Today()) {
		s.daily = selection{set: true, entry: patched}
	}
	if s.selected.set && s.selected.entry.Date.Equal(patched.Date) {
		s.selected = selection{set: true, entry: patched}
	}
	s.mu.Unlock()
	return nil
}

// Draft builds the entry and change request for recording emotionID on day.
// When the day already has a cached entry its record id is reused, and the
// emotion is taken from the active catalog.
func (s *Service) Draft(day emotion.Date, emotionID, note string, categories []emotion.Category) (emotion.Entry, emotion.ChangeRequest, error) {
	def, err := s.activeEmotion(emotionID)
	if err != nil {
		return emotion.Entry{}, emotion.ChangeRequest{}, err
	}

	current := emotion.Entry{Date: day, Description: note, Emotion: def.Snapshot()}
	if cached, ok := s.calendar.Get(day); ok {
		current.RecordID = cached.RecordID
		current.Categories = cached.Categories
	}
	req := emotion.ChangeRequest{
		RecordID:    current.RecordID,
		EmotionID:   def.ID,
		Date:        day,
		Description: note,
		Categories:  append([]emotion.Category(nil), categories...),
	}
	return current, req, nil
}

func (s *Service) activeEmotion(id string) (emotion.Definition, error) {
	active, ok := s.catalog.Active()
	if !ok {
		return emotion.Definition{}, catalog.ErrUnavailable
	}
	for _, d := range active {
		if d.ID == id {
			return d, nil
		}
	}
	return emotion.Definition{}, fmt.Errorf("%w: %s is not active", catalog.ErrUnknownEmotion, id)
}
