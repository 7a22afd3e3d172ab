package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/moodlog/pkg/emotion"
)

// ErrUnknownCategory is returned by Record for a category key that matches
// neither an id nor a name.
var ErrUnknownCategory = errors.New("app: unknown category")

// EnsureHistory fetches the full history when the cache is still absent. An
// empty answer is not an error.
func (s *Service) EnsureHistory(ctx context.Context) error {
	if s.calendar.Populated() {
		return nil
	}
	if _, err := s.FetchHistory(ctx, nil); err != nil && !errors.Is(err, ErrNoData) {
		return err
	}
	return nil
}

// EnsureEmotions loads the catalog unless it is already present.
func (s *Service) EnsureEmotions(ctx context.Context) error {
	if _, ok := s.catalog.All(); ok {
		return nil
	}
	return s.LoadEmotions(ctx)
}

// EnsureCategories fetches categories unless they are already present.
func (s *Service) EnsureCategories(ctx context.Context) error {
	if _, ok := s.Categories(); ok {
		return nil
	}
	_, err := s.FetchCategories(ctx)
	return err
}

// Record drafts and submits the mood for day in one step. Category keys are
// resolved by id or name. A day that already has a cached entry is updated,
// otherwise a new record is created.
func (s *Service) Record(ctx context.Context, day emotion.Date, emotionID, note string, categoryKeys []string) (emotion.Entry, error) {
	if err := s.EnsureEmotions(ctx); err != nil {
		return emotion.Entry{}, err
	}
	if err := s.EnsureHistory(ctx); err != nil {
		s.log.Debugw("recording without history", "error", err)
	}

	var cats []emotion.Category
	if len(categoryKeys) > 0 {
		if err := s.EnsureCategories(ctx); err != nil {
			return emotion.Entry{}, err
		}
		for _, key := range categoryKeys {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			c, ok := s.Category(key)
			if !ok {
				return emotion.Entry{}, fmt.Errorf("%w: %s", ErrUnknownCategory, key)
			}
			cats = append(cats, c)
		}
	}

	current, req, err := s.Draft(day, emotionID, note, cats)
	if err != nil {
		return emotion.Entry{}, err
	}
	if err := s.RecordEmotionState(ctx, current.RecordID != "", current, req); err != nil {
		return emotion.Entry{}, err
	}
	e, _ := s.calendar.Get(day)
	return e, nil
}
