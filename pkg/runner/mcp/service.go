// Package mcp provides the Model Context Protocol server integration for moodlog.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/emotion"
)

// Service adapts the mood service to the shapes returned by MCP tools and
// resources. Data is fetched lazily on first use.
type Service struct {
	App *app.Service
}

// RecordOptions captures the parameters of a record_emotion call.
type RecordOptions struct {
	EmotionID  string
	On         string
	Note       string
	Categories string
}

// WeekDTO is the current week strip together with today's entry.
type WeekDTO struct {
	Days  []emotion.WeekDay `json:"days"`
	Today *emotion.Entry    `json:"today,omitempty"`
	Fresh bool              `json:"fresh"`
}

// NewService wraps a mood service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) ready() error {
	if s == nil || s.App == nil {
		return errors.New("mood service is not configured")
	}
	return nil
}

// Week returns the Monday through today strip.
func (s *Service) Week(ctx context.Context) (WeekDTO, error) {
	if err := s.ready(); err != nil {
		return WeekDTO{}, err
	}
	if err := s.App.EnsureHistory(ctx); err != nil {
		return WeekDTO{}, err
	}
	days, fresh := s.App.CurrentWeek()
	dto := WeekDTO{Days: days, Fresh: fresh}
	if e, ok := s.App.DailySelection(); ok {
		dto.Today = &e
	}
	return dto, nil
}

// Calendar returns cached entries on or after since. An empty since returns
// everything.
func (s *Service) Calendar(ctx context.Context, since string) ([]emotion.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var from *emotion.Date
	if strings.TrimSpace(since) != "" {
		d, err := emotion.ParseDate(since)
		if err != nil {
			return nil, fmt.Errorf("invalid since value: %w", err)
		}
		from = &d
	}
	if err := s.App.EnsureHistory(ctx); err != nil {
		return nil, err
	}
	entries, _ := s.App.Calendar()
	out := make([]emotion.Entry, 0, len(entries))
	for _, e := range entries {
		if from != nil && e.Date.Before(*from) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Emotions returns the active catalog, or the whole catalog when all is set.
func (s *Service) Emotions(ctx context.Context, all bool) ([]emotion.Definition, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := s.App.EnsureEmotions(ctx); err != nil {
		return nil, err
	}
	if all {
		defs, _ := s.App.AllEmotions()
		return defs, nil
	}
	defs, _ := s.App.ActiveEmotions()
	return defs, nil
}

// Select opts into an optional emotion.
func (s *Service) Select(ctx context.Context, id string) (emotion.Selection, error) {
	if err := s.ready(); err != nil {
		return emotion.Selection{}, err
	}
	if err := s.App.EnsureEmotions(ctx); err != nil {
		return emotion.Selection{}, err
	}
	return s.App.AddOptionalEmotion(ctx, id)
}

// Deselect opts out of an optional emotion using the token held by the
// catalog.
func (s *Service) Deselect(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.App.EnsureEmotions(ctx); err != nil {
		return err
	}
	def, ok := s.App.Emotion(id)
	if !ok {
		return fmt.Errorf("unknown emotion %q", id)
	}
	return s.App.RemoveOptionalEmotion(ctx, def.DeletionID, id)
}

// Record stores the mood for a day, today by default.
func (s *Service) Record(ctx context.Context, opts RecordOptions) (emotion.Entry, error) {
	if err := s.ready(); err != nil {
		return emotion.Entry{}, err
	}
	day := s.App.Today()
	if strings.TrimSpace(opts.On) != "" {
		d, err := emotion.ParseDate(opts.On)
		if err != nil {
			return emotion.Entry{}, fmt.Errorf("invalid on value: %w", err)
		}
		day = d
	}
	var keys []string
	if opts.Categories != "" {
		keys = strings.Split(opts.Categories, ",")
	}
	return s.App.Record(ctx, day, opts.EmotionID, opts.Note, keys)
}

// Categories fetches the category list.
func (s *Service) Categories(ctx context.Context) ([]emotion.Category, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.App.FetchCategories(ctx)
}

// Monthly fetches the monthly summary.
func (s *Service) Monthly(ctx context.Context) ([]emotion.MonthlyPoint, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.App.FetchMonthly(ctx)
}

// Report groups the cached history since a day through today.
func (s *Service) Report(ctx context.Context, since string) (app.ReportResult, error) {
	if err := s.ready(); err != nil {
		return app.ReportResult{}, err
	}
	today := s.App.Today()
	from := today.AddDays(-30)
	if strings.TrimSpace(since) != "" {
		d, err := emotion.ParseDate(since)
		if err != nil {
			return app.ReportResult{}, fmt.Errorf("invalid since value: %w", err)
		}
		from = d
	}
	if err := s.App.EnsureHistory(ctx); err != nil {
		return app.ReportResult{}, err
	}
	rep, err := s.App.Report(from, today)
	if errors.Is(err, app.ErrNoData) {
		return rep, nil
	}
	return rep, err
}

// Day returns the entry recorded for a single day.
func (s *Service) Day(ctx context.Context, raw string) (emotion.Entry, error) {
	if err := s.ready(); err != nil {
		return emotion.Entry{}, err
	}
	day, err := emotion.ParseDate(raw)
	if err != nil {
		return emotion.Entry{}, fmt.Errorf("invalid date: %w", err)
	}
	if err := s.App.EnsureHistory(ctx); err != nil {
		return emotion.Entry{}, err
	}
	e, ok := s.App.Entry(day)
	if !ok {
		return emotion.Entry{}, fmt.Errorf("nothing recorded on %s", day)
	}
	return e, nil
}
