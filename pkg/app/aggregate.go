package app

import (
	"context"
	"fmt"

	"tableflip.dev/moodlog/pkg/emotion"
)

// FetchCategories replaces the cached category list. Any failure discards
// the previous list.
func (s *Service) FetchCategories(ctx context.Context) ([]emotion.Category, error) {
	cats, err := s.gw.FetchCategories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.categories, s.haveCategories = nil, false
		s.log.Warnw("categories unavailable", "error", err)
		return nil, fmt.Errorf("app: fetch categories: %w", err)
	}
	s.categories, s.haveCategories = cats, true
	return append([]emotion.Category(nil), cats...), nil
}

// Categories returns the last fetched categories.
func (s *Service) Categories() ([]emotion.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.haveCategories {
		return nil, false
	}
	return append([]emotion.Category(nil), s.categories...), true
}

// Category looks up a fetched category by id or, failing that, by name.
func (s *Service) Category(key string) (emotion.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == key {
			return c, true
		}
	}
	for _, c := range s.categories {
		if c.Name == key {
			return c, true
		}
	}
	return emotion.Category{}, false
}

// FetchMonthly replaces the cached monthly summary. Any failure discards the
// previous summary.
func (s *Service) FetchMonthly(ctx context.Context) ([]emotion.MonthlyPoint, error) {
	points, err := s.gw.FetchMonthly(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.monthly, s.haveMonthly = nil, false
		s.log.Warnw("monthly summary unavailable", "error", err)
		return nil, fmt.Errorf("app: fetch monthly: %w", err)
	}
	s.monthly, s.haveMonthly = points, true
	return append([]emotion.MonthlyPoint(nil), points...), nil
}

// Monthly returns the last fetched monthly summary.
func (s *Service) Monthly() ([]emotion.MonthlyPoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.haveMonthly {
		return nil, false
	}
	return append([]emotion.MonthlyPoint(nil), s.monthly...), true
}
