package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"tableflip.dev/moodlog/pkg/calendar"
	"tableflip.dev/moodlog/pkg/catalog"
	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/gateway"
	"tableflip.dev/moodlog/pkg/observability"
)

var (
	// ErrNoData is returned when the gateway answered but had nothing to apply.
	ErrNoData = errors.New("app: no data")
	// ErrNoGateway is returned by NewService without a gateway.
	ErrNoGateway = errors.New("app: no gateway configured")
)

// Options configures a Service.
type Options struct {
	Gateway gateway.Gateway
	// Clock returns the current time; defaults to time.Now.
	Clock func() time.Time
	// Neutral is the week strip color for days without an entry.
	Neutral string
	Log     *zap.SugaredLogger
	Metrics *observability.Metrics
}

// Service owns the calendar cache, the emotion catalog and the derived
// selections. It is safe for concurrent use; each gateway call is the only
// point where an operation waits.
type Service struct {
	gw      gateway.Gateway
	now     func() time.Time
	neutral string
	log     *zap.SugaredLogger
	metrics *observability.Metrics

	calendar *calendar.Cache
	catalog  *catalog.Reconciler
	history  singleflight.Group

	mu             sync.RWMutex
	daily          selection
	selected       selection
	categories     []emotion.Category
	haveCategories bool
	monthly        []emotion.MonthlyPoint
	haveMonthly    bool
}

// selection remembers the last entry a pointer was set to. Reads resolve the
// date against the cache first so they always see the freshest copy.
type selection struct {
	set   bool
	entry emotion.Entry
}

// NewService builds a Service with an absent cache and catalog.
func NewService(opts Options) (*Service, error) {
	if opts.Gateway == nil {
		return nil, ErrNoGateway
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Neutral == "" {
		opts.Neutral = calendar.NeutralColor
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}
	return &Service{
		gw:       opts.Gateway,
		now:      opts.Clock,
		neutral:  opts.Neutral,
		log:      opts.Log,
		metrics:  opts.Metrics,
		calendar: calendar.New(),
		catalog:  catalog.New(opts.Gateway, opts.Log.Named("catalog")),
	}, nil
}

// Today is the current calendar day in local time.
func (s *Service) Today() emotion.Date {
	return emotion.Today(s.now())
}

// FetchHistory pulls calendar history since the given day (everything when
// nil) and merges it into the cache. It returns how many new days were added.
// Identical concurrent fetches share one gateway call. The shared call is not
// cancelled with any one caller; a caller whose ctx ends stops waiting and the
// fetch still lands in the cache.
//
// A failed or empty fetch never clears a populated cache. When the cache was
// never populated it stays absent.
func (s *Service) FetchHistory(ctx context.Context, since *emotion.Date) (int, error) {
	key := "all"
	if since != nil {
		key = since.String()
	}
	shared := context.WithoutCancel(ctx)
	ch := s.history.DoChan(key, func() (interface{}, error) {
		return s.fetchHistory(shared, since)
	})
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("app: fetch history: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(int), nil
	}
}

func (s *Service) fetchHistory(ctx context.Context, since *emotion.Date) (int, error) {
	rows, err := s.gw.FetchCalendarHistory(ctx, since)
	if err != nil {
		s.log.Warnw("calendar history unavailable", "error", err, "cached", s.calendar.Populated())
		return 0, fmt.Errorf("app: fetch history: %w", err)
	}

	page := make([]emotion.Entry, 0, len(rows))
	for _, row := range rows {
		e, err := row.Flatten()
		if err != nil {
			s.log.Debugw("skipping calendar row", "id", row.ID, "date", row.Date, "error", err)
			continue
		}
		page = append(page, e)
	}
	if len(page) == 0 {
		s.log.Debugw("calendar history empty", "cached", s.calendar.Populated())
		return 0, ErrNoData
	}

	added := s.calendar.Merge(page)
	s.metrics.SetCachedDays(s.calendar.Len())

	today := s.Today()
	for i := len(page) - 1; i >= 0; i-- {
		if page[i].Date.Equal(today) {
			s.mu.Lock()
			s.daily = selection{set: true, entry: page[i]}
			s.mu.Unlock()
			break
		}
	}
	return added, nil
}

// Calendar returns the cached entries in date order, and false while the
// cache is absent.
func (s *Service) Calendar() ([]emotion.Entry, bool) {
	return s.calendar.Entries()
}

// Entry returns the cached entry for day.
func (s *Service) Entry(day emotion.Date) (emotion.Entry, bool) {
	return s.calendar.Get(day)
}

// CurrentWeek returns the Monday through today strip. The bool reports
// whether the cache was populated; an absent cache yields an all neutral
// strip.
func (s *Service) CurrentWeek() ([]emotion.WeekDay, bool) {
	today := s.Today()
	if !s.calendar.Populated() {
		return calendar.CurrentWeek(today, nil, s.neutral), false
	}
	return calendar.CurrentWeek(today, s.calendar, s.neutral), true
}

// DailySelection returns the entry for today as last refreshed.
func (s *Service) DailySelection() (emotion.Entry, bool) {
	s.mu.RLock()
	sel := s.daily
	s.mu.RUnlock()
	return s.resolve(sel)
}

// SetDailySelection points the daily selection at e.
func (s *Service) SetDailySelection(e emotion.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.daily = selection{set: true, entry: e.Clone()}
}

// CalendarSelection returns the entry the user is viewing or editing.
func (s *Service) CalendarSelection() (emotion.Entry, bool) {
	s.mu.RLock()
	sel := s.selected
	s.mu.RUnlock()
	return s.resolve(sel)
}

// SetCalendarSelection points the calendar selection at e. The entry does
// not need to exist in the cache yet.
func (s *Service) SetCalendarSelection(e emotion.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = selection{set: true, entry: e.Clone()}
}

// ClearCalendarSelection drops the calendar selection.
func (s *Service) ClearCalendarSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = selection{}
}

func (s *Service) resolve(sel selection) (emotion.Entry, bool) {
	if !sel.set {
		return emotion.Entry{}, false
	}
	if e, ok := s.calendar.Get(sel.entry.Date); ok {
		return e, true
	}
	return sel.entry.Clone(), true
}

// LoadEmotions reloads the catalog and the optional selections.
func (s *Service) LoadEmotions(ctx context.Context) error {
	return s.catalog.Load(ctx)
}

// ActiveEmotions returns mandatory emotions plus selected optional ones.
func (s *Service) ActiveEmotions() ([]emotion.Definition, bool) {
	return s.catalog.Active()
}

// AllEmotions returns the full catalog.
func (s *Service) AllEmotions() ([]emotion.Definition, bool) {
	return s.catalog.All()
}

// Emotion looks up a catalog entry by id.
func (s *Service) Emotion(id string) (emotion.Definition, bool) {
	return s.catalog.Lookup(id)
}

// AddOptionalEmotion opts into an optional emotion.
func (s *Service) AddOptionalEmotion(ctx context.Context, id string) (emotion.Selection, error) {
	return s.catalog.Add(ctx, id)
}

// RemoveOptionalEmotion opts out of an optional emotion using the deletion
// token captured when it was selected.
func (s *Service) RemoveOptionalEmotion(ctx context.Context, deletionID, emotionID string) error {
	return s.catalog.Remove(ctx, deletionID, emotionID)
}
