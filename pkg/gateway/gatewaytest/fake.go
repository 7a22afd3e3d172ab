// Package gatewaytest provides an in-memory gateway.Gateway with failure
// injection for tests.
package gatewaytest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/gateway"
)

// ErrInjected is the default failure returned by FailOn.
var ErrInjected = errors.New("gatewaytest: injected failure")

// Change records one ChangeEmotionState call.
type Change struct {
	Request  emotion.ChangeRequest
	IsUpdate bool
}

// Fake is a programmable in-memory Gateway. Exported fields may be set
// directly before use; they are guarded by the fake's lock afterwards.
type Fake struct {
	mu sync.Mutex

	Mandatory  []emotion.Definition
	Optional   []emotion.Definition
	Selections []emotion.Selection
	History    []emotion.RawEntry
	Monthly    []emotion.MonthlyPoint
	Categories []emotion.Category
	Changes    []Change

	// HistoryHook, when set, runs inside FetchCalendarHistory before it
	// returns. The fetch then fails if its ctx was cancelled meanwhile.
	HistoryHook func()

	fail    map[string]error
	calls   map[string]int
	tokens  int
	records int
}

var _ gateway.Gateway = (*Fake)(nil)

// New returns an empty fake.
func New() *Fake {
	return &Fake{}
}

// FailOn makes every call to op fail with err (ErrInjected when nil).
func (f *Fake) FailOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		err = ErrInjected
	}
	if f.fail == nil {
		f.fail = make(map[string]error)
	}
	f.fail[op] = err
}

// Recover clears an injected failure.
func (f *Fake) Recover(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.fail, op)
}

// Calls returns how many times op was invoked.
func (f *Fake) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// SetHistory replaces the rows served by FetchCalendarHistory.
func (f *Fake) SetHistory(rows ...emotion.RawEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.History = rows
}

func (f *Fake) enter(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[op]++
	return f.fail[op]
}

func (f *Fake) FetchCatalog(_ context.Context, onlyMandatory bool) ([]emotion.Definition, error) {
	if err := f.enter(gateway.OpFetchCatalog); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if onlyMandatory {
		return append([]emotion.Definition(nil), f.Mandatory...), nil
	}
	return append([]emotion.Definition(nil), f.Optional...), nil
}

func (f *Fake) FetchSelectedOptional(context.Context) ([]emotion.Selection, error) {
	if err := f.enter(gateway.OpFetchSelected); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]emotion.Selection(nil), f.Selections...), nil
}

func (f *Fake) AddOptionalSelection(_ context.Context, emotionID string) (emotion.Selection, error) {
	if err := f.enter(gateway.OpAddSelection); err != nil {
		return emotion.Selection{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens++
	sel := emotion.Selection{EmotionID: emotionID, DeletionID: fmt.Sprintf("del-%d", f.tokens)}
	f.Selections = append(f.Selections, sel)
	return sel, nil
}

func (f *Fake) RemoveOptionalSelection(_ context.Context, deletionID string) error {
	if err := f.enter(gateway.OpRemoveSelection); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, sel := range f.Selections {
		if sel.DeletionID == deletionID {
			f.Selections = append(f.Selections[:i], f.Selections[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("gatewaytest: unknown deletion id %q", deletionID)
}

func (f *Fake) FetchCalendarHistory(ctx context.Context, since *emotion.Date) ([]emotion.RawEntry, error) {
	if err := f.enter(gateway.OpFetchHistory); err != nil {
		return nil, err
	}
	f.mu.Lock()
	hook := f.HistoryHook
	out := make([]emotion.RawEntry, 0, len(f.History))
	for _, row := range f.History {
		if since != nil {
			day, err := emotion.ParseDate(row.Date)
			if err == nil && day.Before(*since) {
				continue
			}
		}
		out = append(out, row)
	}
	f.mu.Unlock()
	if hook != nil {
		hook()
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (f *Fake) FetchMonthly(context.Context) ([]emotion.MonthlyPoint, error) {
	if err := f.enter(gateway.OpFetchMonthly); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]emotion.MonthlyPoint(nil), f.Monthly...), nil
}

// ChangeEmotionState records the call and echoes the request as a stored
// row. Creates get a fresh "rec-N" id.
func (f *Fake) ChangeEmotionState(_ context.Context, req emotion.ChangeRequest, isUpdate bool) (emotion.RawEntry, error) {
	if err := f.enter(gateway.OpChangeState); err != nil {
		return emotion.RawEntry{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Changes = append(f.Changes, Change{Request: req, IsUpdate: isUpdate})
	id := req.RecordID
	if !isUpdate {
		f.records++
		id = fmt.Sprintf("rec-%d", f.records)
	}
	return emotion.RawEntry{
		ID:             id,
		Date:           req.Date.String(),
		Description:    req.Description,
		Categories:     append([]emotion.Category(nil), req.Categories...),
		SentimentState: emotion.Definition{ID: req.EmotionID},
	}, nil
}

func (f *Fake) FetchCategories(context.Context) ([]emotion.Category, error) {
	if err := f.enter(gateway.OpFetchCategories); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]emotion.Category(nil), f.Categories...), nil
}
