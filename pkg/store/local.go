package store

import (
	"context"

	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/gateway"
)

// Local serves the gateway contract straight from a Persistence, for running
// without a server.
type Local struct {
	P Persistence
}

var _ gateway.Gateway = (*Local)(nil)

// NewLocal wraps p as a gateway.
func NewLocal(p Persistence) *Local {
	return &Local{P: p}
}

func (l *Local) FetchCatalog(ctx context.Context, onlyMandatory bool) ([]emotion.Definition, error) {
	mode := emotion.ModeOptional
	if onlyMandatory {
		mode = emotion.ModeMandatory
	}
	return l.P.Catalog(ctx, mode)
}

func (l *Local) FetchSelectedOptional(ctx context.Context) ([]emotion.Selection, error) {
	return l.P.Selections(ctx)
}

func (l *Local) AddOptionalSelection(ctx context.Context, emotionID string) (emotion.Selection, error) {
	return l.P.AddSelection(ctx, emotionID)
}

func (l *Local) RemoveOptionalSelection(ctx context.Context, deletionID string) error {
	return l.P.RemoveSelection(ctx, deletionID)
}

func (l *Local) FetchCalendarHistory(ctx context.Context, since *emotion.Date) ([]emotion.RawEntry, error) {
	return l.P.Records(ctx, since)
}

func (l *Local) FetchMonthly(ctx context.Context) ([]emotion.MonthlyPoint, error) {
	return l.P.Monthly(ctx)
}

func (l *Local) ChangeEmotionState(ctx context.Context, req emotion.ChangeRequest, isUpdate bool) (emotion.RawEntry, error) {
	return l.P.SaveRecord(ctx, req, isUpdate)
}

func (l *Local) FetchCategories(ctx context.Context) ([]emotion.Category, error) {
	return l.P.Categories(ctx)
}
