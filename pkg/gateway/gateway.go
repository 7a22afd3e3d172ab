// Package gateway defines the remote emotion service contract consumed by the
// mood cache, and an HTTP client that implements it.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/moodlog/pkg/emotion"
)

// Gateway is the remote emotion service. Any non-nil error is a transport
// failure; callers must not distinguish between timeouts, disconnects and
// server errors.
type Gateway interface {
	FetchCatalog(ctx context.Context, onlyMandatory bool) ([]emotion.Definition, error)
	FetchSelectedOptional(ctx context.Context) ([]emotion.Selection, error)
	AddOptionalSelection(ctx context.Context, emotionID string) (emotion.Selection, error)
	RemoveOptionalSelection(ctx context.Context, deletionID string) error
	FetchCalendarHistory(ctx context.Context, since *emotion.Date) ([]emotion.RawEntry, error)
	FetchMonthly(ctx context.Context) ([]emotion.MonthlyPoint, error)
	// ChangeEmotionState creates or updates a record and returns the stored
	// row, whose ID the caller keeps for later updates.
	ChangeEmotionState(ctx context.Context, req emotion.ChangeRequest, isUpdate bool) (emotion.RawEntry, error)
	FetchCategories(ctx context.Context) ([]emotion.Category, error)
}

// ErrOffline is returned without touching the network when the connectivity
// gate reports no connection.
var ErrOffline = errors.New("gateway: network unavailable")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway: %s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code >= 500 || e.Code == 429
}

// Operation names, used as metric labels and by test doubles.
const (
	OpFetchCatalog    = "fetch_catalog"
	OpFetchSelected   = "fetch_selected"
	OpAddSelection    = "add_selection"
	OpRemoveSelection = "remove_selection"
	OpFetchHistory    = "fetch_history"
	OpFetchMonthly    = "fetch_monthly"
	OpChangeState     = "change_state"
	OpFetchCategories = "fetch_categories"
)
