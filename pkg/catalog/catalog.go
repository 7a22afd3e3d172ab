// Package catalog reconciles the emotion catalog with the user's optional
// emotion selections and their deletion tokens.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/gateway"
)

var (
	// ErrUnavailable is returned when the catalog has not been loaded, or the
	// last load failed.
	ErrUnavailable = errors.New("catalog: not loaded")
	// ErrUnknownEmotion is returned for ids missing from the catalog.
	ErrUnknownEmotion = errors.New("catalog: unknown emotion")
	// ErrNotOptional is returned when selecting a mandatory emotion.
	ErrNotOptional = errors.New("catalog: emotion is not optional")
	// ErrTokenMismatch is returned when a deletion token does not belong to
	// the emotion's current selection.
	ErrTokenMismatch = errors.New("catalog: deletion token does not match selection")
)

// Reconciler owns the catalog. A nil catalog means absent.
type Reconciler struct {
	gw  gateway.Gateway
	log *zap.SugaredLogger

	mu   sync.RWMutex
	defs []emotion.Definition
}

// New creates a Reconciler with an absent catalog.
func New(gw gateway.Gateway, log *zap.SugaredLogger) *Reconciler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Reconciler{gw: gw, log: log}
}

// Load fetches the mandatory catalog, the optional catalog and the user's
// selections, then projects each selection onto its catalog entry. If any of
// the fetches fails the catalog becomes absent.
func (r *Reconciler) Load(ctx context.Context) error {
	var mandatory, optional []emotion.Definition
	var selections []emotion.Selection

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mandatory, err = r.gw.FetchCatalog(gctx, true)
		return err
	})
	g.Go(func() error {
		var err error
		optional, err = r.gw.FetchCatalog(gctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		selections, err = r.gw.FetchSelectedOptional(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		r.log.Warnw("emotion catalog unavailable", "error", err)
		r.mu.Lock()
		r.defs = nil
		r.mu.Unlock()
		return fmt.Errorf("catalog: load: %w", err)
	}

	tokens := make(map[string]string, len(selections))
	for _, sel := range selections {
		tokens[sel.EmotionID] = sel.DeletionID
	}

	defs := make([]emotion.Definition, 0, len(mandatory)+len(optional))
	for _, d := range append(mandatory, optional...) {
		token, ok := tokens[d.ID]
		d.Selected = ok
		d.DeletionID = token
		defs = append(defs, d)
	}

	r.mu.Lock()
	r.defs = defs
	r.mu.Unlock()
	r.log.Debugw("emotion catalog loaded", "mandatory", len(mandatory), "optional", len(optional), "selected", len(selections))
	return nil
}

// All returns the full catalog, mandatory entries first.
func (r *Reconciler) All() ([]emotion.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defs == nil {
		return nil, false
	}
	return append([]emotion.Definition(nil), r.defs...), true
}

// Active returns the mandatory entries plus the selected optional ones.
func (r *Reconciler) Active() ([]emotion.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defs == nil {
		return nil, false
	}
	out := make([]emotion.Definition, 0, len(r.defs))
	for _, d := range r.defs {
		if d.Active() {
			out = append(out, d)
		}
	}
	return out, true
}

// Lookup returns the catalog entry for id.
func (r *Reconciler) Lookup(id string) (emotion.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := indexOf(r.defs, id)
	if idx < 0 {
		return emotion.Definition{}, false
	}
	return r.defs[idx], true
}

// Add registers an optional emotion selection. On success the catalog entry
// is marked selected and carries the issued deletion token; on failure the
// catalog is left as it was.
func (r *Reconciler) Add(ctx context.Context, id string) (emotion.Selection, error) {
	def, err := r.lookupLoaded(id)
	if err != nil {
		return emotion.Selection{}, err
	}
	if !def.Optional() {
		return emotion.Selection{}, fmt.Errorf("%w: %s", ErrNotOptional, id)
	}
	if def.Selected && def.DeletionID != "" {
		return emotion.Selection{EmotionID: id, DeletionID: def.DeletionID}, nil
	}

	sel, err := r.gw.AddOptionalSelection(ctx, id)
	if err != nil {
		return emotion.Selection{}, fmt.Errorf("catalog: add %s: %w", id, err)
	}
	if sel.EmotionID == "" {
		sel.EmotionID = id
	}
	r.patch(id, true, sel.DeletionID)
	return sel, nil
}

// Remove deselects an optional emotion using the deletion token captured
// when it was selected. The token must match the entry's current selection.
func (r *Reconciler) Remove(ctx context.Context, deletionID, emotionID string) error {
	def, err := r.lookupLoaded(emotionID)
	if err != nil {
		return err
	}
	if deletionID == "" || !def.Selected || def.DeletionID != deletionID {
		return fmt.Errorf("%w: %s", ErrTokenMismatch, emotionID)
	}
	if err := r.gw.RemoveOptionalSelection(ctx, deletionID); err != nil {
		return fmt.Errorf("catalog: remove %s: %w", emotionID, err)
	}
	r.patch(emotionID, false, "")
	return nil
}

func (r *Reconciler) lookupLoaded(id string) (emotion.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defs == nil {
		return emotion.Definition{}, ErrUnavailable
	}
	idx := indexOf(r.defs, id)
	if idx < 0 {
		return emotion.Definition{}, fmt.Errorf("%w: %s", ErrUnknownEmotion, id)
	}
	return r.defs[idx], nil
}

func (r *Reconciler) patch(id string, selected bool, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := indexOf(r.defs, id)
	if idx < 0 {
		return
	}
	r.defs[idx].Selected = selected
	r.defs[idx].DeletionID = token
}

func indexOf(defs []emotion.Definition, id string) int {
	for i, d := range defs {
		if d.ID == id {
			return i
		}
	}
	return -1
}
