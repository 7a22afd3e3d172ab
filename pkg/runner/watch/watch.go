// Package watch redraws the week whenever the local store changes.
package watch

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/runner/week"
	"tableflip.dev/moodlog/pkg/store"
)

type Watch struct {
	App         *app.Service
	Persistence store.Persistence
	// View renders the current state; its App is expected to be App.
	View *week.Week
	Out  io.Writer
	Log  *zap.SugaredLogger

	// Clear redraws in place. When nil it is enabled for terminals.
	Clear *bool
}

func (n *Watch) Do(ctx context.Context) error {
	if n.App == nil || n.View == nil {
		return errors.New("can not watch, no mood service")
	}
	if n.Persistence == nil {
		return errors.New("can not watch, no local store")
	}
	log := n.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events, err := n.Persistence.Watch(ctx)
	if err != nil {
		return err
	}

	if err := n.App.LoadEmotions(ctx); err != nil {
		log.Warnw("emotion catalog unavailable", "error", err)
	}
	if err := n.redraw(ctx, true); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			log.Debugw("store changed", "bucket", ev.Bucket, "type", ev.Type)
			if err := n.Apply(ctx, ev); err != nil {
				log.Warnw("refresh failed", "bucket", ev.Bucket, "error", err)
				continue
			}
			if err := n.redraw(ctx, false); err != nil {
				return err
			}
		}
	}
}

// Apply refreshes the parts of the service a change event touches.
func (n *Watch) Apply(ctx context.Context, ev store.Event) error {
	switch {
	case ev.Type == store.EventInvalidated:
		if err := n.App.LoadEmotions(ctx); err != nil {
			return err
		}
		return n.fetch(ctx)
	case ev.Bucket == store.BucketRecords:
		return n.fetch(ctx)
	case ev.Bucket == store.BucketEmotions, ev.Bucket == store.BucketSelections:
		return n.App.LoadEmotions(ctx)
	case ev.Bucket == store.BucketCategories:
		_, err := n.App.FetchCategories(ctx)
		return err
	}
	return nil
}

func (n *Watch) fetch(ctx context.Context) error {
	if _, err := n.App.FetchHistory(ctx, nil); err != nil && !errors.Is(err, app.ErrNoData) {
		return err
	}
	return nil
}

func (n *Watch) redraw(ctx context.Context, first bool) error {
	if n.clear() {
		termenv.NewOutput(n.out()).ClearScreen()
	}
	if first {
		return n.View.Do(ctx)
	}
	return n.View.Render()
}

func (n *Watch) out() io.Writer {
	if n.Out == nil {
		return os.Stdout
	}
	return n.Out
}

func (n *Watch) clear() bool {
	if n.Clear != nil {
		return *n.Clear
	}
	f, ok := n.out().(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
