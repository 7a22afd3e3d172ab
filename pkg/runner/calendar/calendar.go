// Package calendar renders the month grids of recorded moods.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/printers"
)

type Calendar struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Format  printers.Format
	Out     io.Writer

	Since emotion.Date
	// Label describes the window, for example "4w".
	Label string
	// List adds the per day entries below the grids.
	List bool
}

func (n *Calendar) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not show calendar, no mood service")
	}
	today := n.App.Today()
	since := n.Since
	if since.IsZero() || today.Before(since) {
		since = today
	}

	if _, err := n.App.FetchHistory(ctx, &since); err != nil && !errors.Is(err, app.ErrNoData) {
		return err
	}
	all, _ := n.App.Calendar()
	entries := make([]emotion.Entry, 0, len(all))
	for _, e := range all {
		if e.Date.Before(since) || today.Before(e.Date) {
			continue
		}
		entries = append(entries, e)
	}

	if n.Format != "" && n.Format != printers.FormatText {
		return printers.Structured(n.Out, n.Format, entries)
	}

	pp := n.Printer
	if n.Label != "" {
		pp.TitleWithCount(fmt.Sprintf("Last %s", n.Label), len(entries), "day")
		pp.NewLine()
	}
	pp.Months(since, today, today, entries)
	if n.List {
		pp.Entries(entries)
	}
	return nil
}
