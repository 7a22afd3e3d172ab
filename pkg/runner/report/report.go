// Package report groups a window of recorded days by emotion.
package report

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/printers"
)

type Report struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Format  printers.Format
	Out     io.Writer

	Since emotion.Date
}

func (n *Report) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not report, no mood service")
	}
	since := n.Since
	if _, err := n.App.FetchHistory(ctx, &since); err != nil && !errors.Is(err, app.ErrNoData) {
		return err
	}

	rep, err := n.App.Report(since, n.App.Today())
	if err != nil && !errors.Is(err, app.ErrNoData) {
		return err
	}

	if n.Format != "" && n.Format != printers.FormatText {
		return printers.Structured(n.Out, n.Format, rep)
	}
	n.Printer.Report(rep)
	return nil
}
