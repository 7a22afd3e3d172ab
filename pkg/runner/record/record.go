// Package record stores the mood for a day.
package record

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/printers"
)

type Record struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Format  printers.Format
	Out     io.Writer

	// Day defaults to today.
	Day        emotion.Date
	EmotionID  string
	Note       string
	Categories []string
}

func (n *Record) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not record, no mood service")
	}
	if n.EmotionID == "" {
		return errors.New("an emotion is required")
	}
	day := n.Day
	if day.IsZero() {
		day = n.App.Today()
	}

	e, err := n.App.Record(ctx, day, n.EmotionID, n.Note, n.Categories)
	if err != nil {
		return err
	}
	n.App.SetCalendarSelection(e)

	if n.Format != "" && n.Format != printers.FormatText {
		return printers.Structured(n.Out, n.Format, e)
	}
	n.Printer.Title("Recorded")
	n.Printer.Entries([]emotion.Entry{e})
	days, _ := n.App.CurrentWeek()
	n.Printer.Week(days)
	n.Printer.NewLine()
	return nil
}
