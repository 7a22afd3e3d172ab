// Package week renders the Monday through today mood strip.
package week

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/calendar"
	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/printers"
)

type Week struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Format  printers.Format
	Out     io.Writer
	Log     *zap.SugaredLogger
}

// View is the structured form of the week.
type View struct {
	Days  []emotion.WeekDay `json:"days" yaml:"days"`
	Today *emotion.Entry    `json:"today,omitempty" yaml:"today,omitempty"`
	Fresh bool              `json:"fresh" yaml:"fresh"`
}

func (n *Week) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not show week, no mood service")
	}
	since := calendar.WeekStart(n.App.Today())
	if _, err := n.App.FetchHistory(ctx, &since); err != nil && !errors.Is(err, app.ErrNoData) {
		if n.Log != nil {
			n.Log.Warnw("showing cached week", "error", err)
		}
	}
	return n.Render()
}

// Render prints the week from the cache without fetching.
func (n *Week) Render() error {
	days, fresh := n.App.CurrentWeek()
	v := View{Days: days, Fresh: fresh}
	if e, ok := n.App.DailySelection(); ok {
		v.Today = &e
	}

	if n.Format != "" && n.Format != printers.FormatText {
		return printers.Structured(n.Out, n.Format, v)
	}

	pp := n.Printer
	pp.Title("This week")
	pp.Week(v.Days)
	pp.NewLine()
	if v.Today == nil {
		pp.None("nothing recorded today")
		return nil
	}
	pp.Entries([]emotion.Entry{*v.Today})
	return nil
}
