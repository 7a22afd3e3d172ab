// Package stats shows the category list and the monthly mood summary.
package stats

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/printers"
)

type Categories struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Format  printers.Format
	Out     io.Writer
}

func (n *Categories) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not list categories, no mood service")
	}
	cats, err := n.App.FetchCategories(ctx)
	if err != nil {
		return err
	}
	if n.Format != "" && n.Format != printers.FormatText {
		return printers.Structured(n.Out, n.Format, cats)
	}
	n.Printer.Title("Categories")
	n.Printer.Categories(cats)
	return nil
}

type Monthly struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Format  printers.Format
	Out     io.Writer
}

func (n *Monthly) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not summarize, no mood service")
	}
	points, err := n.App.FetchMonthly(ctx)
	if err != nil {
		return err
	}
	if n.Format != "" && n.Format != printers.FormatText {
		return printers.Structured(n.Out, n.Format, points)
	}
	n.Printer.Title("Monthly")
	n.Printer.Monthly(points)
	return nil
}
