package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/moodlog/pkg/emotion"
)

const (
	descriptionWidth = 48
	noteWidth        = 60
)

func (pp *PrettyPrint) table() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	return tbl
}

// Emotions tabulates catalog entries. Selected optional emotions are marked
// with a star.
func (pp *PrettyPrint) Emotions(defs []emotion.Definition) {
	if len(defs) == 0 {
		pp.None("no emotions")
		return
	}
	bold := color.New(color.Bold)
	tbl := pp.table()
	tbl.AddRow("", bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Mode"), bold.Sprint("Description"))
	for _, d := range defs {
		mark := " "
		if d.Optional() && d.Selected {
			mark = "*"
		}
		desc := d.Description
		if desc == "" {
			desc = d.Title
		}
		tbl.AddRow(
			pp.swatch(mark, d.ColorCode),
			d.ID,
			d.Name,
			string(d.Mode),
			truncate.StringWithTail(desc, descriptionWidth, "..."),
		)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Categories tabulates categories.
func (pp *PrettyPrint) Categories(cats []emotion.Category) {
	if len(cats) == 0 {
		pp.None("no categories")
		return
	}
	bold := color.New(color.Bold)
	tbl := pp.table()
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"))
	for _, c := range cats {
		tbl.AddRow(c.ID, c.Name)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Monthly tabulates the monthly summary, one row per month and emotion.
func (pp *PrettyPrint) Monthly(points []emotion.MonthlyPoint) {
	if len(points) == 0 {
		pp.None("no monthly data")
		return
	}
	bold := color.New(color.Bold)
	tbl := pp.table()
	tbl.AddRow(bold.Sprint("Month"), "", bold.Sprint("Emotion"), bold.Sprint("Days"))
	last := ""
	for _, p := range points {
		month := p.Month
		if month == last {
			month = ""
		}
		last = p.Month
		tbl.AddRow(month, pp.swatch(" ", p.ColorCode), p.Name, p.Count)
	}
	tbl.RightAlign(3)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Entries lists calendar entries with their categories and wrapped notes.
func (pp *PrettyPrint) Entries(entries []emotion.Entry) {
	if len(entries) == 0 {
		pp.None("no entries")
		return
	}
	faint := color.New(color.Faint)
	for _, e := range entries {
		names := make([]string, 0, len(e.Categories))
		for _, c := range e.Categories {
			names = append(names, c.Name)
		}
		_, _ = fmt.Fprintf(pp.out(), "%s %s %s", e.Date, pp.swatch("  ", e.ColorCode()), e.Emotion.Name)
		if len(names) > 0 {
			_, _ = faint.Fprintf(pp.out(), "  [%s]", strings.Join(names, ", "))
		}
		_, _ = fmt.Fprintln(pp.out())
		if e.Description != "" {
			for _, line := range strings.Split(wordwrap.String(e.Description, noteWidth), "\n") {
				_, _ = faint.Fprintf(pp.out(), "           %s\n", line)
			}
		}
	}
	pp.NewLine()
}
