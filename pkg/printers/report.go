package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/moodlog/pkg/app"
)

// Report prints the per-emotion day counts of a report.
func (pp *PrettyPrint) Report(rep app.ReportResult) {
	pp.TitleWithCount(fmt.Sprintf("%s to %s", rep.Since, rep.Until), rep.Total, "day")
	if len(rep.Sections) == 0 {
		pp.None("nothing recorded")
		return
	}
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, sec := range rep.Sections {
		share := 100 * len(sec.Days) / rep.Total
		tbl.AddRow(pp.swatch("  ", sec.Emotion.ColorCode), sec.Emotion.Name, len(sec.Days), faint.Sprintf("%d%%", share))
	}
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}
