package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/moodlog/pkg/emotion"
)

// Week prints the week strip as a row of day labels over a row of mood
// swatches.
func (pp *PrettyPrint) Week(strip []emotion.WeekDay) {
	if len(strip) == 0 {
		pp.None("no days")
		return
	}
	labels := make([]string, 0, len(strip))
	cells := make([]string, 0, len(strip))
	for _, d := range strip {
		labels = append(labels, fmt.Sprintf("%-3s", d.Label))
		cells = append(cells, pp.swatch(fmt.Sprintf("%3d", d.Date.Day()), d.ColorCode))
	}
	l := color.New(color.Faint)
	_, _ = l.Fprintln(pp.out(), strings.Join(labels, " "))
	_, _ = fmt.Fprintln(pp.out(), strings.Join(cells, " "))
}
