// Package printers renders moodlog views for the terminal.
package printers

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/muesli/termenv"

	"tableflip.dev/moodlog/pkg/calendar"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Profile picks the escape sequences used for mood swatches; the zero
	// value is termenv.TrueColor, so set it from the output.
	Profile termenv.Profile
	// Neutral is the color of days without a mood.
	Neutral string
}

// New returns a PrettyPrint for stdout with the detected color profile.
func New(neutral string) *PrettyPrint {
	return &PrettyPrint{
		Out:     color.Output,
		Profile: termenv.EnvColorProfile(),
		Neutral: neutral,
	}
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) neutral() string {
	if pp.Neutral == "" {
		return calendar.NeutralColor
	}
	return pp.Neutral
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintf(pp.out(), " %s\n", noun)
	default:
		_, _ = c.Fprintf(pp.out(), " %ss\n", noun)
	}
}

// None prints the faint placeholder for an empty view.
func (pp *PrettyPrint) None(msg string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.out(), " %s\n\n", msg)
}
