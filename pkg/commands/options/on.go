package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/emotion"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a day, example: --on="2024-2-28", --on="2/28" or --on=yesterday.`)
}

// GetOn resolves --on relative to today; empty means today.
func (o *OnOptions) GetOn(today emotion.Date) (emotion.Date, error) {
	switch o.OnString {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	t, err := time.Parse(layoutISO, o.OnString)
	if err != nil {
		// Let the year be the same.
		t, err = time.Parse(layoutISOShort, o.OnString)
		if err != nil {
			return emotion.Date{}, err
		}
		t = t.AddDate(today.Year(), 0, 0)
		// Moods are recorded after the fact, so 12/30 said on 1/3 means last year.
		if today.Before(emotion.NewDate(t)) {
			t = t.AddDate(-1, 0, 0)
		}
	}
	return emotion.NewDate(t), nil
}
