package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/commands/options"
	"tableflip.dev/moodlog/pkg/runner/calendar"
	"tableflip.dev/moodlog/pkg/timeutil"
)

func addCalendar(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show month grids painted with each day's mood.",
		Example: `
moodlog calendar
moodlog calendar --last 3mo --list
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			d, err := load()
			if err != nil {
				return output.HandleError(err)
			}
			defer d.close()
			a, err := d.app(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			since, label, err := timeutil.Since(wo.Last, a.Today())
			if err != nil {
				return output.HandleError(err)
			}
			s := calendar.Calendar{
				App:     a,
				Printer: d.printer,
				Format:  d.format,
				Out:     cmd.OutOrStdout(),
				Since:   since,
				Label:   label,
				List:    wo.List,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddWindowArgs(cmd, wo, timeutil.DefaultWindow)
	options.AddListArgs(cmd, wo)

	topLevel.AddCommand(cmd)
}
