package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/commands/options"
	"tableflip.dev/moodlog/pkg/runner/report"
	"tableflip.dev/moodlog/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Count recorded days per emotion over a window.",
		Long: `Report groups the days recorded within the window by emotion, most frequent first.

Examples:
  moodlog report
  moodlog report --last 10d
  moodlog report --last 1mo2w`,
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
			since, _, err := timeutil.Since(wo.Last, a.Today())
			if err != nil {
				return output.HandleError(err)
			}
			s := report.Report{
				App:     a,
				Printer: d.printer,
				Format:  d.format,
				Out:     cmd.OutOrStdout(),
				Since:   since,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddWindowArgs(cmd, wo, timeutil.DefaultWindow)
	topLevel.AddCommand(cmd)
}
