package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/runner/week"
)

func addWeek(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show this week's moods from Monday through today.",
		Example: `
moodlog week
moodlog week -o json
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
			s := week.Week{
				App:     a,
				Printer: d.printer,
				Format:  d.format,
				Out:     cmd.OutOrStdout(),
				Log:     d.log,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
