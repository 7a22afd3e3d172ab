package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/runner/stats"
)

func addCategories(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the categories a day can be tagged with.",
		Args:  cobra.NoArgs,
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
			s := stats.Categories{App: a, Printer: d.printer, Format: d.format, Out: cmd.OutOrStdout()}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addMonthly(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Summarize recorded emotions per month.",
		Args:  cobra.NoArgs,
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
			s := stats.Monthly{App: a, Printer: d.printer, Format: d.format, Out: cmd.OutOrStdout()}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
