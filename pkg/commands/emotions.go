package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/commands/options"
	"tableflip.dev/moodlog/pkg/runner/emotions"
)

func addEmotions(topLevel *cobra.Command) {
	ao := &options.AllOptions{}

	cmd := &cobra.Command{
		Use:   "emotions",
		Short: "List the emotions you can record.",
		Example: `
moodlog emotions
moodlog emotions --all
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
			s := emotions.List{
				App:     a,
				Printer: d.printer,
				Format:  d.format,
				Out:     cmd.OutOrStdout(),
				All:     ao.All,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddAllArgs(cmd, ao)
	topLevel.AddCommand(cmd)
}

func addSelect(topLevel *cobra.Command) {
	topLevel.AddCommand(selectionCommand("select", "Opt into an optional emotion.", false))
}

func addDeselect(topLevel *cobra.Command) {
	topLevel.AddCommand(selectionCommand("deselect", "Opt out of an optional emotion.", true))
}

func selectionCommand(use, short string, remove bool) *cobra.Command {
	return &cobra.Command{
		Use:               use + " <emotion>",
		Short:             short,
		Example:           "\nmoodlog " + use + " grateful\n",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: emotionCompletions(true),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			s := emotions.Select{
				App:     a,
				Printer: d.printer,
				Format:  d.format,
				Out:     cmd.OutOrStdout(),
				ID:      args[0],
				Remove:  remove,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}
}
