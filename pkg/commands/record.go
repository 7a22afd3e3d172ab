package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/commands/options"
	"tableflip.dev/moodlog/pkg/runner/record"
)

func addRecord(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	ro := &options.RecordOptions{}

	cmd := &cobra.Command{
		Use:     "record <emotion>",
		Aliases: []string{"rec", "feel"},
		Short:   "Record how a day felt.",
		Long: options.Wrap80(`Record the emotion for today, or for the day given with --on.

Recording a day that already has an entry replaces it.`),
		Example: `
moodlog record happy
moodlog record tired --on yesterday --note "late flight"
moodlog record calm -c family,health
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: emotionCompletions(false),
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
			day, err := oo.GetOn(a.Today())
			if err != nil {
				return output.HandleError(err)
			}
			s := record.Record{
				App:        a,
				Printer:    d.printer,
				Format:     d.format,
				Out:        cmd.OutOrStdout(),
				Day:        day,
				EmotionID:  args[0],
				Note:       ro.Note,
				Categories: ro.Categories,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddRecordArgs(cmd, ro)
	_ = cmd.RegisterFlagCompletionFunc("category", categoryCompletions)

	topLevel.AddCommand(cmd)
}
