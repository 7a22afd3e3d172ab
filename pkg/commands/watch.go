package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/runner/watch"
	"tableflip.dev/moodlog/pkg/runner/week"
)

func addWatch(topLevel *cobra.Command) {
	var noClear bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Redraw the week whenever the local store changes.",
		Long: `Watch follows the local store with filesystem notifications and redraws the
week after every change, for example while moodlog serve handles records
from another device.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			d, err := load()
			if err != nil {
				return output.HandleError(err)
			}
			defer d.close()
			p, err := d.persistence()
			if err != nil {
				return output.HandleError(err)
			}
			a, err := d.app(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			s := watch.Watch{
				App:         a,
				Persistence: p,
				View: &week.Week{
					App:     a,
					Printer: d.printer,
					Format:  d.format,
					Out:     cmd.OutOrStdout(),
					Log:     d.log,
				},
				Log: d.log.Named("watch"),
			}
			if noClear {
				clear := false
				s.Clear = &clear
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&noClear, "no-clear", false, "Append each redraw instead of clearing the screen.")
	topLevel.AddCommand(cmd)
}
