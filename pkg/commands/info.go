package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the config and where moods are stored.",
		Example: `
moodlog info
`,
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
			s := info.Info{
				Config:      d.cfg,
				ConfigFile:  d.configFile,
				Persistence: p,
				Format:      d.format,
				Out:         cmd.OutOrStdout(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
