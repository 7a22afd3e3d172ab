package options

import (
	"github.com/spf13/cobra"
)

// LogOptions
type LogOptions struct {
	Level string
	File  string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "",
		"Log level (debug, info, warn, error); overrides log.level.")
	cmd.PersistentFlags().StringVar(&o.File, "log-file", "",
		"Also write JSON logs to this rotated file; overrides log.file.")
}
