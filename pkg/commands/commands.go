package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/commands/options"
)

var (
	output  = &options.OutputOptions{}
	logOpts = &options.LogOptions{}
	cfgOpts = &options.ConfigOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "moodlog",
		Short: options.Wrap80("Track how each day felt, one color at a time."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	options.AddLogArgs(cmd, logOpts)
	options.AddConfigArgs(cmd, cfgOpts)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addWeek(topLevel)
	addCalendar(topLevel)
	addReport(topLevel)
	addRecord(topLevel)
	addEmotions(topLevel)
	addSelect(topLevel)
	addDeselect(topLevel)
	addCategories(topLevel)
	addMonthly(topLevel)
	addWatch(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
