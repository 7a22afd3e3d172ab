package options

import (
	"github.com/spf13/cobra"
)

// RecordOptions
type RecordOptions struct {
	Note       string
	Categories []string
}

func AddRecordArgs(cmd *cobra.Command, o *RecordOptions) {
	cmd.Flags().StringVarP(&o.Note, "note", "n", "",
		"A note about the day.")
	cmd.Flags().StringSliceVarP(&o.Categories, "category", "c", nil,
		"Tag the day with a category id or name; repeat or comma separate.")
}

// WindowOptions
type WindowOptions struct {
	Last string
	List bool
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions, def string) {
	cmd.Flags().StringVar(&o.Last, "last", def,
		"Window of days to include, for example 10d, 2w or 1mo.")
}

func AddListArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().BoolVarP(&o.List, "list", "l", false,
		"List each recorded day below the calendar.")
}

// AllOptions
type AllOptions struct {
	All bool
}

func AddAllArgs(cmd *cobra.Command, o *AllOptions) {
	cmd.Flags().BoolVarP(&o.All, "all", "a", false,
		"Include optional emotions that are not selected.")
}

// ConfigOptions
type ConfigOptions struct {
	Gateway string
}

func AddConfigArgs(cmd *cobra.Command, o *ConfigOptions) {
	cmd.PersistentFlags().StringVar(&o.Gateway, "gateway", "",
		`Gateway url, or "local" to use the store directly; overrides gateway.url.`)
}
