package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/runner/serve"
)

func addServe(topLevel *cobra.Command) {
	var (
		addr   string
		noSeed bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mood API over HTTP from the local store.",
		Long: `Serve exposes the local store with the JSON API the CLI gateway speaks,
plus /healthz and Prometheus /metrics. Set server.token to require a bearer
token on API routes.`,
		Example: `
moodlog serve
moodlog serve --addr :9090
`,
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
			if addr == "" {
				addr = d.cfg.Server.Addr
			}
			s := serve.Serve{
				Persistence: p,
				Addr:        addr,
				Token:       d.cfg.Server.Token,
				Seed:        !noSeed,
				Log:         d.log,
				Metrics:     d.metrics,
				Gatherer:    d.registry,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address; overrides server.addr.")
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Do not seed an empty store with the default catalog.")
	topLevel.AddCommand(cmd)
}
