package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/example/cradle/internal/server"
	"github.com/example/cradle/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Start the JSON HTTP API on the configured listen address.

The address comes from config.json (listen_addr, default ":8000") and can
be overridden with --addr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = wire.Config().ListenAddr
			}

			srv := server.New(
				wire.TrackerService(),
				wire.StatsService(),
				wire.AdvisorService(),
				wire.EntryService(),
				wire.ProfileService(),
				wire.Parser(),
				wire.Logger(),
				func() time.Time { return wire.Now() },
			)
			return srv.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	return cmd
}
