package commands

import (
	"github.com/spf13/cobra"

	"github.com/ledgersight/ledgersight/internal/logging"
	"github.com/ledgersight/ledgersight/internal/server"
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analytics dashboard API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			svc, store, err := openService(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			log := logging.New()
			return server.New(svc, log).ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
