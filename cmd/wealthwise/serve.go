package main

import (
	"github.com/spf13/cobra"

	"github.com/wealthwise/wealthwise/pkg/config"
	"github.com/wealthwise/wealthwise/pkg/server"
	"github.com/wealthwise/wealthwise/pkg/service"
	"github.com/wealthwise/wealthwise/pkg/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the statement import HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		svc := service.New(store.NewMemory(), logger)
		return server.New(cfg, svc, logger).Start()
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "HTTP listen address (default :8080)")
}
