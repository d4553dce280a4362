package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-parseval/internal/server"
	"github.com/jamesainslie/go-parseval/internal/telemetry"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scoring API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gin.SetMode(gin.ReleaseMode)
			srv := server.New(a.logger, telemetry.NewMetrics(), a.cfg.Workers)
			return srv.Run(cmd.Context(), pick(cmd, "addr", addr, a.cfg.Server.Addr))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, localhost:8080)")
	return cmd
}
