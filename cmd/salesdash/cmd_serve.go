package main

import (
	"github.com/spf13/cobra"

	"github.com/soulfoods/sales-dashboard/pkg/chart"
	"github.com/soulfoods/sales-dashboard/pkg/dashboard"
	"github.com/soulfoods/sales-dashboard/pkg/ingest"
)

type serveConfig struct {
	*rootConfig

	Address string
}

func newServeCommand(rootConfig *rootConfig) *cobra.Command {
	config := &serveConfig{
		rootConfig: rootConfig,
	}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive sales dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkCmd(doServe(config))
		},
	}
	cmd.Flags().StringVarP(
		&config.Address,
		"address", "a",
		"",
		"Address to listen on (overrides server.address)")
	return cmd
}

func doServe(config *serveConfig) error {
	cfg := config.Config
	log := config.Log

	ds, err := ingest.Build(config.Ctx, cfg.IngestParams(), &logUI{log: log})
	if err != nil {
		return err
	}

	renderer, err := chart.NewRenderer(log, cfg.Chart.Theme, cfg.Chart.Width, cfg.Chart.Height)
	if err != nil {
		return err
	}

	server := dashboard.New(log, ds, renderer, dashboard.Options{
		Title:           cfg.Server.Title,
		ReadTimeout:     cfg.Server.ReadTimeout.Std(),
		WriteTimeout:    cfg.Server.WriteTimeout.Std(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
	})

	address := cfg.Server.Address
	if config.Address != "" {
		address = config.Address
	}
	return server.ListenAndServe(config.Ctx, address)
}
