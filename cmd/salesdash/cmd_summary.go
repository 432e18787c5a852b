package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/soulfoods/sales-dashboard/pkg/fancy"
	"github.com/soulfoods/sales-dashboard/pkg/ingest"
)

func newSummaryCommand(rootConfig *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print totals and the date range of the cleaned dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkCmd(doSummary(rootConfig))
		},
	}
}

func doSummary(config *rootConfig) error {
	ui := &logUI{log: config.Log}
	ds, err := ingest.Build(config.Ctx, config.Config.IngestParams(), ui)
	if err != nil {
		return err
	}
	fancy.Summary(os.Stdout, ds, ui.built.RawRows, ui.built.Skipped)
	return nil
}
