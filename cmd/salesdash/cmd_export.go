package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soulfoods/sales-dashboard/pkg/export"
	"github.com/soulfoods/sales-dashboard/pkg/ingest"
)

type exportConfig struct {
	*rootConfig

	Output  string
	Columns string
	Yes     bool
}

func newExportCommand(rootConfig *rootConfig) *cobra.Command {
	config := &exportConfig{
		rootConfig: rootConfig,
	}
	cmd := &cobra.Command{
		Use:   "export [OUTPUT]",
		Short: "Write the cleaned dataset to a CSV or XLSX file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				config.Output = args[0]
			}
			return checkCmd(doExport(config))
		},
	}
	cmd.Flags().StringVarP(
		&config.Columns,
		"columns", "",
		"",
		fmt.Sprintf("Column order, %q or %q (overrides export.columns)", export.DateFirst, export.SalesFirst))
	cmd.Flags().BoolVarP(
		&config.Yes,
		"yes", "y",
		false,
		"Overwrite the output without asking")
	return cmd
}

func doExport(config *exportConfig) error {
	cfg := config.Config
	log := config.Log

	output := cfg.Export.Path.String()
	if config.Output != "" {
		output = config.Output
	}
	cols := cfg.Export.Columns
	if config.Columns != "" {
		var err error
		cols, err = export.ParseColumns(config.Columns)
		if err != nil {
			return usageErr.Wrap(err)
		}
	}

	ds, err := ingest.Build(config.Ctx, cfg.IngestParams(), &logUI{log: log})
	if err != nil {
		return err
	}

	if _, err := os.Stat(output); err == nil && !config.Yes {
		if err := promptConfirm(fmt.Sprintf("Overwrite %s", output)); err != nil {
			return err
		}
	}

	if err := export.WriteFile(output, ds.Records(), cols); err != nil {
		return err
	}
	log.Info("Dataset exported",
		zap.String("path", output),
		zap.String("columns", string(cols)),
		zap.Int("rows", ds.Len()),
	)
	return nil
}
