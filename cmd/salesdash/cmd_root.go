package main

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soulfoods/sales-dashboard/pkg/config"
)

type rootConfig struct {
	Ctx context.Context
	Log *zap.Logger

	ConfigPath string
	DataDir    string
	Debug      bool

	Config config.Config
}

func newRootCommand() *cobra.Command {
	rootConfig := new(rootConfig)
	cmd := &cobra.Command{
		Use:   "salesdash",
		Short: "Visualise Pink Morsel sales by region",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rootConfig.Ctx = cmdCtx()
			return checkCmd(rootConfig.load())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rootConfig.Log != nil {
				_ = rootConfig.Log.Sync()
			}
		},
		Version: getVersion(),
	}
	cmd.PersistentFlags().StringVarP(
		&rootConfig.ConfigPath,
		"config", "c",
		"",
		"Path to a TOML config file")
	cmd.PersistentFlags().StringVarP(
		&rootConfig.DataDir,
		"data-dir", "",
		"",
		"Directory holding the daily sales CSVs (overrides data.dir)")
	cmd.PersistentFlags().BoolVarP(
		&rootConfig.Debug,
		"debug", "",
		false,
		"Enable debug logging")

	cmd.AddCommand(newServeCommand(rootConfig))
	cmd.AddCommand(newExportCommand(rootConfig))
	cmd.AddCommand(newSummaryCommand(rootConfig))
	return cmd
}

func (c *rootConfig) load() error {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		if unknown := config.DumpUnknownFields(err); unknown != "" {
			return fmt.Errorf("%w\n%s", err, unknown)
		}
		return err
	}
	if c.DataDir != "" {
		cfg.Data.Dir = config.ToPath(c.DataDir)
	}
	if c.Debug {
		cfg.Server.Debug = true
	}
	if cfg.Server.Debug {
		cfg.Log.Level = "debug"
	}
	c.Config = cfg

	log, err := openLog(string(cfg.Log.Dir), cfg.Log.Level)
	if err != nil {
		return err
	}
	c.Log = log
	return nil
}

func getVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	return fmt.Sprintf("%s (built with %s)\n", buildInfo.Main.Version, runtime.Version())
}
