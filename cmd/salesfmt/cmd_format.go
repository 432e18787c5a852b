package main

import (
	"context"
	"fmt"
	"os"

	"github.com/zeebo/clingy"

	"github.com/soulfoods/sales-dashboard/pkg/export"
	"github.com/soulfoods/sales-dashboard/pkg/ingest"
)

type cmdFormat struct {
	source  sourceParams
	output  string
	columns string
	yes     bool
}

func (c *cmdFormat) Setup(params clingy.Parameters) {
	c.source.setup(params)
	c.output = stringFlag(params, "output", "Formatted file to write; a .xlsx extension writes a workbook (overrides export.path)", "")
	c.columns = stringFlag(params, "columns", fmt.Sprintf("Column order, %q or %q (overrides export.columns)", export.DateFirst, export.SalesFirst), "")
	c.yes = toggleFlag(params, "yes", "Overwrite the output without asking", false)
}

func (c *cmdFormat) Execute(ctx context.Context) error {
	cfg, err := c.source.load()
	if err != nil {
		return err
	}

	output := cfg.Export.Path.String()
	if c.output != "" {
		output = c.output
	}
	cols := cfg.Export.Columns
	if c.columns != "" {
		cols, err = export.ParseColumns(c.columns)
		if err != nil {
			return err
		}
	}

	ui := &formatUI{stdout: clingy.Stdout(ctx)}
	ds, err := ingest.Build(ctx, cfg.IngestParams(), ui)
	if err != nil {
		return err
	}

	if _, err := os.Stat(output); err == nil && !c.yes {
		if err := promptConfirm(fmt.Sprintf("Overwrite %s", output)); err != nil {
			return err
		}
	}

	if err := export.WriteFile(output, ds.Records(), cols); err != nil {
		return err
	}
	ui.written(output, ds.Len())
	return nil
}

type cmdCheck struct {
	source sourceParams
}

func (c *cmdCheck) Setup(params clingy.Parameters) {
	c.source.setup(params)
}

func (c *cmdCheck) Execute(ctx context.Context) error {
	cfg, err := c.source.load()
	if err != nil {
		return err
	}
	_, err = ingest.Build(ctx, cfg.IngestParams(), &formatUI{stdout: clingy.Stdout(ctx)})
	return err
}
