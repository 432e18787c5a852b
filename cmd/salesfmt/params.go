package main

import (
	"strconv"

	"github.com/zeebo/clingy"

	"github.com/soulfoods/sales-dashboard/pkg/config"
	"github.com/soulfoods/sales-dashboard/pkg/sales"
)

func stringFlag(params clingy.Parameters, name, desc, def string) string {
	return params.Flag(name, desc, def).(string)
}

func toggleFlag(params clingy.Parameters, name, desc string, def bool) bool {
	return params.Flag(name, desc, def, clingy.Transform(strconv.ParseBool), clingy.Boolean).(bool)
}

// sourceParams are the flags shared by every command that reads shards.
type sourceParams struct {
	configPath string
	dataDir    string
	pattern    string
	product    string
	skip       bool
}

func (p *sourceParams) setup(params clingy.Parameters) {
	p.configPath = stringFlag(params, "config", "Path to a TOML config file", "")
	p.dataDir = stringFlag(params, "data-dir", "Directory holding the daily sales CSVs (overrides data.dir)", "")
	p.pattern = stringFlag(params, "pattern", "Glob selecting the CSVs inside the data directory (overrides data.pattern)", "")
	p.product = stringFlag(params, "product", "Product to keep (overrides data.product)", "")
	p.skip = toggleFlag(params, "skip-invalid", "Skip malformed rows instead of aborting", false)
}

func (p *sourceParams) load() (config.Config, error) {
	cfg, err := config.Load(p.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if p.dataDir != "" {
		cfg.Data.Dir = config.ToPath(p.dataDir)
	}
	if p.pattern != "" {
		cfg.Data.Pattern = p.pattern
	}
	if p.product != "" {
		cfg.Data.Product = p.product
	}
	if p.skip {
		cfg.Data.OnInvalid = sales.Skip
	}
	return cfg, nil
}
