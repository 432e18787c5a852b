package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulfoods/sales-dashboard/pkg/config"
	"github.com/soulfoods/sales-dashboard/pkg/export"
	"github.com/soulfoods/sales-dashboard/pkg/ingest"
	"github.com/soulfoods/sales-dashboard/pkg/sales"
)

func TestLoad_Defaults(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	cfg, err := config.Load("./testdata/defaults.toml")
	t.Logf("unknown fields:\n%s", config.DumpUnknownFields(err))
	require.NoError(t, err)

	assert.Equal(t, config.Config{
		Data: config.Data{
			Dir:       config.Path(filepath.Join(home, "sales")),
			Pattern:   "daily_sales_data_*.csv",
			Product:   "pink morsel",
			OnInvalid: sales.Abort,
		},
		Server: config.Server{
			Address:         "127.0.0.1:8050",
			Title:           "Pink Morsel Sales Visualiser",
			ReadTimeout:     config.Duration(15 * time.Second),
			WriteTimeout:    config.Duration(30 * time.Second),
			ShutdownTimeout: config.Duration(10 * time.Second),
		},
		Chart: config.Chart{
			Theme:  "dark",
			Width:  1024,
			Height: 512,
		},
		Export: config.Export{
			Path:    "formatted_data.csv",
			Columns: export.DateFirst,
		},
		Log: config.Log{
			Level: "info",
		},
	}, cfg)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := config.Load("./testdata/override.toml")
	require.NoError(t, err)

	assert.Equal(t, config.Config{
		Data: config.Data{
			Dir:       "/srv/sales",
			Pattern:   "*.csv",
			Product:   "gold morsel",
			OnInvalid: sales.Skip,
		},
		Match: config.Match{
			ProductCaseInsensitive: true,
			RegionCaseSensitive:    true,
		},
		Server: config.Server{
			Address:         "0.0.0.0:9000",
			Title:           "Gold Morsel Sales",
			ReadTimeout:     config.Duration(5 * time.Second),
			WriteTimeout:    config.Duration(time.Minute),
			ShutdownTimeout: config.Duration(3 * time.Second),
			Debug:           true,
		},
		Chart: config.Chart{
			Theme:  "morsel",
			Width:  800,
			Height: 600,
		},
		Export: config.Export{
			Path:    "out.xlsx",
			Columns: export.SalesFirst,
		},
		Log: config.Log{
			Dir:   "/var/log/salesdash",
			Level: "debug",
		},
	}, cfg)

	assert.Equal(t, ingest.Params{
		Dir:     "/srv/sales",
		Pattern: "*.csv",
		Options: sales.Options{
			Product:                "gold morsel",
			ProductCaseInsensitive: true,
			RegionCaseSensitive:    true,
			Policy:                 sales.Skip,
		},
	}, cfg.IngestParams())
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SALESDASH_DATA_DIR", "/env/data")
	t.Setenv("SALESDASH_DATA_ON_INVALID", "skip")
	t.Setenv("SALESDASH_SERVER_ADDRESS", "127.0.0.1:9999")
	t.Setenv("SALESDASH_SERVER_READ_TIMEOUT", "2s")
	t.Setenv("SALESDASH_SERVER_DEBUG", "true")
	t.Setenv("SALESDASH_CHART_WIDTH", "640")

	cfg, err := config.Load("./testdata/override.toml")
	require.NoError(t, err)

	assert.Equal(t, config.Path("/env/data"), cfg.Data.Dir)
	assert.Equal(t, sales.Skip, cfg.Data.OnInvalid)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Address)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout.Std())
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, 640, cfg.Chart.Width)

	// untouched by the environment
	assert.Equal(t, "*.csv", cfg.Data.Pattern)
	assert.Equal(t, time.Minute, cfg.Server.WriteTimeout.Std())
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load("./testdata/missing.toml")
	require.Error(t, err)
	assert.True(t, config.Error.Has(err))

	_, err = config.Load("./testdata/unknown.toml")
	require.Error(t, err)
	assert.True(t, config.Error.Has(err))
	assert.Contains(t, config.DumpUnknownFields(err), "shards")

	_, err = config.Load("./testdata/invalid.toml")
	require.EqualError(t, err, "config: invalid configuration: "+
		`data.on_invalid must be one of [abort skip], got "ignore"; `+
		`chart.theme must be one of [dark light morsel], got "neon"; `+
		"chart.width must be gte 200")

	t.Setenv("SALESDASH_CHART_HEIGHT", "tall")
	_, err = config.Load("")
	require.Error(t, err)
	assert.True(t, config.Error.Has(err))
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Dir = ""
	cfg.Server.Address = "localhost"
	cfg.Server.ShutdownTimeout = 0
	require.EqualError(t, cfg.Validate(), "config: invalid configuration: "+
		"data.dir is required; "+
		`server.address must be host:port, got "localhost"; `+
		"server.shutdown_timeout must be gt 0")
}

func TestToPath(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	assert.Equal(t, config.Path(filepath.Join(home, "data")), config.ToPath("~/data"))
	assert.Equal(t, config.Path("/abs/data"), config.ToPath("/abs/data"))
	assert.Equal(t, config.Path("~other/data"), config.ToPath("~other/data"))
}
