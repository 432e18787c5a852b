package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"github.com/zeebo/errs"

	"github.com/soulfoods/sales-dashboard/pkg/chart"
	"github.com/soulfoods/sales-dashboard/pkg/export"
	"github.com/soulfoods/sales-dashboard/pkg/ingest"
	"github.com/soulfoods/sales-dashboard/pkg/sales"
	"github.com/soulfoods/sales-dashboard/pkg/salescsv"
)

// Error is the class of configuration failures.
var Error = errs.Class("config")

// EnvPrefix prefixes every environment override, e.g. SALESDASH_DATA_DIR.
const EnvPrefix = "SALESDASH"

type MissingFieldsError = toml.StrictMissingError

type Config struct {
	Data   Data   `toml:"data"`
	Match  Match  `toml:"match"`
	Server Server `toml:"server"`
	Chart  Chart  `toml:"chart"`
	Export Export `toml:"export"`
	Log    Log    `toml:"log"`
}

type Data struct {
	// Dir is the directory holding the daily sales shards.
	Dir Path `toml:"dir" split_words:"true" validate:"required"`

	// Pattern selects the shards inside Dir.
	Pattern string `toml:"pattern" split_words:"true" validate:"required"`

	// Product is the tracked product.
	Product string `toml:"product" split_words:"true" validate:"required"`

	// OnInvalid is the invalid row policy, "abort" or "skip".
	OnInvalid sales.Policy `toml:"on_invalid" split_words:"true" validate:"oneof=abort skip"`
}

type Match struct {
	ProductCaseInsensitive bool `toml:"product_case_insensitive" split_words:"true"`
	RegionCaseSensitive    bool `toml:"region_case_sensitive" split_words:"true"`
}

type Server struct {
	// Address is the listen address of the dashboard.
	Address string `toml:"address" split_words:"true" validate:"required,hostname_port"`

	// Title is the page header.
	Title string `toml:"title" split_words:"true" validate:"required"`

	ReadTimeout     Duration `toml:"read_timeout" split_words:"true" validate:"gt=0"`
	WriteTimeout    Duration `toml:"write_timeout" split_words:"true" validate:"gt=0"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" split_words:"true" validate:"gt=0"`

	// Debug enables debug logging and per request logs.
	Debug bool `toml:"debug" split_words:"true"`
}

type Chart struct {
	Theme  string `toml:"theme" split_words:"true" validate:"oneof=dark light morsel"`
	Width  int    `toml:"width" split_words:"true" validate:"gte=200,lte=4096"`
	Height int    `toml:"height" split_words:"true" validate:"gte=150,lte=4096"`
}

type Export struct {
	// Path is where the formatted artifact is written. A .xlsx extension
	// writes a workbook.
	Path Path `toml:"path" split_words:"true" validate:"required"`

	Columns export.Columns `toml:"columns" split_words:"true" validate:"oneof=date-first sales-first"`
}

type Log struct {
	// Dir, if set, receives a JSON log file per run.
	Dir Path `toml:"dir" split_words:"true"`

	Level string `toml:"level" split_words:"true" validate:"oneof=debug info warn error"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	const (
		defaultDataDir         = "./data"
		defaultAddress         = "127.0.0.1:8050"
		defaultTitle           = "Pink Morsel Sales Visualiser"
		defaultReadTimeout     = Duration(15 * time.Second)
		defaultWriteTimeout    = Duration(30 * time.Second)
		defaultShutdownTimeout = Duration(10 * time.Second)
		defaultLogLevel        = "info"
	)

	return Config{
		Data: Data{
			Dir:       ToPath(defaultDataDir),
			Pattern:   salescsv.DefaultPattern,
			Product:   sales.DefaultProduct,
			OnInvalid: sales.Abort,
		},
		Server: Server{
			Address:         defaultAddress,
			Title:           defaultTitle,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Chart: Chart{
			Theme:  chart.DefaultTheme,
			Width:  chart.DefaultWidth,
			Height: chart.DefaultHeight,
		},
		Export: Export{
			Path:    ToPath(export.DefaultPath),
			Columns: export.DateFirst,
		},
		Log: Log{
			Level: defaultLogLevel,
		},
	}
}

// Load reads the TOML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	config := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, Error.New("failed to read config: %v", err)
		}
		config, err = Parse(data)
		if err != nil {
			return Config{}, err
		}
	}

	if err := config.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Parse decodes TOML over the defaults. Unknown fields are rejected.
func Parse(data []byte) (Config, error) {
	config := Default()

	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	if err := d.Decode(&config); err != nil {
		return Config{}, Error.Wrap(fmt.Errorf("failed to unmarshal config: %w", err))
	}
	return config, nil
}

// ApplyEnv overrides fields from SALESDASH_<SECTION>_<FIELD> environment
// variables, e.g. SALESDASH_SERVER_READ_TIMEOUT. Unset variables leave the
// field alone. Fields carry no envconfig alias tags, so unprefixed variables
// such as PATH are never consulted.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return Error.New("failed to load config from env: %v", err)
	}
	return nil
}

func DumpUnknownFields(err error) string {
	var sme *toml.StrictMissingError
	if errors.As(err, &sme) {
		return sme.String()
	}
	return ""
}

// SalesOptions returns the cleaning pipeline options.
func (c Config) SalesOptions() sales.Options {
	return sales.Options{
		Product:                c.Data.Product,
		ProductCaseInsensitive: c.Match.ProductCaseInsensitive,
		RegionCaseSensitive:    c.Match.RegionCaseSensitive,
		Policy:                 c.Data.OnInvalid,
	}
}

// IngestParams returns the parameters to build the dataset with.
func (c Config) IngestParams() ingest.Params {
	return ingest.Params{
		Dir:     string(c.Data.Dir),
		Pattern: c.Data.Pattern,
		Options: c.SalesOptions(),
	}
}
