// Package ingest builds the sales Dataset from a directory of shards. It is
// run once at startup; the resulting Dataset is never rebuilt in place.
package ingest

import (
	"context"

	"github.com/zeebo/errs"

	"github.com/soulfoods/sales-dashboard/pkg/sales"
	"github.com/soulfoods/sales-dashboard/pkg/salescsv"
)

type Params struct {
	// Dir is the directory holding the shards
	Dir string

	// Pattern is the glob used to select shards inside Dir
	Pattern string

	// Options configures the cleaning pipeline. OnSkip is managed by Build.
	Options sales.Options
}

// Build loads every shard, runs the cleaning pipeline and reports progress to
// ui. A nil ui is allowed.
func Build(ctx context.Context, params Params, ui UI) (*sales.Dataset, error) {
	if ui == nil {
		ui = NopUI{}
	}
	if params.Dir == "" {
		return nil, salescsv.LoadError.New("data directory is required")
	}

	csvPaths, err := salescsv.Discover(params.Dir, params.Pattern)
	if err != nil {
		return nil, err
	}
	ui.Started(StartedEvent{Dir: params.Dir, CSVPaths: csvPaths})

	shards, err := salescsv.LoadShards(ctx, csvPaths)
	if err != nil {
		return nil, err
	}
	for _, shard := range shards {
		ui.CSVLoaded(CSVLoadedEvent{CSVPath: shard.Path, NumRows: len(shard.Rows)})
	}

	rows := salescsv.Concat(shards)

	var skipped int
	opts := params.Options
	opts.OnSkip = func(raw sales.RawRecord, err error) {
		skipped++
		ui.RowSkipped(RowSkippedEvent{File: raw.File, Line: raw.Line, Err: err})
	}

	ds, err := sales.Clean(rows, opts)
	if err != nil {
		return nil, err
	}
	if ds.Len() == 0 {
		return nil, errs.New("no %q records found in %d rows", ds.Product(), len(rows))
	}

	ui.DatasetBuilt(DatasetBuiltEvent{
		Dataset: ds,
		RawRows: len(rows),
		Skipped: skipped,
	})

	return ds, nil
}
