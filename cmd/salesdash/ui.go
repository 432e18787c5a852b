package main

import (
	"go.uber.org/zap"

	"github.com/soulfoods/sales-dashboard/pkg/ingest"
)

// logUI reports dataset ingestion through the logger and remembers the
// final event for summaries.
type logUI struct {
	log   *zap.Logger
	built ingest.DatasetBuiltEvent
}

func (u *logUI) Started(evt ingest.StartedEvent) {
	u.log.Info("Loading sales data",
		zap.String("dir", evt.Dir),
		zap.Int("files", len(evt.CSVPaths)),
	)
}

func (u *logUI) CSVLoaded(evt ingest.CSVLoadedEvent) {
	u.log.Debug("CSV loaded",
		zap.String("path", evt.CSVPath),
		zap.Int("rows", evt.NumRows),
	)
}

func (u *logUI) RowSkipped(evt ingest.RowSkippedEvent) {
	u.log.Warn("Row skipped",
		zap.String("file", evt.File),
		zap.Int("line", evt.Line),
		zap.Error(evt.Err),
	)
}

func (u *logUI) DatasetBuilt(evt ingest.DatasetBuiltEvent) {
	u.built = evt
	u.log.Info("Dataset built",
		zap.String("product", evt.Dataset.Product()),
		zap.Int("raw_rows", evt.RawRows),
		zap.Int("records", evt.Dataset.Len()),
		zap.Int("skipped", evt.Skipped),
		zap.Strings("regions", evt.Dataset.Regions()),
	)
}
