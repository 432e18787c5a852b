package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/kyokomi/emoji/v2"

	"github.com/soulfoods/sales-dashboard/pkg/ingest"
)

type formatUI struct {
	stdout      io.Writer
	longestPath int
}

func (u *formatUI) Started(evt ingest.StartedEvent) {
	longestPath := len("total")
	for _, csvPath := range evt.CSVPaths {
		if n := len(filepath.Base(csvPath)); n > longestPath {
			longestPath = n
		}
	}
	u.longestPath = longestPath

	u.printf(":information_source: loading %d CSVs from %s\n", len(evt.CSVPaths), evt.Dir)
}

func (u *formatUI) CSVLoaded(evt ingest.CSVLoadedEvent) {
	format := fmt.Sprintf(":white_check_mark: %%%ds: %%d rows\n", u.longestPath)
	u.printf(format, filepath.Base(evt.CSVPath), evt.NumRows)
}

func (u *formatUI) RowSkipped(evt ingest.RowSkippedEvent) {
	format := fmt.Sprintf(":warning: %%%ds  ... line %%d skipped: %%v\n", u.longestPath)
	u.printf(format, filepath.Base(evt.File), evt.Line, evt.Err)
}

func (u *formatUI) DatasetBuilt(evt ingest.DatasetBuiltEvent) {
	stats := evt.Dataset.Stats()

	format := fmt.Sprintf(":information_source: %%%ds: %%s\n", u.longestPath)
	for _, region := range evt.Dataset.Regions() {
		u.printf(format, region, stats.ByRegion[region].StringFixed(2))
	}
	u.printf(format, "total", stats.Total.StringFixed(2))

	ji := ":information_source:"
	if evt.Skipped > 0 {
		ji = ":warning:"
	}
	u.printf("%s %d %q records from %d rows, %d skipped\n", ji, evt.Dataset.Len(), evt.Dataset.Product(), evt.RawRows, evt.Skipped)
}

func (u *formatUI) written(path string, rows int) {
	u.printf(":white_check_mark: wrote %d rows to %s\n", rows, path)
}

func (u *formatUI) printf(format string, args ...interface{}) {
	_, _ = emoji.Fprintf(u.stdout, format, args...)
}
