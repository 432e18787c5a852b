package fancy

import (
	"io"
	"slices"
	"time"

	"golang.org/x/exp/maps"

	"github.com/soulfoods/sales-dashboard/pkg/sales"
)

// Summary prints dataset statistics: size, date range, sales per region and
// the number of rows dropped while cleaning.
func Summary(w io.Writer, ds *sales.Dataset, rawRows, skipped int) {
	stats := ds.Stats()

	Field(w, Info, "Product", ds.Product())
	Field(w, Info, "Raw rows", rawRows)
	Field(w, Success, "Records", stats.Records)
	Field(w, WarnIfNonZero(skipped), "Skipped rows", skipped)
	if stats.Records == 0 {
		return
	}
	Field(w, Info, "First date", stats.First.Format(time.DateOnly))
	Field(w, Info, "Last date", stats.Last.Format(time.DateOnly))

	regions := maps.Keys(stats.ByRegion)
	slices.Sort(regions)
	for _, region := range regions {
		Field(w, Info, "Sales ("+region+")", stats.ByRegion[region].StringFixed(2))
	}
	Field(w, Success, "Total sales", stats.Total.StringFixed(2))
}
