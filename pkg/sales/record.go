// Package sales holds the sales record types and the cleaning pipeline that
// turns raw shard rows into an immutable, date ordered Dataset.
package sales

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
)

// RawRecord is one row as read from a shard. All values are kept textual so
// the pipeline owns validation.
type RawRecord struct {
	// File is the shard the row was read from
	File string

	// Line number in the shard
	Line int

	Date     string
	Region   string
	Product  string
	Price    string
	Quantity string

	// Sales is only set for pre-aggregated shards (Date,Sales,Region)
	Sales string

	// Aggregated is true when the row came from a pre-aggregated shard and
	// Product/Price/Quantity are absent.
	Aggregated bool
}

// CleanRecord is a validated sales observation for the tracked product.
type CleanRecord struct {
	// Date is the calendar date at UTC midnight
	Date time.Time

	// Region is the normalized (lower-case) region label
	Region string

	// Sales is price * quantity
	Sales decimal.Decimal
}

// SalesFloat returns Sales as a float for plotting.
func (r CleanRecord) SalesFloat() float64 {
	return r.Sales.InexactFloat64()
}

// Dataset is an ordered, immutable sequence of CleanRecords sorted ascending
// by date. It is only built by Clean.
type Dataset struct {
	product string
	records []CleanRecord
	regions []string
}

func newDataset(product string, records []CleanRecord) *Dataset {
	seen := make(map[string]struct{})
	for _, record := range records {
		seen[record.Region] = struct{}{}
	}
	regions := maps.Keys(seen)
	slices.Sort(regions)

	return &Dataset{
		product: product,
		records: records,
		regions: regions,
	}
}

// Product is the tracked product the dataset was filtered to.
func (ds *Dataset) Product() string { return ds.product }

// Len returns the number of records.
func (ds *Dataset) Len() int { return len(ds.records) }

// At returns the i'th record.
func (ds *Dataset) At(i int) CleanRecord { return ds.records[i] }

// Records returns a copy of the records in date order.
func (ds *Dataset) Records() []CleanRecord {
	return slices.Clone(ds.records)
}

// All calls fn for every record in order until fn returns false.
func (ds *Dataset) All(fn func(int, CleanRecord) bool) {
	for i, record := range ds.records {
		if !fn(i, record) {
			return
		}
	}
}

// Regions returns the distinct regions present, sorted.
func (ds *Dataset) Regions() []string {
	return slices.Clone(ds.regions)
}

// Stats summarizes a dataset.
type Stats struct {
	// Records is the number of records
	Records int

	// First and Last are the earliest and latest dates
	First time.Time
	Last  time.Time

	// Total is the sum of all sales
	Total decimal.Decimal

	// ByRegion is the sum of sales per region
	ByRegion map[string]decimal.Decimal
}

// Stats computes totals across the dataset.
func (ds *Dataset) Stats() Stats {
	stats := Stats{
		Records:  len(ds.records),
		Total:    decimal.Zero,
		ByRegion: make(map[string]decimal.Decimal),
	}
	if len(ds.records) == 0 {
		return stats
	}
	stats.First = ds.records[0].Date
	stats.Last = ds.records[len(ds.records)-1].Date
	for _, record := range ds.records {
		stats.Total = stats.Total.Add(record.Sales)
		stats.ByRegion[record.Region] = stats.ByRegion[record.Region].Add(record.Sales)
	}
	return stats
}
