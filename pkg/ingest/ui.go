package ingest

import "github.com/soulfoods/sales-dashboard/pkg/sales"

type UI interface {
	Started(StartedEvent)
	CSVLoaded(CSVLoadedEvent)
	RowSkipped(RowSkippedEvent)
	DatasetBuilt(DatasetBuiltEvent)
}

type StartedEvent struct {
	Dir      string
	CSVPaths []string
}

type CSVLoadedEvent struct {
	CSVPath string
	NumRows int
}

type RowSkippedEvent struct {
	File string
	Line int
	Err  error
}

type DatasetBuiltEvent struct {
	Dataset *sales.Dataset
	RawRows int
	Skipped int
}

// NopUI discards all events.
type NopUI struct{}

func (NopUI) Started(StartedEvent)           {}
func (NopUI) CSVLoaded(CSVLoadedEvent)       {}
func (NopUI) RowSkipped(RowSkippedEvent)     {}
func (NopUI) DatasetBuilt(DatasetBuiltEvent) {}
