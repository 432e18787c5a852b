package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulfoods/sales-dashboard/pkg/ingest"
	"github.com/soulfoods/sales-dashboard/pkg/sales"
	"github.com/soulfoods/sales-dashboard/pkg/salescsv"
)

type recordingUI struct {
	started ingest.StartedEvent
	loaded  []ingest.CSVLoadedEvent
	skipped []ingest.RowSkippedEvent
	built   *ingest.DatasetBuiltEvent
}

func (ui *recordingUI) Started(evt ingest.StartedEvent)     { ui.started = evt }
func (ui *recordingUI) CSVLoaded(evt ingest.CSVLoadedEvent) { ui.loaded = append(ui.loaded, evt) }
func (ui *recordingUI) RowSkipped(evt ingest.RowSkippedEvent) {
	ui.skipped = append(ui.skipped, evt)
}
func (ui *recordingUI) DatasetBuilt(evt ingest.DatasetBuiltEvent) { ui.built = &evt }

func writeShards(t *testing.T, shards map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range shards {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}
	return dir
}

const header = "product,price,quantity,date,region\n"

func TestBuild(t *testing.T) {
	dir := writeShards(t, map[string]string{
		"daily_sales_data_0.csv": header +
			"pink morsel,$3.00,546,2018-02-06,north\n" +
			"gold morsel,$9.99,4,2018-02-06,north\n",
		"daily_sales_data_1.csv": header +
			"pink morsel,$3.00,10,2018-02-05,south\n" +
			"pink morsel,abc,10,2018-02-05,south\n",
	})

	t.Run("abort", func(t *testing.T) {
		ui := new(recordingUI)
		_, err := ingest.Build(context.Background(), ingest.Params{Dir: dir}, ui)
		require.EqualError(t, err, `malformed price: daily_sales_data_1.csv: record on line 3: "abc" is not numeric`)
		assert.Len(t, ui.loaded, 2)
		assert.Nil(t, ui.built)
	})

	t.Run("skip", func(t *testing.T) {
		ui := new(recordingUI)
		ds, err := ingest.Build(context.Background(), ingest.Params{
			Dir:     dir,
			Options: sales.Options{Policy: sales.Skip},
		}, ui)
		require.NoError(t, err)

		assert.Equal(t, dir, ui.started.Dir)
		assert.Equal(t, []string{
			filepath.Join(dir, "daily_sales_data_0.csv"),
			filepath.Join(dir, "daily_sales_data_1.csv"),
		}, ui.started.CSVPaths)
		assert.Equal(t, []ingest.CSVLoadedEvent{
			{CSVPath: filepath.Join(dir, "daily_sales_data_0.csv"), NumRows: 2},
			{CSVPath: filepath.Join(dir, "daily_sales_data_1.csv"), NumRows: 2},
		}, ui.loaded)

		require.Len(t, ui.skipped, 1)
		assert.Equal(t, "daily_sales_data_1.csv", ui.skipped[0].File)
		assert.Equal(t, 3, ui.skipped[0].Line)
		assert.True(t, sales.MalformedPriceError.Has(ui.skipped[0].Err))

		require.NotNil(t, ui.built)
		assert.Equal(t, 4, ui.built.RawRows)
		assert.Equal(t, 1, ui.built.Skipped)
		assert.Same(t, ds, ui.built.Dataset)

		require.Equal(t, 2, ds.Len())
		assert.Equal(t, "south", ds.At(0).Region)
		assert.Equal(t, "north", ds.At(1).Region)
	})
}

func TestBuildErrors(t *testing.T) {
	_, err := ingest.Build(context.Background(), ingest.Params{}, nil)
	require.EqualError(t, err, "load: data directory is required")

	_, err = ingest.Build(context.Background(), ingest.Params{Dir: t.TempDir()}, nil)
	assert.True(t, salescsv.LoadError.Has(err))

	dir := writeShards(t, map[string]string{
		"daily_sales_data_0.csv": header + "gold morsel,$9.99,4,2018-02-06,north\n",
	})
	_, err = ingest.Build(context.Background(), ingest.Params{Dir: dir}, nil)
	require.EqualError(t, err, `no "pink morsel" records found in 1 rows`)
}
