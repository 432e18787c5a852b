package chart

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/soulfoods/sales-dashboard/pkg/sales"
	"github.com/soulfoods/sales-dashboard/pkg/view"
)

func day(d int) time.Time {
	return time.Date(2021, time.January, d, 0, 0, 0, 0, time.UTC)
}

func testDataset(t *testing.T) *sales.Dataset {
	t.Helper()
	rows := []sales.RawRecord{
		{File: "a.csv", Line: 2, Date: "2021-01-01", Region: "north", Product: "pink morsel", Price: "$3.00", Quantity: "10"},
		{File: "a.csv", Line: 3, Date: "2021-01-02", Region: "south", Product: "pink morsel", Price: "$3.00", Quantity: "5"},
		{File: "a.csv", Line: 4, Date: "2021-01-03", Region: "north", Product: "pink morsel", Price: "$3.00", Quantity: "7"},
	}
	ds, err := sales.Clean(rows, sales.Options{})
	require.NoError(t, err)
	return ds
}

func TestBuildAllRegions(t *testing.T) {
	r, err := NewRenderer(nil, "light", 800, 400)
	require.NoError(t, err)

	ch := r.build(view.Project(testDataset(t), view.All))
	assert.Equal(t, "Sales Trend - All Regions", ch.Title)
	assert.Equal(t, 800, ch.Width)
	assert.Equal(t, 400, ch.Height)
	require.Len(t, ch.Series, 2)

	north := ch.Series[0].(gochart.TimeSeries)
	assert.Equal(t, "North", north.Name)
	assert.Equal(t, []time.Time{day(1), day(3)}, north.XValues)
	assert.Equal(t, []float64{30, 21}, north.YValues)

	south := ch.Series[1].(gochart.TimeSeries)
	assert.Equal(t, "South", south.Name)
	assert.Equal(t, []float64{15}, south.YValues)
	assert.NotEqual(t, north.Style.StrokeColor, south.Style.StrokeColor)

	assert.Nil(t, ch.XAxis.Range)
	assert.Nil(t, ch.YAxis.Range)
	assert.Len(t, ch.Elements, 1)
}

func TestBuildSinglePoint(t *testing.T) {
	r := &Renderer{}
	ch := r.build(view.Project(testDataset(t), "south"))
	require.Len(t, ch.Series, 1)
	assert.Equal(t, DefaultWidth, ch.Width)
	assert.Equal(t, DefaultHeight, ch.Height)

	require.NotNil(t, ch.XAxis.Range)
	assert.Equal(t, gochart.TimeToFloat64(day(1)), ch.XAxis.Range.GetMin())
	assert.Equal(t, gochart.TimeToFloat64(day(3)), ch.XAxis.Range.GetMax())
	require.NotNil(t, ch.YAxis.Range)
	assert.Equal(t, 0.0, ch.YAxis.Range.GetMin())
	assert.Equal(t, 30.0, ch.YAxis.Range.GetMax())
}

func TestRender(t *testing.T) {
	r, err := NewRenderer(nil, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, r.Theme.Name)

	ds := testDataset(t)

	var svg bytes.Buffer
	require.NoError(t, r.Render(&svg, view.Project(ds, view.All), SVG))
	assert.Contains(t, svg.String(), "<svg")
	assert.Contains(t, svg.String(), "Sales Trend - All Regions")

	var png bytes.Buffer
	require.NoError(t, r.Render(&png, view.Project(ds, "south"), PNG))
	assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))
}

func TestRenderEmptyView(t *testing.T) {
	r := &Renderer{}
	err := r.Render(new(bytes.Buffer), view.Project(testDataset(t), "central"), SVG)
	require.EqualError(t, err, "chart: Sales Trend - Central: no data to plot")
	assert.True(t, Error.Has(err))
}

func TestThemes(t *testing.T) {
	assert.Equal(t, []string{"dark", "light", "morsel"}, ThemeNames())

	theme, err := LookupTheme("Morsel")
	require.NoError(t, err)
	assert.Equal(t, "morsel", theme.Name)
	assert.Equal(t, theme.SeriesColor(0), theme.SeriesColor(len(theme.Palette)))

	_, err = LookupTheme("neon")
	require.EqualError(t, err, `unknown theme "neon"; expected one of ["dark" "light" "morsel"]`)

	_, err = NewRenderer(nil, "neon", 0, 0)
	assert.True(t, Error.Has(err))
}

func TestFormat(t *testing.T) {
	f, err := ParseFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	assert.Equal(t, "image/png", f.ContentType())
	assert.Equal(t, "image/svg+xml", SVG.ContentType())

	_, err = ParseFormat("gif")
	require.EqualError(t, err, `chart: unsupported format "gif"`)
}

func TestSalesFormatter(t *testing.T) {
	assert.Equal(t, "1638", salesFormatter(1638.0))
	assert.Equal(t, "", salesFormatter("x"))
}
