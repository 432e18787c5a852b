package view_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulfoods/sales-dashboard/pkg/sales"
	"github.com/soulfoods/sales-dashboard/pkg/view"
)

// buildDataset creates a dataset from "date/region/sales" triples.
func buildDataset(t *testing.T, opts sales.Options, triples ...string) *sales.Dataset {
	t.Helper()
	var rows []sales.RawRecord
	for i, triple := range triples {
		parts := strings.Split(triple, "/")
		require.Len(t, parts, 3)
		rows = append(rows, sales.RawRecord{
			File:     "test.csv",
			Line:     i + 2,
			Date:     parts[0],
			Region:   parts[1],
			Product:  sales.DefaultProduct,
			Price:    parts[2],
			Quantity: "1",
		})
	}
	ds, err := sales.Clean(rows, opts)
	require.NoError(t, err)
	return ds
}

func TestProjectAll(t *testing.T) {
	ds := buildDataset(t, sales.Options{},
		"2021-01-02/north/1",
		"2021-01-01/south/2",
		"2021-01-03/North/3",
		"2021-01-02/east/4",
	)

	v := view.Project(ds, view.All)
	assert.Equal(t, "Sales Trend - All Regions", v.Title)
	assert.Equal(t, ds.Records(), v.Rows)
	assert.Equal(t, []string{"south", "north", "east"}, v.Regions())

	var total int
	for _, s := range v.Series {
		total += len(s.Rows)
		for _, row := range s.Rows {
			assert.Equal(t, s.Region, row.Region)
		}
	}
	assert.Equal(t, ds.Len(), total)
}

func TestProjectRegion(t *testing.T) {
	ds := buildDataset(t, sales.Options{},
		"2021-01-01/north/1",
		"2021-01-02/south/2",
		"2021-01-03/north/3",
		"2021-01-04/south/4",
		"2021-01-05/north/5",
	)

	v := view.Project(ds, "south")
	assert.Equal(t, "Sales Trend - South", v.Title)
	require.Len(t, v.Rows, 2)
	for _, row := range v.Rows {
		assert.Equal(t, "south", row.Region)
	}
	assert.Equal(t, "2", v.Rows[0].Sales.String())
	assert.Equal(t, "4", v.Rows[1].Sales.String())
	require.Len(t, v.Series, 1)
	assert.Equal(t, v.Rows, v.Series[0].Rows)
}

func TestProjectIsExactSubsequence(t *testing.T) {
	regions := []string{"north", "East", "south", "WEST"}
	var specs []string
	for i := 0; i < 40; i++ {
		specs = append(specs, fmt.Sprintf("2021-01-%02d/%s/%d", i%28+1, regions[(i*7)%4], i))
	}
	ds := buildDataset(t, sales.Options{RegionCaseSensitive: true}, specs...)

	for _, region := range []string{"north", "east", "SOUTH", "west"} {
		v := view.Project(ds, view.Selection(region))

		var want []sales.CleanRecord
		for _, record := range ds.Records() {
			if strings.EqualFold(record.Region, region) {
				want = append(want, record)
			}
		}
		assert.Equal(t, want, v.Rows, region)
	}
}

func TestProjectUnknownSelection(t *testing.T) {
	ds := buildDataset(t, sales.Options{}, "2021-01-01/north/1")
	v := view.Project(ds, "central")
	assert.Empty(t, v.Rows)
	assert.Empty(t, v.Series)
	assert.Equal(t, "Sales Trend - Central", v.Title)
}

func TestProjectDoesNotAliasDataset(t *testing.T) {
	ds := buildDataset(t, sales.Options{}, "2021-01-01/north/1", "2021-01-02/north/2")
	v := view.Project(ds, view.All)
	v.Rows[0].Region = "mutated"
	assert.Equal(t, "north", ds.At(0).Region)
}

func TestSelectionSet(t *testing.T) {
	ds := buildDataset(t, sales.Options{},
		"2021-01-01/west/1",
		"2021-01-01/central/1",
		"2021-01-01/north/1",
		"2021-01-01/south/1",
	)
	set := view.SelectionSetFor(ds)
	assert.Equal(t, []view.Selection{"north", "south", "west", "central", view.All}, set.Options())

	sel, err := set.Parse(" South ")
	require.NoError(t, err)
	assert.Equal(t, view.Selection("south"), sel)

	sel, err = set.Parse("ALL")
	require.NoError(t, err)
	assert.True(t, sel.IsAll())

	_, err = set.Parse("east")
	require.EqualError(t, err, `unknown region "east"`)
}

func TestSelectionSetDefaults(t *testing.T) {
	set := view.NewSelectionSet(view.DefaultRegions)
	assert.Equal(t, []view.Selection{"north", "east", "south", "west", view.All}, set.Options())

	set = view.NewSelectionSet([]string{"North", "north", "all", ""})
	assert.Equal(t, []view.Selection{"north", view.All}, set.Options())
}

func TestSelectionLabel(t *testing.T) {
	assert.Equal(t, "All Regions", view.All.Label())
	assert.Equal(t, "North", view.Selection("north").Label())
	assert.Equal(t, "North", view.Selection("NORTH").Label())
	assert.Equal(t, "Éast", view.Selection("éast").Label())
	assert.Equal(t, "Sales Trend - Ñorte", view.Project(buildDataset(t, sales.Options{}), view.Selection("ñORTE")).Title)
}
