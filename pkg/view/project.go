package view

import (
	"strings"

	"github.com/soulfoods/sales-dashboard/pkg/sales"
)

// TitlePrefix starts every view title.
const TitlePrefix = "Sales Trend - "

// Series is the rows of one region inside a view, in date order.
type Series struct {
	Region string
	Rows   []sales.CleanRecord
}

// ProjectedView is the display-ready subset of a Dataset for one Selection.
type ProjectedView struct {
	Selection Selection
	Title     string
	Rows      []sales.CleanRecord

	// Series groups Rows by region in order of first appearance.
	Series []Series
}

// Project returns the rows of ds matching sel. All returns every row in
// dataset order; any other value keeps the rows whose region equals sel,
// ignoring case, preserving order. Project never fails: a selection that
// matches no region yields an empty view.
func Project(ds *sales.Dataset, sel Selection) ProjectedView {
	v := ProjectedView{
		Selection: sel,
		Title:     TitlePrefix + sel.Label(),
	}

	if sel.IsAll() {
		v.Rows = ds.Records()
	} else {
		ds.All(func(_ int, record sales.CleanRecord) bool {
			if strings.EqualFold(record.Region, string(sel)) {
				v.Rows = append(v.Rows, record)
			}
			return true
		})
	}

	v.Series = groupByRegion(v.Rows)
	return v
}

func groupByRegion(rows []sales.CleanRecord) []Series {
	var series []Series
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.Region]
		if !ok {
			i = len(series)
			index[row.Region] = i
			series = append(series, Series{Region: row.Region})
		}
		series[i].Rows = append(series[i].Rows, row)
	}
	return series
}

// Regions returns the regions present in the view.
func (v ProjectedView) Regions() []string {
	regions := make([]string, 0, len(v.Series))
	for _, s := range v.Series {
		regions = append(regions, s.Region)
	}
	return regions
}
