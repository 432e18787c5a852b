package dashboard

import (
	"net/url"
	"time"

	"github.com/soulfoods/sales-dashboard/pkg/view"
)

// RowPayload is one observation of a view. Sales is the exact decimal.
type RowPayload struct {
	Date   string `json:"date"`
	Region string `json:"region"`
	Sales  string `json:"sales"`
}

// SeriesPayload is one region line, ready to plot.
type SeriesPayload struct {
	Region string    `json:"region"`
	Label  string    `json:"label"`
	Dates  []string  `json:"dates"`
	Sales  []float64 `json:"sales"`
}

// ViewPayload is the JSON form of a projected view.
type ViewPayload struct {
	Selection string          `json:"selection"`
	Title     string          `json:"title"`
	ChartURL  string          `json:"chart_url"`
	Rows      []RowPayload    `json:"rows"`
	Series    []SeriesPayload `json:"series"`
}

func newViewPayload(v view.ProjectedView) ViewPayload {
	payload := ViewPayload{
		Selection: string(v.Selection),
		Title:     v.Title,
		ChartURL:  chartURL(v.Selection),
		Rows:      make([]RowPayload, 0, len(v.Rows)),
		Series:    make([]SeriesPayload, 0, len(v.Series)),
	}
	for _, row := range v.Rows {
		payload.Rows = append(payload.Rows, RowPayload{
			Date:   row.Date.Format(time.DateOnly),
			Region: row.Region,
			Sales:  row.Sales.String(),
		})
	}
	for _, s := range v.Series {
		sp := SeriesPayload{
			Region: s.Region,
			Label:  view.Selection(s.Region).Label(),
			Dates:  make([]string, 0, len(s.Rows)),
			Sales:  make([]float64, 0, len(s.Rows)),
		}
		for _, row := range s.Rows {
			sp.Dates = append(sp.Dates, row.Date.Format(time.DateOnly))
			sp.Sales = append(sp.Sales, row.SalesFloat())
		}
		payload.Series = append(payload.Series, sp)
	}
	return payload
}

func chartURL(sel view.Selection) string {
	return "/chart.svg?" + url.Values{"region": {string(sel)}}.Encode()
}

// RegionsPayload lists the selections a client may send.
type RegionsPayload struct {
	Options []OptionPayload `json:"options"`
	Default string          `json:"default"`
}

type OptionPayload struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SelectMessage is sent by websocket clients to change the selection.
type SelectMessage struct {
	Region string `json:"region"`
}

// Message is sent to websocket clients. Exactly one of View and Error is set.
type Message struct {
	Type  string       `json:"type"`
	View  *ViewPayload `json:"view,omitempty"`
	Error string       `json:"error,omitempty"`
}

const (
	messageView  = "view"
	messageError = "error"
)

type errorPayload struct {
	Error string `json:"error"`
}
