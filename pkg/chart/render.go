// Package chart draws a projected sales view as a line chart.
package chart

import (
	"fmt"
	"io"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/soulfoods/sales-dashboard/pkg/view"
)

// Error is the class of rendering failures.
var Error = errs.Class("chart")

// Format is an output image format.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ParseFormat parses an image format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case SVG, PNG:
		return f, nil
	default:
		return "", Error.New("unsupported format %q", s)
	}
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() gochart.RendererProvider {
	if f == PNG {
		return gochart.PNG
	}
	return gochart.SVG
}

const (
	DefaultWidth  = 1024
	DefaultHeight = 512
)

// Renderer draws views with a fixed theme and size. The zero value renders
// with the default theme and size.
type Renderer struct {
	Theme  Theme
	Width  int
	Height int
	Log    *zap.Logger
}

// NewRenderer returns a renderer for the named theme.
func NewRenderer(log *zap.Logger, themeName string, width, height int) (*Renderer, error) {
	theme, err := LookupTheme(themeName)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		Theme:  theme,
		Width:  width,
		Height: height,
		Log:    log,
	}, nil
}

// Render draws v to w: dates on the x axis, sales on the y axis and one line
// per region. A view without rows cannot be drawn.
func (r *Renderer) Render(w io.Writer, v view.ProjectedView, format Format) error {
	if len(v.Rows) == 0 {
		return Error.New("%s: no data to plot", v.Title)
	}

	ch := r.build(v)
	if r.Log != nil {
		r.Log.Debug("Rendering chart",
			zap.String("title", v.Title),
			zap.String("format", string(format)),
			zap.Int("series", len(ch.Series)),
			zap.Int("rows", len(v.Rows)),
		)
	}
	if err := ch.Render(format.provider(), w); err != nil {
		return Error.Wrap(err)
	}
	return nil
}

func (r *Renderer) build(v view.ProjectedView) gochart.Chart {
	theme := r.Theme
	if theme.Name == "" {
		theme = themes[DefaultTheme]
	}
	width, height := r.Width, r.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	textStyle := gochart.Style{FontColor: theme.Text, StrokeColor: theme.Text}

	ch := gochart.Chart{
		Title: v.Title,
		TitleStyle: gochart.Style{
			FontColor: theme.Title,
			FontSize:  18,
		},
		Width:  width,
		Height: height,
		Background: gochart.Style{
			FillColor: theme.Background,
			Padding:   gochart.Box{Top: 50, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: gochart.Style{FillColor: theme.Canvas},
		XAxis: gochart.XAxis{
			Name:           "Date",
			NameStyle:      textStyle,
			Style:          textStyle,
			ValueFormatter: gochart.TimeValueFormatterWithFormat(time.DateOnly),
		},
		YAxis: gochart.YAxis{
			Name:           "Sales",
			NameStyle:      textStyle,
			Style:          textStyle,
			ValueFormatter: salesFormatter,
		},
	}

	var first, last time.Time
	var low, high float64
	for i, s := range v.Series {
		ts := gochart.TimeSeries{
			Name: view.Selection(s.Region).Label(),
			Style: gochart.Style{
				StrokeColor: theme.SeriesColor(i),
				StrokeWidth: theme.LineWidth,
				DotColor:    theme.SeriesColor(i),
				DotWidth:    theme.MarkerWidth,
			},
		}
		for _, row := range s.Rows {
			y := row.SalesFloat()
			ts.XValues = append(ts.XValues, row.Date)
			ts.YValues = append(ts.YValues, y)

			if first.IsZero() || row.Date.Before(first) {
				first = row.Date
			}
			if row.Date.After(last) {
				last = row.Date
			}
			if len(ch.Series) == 0 && len(ts.YValues) == 1 {
				low, high = y, y
			}
			low, high = min(low, y), max(high, y)
		}
		ch.Series = append(ch.Series, ts)
	}

	// A single date or a flat line has no extent; give the axes one.
	if first.Equal(last) {
		ch.XAxis.Range = &gochart.ContinuousRange{
			Min: gochart.TimeToFloat64(first.AddDate(0, 0, -1)),
			Max: gochart.TimeToFloat64(last.AddDate(0, 0, 1)),
		}
	}
	if low == high {
		ch.YAxis.Range = &gochart.ContinuousRange{Min: min(0, low), Max: max(1, high*2)}
	}

	ch.Elements = []gochart.Renderable{gochart.Legend(&ch, gochart.Style{
		FillColor:   theme.Legend,
		StrokeColor: theme.Border,
		FontColor:   theme.Text,
	})}
	return ch
}

func salesFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}
