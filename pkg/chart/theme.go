package chart

import (
	"sort"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/zeebo/errs"
	"golang.org/x/exp/maps"
)

// Theme is the colour scheme of a rendered chart.
type Theme struct {
	Name string

	Background drawing.Color
	Canvas     drawing.Color
	Title      drawing.Color
	Text       drawing.Color
	Legend     drawing.Color
	Border     drawing.Color

	// Palette colours the series in order, wrapping around.
	Palette []drawing.Color

	// LineWidth is the stroke width of each series
	LineWidth float64

	// MarkerWidth draws a dot on every observation when non-zero
	MarkerWidth float64
}

var themes = map[string]Theme{
	"dark": {
		Name:        "dark",
		Background:  drawing.ColorFromHex("1e1e2f"),
		Canvas:      drawing.ColorFromHex("2c2c54"),
		Title:       drawing.ColorFromHex("ff6f91"),
		Text:        drawing.ColorFromHex("ffffff"),
		Legend:      drawing.ColorFromHex("1e1e2f"),
		Border:      drawing.ColorFromHex("ff6f91"),
		Palette:     palette("636efa", "ef553b", "00cc96", "ab63fa", "ffa15a", "19d3f3"),
		LineWidth:   3,
		MarkerWidth: 4,
	},
	"light": {
		Name:       "light",
		Background: drawing.ColorWhite,
		Canvas:     drawing.ColorFromHex("f7f7f7"),
		Title:      drawing.ColorFromHex("333333"),
		Text:       drawing.ColorFromHex("333333"),
		Legend:     drawing.ColorWhite,
		Border:     drawing.ColorFromHex("cccccc"),
		Palette:    palette("1f77b4", "ff7f0e", "2ca02c", "d62728", "9467bd", "8c564b"),
		LineWidth:  2,
	},
	"morsel": {
		Name:        "morsel",
		Background:  drawing.ColorFromHex("fff0f5"),
		Canvas:      drawing.ColorWhite,
		Title:       drawing.ColorFromHex("c2185b"),
		Text:        drawing.ColorFromHex("4a148c"),
		Legend:      drawing.ColorFromHex("fff0f5"),
		Border:      drawing.ColorFromHex("f06292"),
		Palette:     palette("ec407a", "ab47bc", "7e57c2", "f48fb1", "5c6bc0", "ff8a65"),
		LineWidth:   3,
		MarkerWidth: 5,
	},
}

func palette(hexes ...string) []drawing.Color {
	colors := make([]drawing.Color, 0, len(hexes))
	for _, hex := range hexes {
		colors = append(colors, drawing.ColorFromHex(hex))
	}
	return colors
}

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "dark"

// ThemeNames returns the names of the built-in themes, sorted.
func ThemeNames() []string {
	names := maps.Keys(themes)
	sort.Strings(names)
	return names
}

// LookupTheme returns the named theme. The empty name selects DefaultTheme.
func LookupTheme(name string) (Theme, error) {
	if name == "" {
		name = DefaultTheme
	}
	theme, ok := themes[strings.ToLower(name)]
	if !ok {
		return Theme{}, errs.New("unknown theme %q; expected one of %q", name, ThemeNames())
	}
	return theme, nil
}

// SeriesColor returns the colour of the i'th series.
func (t Theme) SeriesColor(i int) drawing.Color {
	if len(t.Palette) == 0 {
		return drawing.ColorBlack
	}
	return t.Palette[i%len(t.Palette)]
}
