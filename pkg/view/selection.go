// Package view projects a sales Dataset onto the region the user selected.
package view

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zeebo/errs"

	"github.com/soulfoods/sales-dashboard/pkg/sales"
)

// Selection is a region filter choice. The zero value is not valid; use All
// or a value returned by a SelectionSet.
type Selection string

// All selects every region.
const All Selection = "all"

// DefaultRegions is the selection set used when the data does not define one.
var DefaultRegions = []string{"north", "east", "south", "west"}

// IsAll reports whether the selection is the unfiltered view.
func (s Selection) IsAll() bool {
	return strings.EqualFold(string(s), string(All))
}

// Label is the display form of the selection, e.g. "South" or "All Regions".
func (s Selection) Label() string {
	if s.IsAll() {
		return "All Regions"
	}
	return capitalize(string(s))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// SelectionSet is the closed set of selections a host may offer.
type SelectionSet struct {
	regions []string
}

// NewSelectionSet builds a set from region labels. Order is kept, case is
// folded and duplicates are dropped.
func NewSelectionSet(regions []string) SelectionSet {
	seen := make(map[string]struct{}, len(regions))
	var set SelectionSet
	for _, region := range regions {
		region = strings.ToLower(strings.TrimSpace(region))
		if region == "" || region == string(All) {
			continue
		}
		if _, ok := seen[region]; ok {
			continue
		}
		seen[region] = struct{}{}
		set.regions = append(set.regions, region)
	}
	return set
}

// SelectionSetFor returns the selection set for a dataset: the default
// regions first, in their usual order, followed by any other region present
// in the data. Default regions absent from the data are dropped; an empty
// dataset gets DefaultRegions.
func SelectionSetFor(ds *sales.Dataset) SelectionSet {
	present := make(map[string]struct{})
	for _, region := range ds.Regions() {
		present[strings.ToLower(region)] = struct{}{}
	}

	var regions []string
	for _, region := range DefaultRegions {
		if _, ok := present[region]; ok {
			regions = append(regions, region)
			delete(present, region)
		}
	}
	for _, region := range ds.Regions() {
		if _, ok := present[strings.ToLower(region)]; ok {
			regions = append(regions, region)
		}
	}
	if len(regions) == 0 {
		regions = DefaultRegions
	}
	return NewSelectionSet(regions)
}

// Options returns every selection in display order, ending with All.
func (set SelectionSet) Options() []Selection {
	options := make([]Selection, 0, len(set.regions)+1)
	for _, region := range set.regions {
		options = append(options, Selection(region))
	}
	return append(options, All)
}

// Parse validates s against the set. Matching is case-insensitive and
// surrounding space is ignored.
func (set SelectionSet) Parse(s string) (Selection, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == string(All) {
		return All, nil
	}
	for _, region := range set.regions {
		if region == s {
			return Selection(region), nil
		}
	}
	return "", errs.New("unknown region %q", s)
}
