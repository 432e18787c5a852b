package sales

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zeebo/errs"
)

// DefaultProduct is the product tracked when none is configured.
const DefaultProduct = "pink morsel"

// Policy decides what happens to a row that fails validation.
type Policy string

const (
	// Abort fails the whole pipeline on the first invalid row.
	Abort Policy = "abort"

	// Skip drops invalid rows and reports them through Options.OnSkip.
	Skip Policy = "skip"
)

// PolicyFromString parses a policy name.
func PolicyFromString(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(s)); p {
	case Abort, Skip:
		return p, nil
	default:
		return "", errs.New("invalid policy %q; expected %q or %q", s, Abort, Skip)
	}
}

// Options configures Clean.
type Options struct {
	// Product is the tracked product. Rows for any other product are dropped.
	Product string

	// ProductCaseInsensitive compares products without regard to case.
	ProductCaseInsensitive bool

	// RegionCaseSensitive keeps region labels as written instead of
	// lower-casing them.
	RegionCaseSensitive bool

	// Policy is the invalid row policy. Defaults to Abort.
	Policy Policy

	// OnSkip, if set, is called for every row dropped under the Skip policy.
	OnSkip func(raw RawRecord, err error)
}

func (opts Options) matchesProduct(product string) bool {
	product = strings.TrimSpace(product)
	if opts.ProductCaseInsensitive {
		return strings.EqualFold(product, opts.Product)
	}
	return product == opts.Product
}

// NormalizeRegion returns the canonical form of a region label.
func (opts Options) NormalizeRegion(region string) string {
	region = strings.TrimSpace(region)
	if opts.RegionCaseSensitive {
		return region
	}
	return strings.ToLower(region)
}

// Clean filters raw rows to the tracked product, derives sales and dates and
// returns them as a Dataset sorted by date. Rows with equal dates keep their
// input order. The raw slice is not modified.
func Clean(raw []RawRecord, opts Options) (*Dataset, error) {
	if opts.Product == "" {
		opts.Product = DefaultProduct
	}
	if opts.Policy == "" {
		opts.Policy = Abort
	}

	records := make([]CleanRecord, 0, len(raw))
	for _, row := range raw {
		if !row.Aggregated && !opts.matchesProduct(row.Product) {
			continue
		}

		record, err := cleanRow(row, opts)
		if err != nil {
			if opts.Policy == Skip {
				if opts.OnSkip != nil {
					opts.OnSkip(row, err)
				}
				continue
			}
			return nil, err
		}
		records = append(records, record)
	}

	slices.SortStableFunc(records, func(a, b CleanRecord) int {
		return a.Date.Compare(b.Date)
	})

	return newDataset(opts.Product, records), nil
}

func cleanRow(row RawRecord, opts Options) (CleanRecord, error) {
	var sales decimal.Decimal
	if row.Aggregated {
		s, err := parsePrice(row.Sales)
		if err != nil {
			return CleanRecord{}, rowErr(&MalformedPriceError, row, err)
		}
		sales = s
	} else {
		price, err := parsePrice(row.Price)
		if err != nil {
			return CleanRecord{}, rowErr(&MalformedPriceError, row, err)
		}
		quantity, err := parseQuantity(row.Quantity)
		if err != nil {
			return CleanRecord{}, rowErr(&InvalidQuantityError, row, err)
		}
		sales = price.Mul(decimal.NewFromInt(quantity))
	}

	date, err := parseDate(row.Date)
	if err != nil {
		return CleanRecord{}, rowErr(&InvalidDateError, row, err)
	}

	return CleanRecord{
		Date:   date,
		Region: opts.NormalizeRegion(row.Region),
		Sales:  sales,
	}, nil
}
