package sales

import "github.com/zeebo/errs"

var (
	// MalformedPriceError is returned when a price is not numeric once
	// currency symbols and separators are removed.
	MalformedPriceError = errs.Class("malformed price")

	// InvalidQuantityError is returned for negative or non-integer quantities.
	InvalidQuantityError = errs.Class("invalid quantity")

	// InvalidDateError is returned when a date cannot be parsed.
	InvalidDateError = errs.Class("invalid date")
)

// IsRowError reports whether err is one of the per-row validation errors.
func IsRowError(err error) bool {
	return MalformedPriceError.Has(err) || InvalidQuantityError.Has(err) || InvalidDateError.Has(err)
}

func rowErr(class *errs.Class, raw RawRecord, err error) error {
	return class.New("%s: record on line %d: %v", raw.File, raw.Line, err)
}
