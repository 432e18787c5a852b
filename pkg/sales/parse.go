package sales

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"github.com/zeebo/errs"
)

var currencyStripper = strings.NewReplacer("$", "", ",", "")

// ParsePrice removes every "$" and "," from s and parses the remainder as a
// decimal.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := parsePrice(s)
	if err != nil {
		return decimal.Decimal{}, MalformedPriceError.Wrap(err)
	}
	return d, nil
}

// ParseQuantity parses a non-negative integer quantity.
func ParseQuantity(s string) (int64, error) {
	q, err := parseQuantity(s)
	if err != nil {
		return 0, InvalidQuantityError.Wrap(err)
	}
	return q, nil
}

// ParseDate parses s with a permissive parser and truncates it to the
// calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := parseDate(s)
	if err != nil {
		return time.Time{}, InvalidDateError.Wrap(err)
	}
	return t, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	stripped := strings.TrimSpace(currencyStripper.Replace(s))
	if stripped == "" {
		return decimal.Decimal{}, errs.New("%q is not numeric", s)
	}
	d, err := decimal.NewFromString(stripped)
	if err != nil {
		return decimal.Decimal{}, errs.New("%q is not numeric", s)
	}
	return d, nil
}

func parseQuantity(s string) (int64, error) {
	q, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errs.New("%q is not an integer", s)
	}
	if q < 0 {
		return 0, errs.New("%q must not be negative", s)
	}
	return q, nil
}

func parseDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, errs.New("date is empty")
	}
	t, err := dateparse.ParseIn(trimmed, time.UTC)
	if err != nil {
		return time.Time{}, errs.New("%q is not a date", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
