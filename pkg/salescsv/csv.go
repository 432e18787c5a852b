// Package salescsv provides functions for loading daily sales CSV shards
package salescsv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/errs"

	"github.com/soulfoods/sales-dashboard/pkg/sales"
)

// LoadError is returned when shards cannot be located or read as tables.
var LoadError = errs.Class("load")

const (
	colDate     = "date"
	colRegion   = "region"
	colProduct  = "product"
	colPrice    = "price"
	colQuantity = "quantity"
	colSales    = "sales"
)

var (
	rawColumns        = []string{colDate, colRegion, colProduct, colPrice, colQuantity}
	aggregatedColumns = []string{colDate, colSales, colRegion}
)

// header maps canonical column names onto field indexes.
// byteOrderMark prefixes shards saved by spreadsheet tools.
const byteOrderMark = "\ufeff"

type header struct {
	index      map[string]int
	aggregated bool
	fields     int
}

func parseHeader(record []string) (*header, error) {
	h := &header{
		index:  make(map[string]int, len(record)),
		fields: len(record),
	}
	for i, name := range record {
		if i == 0 {
			name = strings.TrimPrefix(name, byteOrderMark)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := h.index[name]; dup {
			return nil, errs.New("duplicate column %q", name)
		}
		h.index[name] = i
	}

	if missing := h.missing(rawColumns); len(missing) == 0 {
		return h, nil
	}
	if missing := h.missing(aggregatedColumns); len(missing) == 0 {
		h.aggregated = true
		return h, nil
	}
	return nil, errs.New("invalid header %q; expected %q or %q",
		strings.Join(record, ","),
		strings.Join(rawColumns, ","),
		strings.Join(aggregatedColumns, ","))
}

func (h *header) missing(columns []string) []string {
	var missing []string
	for _, column := range columns {
		if _, ok := h.index[column]; !ok {
			missing = append(missing, column)
		}
	}
	return missing
}

func (h *header) get(record []string, column string) string {
	i, ok := h.index[column]
	if !ok {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// Load reads a single shard from disk.
func Load(path string) ([]sales.RawRecord, error) {
	csvBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, LoadError.Wrap(err)
	}
	return Parse(filepath.Base(path), csvBytes)
}

// Parse parses shard contents. The first non-empty line must be a header
// containing either the raw columns (date, region, product, price, quantity)
// or the aggregated columns (date, sales, region), in any order and case.
// Extra columns are ignored.
func Parse(name string, csvBytes []byte) ([]sales.RawRecord, error) {
	r := csv.NewReader(bytes.NewReader(csvBytes))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var h *header
	var rows []sales.RawRecord
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, LoadError.New("%s: %v", name, err)
		}
		line, _ := r.FieldPos(0)

		if h == nil {
			h, err = parseHeader(record)
			if err != nil {
				return nil, LoadError.New("%s: record on line %d: %v", name, line, err)
			}
			continue
		}

		if len(record) != h.fields {
			return nil, LoadError.New("%s: record on line %d: expected %d fields but got %d", name, line, h.fields, len(record))
		}

		rows = append(rows, sales.RawRecord{
			File:       name,
			Line:       line,
			Date:       h.get(record, colDate),
			Region:     h.get(record, colRegion),
			Product:    h.get(record, colProduct),
			Price:      h.get(record, colPrice),
			Quantity:   h.get(record, colQuantity),
			Sales:      h.get(record, colSales),
			Aggregated: h.aggregated,
		})
	}

	if h == nil {
		return nil, LoadError.New("%s: missing header", name)
	}

	return rows, nil
}
