// Package export writes the cleaned sales rows as a flat artifact.
package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/zeebo/errs"

	"github.com/soulfoods/sales-dashboard/pkg/sales"
)

// Error is the class of export failures.
var Error = errs.Class("export")

// DefaultPath is the artifact written when no path is configured.
const DefaultPath = "formatted_data.csv"

// DateLayout formats the Date column.
const DateLayout = time.DateOnly

// Columns is the column order of the artifact.
type Columns string

const (
	// DateFirst writes Date,Sales,Region.
	DateFirst Columns = "date-first"

	// SalesFirst writes Sales,Date,Region.
	SalesFirst Columns = "sales-first"
)

// ParseColumns parses a column order name. The empty name is DateFirst.
func ParseColumns(s string) (Columns, error) {
	switch c := Columns(strings.ToLower(s)); c {
	case "":
		return DateFirst, nil
	case DateFirst, SalesFirst:
		return c, nil
	default:
		return "", Error.New("invalid columns %q; expected %q or %q", s, DateFirst, SalesFirst)
	}
}

// Header returns the header row.
func (c Columns) Header() []string {
	return c.order("Date", "Sales", "Region")
}

func (c Columns) order(date, sales, region string) []string {
	if c == SalesFirst {
		return []string{sales, date, region}
	}
	return []string{date, sales, region}
}

func (c Columns) row(record sales.CleanRecord) []string {
	return c.order(record.Date.Format(DateLayout), record.Sales.String(), record.Region)
}

// Buffer accumulates CSV rows in memory.
type Buffer struct {
	Columns Columns

	// Comma is the field delimiter. Zero means ','.
	Comma rune

	buf bytes.Buffer
	csv *csv.Writer
	err error
}

// Emit appends one record. The first write error is kept for Finalize.
func (b *Buffer) Emit(record sales.CleanRecord) {
	b.init()
	b.keep(b.csv.Write(b.Columns.row(record)))
}

// Finalize flushes and returns the CSV bytes. The header is present even when
// nothing was emitted.
func (b *Buffer) Finalize() ([]byte, error) {
	b.init()
	b.csv.Flush()
	b.keep(b.csv.Error())
	if b.err != nil {
		return nil, Error.Wrap(b.err)
	}
	return b.buf.Bytes(), nil
}

func (b *Buffer) init() {
	if b.csv == nil {
		b.csv = csv.NewWriter(&b.buf)
		if b.Comma != 0 {
			b.csv.Comma = b.Comma
		}
		b.keep(b.csv.Write(b.Columns.Header()))
	}
}

func (b *Buffer) keep(err error) {
	if b.err == nil {
		b.err = err
	}
}

// WriteCSV writes rows to w as CSV.
func WriteCSV(w io.Writer, rows []sales.CleanRecord, cols Columns) error {
	b := Buffer{Columns: cols}
	for _, row := range rows {
		b.Emit(row)
	}
	data, err := b.Finalize()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return Error.Wrap(err)
}

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Sales"

// WriteXLSX writes rows to w as a single sheet workbook. Sales are stored as
// numbers and dates as text in DateLayout.
func WriteXLSX(w io.Writer, rows []sales.CleanRecord, cols Columns) (err error) {
	f := excelize.NewFile()
	defer func() {
		err = errs.Combine(err, Error.Wrap(f.Close()))
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return Error.Wrap(err)
	}

	header := cols.Header()
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return Error.Wrap(err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return Error.Wrap(err)
		}
		date := row.Date.Format(DateLayout)
		values := []interface{}{date, row.SalesFloat(), row.Region}
		if cols == SalesFirst {
			values = []interface{}{row.SalesFloat(), date, row.Region}
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return Error.Wrap(err)
		}
	}

	if err := f.Write(w); err != nil {
		return Error.Wrap(err)
	}
	return nil
}

// IsXLSX reports whether path names a workbook.
func IsXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// WriteFile writes rows to path, as a workbook when the path ends in .xlsx
// and as CSV otherwise. An existing file is replaced.
func WriteFile(path string, rows []sales.CleanRecord, cols Columns) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return Error.Wrap(err)
	}
	defer func() {
		err = errs.Combine(err, Error.Wrap(f.Close()))
	}()

	if IsXLSX(path) {
		return WriteXLSX(f, rows, cols)
	}
	return WriteCSV(f, rows, cols)
}
