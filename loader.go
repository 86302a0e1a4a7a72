package factorlab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/etnz/factorlab/date"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// This file contains code to read return tables from flat files.
//
// Both supported layouts (CSV and XLSX) share the same shape: a header row
// naming the columns, then one row per month, the first cell being the row
// label and the others the fractional returns for that month.

// rowReader returns the next record of a tabular source and its 1-based line.
// It returns io.EOF when the source is exhausted.
type rowReader func() (record []string, line int, err error)

// missing lists the cell values read as a missing observation.
var missing = map[string]bool{"": true, "na": true, "n/a": true, "nan": true, "null": true}

// decodeRows builds a Table from a source of records.
// parseLabel reads a row label into a month.
func decodeRows(name string, next rowReader, parseLabel func(string) (date.Month, error)) (*Table, error) {
	header, line, err := next()
	if err == io.EOF {
		return nil, &ParseError{Source: name, Line: 1, Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", name, err)
	}
	if len(header) < 2 {
		return nil, &ParseError{Source: name, Line: line, Err: fmt.Errorf("header has %d columns, want a row label and at least one value", len(header))}
	}

	columns := make([]*Series, 0, len(header)-1)
	seen := make(map[string]bool)
	for _, h := range header[1:] {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, &ParseError{Source: name, Line: line, Err: errors.New("empty column name")}
		}
		if seen[h] {
			return nil, &ParseError{Source: name, Line: line, Err: fmt.Errorf("duplicated column %q", h)}
		}
		seen[h] = true
		columns = append(columns, NewSeries(h))
	}

	rows := make(map[date.Month]int)
	for {
		record, line, err := next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read %q: %w", name, err)
		}
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		if len(record) > len(header) {
			return nil, &ParseError{Source: name, Line: line, Err: fmt.Errorf("row has %d cells, header has %d", len(record), len(header))}
		}

		on, err := parseLabel(record[0])
		if err != nil {
			return nil, &ParseError{Source: name, Line: line, Err: err}
		}
		if prev, dup := rows[on]; dup {
			return nil, &ParseError{Source: name, Line: line, Err: fmt.Errorf("duplicate month %s, already read on line %d", on, prev)}
		}
		rows[on] = line

		for i, c := range columns {
			v := math.NaN()
			// short rows are read as missing trailing values.
			if i+1 < len(record) {
				cell := strings.TrimSpace(record[i+1])
				if !missing[strings.ToLower(cell)] {
					v, err = strconv.ParseFloat(cell, 64)
					if err != nil {
						return nil, &ParseError{Source: name, Line: line, Column: c.name, Err: err}
					}
					if math.IsInf(v, 0) {
						return nil, &ParseError{Source: name, Line: line, Column: c.name, Err: fmt.Errorf("invalid value %q", cell)}
					}
				}
			}
			c.Append(on, v)
		}
	}
	return NewTable(columns...), nil
}

// DecodeTable reads a CSV return table.
// name is for error message only.
func DecodeTable(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row width is checked against the header instead.
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	next := func() ([]string, int, error) {
		record, err := cr.Read()
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, 0, &ParseError{Source: name, Line: perr.Line, Err: perr.Err}
			}
			return nil, 0, err
		}
		line, _ := cr.FieldPos(0)
		return record, line, nil
	}
	return decodeRows(name, next, date.ParseMonth)
}

// DecodeWorkbook reads a return table from the first sheet of an XLSX workbook.
// name is for error message only.
func DecodeWorkbook(r io.Reader, name string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook %q: %w", name, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Source: name, Line: 1, Err: errors.New("workbook has no sheet")}
	}
	// raw values keep dates as serial numbers instead of locale dependent text.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q of %q: %w", sheets[0], name, err)
	}
	log.Debug().Str("source", name).Str("sheet", sheets[0]).Int("rows", len(rows)).Msg("reading workbook")

	i := 0
	next := func() ([]string, int, error) {
		if i >= len(rows) {
			return nil, 0, io.EOF
		}
		i++
		return rows[i-1], i, nil
	}
	return decodeRows(name, next, parseSheetMonth)
}

// parseSheetMonth reads a row label as a month label, or as an Excel date serial number.
func parseSheetMonth(label string) (date.Month, error) {
	m, err := date.ParseMonth(label)
	if err == nil {
		return m, nil
	}
	serial, ferr := strconv.ParseFloat(strings.TrimSpace(label), 64)
	if ferr != nil {
		return date.Month{}, err
	}
	t, terr := excelize.ExcelDateToTime(serial, false)
	if terr != nil {
		return date.Month{}, fmt.Errorf("invalid date serial %q: %w", label, terr)
	}
	return date.NewMonth(t.Year(), t.Month()), nil
}

// LoadTable opens and decodes a return table, choosing the layout from the file extension.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open table %q: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return DecodeWorkbook(f, path)
	case ".csv", ".txt", "":
		return DecodeTable(f, path)
	default:
		return nil, fmt.Errorf("could not load table %q: unsupported extension %q", path, ext)
	}
}

// RiskAdjust returns a copy of assets where every value is reduced by the
// risk-free rate of the same month.
//
// Months with no risk-free value are copied unchanged. assets is not modified.
func RiskAdjust(assets *Table, rf *Series) *Table {
	res := NewTable()
	for _, c := range assets.columns {
		adjusted := NewSeries(c.name)
		skipped := 0
		for on, v := range c.Values() {
			if r, ok := rf.Get(on); ok {
				v -= r
			} else if !math.IsNaN(v) {
				skipped++
			}
			adjusted.Append(on, v)
		}
		if skipped > 0 {
			log.Debug().Str("asset", c.name).Int("months", skipped).Msg("no risk-free rate, returns left unadjusted")
		}
		res.Add(adjusted)
	}
	return res
}

// LoadDataset loads the factor table and the asset table and risk-adjusts the assets.
func LoadDataset(factorsPath, assetsPath string) (*Dataset, error) {
	factors, err := LoadTable(factorsPath)
	if err != nil {
		return nil, err
	}
	assets, err := LoadTable(assetsPath)
	if err != nil {
		return nil, err
	}
	return NewDataset(factors, assets)
}
