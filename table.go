package factorlab

import (
	"fmt"
	"iter"
	"math"

	"github.com/etnz/factorlab/date"
)

// Series is a named monthly return series.
//
// Missing observations are kept as NaN, so that a row read from a file is
// never lost, only flagged.
type Series struct {
	name    string
	history *date.History[float64]
}

// NewSeries returns an empty series.
func NewSeries(name string) *Series {
	return &Series{name: name, history: new(date.History[float64])}
}

// Name returns the column name of the series.
func (s *Series) Name() string { return s.name }

// Len returns the number of months in the series, missing values included.
func (s *Series) Len() int { return s.history.Len() }

// Append sets the value of the series at month on.
func (s *Series) Append(on date.Month, v float64) *Series {
	s.history.Append(on, v)
	return s
}

// Get returns the value at month on. Missing values are reported as not found.
func (s *Series) Get(on date.Month) (float64, bool) {
	v, ok := s.history.Get(on)
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Months returns the months of the series in chronological order.
func (s *Series) Months() []date.Month { return s.history.Months() }

// Values iterates over the series in chronological order, missing values included as NaN.
func (s *Series) Values() iter.Seq2[date.Month, float64] { return s.history.Values() }

// Between returns a copy of the series restricted to the range r.
func (s *Series) Between(r date.Range) *Series {
	return &Series{name: s.name, history: s.history.Between(r)}
}

// Table holds a set of series sharing a monthly index.
type Table struct {
	columns []*Series
	index   map[string]*Series
}

// NewTable returns a new table with the given columns.
// A column name used twice keeps the last series.
func NewTable(columns ...*Series) *Table {
	t := &Table{index: make(map[string]*Series)}
	for _, c := range columns {
		t.Add(c)
	}
	return t
}

// Add adds or replaces a column.
func (t *Table) Add(s *Series) {
	if _, exists := t.index[s.name]; exists {
		for i, c := range t.columns {
			if c.name == s.name {
				t.columns[i] = s
			}
		}
	} else {
		t.columns = append(t.columns, s)
	}
	t.index[s.name] = s
}

// Column returns the column named name, or nil.
func (t *Table) Column(name string) *Series { return t.index[name] }

// Columns returns the column names, in order.
func (t *Table) Columns() []string {
	names := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		names = append(names, c.name)
	}
	return names
}

// Months returns the union of the months of every column, in chronological order.
func (t *Table) Months() []date.Month {
	histories := make([]*date.History[float64], 0, len(t.columns))
	for _, c := range t.columns {
		histories = append(histories, c.history)
	}
	return date.Union(histories...)
}

// Select returns a new table with only the named columns, in the given order.
// The series are shared with t.
func (t *Table) Select(names ...string) (*Table, error) {
	res := NewTable()
	for _, name := range names {
		c, ok := t.index[name]
		if !ok {
			return nil, fmt.Errorf("cannot select %q: %w", name, ErrUnknownColumn)
		}
		res.Add(c)
	}
	return res, nil
}

// Between returns a new table with every column restricted to the range r.
func (t *Table) Between(r date.Range) *Table {
	res := NewTable()
	for _, c := range t.columns {
		res.Add(c.Between(r))
	}
	return res
}

// YearBounds returns the first and last year covered by the table.
// ok is false for an empty table.
func (t *Table) YearBounds() (first, last int, ok bool) {
	for _, c := range t.columns {
		if c.Len() == 0 {
			continue
		}
		earliest, _ := c.history.Earliest()
		latest, _ := c.history.Latest()
		if !ok || earliest.Year() < first {
			first = earliest.Year()
		}
		if !ok || latest.Year() > last {
			last = latest.Year()
		}
		ok = true
	}
	return first, last, ok
}
