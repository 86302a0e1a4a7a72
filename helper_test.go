package factorlab

import (
	"math"

	"github.com/etnz/factorlab/date"
)

// newSeries is a helper for test to create a monthly series starting at 'from'.
func newSeries(name, from string, values ...float64) *Series {
	s := NewSeries(name)
	on := date.MustParseMonth(from)
	for i, v := range values {
		s.Append(on.Add(i), v)
	}
	return s
}

// NaN is a helper for test to write missing values.
var NaN = math.NaN()

// fiveFactors is a helper for test that returns a factor table of n months, with
// non collinear factors and a risk-free column.
func fiveFactors(n int) *Table {
	cols := map[string][]float64{}
	for _, f := range append(Factors, RF) {
		cols[f] = make([]float64, n)
	}
	for i := range n {
		x := float64(i)
		cols[MktRF][i] = 0.02 * math.Sin(x)
		cols[SMB][i] = 0.01 * math.Cos(1.3*x)
		cols[HML][i] = 0.005 * math.Sin(0.7*x+1)
		cols[RMW][i] = 0.003 * math.Cos(2.1*x+0.5)
		cols[CMA][i] = 0.004*math.Sin(3.7*x) + 0.0001*x
		cols[RF][i] = 0.001 + 0.0001*float64(i%3)
	}
	t := NewTable()
	for _, f := range append(Factors, RF) {
		t.Add(newSeries(f, "2020-01", cols[f]...))
	}
	return t
}

// linear is a helper for test that computes alpha + Σ beta·factor for every month of the table.
func linear(name string, t *Table, alpha float64, betas map[string]float64) *Series {
	s := NewSeries(name)
	for _, on := range t.Months() {
		v := alpha
		for f, b := range betas {
			x, _ := t.Column(f).Get(on)
			v += b * x
		}
		s.Append(on, v)
	}
	return s
}
