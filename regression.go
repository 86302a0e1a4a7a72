package factorlab

import (
	"errors"
	"fmt"
	"math"

	"github.com/etnz/factorlab/date"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// maxCondition is the largest condition number of the design matrix accepted as full rank.
const maxCondition = 1e10

// Param is a fitted parameter of a Model, with its statistics.
//
// StdErr, T and P are NaN when the model has no residual degree of freedom.
type Param struct {
	Name   string
	Coef   float64
	StdErr float64
	T      float64 // t statistic of the null hypothesis Coef == 0
	P      float64 // two-sided p-value of T
}

// Model is the result of an ordinary least squares fit with an intercept.
type Model struct {
	dependent string
	params    []Param // Alpha first, then factors in the order of the explanatory table.
	index     map[string]int
	months    []date.Month

	rsquared    float64
	adjRSquared float64
	stdErr      float64 // residual standard error
}

// Intercept returns the fitted alpha.
func (m *Model) Intercept() float64 { return m.params[0].Coef }

// Coefficient returns the fitted coefficient of a factor, or Alpha.
func (m *Model) Coefficient(name string) (float64, bool) {
	i, ok := m.index[name]
	if !ok {
		return 0, false
	}
	return m.params[i].Coef, true
}

// Factors returns the names of the explanatory variables, Alpha excluded.
func (m *Model) Factors() []string {
	names := make([]string, 0, len(m.params)-1)
	for _, p := range m.params[1:] {
		names = append(names, p.Name)
	}
	return names
}

// Params returns a copy of every parameter, Alpha first.
func (m *Model) Params() []Param { return append([]Param(nil), m.params...) }

// Dependent returns the name of the series the model explains.
func (m *Model) Dependent() string { return m.dependent }

// Months returns the months of the observations used in the fit.
func (m *Model) Months() []date.Month { return append([]date.Month(nil), m.months...) }

// Observations returns the number of observations used in the fit.
func (m *Model) Observations() int { return len(m.months) }

// DegreesOfFreedom returns the residual degrees of freedom.
func (m *Model) DegreesOfFreedom() int { return len(m.months) - len(m.params) }

// RSquared returns the coefficient of determination.
func (m *Model) RSquared() float64 { return m.rsquared }

// AdjRSquared returns the coefficient of determination adjusted for the number of parameters.
func (m *Model) AdjRSquared() float64 { return m.adjRSquared }

// ResidualStdErr returns the standard error of the regression.
func (m *Model) ResidualStdErr() float64 { return m.stdErr }

// Fit regresses dependent on every column of explanatory, with an intercept.
//
// Months where dependent is missing are dropped, and the explanatory table is
// aligned on the remaining months: a month is kept only if every explanatory
// column has a value for it.
func Fit(dependent *Series, explanatory *Table) (*Model, error) {
	factors := explanatory.Columns()

	var months []date.Month
	var y []float64
	var rows [][]float64
	incomplete := 0
	for _, on := range dependent.Months() {
		v, ok := dependent.Get(on)
		if !ok {
			continue
		}
		if math.IsInf(v, 0) {
			return nil, fmt.Errorf("cannot fit %q: infinite value on %s: %w", dependent.Name(), on, ErrOutOfRange)
		}
		row := make([]float64, 0, len(factors)+1)
		row = append(row, 1) // Alpha
		for _, f := range factors {
			x, ok := explanatory.Column(f).Get(on)
			if !ok {
				break
			}
			if math.IsInf(x, 0) {
				return nil, fmt.Errorf("cannot fit %q: infinite %s value on %s: %w", dependent.Name(), f, on, ErrOutOfRange)
			}
			row = append(row, x)
		}
		if len(row) != len(factors)+1 {
			incomplete++
			continue
		}
		months = append(months, on)
		y = append(y, v)
		rows = append(rows, row)
	}
	if incomplete > 0 {
		log.Debug().Str("dependent", dependent.Name()).Int("months", incomplete).Msg("dropped months with missing factors")
	}

	n, p := len(rows), len(factors)+1
	if n == 0 {
		return nil, fmt.Errorf("cannot fit %q: no observation: %w", dependent.Name(), ErrEmptySeries)
	}
	if n < p {
		return nil, fmt.Errorf("cannot fit %q: %d observations for %d parameters: %w", dependent.Name(), n, p, ErrSingularMatrix)
	}
	log.Debug().Str("dependent", dependent.Name()).Int("observations", n).Int("parameters", p).Msg("fitting OLS")

	x := mat.NewDense(n, p, nil)
	for i, row := range rows {
		x.SetRow(i, row)
	}
	yv := mat.NewVecDense(n, y)

	var qr mat.QR
	qr.Factorize(x)
	if c := qr.Cond(); math.IsNaN(c) || c > maxCondition {
		return nil, fmt.Errorf("cannot fit %q: design matrix condition number %g: %w", dependent.Name(), c, ErrSingularMatrix)
	}

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, yv); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("cannot fit %q: %v: %w", dependent.Name(), err, ErrSingularMatrix)
		}
		return nil, fmt.Errorf("cannot fit %q: %w", dependent.Name(), err)
	}

	m := &Model{
		dependent: dependent.Name(),
		params:    make([]Param, p),
		index:     make(map[string]int, p),
		months:    months,
	}
	names := append([]string{Alpha}, factors...)
	for i, name := range names {
		m.params[i] = Param{Name: name, Coef: beta.AtVec(i)}
		m.index[name] = i
	}
	m.statistics(x, yv, &beta)
	return m, nil
}

// statistics computes the goodness of fit and the parameter statistics.
func (m *Model) statistics(x *mat.Dense, y, beta *mat.VecDense) {
	n, p := x.Dims()
	var fitted mat.VecDense
	fitted.MulVec(x, beta)

	var resid mat.VecDense
	resid.SubVec(y, &fitted)
	ssr := mat.Dot(&resid, &resid)

	m.rsquared = stat.RSquaredFrom(fitted.RawVector().Data, y.RawVector().Data, nil)

	dof := n - p
	nan := math.NaN()
	m.adjRSquared, m.stdErr = nan, nan
	for i := range m.params {
		m.params[i].StdErr, m.params[i].T, m.params[i].P = nan, nan, nan
	}
	if dof <= 0 {
		return
	}
	m.adjRSquared = 1 - (1-m.rsquared)*float64(n-1)/float64(dof)
	sigma2 := ssr / float64(dof)
	m.stdErr = math.Sqrt(sigma2)

	// cov(beta) = sigma² (X'X)⁻¹
	var xtx mat.SymDense
	xtx.SymOuterK(1, x.T())
	var chol mat.Cholesky
	if !chol.Factorize(&xtx) {
		return
	}
	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}
	for i := range m.params {
		se := math.Sqrt(sigma2 * inv.At(i, i))
		tv := m.params[i].Coef / se
		m.params[i].StdErr = se
		m.params[i].T = tv
		m.params[i].P = 2 * t.Survival(math.Abs(tv))
	}
}

// Project evaluates the model at a scenario: the intercept plus the sum of
// each factor coefficient times the scenario value of that factor.
//
// Every factor of the model must have a value in s; values for other names
// are ignored. The result is not rounded.
func Project(m *Model, s Scenario) (float64, error) {
	r := m.Intercept()
	for _, p := range m.params[1:] {
		v, ok := s[p.Name]
		if !ok {
			return math.NaN(), &MissingFactorError{Factor: p.Name}
		}
		r += p.Coef * v
	}
	return r, nil
}
