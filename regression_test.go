package factorlab

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestFitExactRelationship(t *testing.T) {
	explanatory := NewTable(newSeries(MktRF, "2024-01", 0.01, 0.02, 0.03))
	dependent := newSeries("AAPL", "2024-01", 0.02, 0.04, 0.06)

	m, err := Fit(dependent, explanatory)
	if err != nil {
		t.Fatalf("Fit() unexpected error: %v", err)
	}

	const tolerance = 1e-9
	if got := m.Intercept(); math.Abs(got) > tolerance {
		t.Errorf("Intercept() = %v want 0", got)
	}
	beta, ok := m.Coefficient(MktRF)
	if !ok {
		t.Fatalf("Coefficient(%q) not found", MktRF)
	}
	if math.Abs(beta-2) > tolerance {
		t.Errorf("Coefficient(%q) = %v want 2", MktRF, beta)
	}

	got, err := Project(m, Scenario{MktRF: 0.05})
	if err != nil {
		t.Fatalf("Project() unexpected error: %v", err)
	}
	if math.Abs(got-0.10) > tolerance {
		t.Errorf("Project({Mkt-RF: 0.05}) = %v want 0.10", got)
	}
	if m.Observations() != 3 {
		t.Errorf("Observations() = %d want 3", m.Observations())
	}
	if math.Abs(m.RSquared()-1) > tolerance {
		t.Errorf("RSquared() = %v want 1", m.RSquared())
	}
}

func TestFitRecoversCoefficients(t *testing.T) {
	factors := fiveFactors(60)
	betas := map[string]float64{MktRF: 1.1, SMB: -0.4, HML: 0.25, RMW: 0.6, CMA: -0.2}
	dependent := linear("MSFT", factors, 0.002, betas)

	explanatory, err := factors.Select(Factors...)
	if err != nil {
		t.Fatal(err)
	}
	m, err := Fit(dependent, explanatory)
	if err != nil {
		t.Fatalf("Fit() unexpected error: %v", err)
	}

	got := map[string]float64{}
	for _, p := range m.Params() {
		got[p.Name] = p.Coef
	}
	want := map[string]float64{Alpha: 0.002}
	for f, b := range betas {
		want[f] = b
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Fit() coefficients mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Factors, m.Factors()); diff != "" {
		t.Errorf("Factors() mismatch (-want +got):\n%s", diff)
	}
	if m.DegreesOfFreedom() != 54 {
		t.Errorf("DegreesOfFreedom() = %d want 54", m.DegreesOfFreedom())
	}
}

func TestFitStatistics(t *testing.T) {
	factors := fiveFactors(48)
	explanatory, _ := factors.Select(MktRF)
	dependent := linear("IBM", factors, 0.001, map[string]float64{MktRF: 0.8})
	// add a deterministic disturbance.
	noisy := NewSeries("IBM")
	for i, on := range dependent.Months() {
		v, _ := dependent.Get(on)
		noisy.Append(on, v+0.002*math.Cos(2.5*float64(i)))
	}

	m, err := Fit(noisy, explanatory)
	if err != nil {
		t.Fatalf("Fit() unexpected error: %v", err)
	}
	if r2 := m.RSquared(); r2 <= 0 || r2 >= 1 {
		t.Errorf("RSquared() = %v want in (0, 1)", r2)
	}
	if m.AdjRSquared() >= m.RSquared() {
		t.Errorf("AdjRSquared() = %v want < RSquared() = %v", m.AdjRSquared(), m.RSquared())
	}
	if m.ResidualStdErr() <= 0 {
		t.Errorf("ResidualStdErr() = %v want > 0", m.ResidualStdErr())
	}
	for _, p := range m.Params() {
		if !(p.StdErr > 0) {
			t.Errorf("%s.StdErr = %v want > 0", p.Name, p.StdErr)
		}
		if math.Abs(p.T-p.Coef/p.StdErr) > 1e-12 {
			t.Errorf("%s.T = %v want Coef/StdErr = %v", p.Name, p.T, p.Coef/p.StdErr)
		}
		if p.P < 0 || p.P > 1 {
			t.Errorf("%s.P = %v want in [0, 1]", p.Name, p.P)
		}
	}
	beta, _ := m.Coefficient(MktRF)
	if math.Abs(beta-0.8) > 0.1 {
		t.Errorf("Coefficient(Mkt-RF) = %v want close to 0.8", beta)
	}
}

func TestFitIsDeterministic(t *testing.T) {
	factors := fiveFactors(36)
	explanatory, _ := factors.Select(Factors...)
	dependent := linear("X", factors, -0.001, map[string]float64{MktRF: 0.9, HML: 0.3})
	for i, on := range dependent.Months() {
		v, _ := dependent.Get(on)
		dependent.Append(on, v+0.001*math.Sin(11*float64(i)))
	}

	m1, err := Fit(dependent, explanatory)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := Fit(dependent, explanatory)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m1.Params(), m2.Params()); diff != "" {
		t.Errorf("Fit() is not deterministic (-first +second):\n%s", diff)
	}
}

func TestFitZeroScenarioIsIntercept(t *testing.T) {
	factors := fiveFactors(24)
	explanatory, _ := factors.Select(Factors...)
	dependent := linear("X", factors, 0.0042, map[string]float64{MktRF: 1, SMB: 0.5})
	for i, on := range dependent.Months() {
		v, _ := dependent.Get(on)
		dependent.Append(on, v+0.003*math.Cos(7*float64(i)))
	}

	m, err := Fit(dependent, explanatory)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Project(m, ZeroScenario(Factors...))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-m.Intercept()) > 1e-15 {
		t.Errorf("Project(zero) = %v want Intercept() = %v", got, m.Intercept())
	}
}

func TestFitAlignment(t *testing.T) {
	// The dependent series has a hole in March, the factor has a value there.
	explanatory := NewTable(newSeries(MktRF, "2024-01", 0.01, 0.02, 0.5, 0.04, 0.05))
	dependent := newSeries("A", "2024-01", 0.02, 0.04, NaN, 0.08, 0.10)

	m, err := Fit(dependent, explanatory)
	if err != nil {
		t.Fatalf("Fit() unexpected error: %v", err)
	}
	for _, on := range m.Months() {
		if on.String() == "2024-03" {
			t.Errorf("Fit() used 2024-03 where the dependent value is missing")
		}
	}
	if m.Observations() != 4 {
		t.Errorf("Observations() = %d want 4", m.Observations())
	}
	// the outlier 0.5 would break the exact relationship if it had been used.
	if beta, _ := m.Coefficient(MktRF); math.Abs(beta-2) > 1e-9 {
		t.Errorf("Coefficient(Mkt-RF) = %v want 2", beta)
	}
}

func TestFitAlignsByMonthNotPosition(t *testing.T) {
	// The factor table starts two months before the dependent series.
	explanatory := NewTable(newSeries(MktRF, "2023-11", 0.9, 0.9, 0.01, 0.02, 0.03))
	dependent := newSeries("A", "2024-01", 0.02, 0.04, 0.06)

	m, err := Fit(dependent, explanatory)
	if err != nil {
		t.Fatalf("Fit() unexpected error: %v", err)
	}
	if beta, _ := m.Coefficient(MktRF); math.Abs(beta-2) > 1e-9 {
		t.Errorf("Coefficient(Mkt-RF) = %v want 2", beta)
	}
}

func TestFitErrors(t *testing.T) {
	testCases := []struct {
		name        string
		dependent   *Series
		explanatory *Table
		want        error
	}{
		{
			name:        "all missing",
			dependent:   newSeries("A", "2024-01", NaN, NaN, NaN),
			explanatory: NewTable(newSeries(MktRF, "2024-01", 0.01, 0.02, 0.03)),
			want:        ErrEmptySeries,
		},
		{
			name:        "empty",
			dependent:   NewSeries("A"),
			explanatory: NewTable(newSeries(MktRF, "2024-01", 0.01, 0.02, 0.03)),
			want:        ErrEmptySeries,
		},
		{
			name:        "no common month",
			dependent:   newSeries("A", "2010-01", 0.01, 0.02, 0.03),
			explanatory: NewTable(newSeries(MktRF, "2024-01", 0.01, 0.02, 0.03)),
			want:        ErrEmptySeries,
		},
		{
			name:        "fewer observations than parameters",
			dependent:   newSeries("A", "2024-01", 0.01, 0.02),
			explanatory: NewTable(newSeries(MktRF, "2024-01", 0.01, 0.02), newSeries(SMB, "2024-01", 0.03, 0.01)),
			want:        ErrSingularMatrix,
		},
		{
			name:      "collinear factors",
			dependent: newSeries("A", "2024-01", 0.01, 0.05, 0.02, 0.04),
			explanatory: NewTable(
				newSeries(MktRF, "2024-01", 0.01, 0.02, 0.03, 0.04),
				newSeries(SMB, "2024-01", 0.02, 0.04, 0.06, 0.08),
			),
			want: ErrSingularMatrix,
		},
		{
			name:        "constant factor",
			dependent:   newSeries("A", "2024-01", 0.01, 0.05, 0.02, 0.04),
			explanatory: NewTable(newSeries(MktRF, "2024-01", 0, 0, 0, 0)),
			want:        ErrSingularMatrix,
		},
		{
			name:        "infinite return",
			dependent:   newSeries("A", "2024-01", 0.01, math.Inf(1), 0.02, 0.04),
			explanatory: NewTable(newSeries(MktRF, "2024-01", 0.01, 0.03, 0.02, 0.05)),
			want:        ErrOutOfRange,
		},
		{
			name:        "infinite factor",
			dependent:   newSeries("A", "2024-01", 0.01, 0.05, 0.02, 0.04),
			explanatory: NewTable(newSeries(MktRF, "2024-01", 0.01, 0.03, math.Inf(-1), 0.05)),
			want:        ErrOutOfRange,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Fit(tc.dependent, tc.explanatory)
			if !errors.Is(err, tc.want) {
				t.Errorf("Fit() error = %v want %v", err, tc.want)
			}
		})
	}
}

func TestProjectMissingFactor(t *testing.T) {
	factors := fiveFactors(12)
	explanatory, _ := factors.Select(MktRF, SMB)
	dependent := linear("A", factors, 0, map[string]float64{MktRF: 1, SMB: 1})
	for i, on := range dependent.Months() {
		v, _ := dependent.Get(on)
		dependent.Append(on, v+0.001*math.Cos(3*float64(i)))
	}

	m, err := Fit(dependent, explanatory)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Project(m, Scenario{MktRF: 0.01})
	if !errors.Is(err, ErrMissingFactor) {
		t.Fatalf("Project() error = %v want %v", err, ErrMissingFactor)
	}
	var mf *MissingFactorError
	if !errors.As(err, &mf) || mf.Factor != SMB {
		t.Errorf("Project() error = %v want a MissingFactorError for %q", err, SMB)
	}

	// extra factors are ignored.
	if _, err := Project(m, Scenario{MktRF: 0.01, SMB: 0, CMA: 0.2}); err != nil {
		t.Errorf("Project() with an extra factor unexpected error: %v", err)
	}
}
