package factorlab

import (
	"fmt"

	"github.com/etnz/factorlab/date"
)

// Dataset holds the factor table and the risk-adjusted asset table.
// It is read-only once created.
type Dataset struct {
	factors *Table
	assets  *Table // in excess of the risk-free rate
}

// NewDataset creates a Dataset from raw tables: assets are risk-adjusted with the RF column of factors.
func NewDataset(factors, assets *Table) (*Dataset, error) {
	rf := factors.Column(RF)
	if rf == nil {
		return nil, fmt.Errorf("factor table has no %q column: %w", RF, ErrMissingRiskFree)
	}
	return &Dataset{factors: factors, assets: RiskAdjust(assets, rf)}, nil
}

// Factors returns the factor table, risk-free rate included.
func (d *Dataset) Factors() *Table { return d.factors }

// Assets returns the asset table, in excess of the risk-free rate.
func (d *Dataset) Assets() *Table { return d.assets }

// Asset returns the excess returns of an asset.
func (d *Dataset) Asset(name string) (*Series, error) {
	s := d.assets.Column(name)
	if s == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownAsset)
	}
	return s, nil
}

// Request is one computation pass as requested by the user.
type Request struct {
	Asset    string
	Factors  []string // explanatory variables, defaults to Factors
	Scenario Scenario
	Amount   *Money // optional amount invested, to express the projection as a gain

	FactorYears date.Range // months of the factor chart, zero for all
	AssetYears  date.Range // months of the asset chart, zero for all
}

// Result is the outcome of a complete computation pass.
type Result struct {
	Asset      string
	Scenario   Scenario
	Model      *Model
	Projection float64 // expected excess return, as a fraction
	Amount     *Money  // Request.Amount
	Gain       *Money  // expected excess gain on Amount, if any
	Factors    *Table  // factor chart, restricted to Request.FactorYears
	Returns    *Series // asset chart, restricted to Request.AssetYears
}

// Percent returns the projection in percent.
func (r *Result) Percent() Percent { return PercentOf(r.Projection) }

// Charts restricts the factor table to req.FactorYears and, when req.Asset is set,
// the asset excess returns to req.AssetYears. The model fields of the Result are left empty.
func (d *Dataset) Charts(req Request) (*Result, error) {
	res := &Result{
		Asset:   req.Asset,
		Factors: d.factors.Between(orAll(req.FactorYears)),
	}
	if req.Asset == "" {
		return res, nil
	}
	s, err := d.Asset(req.Asset)
	if err != nil {
		return nil, err
	}
	res.Returns = s.Between(orAll(req.AssetYears))
	return res, nil
}

// Analyze fits the model of the requested asset and projects the scenario.
// Any error aborts the whole pass.
func (d *Dataset) Analyze(req Request) (*Result, error) {
	dependent, err := d.Asset(req.Asset)
	if err != nil {
		return nil, err
	}
	factors := req.Factors
	if len(factors) == 0 {
		factors = Factors
	}
	explanatory, err := d.factors.Select(factors...)
	if err != nil {
		return nil, err
	}

	m, err := Fit(dependent, explanatory)
	if err != nil {
		return nil, err
	}
	scenario := req.Scenario
	if scenario == nil {
		scenario = ZeroScenario(factors...)
	}
	projection, err := Project(m, scenario)
	if err != nil {
		return nil, fmt.Errorf("cannot project %q: %w", req.Asset, err)
	}

	res, err := d.Charts(req)
	if err != nil {
		return nil, err
	}
	res.Scenario, res.Model, res.Projection = scenario, m, projection
	if req.Amount != nil {
		g := req.Amount.Gain(projection)
		res.Amount, res.Gain = req.Amount, &g
	}
	return res, nil
}

func orAll(r date.Range) date.Range {
	if r.IsZero() {
		return date.All
	}
	return r
}
