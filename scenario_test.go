package factorlab

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseScenario(t *testing.T) {
	testCases := []struct {
		name    string
		in      []string
		want    Scenario
		wantErr error
	}{
		{
			name: "percent to fraction",
			in:   []string{"Mkt-RF=1.5", "SMB=-0.3%"},
			want: Scenario{MktRF: 0.015, SMB: -0.003},
		},
		{
			name: "snapped to step",
			in:   []string{"HML=2.04", "RMW=-2.06"},
			want: Scenario{HML: 0.02, RMW: -0.021},
		},
		{
			name: "bounds included",
			in:   []string{"CMA=20", "SMB=-20"},
			want: Scenario{CMA: 0.2, SMB: -0.2},
		},
		{
			name:    "above bound",
			in:      []string{"CMA=20.1"},
			wantErr: ErrOutOfRange,
		},
		{
			name:    "below bound",
			in:      []string{"CMA=-25"},
			wantErr: ErrOutOfRange,
		},
		{
			name:    "not a number",
			in:      []string{"Mkt-RF=NaN"},
			wantErr: ErrOutOfRange,
		},
		{
			name:    "infinite",
			in:      []string{"Mkt-RF=Inf"},
			wantErr: ErrOutOfRange,
		},
		{
			name:    "negative infinite",
			in:      []string{"SMB=-Infinity%"},
			wantErr: ErrOutOfRange,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseScenario(tc.in...)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("ParseScenario() error = %v want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScenario() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateApprox(0, 1e-15)); diff != "" {
				t.Errorf("ParseScenario() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseScenarioSyntax(t *testing.T) {
	for _, in := range []string{"Mkt-RF", "=1", "SMB=one"} {
		if _, err := ParseScenario(in); err == nil {
			t.Errorf("ParseScenario(%q) must fail", in)
		}
	}
}

func TestScenarioFromJSON(t *testing.T) {
	const doc = `{
		"scenarios": {
			"crash": {"Mkt-RF": -15, "SMB": -2.5, "HML": 1, "RMW": 0, "CMA": 0.5},
			"boom": {"Mkt-RF": 8}
		},
		"list": [{"Mkt-RF": 3}]
	}`
	testCases := []struct {
		path    string
		want    Scenario
		wantErr bool
	}{
		{path: "$.scenarios.crash", want: Scenario{MktRF: -0.15, SMB: -0.025, HML: 0.01, RMW: 0, CMA: 0.005}},
		{path: "$.scenarios.boom", want: Scenario{MktRF: 0.08}},
		{path: "$.list[0]", want: Scenario{MktRF: 0.03}},
		{path: "$.list[*]", want: Scenario{MktRF: 0.03}},
		{path: "$.scenarios", wantErr: true}, // values are objects, not numbers
		{path: "$.missing", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			got, err := ScenarioFromJSON(strings.NewReader(doc), tc.path)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ScenarioFromJSON(%q) error = %v, wantErr %v", tc.path, err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateApprox(0, 1e-15)); diff != "" {
				t.Errorf("ScenarioFromJSON(%q) mismatch (-want +got):\n%s", tc.path, diff)
			}
		})
	}
}

func TestScenarioFromJSONWholeDocument(t *testing.T) {
	got, err := ScenarioFromJSON(strings.NewReader(`{"Mkt-RF": 1}`), "")
	if err != nil {
		t.Fatalf("ScenarioFromJSON() unexpected error: %v", err)
	}
	if got[MktRF] != 0.01 {
		t.Errorf("ScenarioFromJSON()[Mkt-RF] = %v want 0.01", got[MktRF])
	}
	if _, err := ScenarioFromJSON(strings.NewReader(`{"Mkt-RF": 30}`), ""); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ScenarioFromJSON() error = %v want %v", err, ErrOutOfRange)
	}
}

func TestPercent(t *testing.T) {
	testCases := []struct {
		fraction     float64
		wantString   string
		wantSigned   string
		wantNegative bool
	}{
		{fraction: 0.1, wantString: "10.0%", wantSigned: "+10.0%"},
		{fraction: 0.01234, wantString: "1.2%", wantSigned: "+1.2%"},
		{fraction: -0.0004, wantString: "0.0%", wantSigned: "-"},
		{fraction: -0.0006, wantString: "-0.1%", wantSigned: "-0.1%", wantNegative: true},
		{fraction: 0, wantString: "0.0%", wantSigned: "-"},
		{fraction: math.Inf(1), wantString: "n/a", wantSigned: "n/a"},
		{fraction: math.Inf(-1), wantString: "n/a", wantSigned: "n/a"},
		{fraction: math.NaN(), wantString: "n/a", wantSigned: "n/a"},
	}
	for _, tc := range testCases {
		p := PercentOf(tc.fraction)
		if got := p.String(); got != tc.wantString {
			t.Errorf("PercentOf(%v).String() = %q want %q", tc.fraction, got, tc.wantString)
		}
		if got := p.SignedString(); got != tc.wantSigned {
			t.Errorf("PercentOf(%v).SignedString() = %q want %q", tc.fraction, got, tc.wantSigned)
		}
		if got := p.IsNegative(); got != tc.wantNegative {
			t.Errorf("PercentOf(%v).IsNegative() = %v want %v", tc.fraction, got, tc.wantNegative)
		}
	}
}

func TestMoneyGain(t *testing.T) {
	amount, err := ParseMoney("10000", "usd")
	if err != nil {
		t.Fatalf("ParseMoney() unexpected error: %v", err)
	}
	gain := amount.Gain(0.012345)
	if got := gain.String(); got != "$123.45" {
		t.Errorf("Gain().String() = %q want %q", got, "$123.45")
	}
	if got := amount.Gain(-0.01).SignedString(); got != "-$100.00" {
		t.Errorf("Gain(-0.01).SignedString() = %q want %q", got, "-$100.00")
	}
	if _, err := ParseMoney("10", "XYZ"); err == nil {
		t.Errorf("ParseMoney() with an unknown currency must fail")
	}
	if _, err := ParseMoney("ten", "EUR"); err == nil {
		t.Errorf("ParseMoney() with an invalid amount must fail")
	}
}
