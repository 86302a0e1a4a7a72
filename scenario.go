package factorlab

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Bounds of a scenario value, in percent, as offered to the user.
const (
	MinShock  = -20.0
	MaxShock  = 20.0
	ShockStep = 0.1
)

// shockDigits is the number of decimals of ShockStep.
const shockDigits = 1

// Scenario maps factor names to hypothetical factor values, as fractions (0.01 is 1%).
type Scenario map[string]float64

// ZeroScenario returns a scenario with every factor set to zero.
func ZeroScenario(factors ...string) Scenario {
	s := make(Scenario, len(factors))
	for _, f := range factors {
		s[f] = 0
	}
	return s
}

// Names returns the factor names of the scenario, sorted.
func (s Scenario) Names() []string { return slices.Sorted(maps.Keys(s)) }

// Percent returns the value of the factor in percent.
func (s Scenario) Percent(name string) Percent { return Percent(s[name] * 100) }

// ScenarioFromPercents builds a scenario from values in percent.
//
// Values are snapped to the nearest ShockStep and must lie within
// [MinShock, MaxShock].
func ScenarioFromPercents(percents map[string]float64) (Scenario, error) {
	lo, hi := decimal.NewFromFloat(MinShock), decimal.NewFromFloat(MaxShock)
	hundred := decimal.NewFromInt(100)

	s := make(Scenario, len(percents))
	for name, p := range percents {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%s = %v%% is not a number: %w", name, p, ErrOutOfRange)
		}
		d := decimal.NewFromFloat(p).Round(shockDigits)
		if d.LessThan(lo) || d.GreaterThan(hi) {
			return nil, fmt.Errorf("%s = %v%% not in [%v%%, %v%%]: %w", name, p, MinShock, MaxShock, ErrOutOfRange)
		}
		s[name] = d.Div(hundred).InexactFloat64()
	}
	return s, nil
}

// ParseScenario builds a scenario from "name=percent" assignments like "Mkt-RF=1.5".
func ParseScenario(assignments ...string) (Scenario, error) {
	percents := make(map[string]float64, len(assignments))
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid scenario assignment %q want format name=percent", a)
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(value), "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid scenario value for %q: %w", name, err)
		}
		percents[name] = v
	}
	return ScenarioFromPercents(percents)
}

// ScenarioFromJSON reads a scenario from a JSON document.
//
// path is a JSONPath expression (e.g. "$.scenarios.crash") selecting an object
// whose properties are factor values in percent. The empty path selects the
// whole document.
func ScenarioFromJSON(r io.Reader, path string) (Scenario, error) {
	var jdoc any
	if err := json.NewDecoder(r).Decode(&jdoc); err != nil {
		return nil, fmt.Errorf("invalid scenario document: %w", err)
	}
	if path == "" {
		path = "$"
	}
	jval, err := jsonpath.Get(path, jdoc)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario path %q: %w", path, err)
	}
	// filters and wildcards return a list, keep the first match.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	jobj, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("scenario path %q must select an object, got %T", path, jval)
	}

	percents := make(map[string]float64, len(jobj))
	for name, jv := range jobj {
		v, ok := jv.(float64)
		if !ok {
			return nil, fmt.Errorf("scenario value for %q must be of type 'number', got %T", name, jv)
		}
		percents[name] = v
	}
	return ScenarioFromPercents(percents)
}
