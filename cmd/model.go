package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/factorlab"
	"github.com/etnz/factorlab/renderer"
	"github.com/google/subcommands"
)

type fitCmd struct {
	asset string
}

func (*fitCmd) Name() string     { return "fit" }
func (*fitCmd) Synopsis() string { return "fit the five factor model of an asset" }
func (*fitCmd) Usage() string {
	return `fit -a <asset>

  Regresses the excess returns of an asset on the five factors and
  displays the coefficients and fit statistics.
`
}

func (c *fitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "a", "", "asset to analyze")
}

func (c *fitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" {
		fmt.Fprintln(stderr, "-a is required")
		return subcommands.ExitUsageError
	}
	ds, err := loadDataset()
	if err != nil {
		return fail("Error loading dataset", err)
	}
	res, err := ds.Analyze(factorlab.Request{Asset: c.asset})
	if err != nil {
		return fail(fmt.Sprintf("Error fitting %q", c.asset), err)
	}
	printMarkdown(renderer.ModelMarkdown(res.Model))
	return subcommands.ExitSuccess
}

// shocks maps slider flag names to factors.
var shocks = []struct{ flag, factor string }{
	{"mkt", factorlab.MktRF},
	{"smb", factorlab.SMB},
	{"hml", factorlab.HML},
	{"rmw", factorlab.RMW},
	{"cma", factorlab.CMA},
}

type projectCmd struct {
	asset    string
	percents map[string]*float64
	scenario string
	path     string
	amount   string
	currency string
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project the excess return of an asset under a factor scenario" }
func (*projectCmd) Usage() string {
	return `project -a <asset> [-mkt %] [-smb %] [-hml %] [-rmw %] [-cma %] [-scenario <file.json> [-path <jsonpath>]] [-amount <n> [-currency <cur>]] [<factor>=<percent>...]

  Fits the five factor model of an asset and projects its monthly excess
  return for a scenario of factor returns, given in percent between -20 and 20.

  A scenario file is a JSON document, -path selects the scenario object in it.
  Factor flags override the values read from the scenario file, and
  assignments like HML=1.5 override both.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "a", "", "asset to analyze")
	c.percents = make(map[string]*float64)
	for _, s := range shocks {
		c.percents[s.factor] = f.Float64(s.flag, 0, fmt.Sprintf("%s return in percent", factorlab.FactorLabel(s.factor)))
	}
	f.StringVar(&c.scenario, "scenario", "", "JSON file to read the scenario from")
	f.StringVar(&c.path, "path", "$", "JSONPath of the scenario in the -scenario file")
	f.StringVar(&c.amount, "amount", "", "amount invested, to display the expected P&L")
	f.StringVar(&c.currency, "currency", "USD", "currency of the -amount")
}

// readScenario builds the scenario from the scenario file, the flags explicitly set and
// the assignments in the arguments, in that order of precedence.
func (c *projectCmd) readScenario(f *flag.FlagSet) (factorlab.Scenario, error) {
	percents := make(map[string]float64)
	if c.scenario != "" {
		r, err := os.Open(c.scenario)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		s, err := factorlab.ScenarioFromJSON(r, c.path)
		if err != nil {
			return nil, fmt.Errorf("invalid scenario file %q: %w", c.scenario, err)
		}
		for name := range s {
			percents[name] = float64(s.Percent(name))
		}
	}
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	for _, s := range shocks {
		if _, ok := percents[s.factor]; !ok || set[s.flag] {
			percents[s.factor] = *c.percents[s.factor]
		}
	}
	if f.NArg() > 0 {
		s, err := factorlab.ParseScenario(f.Args()...)
		if err != nil {
			return nil, err
		}
		for name := range s {
			percents[name] = float64(s.Percent(name))
		}
	}
	return factorlab.ScenarioFromPercents(percents)
}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" {
		fmt.Fprintln(stderr, "-a is required")
		return subcommands.ExitUsageError
	}
	scenario, err := c.readScenario(f)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading scenario: %v\n", err)
		return subcommands.ExitUsageError
	}
	req := factorlab.Request{Asset: c.asset, Scenario: scenario}
	if c.amount != "" {
		amount, err := factorlab.ParseMoney(c.amount, c.currency)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading amount: %v\n", err)
			return subcommands.ExitUsageError
		}
		req.Amount = &amount
	}

	ds, err := loadDataset()
	if err != nil {
		return fail("Error loading dataset", err)
	}
	res, err := ds.Analyze(req)
	if err != nil {
		return fail(fmt.Sprintf("Error projecting %q", c.asset), err)
	}
	printMarkdown(renderer.ProjectionMarkdown(res))
	return subcommands.ExitSuccess
}
