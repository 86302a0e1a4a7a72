package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/factorlab"
	"github.com/etnz/factorlab/date"
	"github.com/etnz/factorlab/renderer"
	"github.com/google/subcommands"
)

// years holds the -from and -to flags shared by the chart commands.
type years struct {
	from, to int
}

func (y *years) SetFlags(f *flag.FlagSet) {
	f.IntVar(&y.from, "from", 0, "first year to display, defaults to the first year available")
	f.IntVar(&y.to, "to", 0, "last year to display, defaults to the last year available")
}

// Range returns the range of months selected by the flags, open bounds are taken from t.
func (y *years) Range(t *factorlab.Table) date.Range {
	if y.from == 0 && y.to == 0 {
		return date.Range{}
	}
	first, last, ok := t.YearBounds()
	if !ok {
		return date.Range{}
	}
	from, to := y.from, y.to
	if from == 0 {
		from = first
	}
	if to == 0 {
		to = last
	}
	return date.Years(from, to)
}

type factorsCmd struct {
	years years
}

func (*factorsCmd) Name() string     { return "factors" }
func (*factorsCmd) Synopsis() string { return "display the monthly factor returns" }
func (*factorsCmd) Usage() string {
	return `factors [-from <year>] [-to <year>]

  Displays the monthly returns of the five factors and the risk-free rate.
`
}

func (c *factorsCmd) SetFlags(f *flag.FlagSet) { c.years.SetFlags(f) }

func (c *factorsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ds, err := loadDataset()
	if err != nil {
		return fail("Error loading dataset", err)
	}
	res, err := ds.Charts(factorlab.Request{FactorYears: c.years.Range(ds.Factors())})
	if err != nil {
		return fail("Error", err)
	}
	printMarkdown(renderer.TableMarkdown("Factor Returns", res.Factors))
	return subcommands.ExitSuccess
}

type returnsCmd struct {
	asset string
	years years
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "display the monthly excess returns of an asset" }
func (*returnsCmd) Usage() string {
	return `returns -a <asset> [-from <year>] [-to <year>]

  Displays the monthly returns of an asset, in excess of the risk-free rate.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "a", "", "asset to display")
	c.years.SetFlags(f)
}

func (c *returnsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" {
		fmt.Fprintln(stderr, "-a is required")
		return subcommands.ExitUsageError
	}
	ds, err := loadDataset()
	if err != nil {
		return fail("Error loading dataset", err)
	}
	res, err := ds.Charts(factorlab.Request{Asset: c.asset, AssetYears: c.years.Range(ds.Assets())})
	if err != nil {
		return fail("Error", err)
	}
	printMarkdown(renderer.SeriesMarkdown(fmt.Sprintf("Excess Returns of %s", c.asset), res.Returns))
	return subcommands.ExitSuccess
}

type assetsCmd struct{}

func (*assetsCmd) Name() string     { return "assets" }
func (*assetsCmd) Synopsis() string { return "list the assets of the returns file" }
func (*assetsCmd) Usage() string {
	return `assets

  Lists the assets available for analysis.
`
}

func (*assetsCmd) SetFlags(f *flag.FlagSet) {}

func (c *assetsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ds, err := loadDataset()
	if err != nil {
		return fail("Error loading dataset", err)
	}
	printMarkdown(renderer.AssetsMarkdown(ds.Assets().Columns()))
	return subcommands.ExitSuccess
}
