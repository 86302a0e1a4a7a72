package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/factorlab"
	md "github.com/nao1215/markdown"
)

// Flags displayed next to a projection.
const (
	Up   = "▲"
	Down = "▼"
)

// Flag returns the sign flag of an expected return, as displayed with one decimal.
// A return that rounds to zero is flagged Up.
func Flag(p factorlab.Percent) string {
	if p.IsNegative() {
		return Down
	}
	return Up
}

// ProjectionMarkdown renders the scenario and the projected excess return of a Result.
func ProjectionMarkdown(r *factorlab.Result) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Projection for %s", r.Asset))

	doc.H2("Scenario")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Factor", "Shock", "Coefficient"},
		Rows:      [][]string{},
	}
	for _, f := range r.Model.Factors() {
		beta, _ := r.Model.Coefficient(f)
		table.Rows = append(table.Rows, []string{
			factorlab.FactorLabel(f),
			r.Scenario.Percent(f).SignedString(),
			number(beta, 4),
		})
	}
	doc.Table(table)

	doc.H2("Expected Excess Return")
	result := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header: []string{
			md.Bold(fmt.Sprintf("%s Monthly", Flag(r.Percent()))),
			md.Bold(r.Percent().String()),
		},
		Rows: [][]string{
			{"Alpha", factorlab.PercentOf(r.Model.Intercept()).SignedString()},
		},
	}
	if r.Amount != nil && r.Gain != nil {
		result.Rows = append(result.Rows, []string{
			fmt.Sprintf("P&L on %s", r.Amount),
			r.Gain.SignedString(),
		})
	}
	doc.Table(result)

	return doc.String()
}
