package renderer

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/etnz/factorlab"
	md "github.com/nao1215/markdown"
)

// Equation returns the regression equation over factors, as plain text.
func Equation(factors []string) string {
	terms := []string{"α"}
	for i, f := range factors {
		terms = append(terms, fmt.Sprintf("β%d·%s", i+1, f))
	}
	terms = append(terms, "ε")
	return "R - RF = " + strings.Join(terms, " + ")
}

// EquationMarkdown renders the header of the factor model.
func EquationMarkdown(factors []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Fama-French Factor Model")
	doc.PlainText(md.Code(Equation(factors)))

	return doc.String()
}

// ModelMarkdown renders the coefficients and fit statistics of a model.
func ModelMarkdown(m *factorlab.Model) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Factor Model for %s", m.Dependent()))
	doc.PlainText(md.Code(Equation(m.Factors())))

	doc.H2("Coefficients")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Parameter", "Coefficient", "Std. Error", "t", "p-value"},
		Rows:   [][]string{},
	}
	for _, p := range m.Params() {
		table.Rows = append(table.Rows, []string{
			factorlab.FactorLabel(p.Name),
			number(p.Coef, 4),
			number(p.StdErr, 4),
			number(p.T, 2),
			number(p.P, 3),
		})
	}
	doc.Table(table)

	doc.H2("Statistics")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Observations", fmt.Sprint(m.Observations())},
			{"Period", period(m)},
			{"R²", number(m.RSquared(), 3)},
			{"Adjusted R²", number(m.AdjRSquared(), 3)},
			{"Residual Std. Error", number(m.ResidualStdErr(), 4)},
		},
	})

	return doc.String()
}

// number formats v with a fixed number of decimals, or "n/a" if it is not defined.
func number(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", decimals, v)
}

func period(m *factorlab.Model) string {
	months := m.Months()
	if len(months) == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%s to %s", months[0], months[len(months)-1])
}
