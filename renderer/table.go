package renderer

import (
	"bytes"
	"math"

	"github.com/etnz/factorlab"
	md "github.com/nao1215/markdown"
)

// TableMarkdown renders a return table, one row per month and one column per series,
// values in percent.
func TableMarkdown(title string, t *factorlab.Table) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)

	columns := t.Columns()
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft},
		Header:    append([]string{"Month"}, columns...),
		Rows:      [][]string{},
	}
	for range columns {
		table.Alignment = append(table.Alignment, md.AlignRight)
	}
	for _, on := range t.Months() {
		row := []string{on.String()}
		for _, c := range columns {
			row = append(row, percent(t.Column(c).Get(on)))
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)

	return doc.String()
}

// SeriesMarkdown renders a single return series.
func SeriesMarkdown(title string, s *factorlab.Series) string {
	return TableMarkdown(title, factorlab.NewTable(s))
}

func percent(v float64, ok bool) string {
	if !ok || math.IsNaN(v) {
		return ""
	}
	return factorlab.PercentOf(v).String()
}

// AssetsMarkdown renders the list of assets available for analysis.
func AssetsMarkdown(names []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Assets")
	doc.BulletList(names...)

	return doc.String()
}
