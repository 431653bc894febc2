package extraction

import (
	"fmt"
	"io"
	"strings"
)

// WritePairs prints pairs as a numbered list:
//
//	1.
//	(coverage, greedy) [2] = paper_3, paper_7 [multi-obj]
func WritePairs(w io.Writer, pairs []Pair) error {
	for i, p := range pairs {
		refs := make([]string, len(p.Papers))
		for k, r := range p.Papers {
			refs[k] = r.String()
		}
		_, err := fmt.Fprintf(w, "%d.\n(%s, %s) [%d] = %s\n",
			i+1, p.Taxonomy, p.Algorithm, len(p.Papers), strings.Join(refs, ", "))
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteMetrics prints the per-metric listing followed by the
// taxonomy by metric listing of one method.
func WriteMetrics(w io.Writer, r MetricsReport) error {
	title := strings.ToUpper(r.Method)
	var b strings.Builder
	fmt.Fprintf(&b, "\n=== %s METRICS ===\n", title)
	for _, g := range r.ByMetric {
		fmt.Fprintf(&b, "%s [%d]: %s\n", g.Metric, len(g.Papers), strings.Join(g.Papers, ", "))
	}
	fmt.Fprintf(&b, "\n=== %s TAXONOMY x METRIC ===\n", title)
	for _, g := range r.ByTaxonomy {
		fmt.Fprintf(&b, "(%s, %s) [%d]: %s\n", g.Taxonomy, g.Metric, len(g.Papers), strings.Join(g.Papers, ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSUTs prints one block per method, each followed by a blank line.
func WriteSUTs(w io.Writer, reports []SUTReport) error {
	var b strings.Builder
	for _, r := range reports {
		b.WriteString(r.Method + "\n")
		for _, g := range r.Groups {
			fmt.Fprintf(&b, "%s [%d] : %s\n", g.Origin, len(g.Papers), strings.Join(g.Papers, ", "))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
