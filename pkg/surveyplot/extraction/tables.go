package extraction

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/models"
)

// Derived table kinds.
const (
	DeriveTaxonomyAlgorithm     = "taxonomy-algorithm"
	DeriveSUTOrigins            = "sut-origins"
	DeriveMetricsPrioritization = "metrics-prioritization"
	DeriveMetricsSelection      = "metrics-selection"
)

// ErrUnknownDerive is returned for a derived table kind that does not exist.
var ErrUnknownDerive = errors.New("unknown derived table")

// Derive aggregates papers into a wide table the chart pipeline can reshape.
// Counts are distinct papers.
//
//   - taxonomy-algorithm: one row per taxonomy class, one column per algorithm family
//   - sut-origins: one row per SUT origin, columns Prioritization and Selection
//   - metrics-prioritization, metrics-selection: one row per reported metric, column Papers
func Derive(kind, sheet string, papers []Paper) (*models.Table, error) {
	switch kind {
	case DeriveTaxonomyAlgorithm:
		return taxonomyAlgorithmTable(sheet, papers), nil
	case DeriveSUTOrigins:
		return sutOriginsTable(sheet, papers), nil
	case DeriveMetricsPrioritization:
		return metricsTable(sheet, Metrics(papers, PrioritizationMetrics)), nil
	case DeriveMetricsSelection:
		return metricsTable(sheet, Metrics(papers, SelectionMetrics)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDerive, kind)
	}
}

func taxonomyAlgorithmTable(sheet string, papers []Paper) *models.Table {
	counts := make(map[string]map[string]int)
	for _, p := range Pairs(papers) {
		if counts[p.Taxonomy] == nil {
			counts[p.Taxonomy] = make(map[string]int)
		}
		counts[p.Taxonomy][p.Algorithm] = len(p.Papers)
	}

	t := newTable(sheet, "Taxonomy", AlgorithmKeys)
	for _, tax := range TaxonomyKeys {
		vals := make([]int, len(AlgorithmKeys))
		for i, a := range AlgorithmKeys {
			vals[i] = counts[tax][a]
		}
		t.addRow(tax, vals)
	}
	return t.Table
}

func sutOriginsTable(sheet string, papers []Paper) *models.Table {
	cols := []string{"Prioritization", "Selection"}
	counts := make(map[string][]int)
	for i, r := range SUTs(papers, MethodPrioritization, MethodSelection) {
		for _, g := range r.Groups {
			if counts[g.Origin] == nil {
				counts[g.Origin] = make([]int, len(cols))
			}
			counts[g.Origin][i] = len(g.Papers)
		}
	}

	t := newTable(sheet, "Origin", cols)
	for _, o := range Origins {
		vals := counts[o]
		if vals == nil {
			vals = make([]int, len(cols))
		}
		t.addRow(o, vals)
	}
	return t.Table
}

func metricsTable(sheet string, r MetricsReport) *models.Table {
	t := newTable(sheet, "Metric", []string{"Papers"})
	for _, g := range r.ByMetric {
		t.addRow(g.Metric, []int{len(g.Papers)})
	}
	return t.Table
}

type tableBuilder struct {
	*models.Table
}

func newTable(sheet, id string, cols []string) tableBuilder {
	return tableBuilder{&models.Table{
		Sheet:    sheet,
		Columns:  append([]string{id}, cols...),
		IDColumn: id,
	}}
}

func (b tableBuilder) addRow(id string, vals []int) {
	row := models.Row{R: len(b.Rows) + 2, C: map[string]models.Cell{b.IDColumn: {Text: id}}}
	for i, col := range b.Columns[1:] {
		v := vals[i]
		row.C[col] = models.Cell{Text: strconv.Itoa(v), Num: models.Some(float64(v))}
	}
	b.Rows = append(b.Rows, row)
}
