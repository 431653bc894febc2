package extraction

import (
	"regexp"
	"sort"
	"strings"
)

// MetricOther collects recognised metrics outside the canonical buckets.
const MetricOther = "Other"

type bucket struct {
	name     string
	patterns []*regexp.Regexp
}

// MetricScheme normalises free-text evaluation metrics into canonical
// buckets for one method.
type MetricScheme struct {
	Method   string
	Taxonomy []string
	buckets  []bucket
	other    []*regexp.Regexp
}

// Order returns the canonical bucket names, Other last.
func (s *MetricScheme) Order() []string {
	out := make([]string, 0, len(s.buckets)+1)
	for _, b := range s.buckets {
		out = append(out, b.name)
	}
	return append(out, MetricOther)
}

// Normalize returns the buckets matched by a metrics cell, in Order. Each
// part may match several buckets; a part matching none falls into Other
// only when it matches one of the scheme's known outliers. Unrecognised
// parts are ignored.
func (s *MetricScheme) Normalize(raw string) []string {
	found := make(map[string]bool)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	for _, tok := range tokens(raw) {
		matched := false
		for _, b := range s.buckets {
			if anyMatch(b.patterns, tok) {
				found[b.name] = true
				matched = true
			}
		}
		if !matched && anyMatch(s.other, tok) {
			found[MetricOther] = true
		}
	}
	return inOrder(s.Order(), found)
}

func (s *MetricScheme) rank(metric string) int {
	for i, m := range s.Order() {
		if m == metric {
			return i
		}
	}
	return len(s.buckets) + 1
}

// PrioritizationMetrics is the metric scheme of prioritization studies.
var PrioritizationMetrics = &MetricScheme{
	Method:   MethodPrioritization,
	Taxonomy: TaxonomyKeys,
	buckets: []bucket{
		{"APFD/NAPFD", compile(
			`\bapfd\b`, `\bnapfd\b`, `normalized-?apfd\b`, `\bapfdc\b`,
			`\bapva\b`, `\bafdp\b`, `\bafpd\b`,
			`average percentage (of )?faults detected`,
		)},
		{"Code-Coverage", compile(`\bapbc\b`, `\bapsc\b`, `\bapfc\b`)},
		{"Number of Faults Detected / FDR", compile(
			`faults? detected\b`, `\bfdr\b`, `fault detection rate`,
			`high-?severity faults detected early`,
		)},
		{"Time-Based / Cost-Aware", compile(
			`time to first failure|\bttff\b`, `mean fault detection time|\bmtfd\b`,
			`time to risk detection`, `execution cost`,
			`cost-?aware apfdc`, `average percentage of fault detected per cost`,
		)},
		{"Precision/Recall/F-Measure", compile(
			`\bprecision\b`, `\brecall\b`, `f-?measure\b`, `\bf1-?score\b`,
		)},
		{"Execution Time", compile(
			`prioritization execution time`, `time for prioritization`,
			`execution time( per algorithm)?\b`,
		)},
	},
	other: compile(
		`kendall tau`, `redundancy rate`, `\bhypervolume\b`, `\bnrpa\b`,
		`\bndcg\b`, `mutation score`, `effectiveness on flaky tests`,
		`\bcode coverage\b`, `first-?fault position`, `target test path finding rate`,
		`hamming distance`, `# ?of test cases executed`, `percentage of suite runned`,
	),
}

// SelectionMetrics is the metric scheme of selection studies.
var SelectionMetrics = &MetricScheme{
	Method:   MethodSelection,
	Taxonomy: SelectionTaxonomyKeys,
	buckets: []bucket{
		{"Number of Test Cases / Ratio", compile(
			`numero test selezionati`, `% ?di test selezionati`, `# ?tests? selected`,
			`selected test ratio`, `test suite reduction`,
		)},
		{"Time-Based", compile(
			`user\+system execution time`, `test suite execution time`, `\btime\b`,
			`\bae time\b`, `\baec time\b`, `execution time`,
		)},
		{"Precision/Recall/F-Measure", compile(
			`\bprecision\b`, `\brecall\b`, `f-?measure\b`, `\bprecision ?%`,
		)},
		{"Safety / Fault-Detection Capability", compile(
			`\bsafety\b`, `safety %`, `fault-?detection capability`,
			`fault detection ability`, `number of detected faults`,
			`detection effectiveness`,
		)},
	},
	other: compile(
		`\bhypervolume\b`, `qualitative/?effectiveness`, `time saving percentage`,
		`size of (the )?pareto frontier`, `number of non-?dominated solutions`,
		`memory consumption`,
	),
}

// MetricGroup lists the papers reporting a metric bucket, optionally within
// one taxonomy class.
type MetricGroup struct {
	Taxonomy string
	Metric   string
	Papers   []string
}

// MetricsReport holds the per-metric and per (taxonomy, metric) listings of a method.
type MetricsReport struct {
	Method     string
	ByMetric   []MetricGroup
	ByTaxonomy []MetricGroup
}

// Metrics aggregates the primary studies of scheme's method. Papers without
// a recognised metric are skipped; papers without a taxonomy class count
// only per metric.
func Metrics(papers []Paper, scheme *MetricScheme) MetricsReport {
	type key struct{ taxonomy, metric string }
	byMetric := make(map[string]paperSet)
	byPair := make(map[key]paperSet)

	add := func(m map[key]paperSet, k key, idx int) {
		if m[k] == nil {
			m[k] = make(paperSet)
		}
		m[k][idx] = true
	}

	for _, p := range Filter(papers, scheme.Method) {
		metrics := scheme.Normalize(p.Metrics)
		if len(metrics) == 0 {
			continue
		}
		for _, m := range metrics {
			if byMetric[m] == nil {
				byMetric[m] = make(paperSet)
			}
			byMetric[m][p.Index] = true
		}
		for _, t := range MatchTaxonomy(p.Taxonomy, scheme.Taxonomy) {
			for _, m := range metrics {
				add(byPair, key{t, m}, p.Index)
			}
		}
	}

	r := MetricsReport{Method: scheme.Method}
	for _, m := range scheme.Order() {
		if set := byMetric[m]; len(set) > 0 {
			r.ByMetric = append(r.ByMetric, MetricGroup{Metric: m, Papers: set.sorted()})
		}
	}
	for k, set := range byPair {
		r.ByTaxonomy = append(r.ByTaxonomy, MetricGroup{Taxonomy: k.taxonomy, Metric: k.metric, Papers: set.sorted()})
	}
	sort.Slice(r.ByTaxonomy, func(i, j int) bool {
		a, b := r.ByTaxonomy[i], r.ByTaxonomy[j]
		if a.Taxonomy != b.Taxonomy {
			return a.Taxonomy < b.Taxonomy
		}
		if ra, rb := scheme.rank(a.Metric), scheme.rank(b.Metric); ra != rb {
			return ra < rb
		}
		return a.Metric < b.Metric
	})
	return r
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

func anyMatch(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
