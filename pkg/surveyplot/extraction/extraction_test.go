package extraction

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/parser"
)

const sheet = "Data_Extraction"

// writeExtractionWorkbook builds an extraction sheet with four papers and a
// blank row. Data rows 1, 2, 4 and 5 are filled; 4 is a secondary study.
func writeExtractionWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	header := map[string]any{
		ColAuthors: "Authors", ColBookTitle: "Booktitle", ColTitle: "Title", ColYear: "Year",
		ColJournal: "Journal", ColType: "Type", ColMethod: "Method", ColTaxonomy: "Taxonomy",
		ColAlgorithms: "Algorithms", ColObjectives: "Objectives", ColSUTs: "SUT", ColMetrics: "Metrics",
	}
	rows := []map[string]any{
		header,
		{
			ColAuthors: "Smith, John, Doe, Jane", ColBookTitle: "ICSE", ColTitle: "Ordering tests", ColYear: 2019,
			ColType: "PS", ColMethod: "Test Case Prioritization",
			ColTaxonomy: "Coverage-based; History-based", ColAlgorithms: "Greedy, Metaheuristic",
			ColObjectives: "multi-objective", ColSUTs: "SIR: grep, flex", ColMetrics: "APFD; Execution time",
		},
		{
			ColAuthors: "Alice Brown and  Bob  White", ColTitle: "Both ways", ColYear: "2020", ColJournal: "TSE",
			ColType: "PS", ColMethod: "Prioritization and Selection",
			ColTaxonomy: "Cost-aware", ColAlgorithms: "Heuristic", ColObjectives: "1",
			ColSUTs: "Defects4J", ColMetrics: "APFD, precision",
		},
		nil,
		{
			ColAuthors: "Roe, R", ColTitle: "A mapping study", ColYear: 2021, ColJournal: "IST",
			ColType: "SS", ColMethod: "prioritization", ColTaxonomy: "coverage",
			ColAlgorithms: "greedy", ColSUTs: "SIR", ColMetrics: "APFD",
		},
		{
			ColAuthors: "A. Poe; B. Moe", ColTitle: "Selecting safely", ColYear: 2022, ColJournal: "EMSE",
			ColType: "PS", ColMethod: "Regression Test Selection",
			ColTaxonomy: "Graph-walk; Firewall", ColAlgorithms: "graph",
			ColSUTs: "company system", ColMetrics: "test suite reduction; memory consumption",
		},
	}
	for i, row := range rows {
		for col, v := range row {
			require.NoError(t, f.SetCellValue(sheet, col+strconv.Itoa(i+1), v))
		}
	}

	path := filepath.Join(t.TempDir(), "survey.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func loadFixture(t *testing.T) []Paper {
	t.Helper()
	f, err := excelize.OpenFile(writeExtractionWorkbook(t))
	require.NoError(t, err)
	defer f.Close()

	papers, err := LoadPapers(f, sheet)
	require.NoError(t, err)
	return papers
}

func TestLoadPapers(t *testing.T) {
	papers := loadFixture(t)
	require.Len(t, papers, 4, "blank rows are skipped")

	var ids []string
	for _, p := range papers {
		ids = append(ids, p.ID())
	}
	assert.Equal(t, []string{"paper_1", "paper_2", "paper_4", "paper_5"}, ids, "ids keep the row position")

	assert.Equal(t, "2019", papers[0].Year)
	assert.True(t, papers[0].Primary())
	assert.False(t, papers[2].Primary())
	assert.True(t, papers[1].Addresses(MethodSelection))
	assert.Len(t, Filter(papers, MethodPrioritization), 2)
	assert.Len(t, Filter(papers, MethodSelection), 2)
}

func TestLoadPapersMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := LoadPapers(f, "Nope")
	var nf *parser.SheetNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Nope", nf.Sheet)
}

func TestSplitMulti(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, SplitMulti("a;b＆c/d·e+f|g"))
	assert.Equal(t, []string{"one value"}, SplitMulti("  one value "))
	assert.Empty(t, SplitMulti(" ;, "))
}

func TestSplitSUT(t *testing.T) {
	assert.Equal(t, []string{"SIR", "grep", "flex"}, splitSUT("SIR: grep, flex"))
	assert.Equal(t, []string{"Defects4J", "Closure", "Lang"}, splitSUT("Defects4J: Closure,\nLang; defects4j"))
}

func TestMatchAlgorithms(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"Metaheuristic", []string{"meta"}},
		{"Metaheuristic; Heuristic-based", []string{"heuristic", "meta"}},
		{"Machine Learning, Greedy", []string{"ml", "greedy"}},
		{"Dynamic programming / graph", []string{"graph", "dynamic"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchAlgorithms(tt.raw))
		})
	}
}

func TestMatchTaxonomy(t *testing.T) {
	assert.Equal(t, []string{"coverage", "history"}, MatchTaxonomy("History-based; Coverage", TaxonomyKeys))
	assert.Equal(t, []string{"graph", "firewall"}, MatchTaxonomy("Firewall, graph-walk", SelectionTaxonomyKeys))
	assert.Empty(t, MatchTaxonomy("", TaxonomyKeys))
}

func TestParseObjectives(t *testing.T) {
	tests := []struct {
		raw  string
		want Objectives
	}{
		{"", ObjectivesUnknown},
		{"single", ObjectivesOne},
		{"1", ObjectivesOne},
		{"Multi-objective", ObjectivesMulti},
		{"multu", ObjectivesMulti},
		{"two objectives", ObjectivesMulti},
		{"3", ObjectivesMulti},
		{"several objectives", ObjectivesMulti},
		{"> 1", ObjectivesOne},
		{"cost", ObjectivesOne},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseObjectives(tt.raw))
		})
	}
}

func TestPairs(t *testing.T) {
	pairs := Pairs(loadFixture(t))

	var got []string
	for _, p := range pairs {
		got = append(got, p.Taxonomy+"/"+p.Algorithm)
	}
	assert.Equal(t, []string{
		"cost/heuristic", "coverage/greedy", "coverage/meta", "history/greedy", "history/meta",
	}, got, "secondary studies are ignored")

	assert.Equal(t, []PaperRef{{ID: "paper_2"}}, pairs[0].Papers)
	assert.Equal(t, "paper_1 [multi-obj]", pairs[1].Papers[0].String())

	var buf bytes.Buffer
	require.NoError(t, WritePairs(&buf, pairs[:2]))
	assert.Equal(t, "1.\n(cost, heuristic) [1] = paper_2\n2.\n(coverage, greedy) [1] = paper_1 [multi-obj]\n", buf.String())
}

func TestMetricsNormalize(t *testing.T) {
	p := PrioritizationMetrics
	assert.Equal(t, []string{"APFD/NAPFD", "Execution Time"}, p.Normalize("NAPFD; execution time per algorithm"))
	assert.Equal(t, []string{"Number of Faults Detected / FDR"}, p.Normalize("Fault Detection Rate"))
	assert.Equal(t, []string{MetricOther}, p.Normalize("Kendall tau"))
	assert.Empty(t, p.Normalize("something nobody measures"))
	assert.Equal(t, []string{"APFD/NAPFD"}, p.Normalize("APFD with code coverage"),
		"other applies only to parts matching no bucket")
	assert.Equal(t, []string{"APFD/NAPFD", MetricOther}, p.Normalize("APFD; mutation score"))

	s := SelectionMetrics
	assert.Equal(t, []string{"Time-Based", "Safety / Fault-Detection Capability"}, s.Normalize("time; safety"))
	assert.Equal(t, []string{"Number of Test Cases / Ratio"}, s.Normalize("# tests selected"))
}

func TestMetrics(t *testing.T) {
	papers := loadFixture(t)

	prio := Metrics(papers, PrioritizationMetrics)
	assert.Equal(t, []MetricGroup{
		{Metric: "APFD/NAPFD", Papers: []string{"paper_1", "paper_2"}},
		{Metric: "Precision/Recall/F-Measure", Papers: []string{"paper_2"}},
		{Metric: "Execution Time", Papers: []string{"paper_1"}},
	}, prio.ByMetric)
	assert.Equal(t, []MetricGroup{
		{Taxonomy: "cost", Metric: "APFD/NAPFD", Papers: []string{"paper_2"}},
		{Taxonomy: "cost", Metric: "Precision/Recall/F-Measure", Papers: []string{"paper_2"}},
		{Taxonomy: "coverage", Metric: "APFD/NAPFD", Papers: []string{"paper_1"}},
		{Taxonomy: "coverage", Metric: "Execution Time", Papers: []string{"paper_1"}},
		{Taxonomy: "history", Metric: "APFD/NAPFD", Papers: []string{"paper_1"}},
		{Taxonomy: "history", Metric: "Execution Time", Papers: []string{"paper_1"}},
	}, prio.ByTaxonomy)

	sel := Metrics(papers, SelectionMetrics)
	assert.Equal(t, []MetricGroup{
		{Metric: "Number of Test Cases / Ratio", Papers: []string{"paper_5"}},
		{Metric: "Precision/Recall/F-Measure", Papers: []string{"paper_2"}},
		{Metric: MetricOther, Papers: []string{"paper_5"}},
	}, sel.ByMetric)
	assert.Equal(t, []MetricGroup{
		{Taxonomy: "firewall", Metric: "Number of Test Cases / Ratio", Papers: []string{"paper_5"}},
		{Taxonomy: "firewall", Metric: MetricOther, Papers: []string{"paper_5"}},
		{Taxonomy: "graph", Metric: "Number of Test Cases / Ratio", Papers: []string{"paper_5"}},
		{Taxonomy: "graph", Metric: MetricOther, Papers: []string{"paper_5"}},
	}, sel.ByTaxonomy, "papers without a taxonomy class count only per metric")

	var buf bytes.Buffer
	require.NoError(t, WriteMetrics(&buf, sel))
	assert.Contains(t, buf.String(), "=== SELECTION METRICS ===\nNumber of Test Cases / Ratio [1]: paper_5\n")
	assert.Contains(t, buf.String(), "(graph, Other) [1]: paper_5\n")
}

func TestCategorizeSUTs(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"SIR: grep, flex", []string{OriginSIR}},
		{"Apache Commons Lang", []string{OriginDefects4J, OriginApache}},
		{"Siemens suite", []string{OriginIndustrial}},
		{"nopCommerce", []string{OriginPublic}},
		{"some tool", []string{OriginPublic}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, CategorizeSUTs(tt.raw))
		})
	}
}

func TestSUTs(t *testing.T) {
	reports := SUTs(loadFixture(t))
	require.Len(t, reports, 2)

	assert.Equal(t, SUTReport{Method: MethodPrioritization, Groups: []OriginGroup{
		{Origin: OriginSIR, Papers: []string{"paper_1"}},
		{Origin: OriginDefects4J, Papers: []string{"paper_2"}},
	}}, reports[0])
	assert.Equal(t, SUTReport{Method: MethodSelection, Groups: []OriginGroup{
		{Origin: OriginDefects4J, Papers: []string{"paper_2"}},
		{Origin: OriginIndustrial, Papers: []string{"paper_5"}},
	}}, reports[1])

	var buf bytes.Buffer
	require.NoError(t, WriteSUTs(&buf, reports[:1]))
	assert.Equal(t, "prioritization\nSIR [1] : paper_1\nDefects4J [1] : paper_2\n\n", buf.String())
}

func TestNormalizeAuthors(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{"", ""},
		{"Single Author", "Single Author"},
		{"Alice Brown and  Bob\tWhite", "Alice Brown and Bob White"},
		{"A. Smith; B. Doe;", "A. Smith and B. Doe"},
		{"Smith, John, Doe, Jane", "Smith, John and Doe, Jane"},
		{"Smith J, Doe A, Roe B, Poe C, Moe D", "Smith J and Doe A and Roe B and Poe C and Moe D"},
		{"Smith, j, Doe, a, Roe", "Smith, j and Doe, a and Roe"},
		{"Roe, R", "Roe, R"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAuthors(tt.raw))
		})
	}
}

func TestWriteBibTeX(t *testing.T) {
	papers := loadFixture(t)

	var buf bytes.Buffer
	n, err := WriteBibTeX(&buf, papers)
	require.NoError(t, err)
	assert.Equal(t, 4, n, "every paper is exported")

	entries := strings.Split(buf.String(), "}\n\n")
	require.Len(t, entries, 4)
	assert.Equal(t, "@inproceedings{paper_1,\n"+
		"  author = {Smith, John and Doe, Jane},\n"+
		"  title  = {Ordering tests},\n"+
		"  year   = {2019},\n"+
		"  booktitle = {ICSE}\n", entries[0])
	assert.Equal(t, "@article{paper_2,\n"+
		"  author = {Alice Brown and Bob White},\n"+
		"  title  = {Both ways},\n"+
		"  year   = {2020},\n"+
		"  journal   = {TSE}\n", entries[1])
	assert.True(t, strings.HasSuffix(buf.String(), "  journal   = {EMSE}\n}\n"))
}

func TestDerive(t *testing.T) {
	papers := loadFixture(t)

	tax, err := Derive(DeriveTaxonomyAlgorithm, sheet, papers)
	require.NoError(t, err)
	assert.Equal(t, "Taxonomy", tax.IDColumn)
	assert.Equal(t, append([]string{"Taxonomy"}, AlgorithmKeys...), tax.Columns)
	require.Len(t, tax.Rows, len(TaxonomyKeys))
	coverage := tax.Rows[0]
	assert.Equal(t, "coverage", coverage.Get("Taxonomy").Text)
	assert.Equal(t, 1.0, coverage.Get("greedy").Num.V)
	assert.True(t, coverage.Get("heuristic").Num.Valid, "unseen pairs are observed zeros")
	assert.Equal(t, 0.0, coverage.Get("heuristic").Num.V)

	origins, err := Derive(DeriveSUTOrigins, sheet, papers)
	require.NoError(t, err)
	assert.Equal(t, Origins, origins.IDs())
	assert.Equal(t, "1", origins.Rows[1].Get("Prioritization").Text)
	assert.Equal(t, "1", origins.Rows[1].Get("Selection").Text)
	assert.Equal(t, "0", origins.Rows[0].Get("Selection").Text)

	metrics, err := Derive(DeriveMetricsPrioritization, sheet, papers)
	require.NoError(t, err)
	assert.Equal(t, []string{"APFD/NAPFD", "Precision/Recall/F-Measure", "Execution Time"}, metrics.IDs())
	assert.Equal(t, 2.0, metrics.Rows[0].Get("Papers").Num.V)

	sel, err := Derive(DeriveMetricsSelection, sheet, papers)
	require.NoError(t, err)
	assert.Len(t, sel.Rows, 3)

	_, err = Derive("nope", sheet, papers)
	assert.ErrorIs(t, err, ErrUnknownDerive)
}
