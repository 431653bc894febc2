// Package extraction analyses the raw data-extraction sheet of the survey:
// one paper per row, classified by method, taxonomy, algorithm family, system
// under test and evaluation metric.
package extraction

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/parser"
)

// Column letters of the extraction sheet.
const (
	ColAuthors    = "C"
	ColBookTitle  = "D"
	ColTitle      = "E"
	ColYear       = "F"
	ColJournal    = "O"
	ColType       = "Y"
	ColMethod     = "Z"
	ColTaxonomy   = "AA"
	ColAlgorithms = "AB"
	ColObjectives = "AC"
	ColSUTs       = "AD"
	ColMetrics    = "AG"
)

// Method names matched against the method column.
const (
	MethodPrioritization = "prioritization"
	MethodSelection      = "selection"
)

// PrimaryStudy is the paper-type value of primary studies.
const PrimaryStudy = "PS"

// Paper is one data row of the extraction sheet.
type Paper struct {
	// Index is the 1-based data row number; the header is row 0.
	Index int

	Authors    string
	BookTitle  string
	Title      string
	Year       string
	Journal    string
	Type       string
	Method     string
	Taxonomy   string
	Algorithms string
	Objectives string
	SUTs       string
	Metrics    string
}

// ID is the stable paper identifier, paper_<Index>.
func (p Paper) ID() string {
	return "paper_" + strconv.Itoa(p.Index)
}

// Primary reports whether the paper is a primary study.
func (p Paper) Primary() bool {
	return strings.TrimSpace(p.Type) == PrimaryStudy
}

// Addresses reports whether the method column mentions method.
func (p Paper) Addresses(method string) bool {
	return strings.Contains(strings.ToLower(p.Method), method)
}

// LoadPapers reads every non-blank data row of sheet. The first row is the header.
func LoadPapers(f *excelize.File, sheet string) ([]Paper, error) {
	sheet, _ = parser.ParseSheetRef(sheet)
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, &parser.SheetNotFoundError{Sheet: sheet, Available: f.GetSheetList()}
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	cols := make(map[string]int)
	for _, name := range []string{
		ColAuthors, ColBookTitle, ColTitle, ColYear, ColJournal, ColType, ColMethod,
		ColTaxonomy, ColAlgorithms, ColObjectives, ColSUTs, ColMetrics,
	} {
		n, err := excelize.ColumnNameToNumber(name)
		if err != nil {
			return nil, err
		}
		cols[name] = n - 1
	}

	var papers []Paper
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		cell := func(col string) string {
			if c := cols[col]; c < len(row) {
				return strings.TrimSpace(row[c])
			}
			return ""
		}
		if blank(row) {
			continue
		}
		papers = append(papers, Paper{
			Index:      i,
			Authors:    cell(ColAuthors),
			BookTitle:  cell(ColBookTitle),
			Title:      cell(ColTitle),
			Year:       normalizeYear(cell(ColYear)),
			Journal:    cell(ColJournal),
			Type:       cell(ColType),
			Method:     cell(ColMethod),
			Taxonomy:   cell(ColTaxonomy),
			Algorithms: cell(ColAlgorithms),
			Objectives: cell(ColObjectives),
			SUTs:       cell(ColSUTs),
			Metrics:    cell(ColMetrics),
		})
	}
	return papers, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// normalizeYear turns numeric years such as "2019.0" into "2019".
func normalizeYear(s string) string {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.Itoa(int(f))
	}
	return s
}

// Filter returns the primary studies addressing method.
func Filter(papers []Paper, method string) []Paper {
	var out []Paper
	for _, p := range papers {
		if p.Primary() && p.Addresses(method) {
			out = append(out, p)
		}
	}
	return out
}

// paperSet collects paper indices without duplicates.
type paperSet map[int]bool

func (s paperSet) indices() []int {
	idx := make([]int, 0, len(s))
	for i := range s {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// sorted returns the paper IDs in numeric order.
func (s paperSet) sorted() []string {
	idx := s.indices()
	out := make([]string, len(idx))
	for k, i := range idx {
		out[k] = Paper{Index: i}.ID()
	}
	return out
}
