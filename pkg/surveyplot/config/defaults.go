package config

import (
	"strconv"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/models"
)

// TotalRow is the sentinel identifier of summary rows in survey sheets.
const TotalRow = "Total"

// ReplicationOrder is the replicability severity order, none < partial < full.
var ReplicationOrder = []string{"No Replication", "Partial Replication", "Full Replication"}

// SurveyYears is the publication year range covered by the survey.
var SurveyYears = yearRange(2013, 2025)

// ExtractionSheet is the raw data-extraction sheet read by derived reports.
const ExtractionSheet = "Data_Extraction"

// Default returns the built-in survey reports, used when no report file is given.
func Default() *File {
	f := &File{
		Reports: []models.Report{
			{
				Name:     "rq1-trends",
				Sheet:    "RQ1_trends_by_category_per_year",
				IDColumn: "Year",
				Exclude:  []string{TotalRow},
				Visual: models.VisualSpec{
					Title:      "Publications per year by category",
					XTitle:     "Year",
					YTitle:     "Papers",
					XField:     models.FieldGroup,
					YField:     models.FieldValue,
					FillField:  models.FieldSeries,
					StackMode:  models.StackStacked,
					GroupOrder: SurveyYears,
				},
				Theme:  models.Theme{TickRotation: 45},
				Output: "rq1_trends_by_category.pdf",
			},
			{
				Name:     "rq1-trends-per-category",
				Sheet:    "RQ1_trends_by_category_per_year",
				IDColumn: "Year",
				Exclude:  []string{TotalRow},
				Split:    models.FieldSeries,
				Visual: models.VisualSpec{
					XTitle:     "Year",
					YTitle:     "Papers",
					XField:     models.FieldGroup,
					YField:     models.FieldValue,
					FillField:  models.FieldSeries,
					StackMode:  models.StackNone,
					GroupOrder: SurveyYears,
				},
				Theme:  models.Theme{TickRotation: 45, Legend: models.LegendNone},
				Output: "rq1_trend_{name}.pdf",
				Size:   models.Size{Width: 90, Height: 60, Unit: "mm"},
			},
			{
				Name:       "rq2-taxonomy-algorithm",
				Sheet:      "RQ2_p_taxonomy_vs_algorithm",
				IDColumn:   "Taxonomy",
				Exclude:    []string{TotalRow},
				ZeroPolicy: models.ZeroMissing,
				Visual: models.VisualSpec{
					XTitle:     "Algorithm family",
					YTitle:     "Taxonomy",
					XField:     models.FieldSeries,
					YField:     models.FieldGroup,
					FillField:  models.FieldValue,
					LabelField: models.FieldValue,
					ColorScale: models.ColorScale{Kind: models.ScaleContinuous, Missing: "#F2F2F2"},
				},
				Theme:  models.Theme{TickRotation: 30},
				Output: "rq2_taxonomy_vs_algorithm.pdf",
				Size:   models.Size{Width: 140, Height: 100, Unit: "mm"},
			},
			{
				Name:     "rq3-datasets",
				Sheet:    "RQ3_datasets",
				IDColumn: "Dataset",
				Exclude:  []string{TotalRow},
				Visual: models.VisualSpec{
					AreaField:  models.FieldValue,
					FillField:  models.FieldValue,
					LabelField: models.FieldGroup,
					ColorScale: models.ColorScale{Kind: models.ScaleContinuous},
				},
				Output: "rq3_datasets.pdf",
			},
			{
				Name:     "rq4-replicability",
				Sheet:    "RQ4_replicability_per_year",
				IDColumn: "Year",
				Exclude:  []string{TotalRow},
				Percent:  true,
				Visual: models.VisualSpec{
					XTitle:       "Year",
					YTitle:       "Share of papers",
					XField:       models.FieldGroup,
					YField:       models.FieldValue,
					FillField:    models.FieldSeries,
					PatternField: models.FieldSeries,
					StackMode:    models.StackPercent,
					GroupOrder:   SurveyYears,
					SeriesOrder:  ReplicationOrder,
				},
				Theme:  models.Theme{Legend: models.LegendBottom, TickRotation: 45},
				Output: "rq4_replicability.pdf",
			},
			{
				Name:   "sut-origins",
				Sheet:  ExtractionSheet,
				Derive: "sut-origins",
				Visual: models.VisualSpec{
					Title:      "Systems under test by origin",
					AreaField:  models.FieldValue,
					FillField:  models.FieldGroup,
					LabelField: models.FieldGroup,
					FacetField: models.FieldSeries,
				},
				Theme:  models.Theme{Legend: models.LegendNone},
				Output: "sut_origins.pdf",
			},
			{
				Name:   "metrics-prioritization",
				Sheet:  ExtractionSheet,
				Derive: "metrics-prioritization",
				Visual: models.VisualSpec{
					XTitle:      "Papers",
					XField:      models.FieldGroup,
					YField:      models.FieldValue,
					Orientation: models.OrientationFlipped,
				},
				Theme:  models.Theme{Legend: models.LegendNone},
				Output: "metrics_prioritization.pdf",
			},
		},
	}
	f.ApplyDefaults()
	return f
}

func yearRange(from, to int) []string {
	out := make([]string, 0, to-from+1)
	for y := from; y <= to; y++ {
		out = append(out, strconv.Itoa(y))
	}
	return out
}
