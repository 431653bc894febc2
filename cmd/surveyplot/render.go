package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/config"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/models"
)

var (
	sheetRef  string
	idColumn  string
	columns   []string
	exclude   []string
	chart     string
	flip      bool
	facet     string
	percent   bool
	zeroAsNA  bool
	title     string
	output    string
	width     float64
	height    float64
	unit      string
	legendPos string
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render input.xlsx",
		Short: "Render one sheet without a report file",
		Long: `render draws a single sheet as a heatmap, stacked bars (bar), percent-filled
bars (fill) or a treemap.

Example:
  surveyplot render survey.xlsx --sheet RQ4_replicability_per_year --id Year \
    --chart fill -o rq4.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: renderSheet,
	}
	cmd.Flags().StringVar(&sheetRef, "sheet", "", "Sheet name, optionally with !A1:F20")
	cmd.Flags().StringVar(&idColumn, "id", "", "Identifier column")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Value columns (default: all others)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", []string{config.TotalRow}, "Identifier values to drop")
	cmd.Flags().StringVar(&chart, "chart", "bar", "Chart type: heatmap, bar, fill, treemap")
	cmd.Flags().BoolVar(&flip, "flip", false, "Draw bars horizontally")
	cmd.Flags().StringVar(&facet, "facet", "", "Split into panels by group or series")
	cmd.Flags().BoolVar(&percent, "percent", false, "Label bars with group percentages")
	cmd.Flags().BoolVar(&zeroAsNA, "zero-as-missing", false, "Treat zero cells as not observed (default true for heatmap)")
	cmd.Flags().StringVar(&title, "title", "", "Figure title")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output PDF path (default: <sheet>.pdf)")
	cmd.Flags().Float64Var(&width, "width", config.DefaultSize.Width, "Page width")
	cmd.Flags().Float64Var(&height, "height", config.DefaultSize.Height, "Page height")
	cmd.Flags().StringVar(&unit, "unit", config.DefaultSize.Unit, "Size unit: mm, cm, in, pt")
	cmd.Flags().StringVar(&legendPos, "legend", "", "Legend placement: right, bottom, top, none")
	_ = cmd.MarkFlagRequired("sheet")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func renderSheet(cmd *cobra.Command, args []string) error {
	visual, err := chartVisual(chart)
	if err != nil {
		return err
	}
	visual.Title = title
	visual.FacetField = models.Field(facet)
	if flip {
		visual.Orientation = models.OrientationFlipped
	}

	name, _, _ := strings.Cut(sheetRef, "!")
	if output == "" {
		output = name + ".pdf"
	}
	r := models.Report{
		Name:         name,
		Sheet:        sheetRef,
		IDColumn:     idColumn,
		ValueColumns: columns,
		Exclude:      exclude,
		Percent:      percent || chart == "fill",
		Visual:       visual,
		Theme:        models.Theme{Legend: models.LegendPosition(legendPos)},
		Output:       output,
		Size:         models.Size{Width: width, Height: height, Unit: unit},
	}
	r.ZeroPolicy = zeroPolicy(chart, cmd.Flags().Changed("zero-as-missing"), zeroAsNA)

	file := &config.File{Reports: []models.Report{r}}
	file.ApplyDefaults()
	if err := config.Validate(file.Reports); err != nil {
		return err
	}

	paths, err := surveyplot.Generate(cmd.Context(), file.Reports[0], surveyplot.Options{
		Logger:   logger,
		Workbook: args[0],
	})
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}
	for _, p := range paths {
		abs, _ := filepath.Abs(p)
		fmt.Fprintln(cmd.OutOrStdout(), abs)
	}
	return nil
}

// zeroPolicy picks the zero handling of a chart. Heatmaps leave zero cells
// blank unless the flag says otherwise.
func zeroPolicy(chart string, set, missing bool) models.ZeroPolicy {
	if !set {
		missing = chart == "heatmap"
	}
	if missing {
		return models.ZeroMissing
	}
	return models.ZeroKeep
}

// chartVisual maps a chart name to its channel assignment. Rows are groups
// and value columns are series.
func chartVisual(name string) (models.VisualSpec, error) {
	switch name {
	case "heatmap":
		return models.VisualSpec{
			XField:     models.FieldSeries,
			YField:     models.FieldGroup,
			FillField:  models.FieldValue,
			LabelField: models.FieldValue,
			ColorScale: models.ColorScale{Kind: models.ScaleContinuous},
		}, nil
	case "bar":
		return models.VisualSpec{
			XField:    models.FieldGroup,
			YField:    models.FieldValue,
			FillField: models.FieldSeries,
			StackMode: models.StackStacked,
		}, nil
	case "fill":
		return models.VisualSpec{
			XField:       models.FieldGroup,
			YField:       models.FieldValue,
			FillField:    models.FieldSeries,
			PatternField: models.FieldSeries,
			LabelField:   models.FieldPercent,
			StackMode:    models.StackPercent,
		}, nil
	case "treemap":
		return models.VisualSpec{
			AreaField:  models.FieldValue,
			FillField:  models.FieldValue,
			LabelField: models.FieldGroup,
			ColorScale: models.ColorScale{Kind: models.ScaleContinuous},
		}, nil
	}
	return models.VisualSpec{}, fmt.Errorf("invalid chart: %s (must be heatmap, bar, fill or treemap)", name)
}
