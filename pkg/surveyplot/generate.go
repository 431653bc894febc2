package surveyplot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/config"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/encode"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/extraction"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/models"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/parser"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/render"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/reshape"
)

// Generate renders one report and returns the paths it wrote, one per split
// category or a single path when the report is not split.
func Generate(ctx context.Context, r models.Report, opts Options) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := opts.logger().With(zap.String("report", r.Name))

	f, err := openWorkbook(r, opts)
	if err != nil {
		return nil, NewReportError(r.Name, StageOpen, err)
	}
	defer f.Close()

	table, err := loadTable(f, r)
	if err != nil {
		return nil, NewReportError(r.Name, StageLoad, err)
	}
	log.Debug("table loaded", zap.String("sheet", table.Sheet), zap.Int("rows", len(table.Rows)))

	records, err := reshape.Pivot(reshape.ExcludeRows(table, r.Exclude...), reshape.Options{
		IDColumn:     r.IDColumn,
		ValueColumns: r.ValueColumns,
		GroupOrder:   r.Visual.GroupOrder,
		SeriesOrder:  r.Visual.SeriesOrder,
	})
	if err != nil {
		return nil, NewReportError(r.Name, StageReshape, err)
	}
	if r.Percent {
		records = reshape.Percentages(records)
	}
	if r.ZeroPolicy == models.ZeroMissing {
		records = reshape.ZeroAsMissing(records)
	}
	log.Debug("records reshaped", zap.Int("records", len(records)))

	var paths []string
	for _, fig := range figures(r, records) {
		path := outputPath(opts.OutputDir, fig.output)
		if err := draw(fig, r, path); err != nil {
			return paths, err
		}
		log.Info("figure written", zap.String("path", path), zap.Int("records", len(fig.records)))
		paths = append(paths, path)
	}
	return paths, nil
}

// GenerateAll renders reports with at most opts.Parallel running at once and
// returns the written paths in report order. The first failure stops further
// reports from starting and is returned once running reports finish.
func GenerateAll(ctx context.Context, reports []models.Report, opts Options) ([]string, error) {
	results := make([][]string, len(reports))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.limit())
	for i, r := range reports {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			paths, err := Generate(gctx, r, opts)
			results[i] = paths
			return err
		})
	}
	err := g.Wait()

	var all []string
	for _, paths := range results {
		all = append(all, paths...)
	}
	if err != nil {
		return all, err
	}
	return all, ctx.Err()
}

type figure struct {
	name    string
	output  string
	visual  models.VisualSpec
	records []models.LongRecord
}

// figures splits records into one figure per category of the report's split
// field. Untitled split figures take the category as title.
func figures(r models.Report, records []models.LongRecord) []figure {
	if r.Split == models.FieldNone {
		return []figure{{name: r.Name, output: r.Output, visual: r.Visual, records: records}}
	}
	var out []figure
	for _, key := range reshape.Keys(records, r.Split) {
		visual := r.Visual
		if visual.Title == "" {
			visual.Title = key
		}
		out = append(out, figure{
			name:    key,
			output:  strings.ReplaceAll(r.Output, config.NamePlaceholder, slug(key)),
			visual:  visual,
			records: reshape.Filter(records, r.Split, key),
		})
	}
	return out
}

func draw(fig figure, r models.Report, path string) error {
	marks, err := encode.Encode(fig.records, fig.visual)
	if err != nil {
		return NewReportError(r.Name, StageEncode, fmt.Errorf("%s: %w", fig.name, err))
	}
	layout, err := render.Compose(marks, r.Theme, r.Size)
	if err != nil {
		return NewReportError(r.Name, StageLayout, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return NewReportError(r.Name, StageExport, &render.ExportError{Path: path, Err: err})
	}
	if err := render.Export(layout, path); err != nil {
		return NewReportError(r.Name, StageExport, err)
	}
	return nil
}

func openWorkbook(r models.Report, opts Options) (*excelize.File, error) {
	path := r.Workbook
	if path == "" {
		path = opts.Workbook
	}
	if path == "" {
		return nil, ErrNoWorkbook
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := parser.OpenWorkbook(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return f, nil
}

// loadTable reads the report's sheet as a wide table, or derives one from
// the extraction sheet when the report names a derived table.
func loadTable(f *excelize.File, r models.Report) (*models.Table, error) {
	if r.Derive == "" {
		return parser.LoadTable(f, r.Sheet, r.IDColumn)
	}
	papers, err := extraction.LoadPapers(f, r.Sheet)
	if err != nil {
		return nil, err
	}
	sheet, _ := parser.ParseSheetRef(r.Sheet)
	return extraction.Derive(r.Derive, sheet, papers)
}

func outputPath(dir, output string) string {
	if dir == "" || filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(dir, output)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// slug turns a category into a file-name fragment: "Model-based Testing" becomes "model_based_testing".
func slug(s string) string {
	out := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "_"), "_")
	if out == "" {
		return "blank"
	}
	return out
}
