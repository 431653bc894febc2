// Package surveyplot renders survey figures from workbook sheets: each report
// loads a wide table, reshapes it to long records, maps them to marks and
// writes a vector PDF.
package surveyplot

import "go.uber.org/zap"

// Options configures report generation.
type Options struct {
	// Logger receives stage and file events. If nil, logging is disabled.
	Logger *zap.Logger
	// Workbook is used by reports that do not name their own workbook.
	Workbook string
	// OutputDir prefixes relative output paths. Empty means the working directory.
	OutputDir string
	// Parallel bounds how many reports GenerateAll runs at once.
	// Values below 1 mean one at a time.
	Parallel int
}

// DefaultOptions returns options that generate reports one at a time without logging.
func DefaultOptions() Options {
	return Options{
		Logger:   zap.NewNop(),
		Parallel: 1,
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) limit() int {
	if o.Parallel < 1 {
		return 1
	}
	return o.Parallel
}
