package surveyplot

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input workbook does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoWorkbook indicates neither the report nor the options name a workbook.
var ErrNoWorkbook = errors.New("no workbook given")

// Pipeline stages reported by ReportError.
const (
	StageOpen    = "open"
	StageLoad    = "load"
	StageReshape = "reshape"
	StageEncode  = "encode"
	StageLayout  = "layout"
	StageExport  = "export"
)

// ReportError represents a failure while generating one report.
type ReportError struct {
	Report string
	Stage  string // one of the Stage constants
	Err    error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report %q (%s): %v", e.Report, e.Stage, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError.
func NewReportError(report, stage string, err error) *ReportError {
	return &ReportError{
		Report: report,
		Stage:  stage,
		Err:    err,
	}
}
