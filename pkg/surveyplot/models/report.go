package models

// ZeroPolicy decides what an observed zero means for a report.
type ZeroPolicy string

const (
	// ZeroKeep treats zero as an observed value.
	ZeroKeep ZeroPolicy = "keep"
	// ZeroMissing treats zero as not observed.
	ZeroMissing ZeroPolicy = "missing"
)

// Report is the full parameter set of one figure run.
type Report struct {
	// Name identifies the report and seeds output naming.
	Name string `json:"name" yaml:"name" validate:"required"`
	// Workbook is the input workbook path; may be supplied by the caller instead.
	Workbook string `json:"workbook,omitempty" yaml:"workbook,omitempty"`
	// Sheet is a sheet name, optionally followed by !A1:F20 to restrict the region.
	Sheet string `json:"sheet" yaml:"sheet" validate:"required"`
	// IDColumn is the identifier column of the wide table.
	IDColumn string `json:"id_column,omitempty" yaml:"id_column,omitempty" validate:"required_without=Derive"`
	// ValueColumns lists the columns to reshape; empty means all non-identifier columns.
	ValueColumns []string `json:"value_columns,omitempty" yaml:"value_columns,omitempty"`
	// Exclude lists identifier values dropped before reshaping, e.g. "Total".
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	// ZeroPolicy is keep (default) or missing.
	ZeroPolicy ZeroPolicy `json:"zero_policy,omitempty" yaml:"zero_policy,omitempty" validate:"omitempty,oneof=keep missing"`
	// Percent derives group-relative percentages.
	Percent bool `json:"percent,omitempty" yaml:"percent,omitempty"`
	// Split renders one file per distinct value of this field.
	Split Field `json:"split,omitempty" yaml:"split,omitempty" validate:"omitempty,oneof=group series"`
	// Derive builds the table from the raw extraction sheet instead of reading it as a wide table.
	Derive string `json:"derive,omitempty" yaml:"derive,omitempty" validate:"omitempty,oneof=taxonomy-algorithm sut-origins metrics-prioritization metrics-selection"`

	Visual VisualSpec `json:"visual" yaml:"visual"`
	Theme  Theme      `json:"theme,omitempty" yaml:"theme,omitempty"`

	// Output is the figure path; {name} is replaced by the split category.
	Output string `json:"output" yaml:"output" validate:"required"`
	Size   Size   `json:"size" yaml:"size"`
}
