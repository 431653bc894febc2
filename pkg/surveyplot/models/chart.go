package models

// Field names a LongRecord attribute that a visual channel reads.
type Field string

const (
	FieldNone    Field = ""
	FieldGroup   Field = "group"
	FieldSeries  Field = "series"
	FieldValue   Field = "value"
	FieldPercent Field = "percent"
)

// Categorical reports whether the field holds category keys rather than numbers.
func (f Field) Categorical() bool {
	return f == FieldGroup || f == FieldSeries
}

// ScaleKind selects how fill colours are resolved.
type ScaleKind string

const (
	// ScaleContinuous interpolates between two endpoint colours.
	ScaleContinuous ScaleKind = "continuous"
	// ScaleDiscrete indexes a categorical palette.
	ScaleDiscrete ScaleKind = "discrete"
)

// Orientation of bar charts.
type Orientation string

const (
	OrientationNormal  Orientation = "normal"
	OrientationFlipped Orientation = "flipped"
)

// StackMode controls how bars sharing an axis position are combined.
type StackMode string

const (
	StackNone    StackMode = "none"
	StackStacked StackMode = "stacked"
	StackPercent StackMode = "percent"
)

// Geometry is the mark shape implied by a VisualSpec.
type Geometry int

const (
	GeometryBar Geometry = iota
	GeometryTile
	GeometryTreemap
)

func (g Geometry) String() string {
	switch g {
	case GeometryTile:
		return "tile"
	case GeometryTreemap:
		return "treemap"
	}
	return "bar"
}

// ColorScale configures fill colour resolution.
type ColorScale struct {
	// Kind is continuous or discrete.
	Kind ScaleKind `json:"kind" yaml:"kind" validate:"omitempty,oneof=continuous discrete"`
	// Low is the continuous colour for the smallest observed value.
	Low string `json:"low,omitempty" yaml:"low,omitempty" validate:"omitempty,hexcolor"`
	// High is the continuous colour for the largest observed value.
	High string `json:"high,omitempty" yaml:"high,omitempty" validate:"omitempty,hexcolor"`
	// Missing is the colour of absent values.
	Missing string `json:"missing,omitempty" yaml:"missing,omitempty" validate:"omitempty,hexcolor"`
	// Palette lists discrete colours in assignment order.
	Palette []string `json:"palette,omitempty" yaml:"palette,omitempty" validate:"omitempty,dive,hexcolor"`
}

// DefaultPalette is the Okabe-Ito colour-blind safe palette, extended.
var DefaultPalette = []string{
	"#E69F00", "#56B4E9", "#009E73", "#F0E442", "#0072B2", "#D55E00",
	"#CC79A7", "#999999", "#882255", "#44AA99", "#117733", "#332288",
}

// WithDefaults fills unset colours.
func (c ColorScale) WithDefaults() ColorScale {
	if c.Kind == "" {
		c.Kind = ScaleDiscrete
	}
	if c.Low == "" {
		c.Low = "#DEEBF7"
	}
	if c.High == "" {
		c.High = "#08306B"
	}
	if c.Missing == "" {
		c.Missing = "#FFFFFF"
	}
	if len(c.Palette) == 0 {
		c.Palette = DefaultPalette
	}
	return c
}

// VisualSpec fully determines how a LongRecord sequence is drawn.
type VisualSpec struct {
	// Title is drawn above the plot.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// XTitle is the x axis title.
	XTitle string `json:"x_title,omitempty" yaml:"x_title,omitempty"`
	// YTitle is the y axis title.
	YTitle string `json:"y_title,omitempty" yaml:"y_title,omitempty"`

	XField       Field `json:"x" yaml:"x" validate:"omitempty,oneof=group series"`
	YField       Field `json:"y,omitempty" yaml:"y,omitempty" validate:"omitempty,oneof=group series value percent"`
	AreaField    Field `json:"area,omitempty" yaml:"area,omitempty" validate:"omitempty,oneof=value percent"`
	FillField    Field `json:"fill,omitempty" yaml:"fill,omitempty" validate:"omitempty,oneof=group series value percent"`
	PatternField Field `json:"pattern,omitempty" yaml:"pattern,omitempty" validate:"omitempty,oneof=group series"`
	FacetField   Field `json:"facet,omitempty" yaml:"facet,omitempty" validate:"omitempty,oneof=group series"`
	LabelField   Field `json:"label,omitempty" yaml:"label,omitempty" validate:"omitempty,oneof=group series value percent"`

	ColorScale  ColorScale  `json:"color_scale" yaml:"color_scale"`
	Orientation Orientation `json:"orientation,omitempty" yaml:"orientation,omitempty" validate:"omitempty,oneof=normal flipped"`
	StackMode   StackMode   `json:"stack,omitempty" yaml:"stack,omitempty" validate:"omitempty,oneof=none stacked percent"`

	// GroupOrder declares group order; shared by the reshaper and encoder.
	GroupOrder []string `json:"group_order,omitempty" yaml:"group_order,omitempty"`
	// SeriesOrder declares series order; shared by the reshaper and encoder.
	SeriesOrder []string `json:"series_order,omitempty" yaml:"series_order,omitempty"`
	// Patterns restricts the motif palette (default: all motifs).
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	// ShowZeroLabels keeps labels for zero or absent values.
	ShowZeroLabels bool `json:"show_zero_labels,omitempty" yaml:"show_zero_labels,omitempty"`
	// LabelFormat is a printf verb for numeric labels (default "%g", "%.0f%%" for percents).
	LabelFormat string `json:"label_format,omitempty" yaml:"label_format,omitempty"`
}

// Geometry derives the mark shape from the configured channels.
func (s VisualSpec) Geometry() Geometry {
	switch {
	case s.AreaField != FieldNone:
		return GeometryTreemap
	case s.ColorScale.Kind == ScaleContinuous && s.XField.Categorical() && s.YField.Categorical():
		return GeometryTile
	}
	return GeometryBar
}

// Order returns the declared ordering for a categorical field.
func (s VisualSpec) Order(f Field) []string {
	switch f {
	case FieldGroup:
		return s.GroupOrder
	case FieldSeries:
		return s.SeriesOrder
	}
	return nil
}

// Flipped reports whether bars run horizontally.
func (s VisualSpec) Flipped() bool {
	return s.Orientation == OrientationFlipped
}
