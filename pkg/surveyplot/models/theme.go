package models

// LegendPosition places the legend relative to the plot.
type LegendPosition string

const (
	LegendRight  LegendPosition = "right"
	LegendBottom LegendPosition = "bottom"
	LegendTop    LegendPosition = "top"
	LegendNone   LegendPosition = "none"
)

// Theme is the styling shared by every figure.
type Theme struct {
	// FontFamily is a PDF core font family.
	FontFamily string `json:"font_family,omitempty" yaml:"font_family,omitempty" validate:"omitempty,oneof=Helvetica Arial Times Courier"`
	// FontSize is the base text size in points.
	FontSize float64 `json:"font_size,omitempty" yaml:"font_size,omitempty" validate:"gte=0,lte=72"`
	// TitleSize is the title text size in points.
	TitleSize float64 `json:"title_size,omitempty" yaml:"title_size,omitempty" validate:"gte=0,lte=96"`
	// Gridlines is "major" or "none".
	Gridlines string `json:"gridlines,omitempty" yaml:"gridlines,omitempty" validate:"omitempty,oneof=major none"`
	// TickRotation rotates category tick labels, in degrees counter-clockwise.
	TickRotation float64 `json:"tick_rotation,omitempty" yaml:"tick_rotation,omitempty" validate:"gte=-90,lte=90"`
	// Legend is the legend placement.
	Legend LegendPosition `json:"legend,omitempty" yaml:"legend,omitempty" validate:"omitempty,oneof=right bottom top none"`
	// TextColor is used for titles, ticks and legend text.
	TextColor string `json:"text_color,omitempty" yaml:"text_color,omitempty" validate:"omitempty,hexcolor"`
	// GridColor is used for gridlines and axis lines.
	GridColor string `json:"grid_color,omitempty" yaml:"grid_color,omitempty" validate:"omitempty,hexcolor"`
	// Background fills the page.
	Background string `json:"background,omitempty" yaml:"background,omitempty" validate:"omitempty,hexcolor"`
	// Margin is the outer page margin in millimetres.
	Margin float64 `json:"margin,omitempty" yaml:"margin,omitempty" validate:"gte=0"`
}

// DefaultTheme returns the publication theme.
func DefaultTheme() Theme {
	return Theme{
		FontFamily: "Helvetica",
		FontSize:   8,
		TitleSize:  11,
		Gridlines:  "major",
		Legend:     LegendRight,
		TextColor:  "#222222",
		GridColor:  "#D0D0D0",
		Background: "#FFFFFF",
		Margin:     4,
	}
}

// WithDefaults fills unset fields from DefaultTheme.
func (t Theme) WithDefaults() Theme {
	return t.Merge(DefaultTheme())
}

// Merge fills the zero fields of t from base.
func (t Theme) Merge(base Theme) Theme {
	if t.FontFamily == "" {
		t.FontFamily = base.FontFamily
	}
	if t.FontSize == 0 {
		t.FontSize = base.FontSize
	}
	if t.TitleSize == 0 {
		t.TitleSize = base.TitleSize
	}
	if t.Gridlines == "" {
		t.Gridlines = base.Gridlines
	}
	if t.TickRotation == 0 {
		t.TickRotation = base.TickRotation
	}
	if t.Legend == "" {
		t.Legend = base.Legend
	}
	if t.TextColor == "" {
		t.TextColor = base.TextColor
	}
	if t.GridColor == "" {
		t.GridColor = base.GridColor
	}
	if t.Background == "" {
		t.Background = base.Background
	}
	if t.Margin == 0 {
		t.Margin = base.Margin
	}
	return t
}

// Size is a physical page size.
type Size struct {
	Width  float64 `json:"width" yaml:"width" validate:"gt=0"`
	Height float64 `json:"height" yaml:"height" validate:"gt=0"`
	// Unit is mm, cm, in or pt (default mm).
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty" validate:"omitempty,oneof=mm cm in pt"`
}
