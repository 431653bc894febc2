// Package encode maps long-form records to visual marks: position, fill
// colour, texture pattern, stacking span and text label.
package encode

import (
	"fmt"
	"math"
	"sort"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/models"
)

// Mark is one record resolved to visual channels.
type Mark struct {
	Record models.LongRecord
	// Facet is the panel key; empty when the chart is not faceted.
	Facet string
	// X and Y are category positions. Bars use X only; tiles use both.
	X, Y string
	// Start and End bound the mark along the value axis.
	Start, End float64
	// Slot is the dodge position among Slots side-by-side bars (unstacked bars only).
	Slot, Slots int
	// Weight is the treemap area weight.
	Weight    float64
	Color     RGB
	Pattern   Pattern
	Label     string
	ShowLabel bool

	stackTotal float64
}

// Mid is the label anchor, centred in the mark's span.
func (m Mark) Mid() float64 {
	return (m.Start + m.End) / 2
}

// LegendEntry is one key of a discrete legend.
type LegendEntry struct {
	Label   string
	Color   RGB
	Pattern Pattern
}

// Legend describes either discrete entries or a continuous gradient.
type Legend struct {
	Entries  []LegendEntry
	Gradient *Gradient
	// Missing is set when some marks use the missing colour.
	Missing *RGB
}

// MarkList is the encoder output consumed by the renderer.
type MarkList struct {
	Geometry models.Geometry
	Spec     models.VisualSpec
	Marks    []Mark
	// Facets lists panel keys in order; a single empty key when not faceted.
	Facets      []string
	XCategories []string
	YCategories []string
	// ValueMax is the top of the value axis.
	ValueMax float64
	Legend   Legend
}

// Encode resolves every record to a mark. Colours and patterns are indexed
// by the declared category order so the same category always receives the
// same colour/pattern pair.
func Encode(records []models.LongRecord, spec models.VisualSpec) (*MarkList, error) {
	spec.ColorScale = spec.ColorScale.WithDefaults()
	if spec.StackMode == "" {
		spec.StackMode = models.StackNone
	}
	ml := &MarkList{Geometry: spec.Geometry(), Spec: spec}

	xField := spec.XField
	if !xField.Categorical() {
		xField = models.FieldGroup
	}
	yField := spec.YField
	if ml.Geometry == models.GeometryTile && !yField.Categorical() {
		yField = other(xField)
	}

	ml.Marks = make([]Mark, len(records))
	for i, r := range records {
		m := Mark{Record: r, Facet: r.Key(spec.FacetField)}
		if ml.Geometry != models.GeometryTreemap {
			m.X = r.Key(xField)
		}
		if ml.Geometry == models.GeometryTile {
			m.Y = r.Key(yField)
		}
		ml.Marks[i] = m
	}

	ml.Facets = []string{""}
	if spec.FacetField.Categorical() {
		ml.Facets = Categories(records, spec.FacetField, spec.Order(spec.FacetField))
	}
	if ml.Geometry != models.GeometryTreemap {
		ml.XCategories = Categories(records, xField, spec.Order(xField))
	}
	if ml.Geometry == models.GeometryTile {
		ml.YCategories = Categories(records, yField, spec.Order(yField))
	}

	if err := ml.resolveFill(records); err != nil {
		return nil, err
	}
	if err := ml.resolvePatterns(records); err != nil {
		return nil, err
	}

	switch ml.Geometry {
	case models.GeometryBar:
		ml.stack(records, xField)
	case models.GeometryTile:
		for i := range ml.Marks {
			ml.Marks[i].End = ml.Marks[i].Record.Measure(fillMeasure(spec)).Or(0)
		}
	case models.GeometryTreemap:
		for i := range ml.Marks {
			ml.Marks[i].Weight = math.Max(0, ml.Marks[i].Record.Measure(spec.AreaField).Or(0))
		}
	}

	ml.resolveLabels()
	return ml, nil
}

// Categories returns declared keys first, then undeclared keys of records in
// first-seen order. Declared keys are kept even when absent from records so
// axes and colour indices stay stable across subsets.
func Categories(records []models.LongRecord, f models.Field, declared []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, k := range declared {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, r := range records {
		k := r.Key(f)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func (ml *MarkList) resolveFill(records []models.LongRecord) error {
	scale := ml.Spec.ColorScale
	field := ml.Spec.FillField
	if ml.Geometry == models.GeometryTile && !field.Categorical() {
		field = fillMeasure(ml.Spec)
	}

	switch {
	case field.Categorical():
		cats := Categories(records, field, ml.Spec.Order(field))
		if len(cats) > len(scale.Palette) {
			return &PaletteExhaustedError{Channel: "color", Need: len(cats), Have: len(scale.Palette)}
		}
		index := make(map[string]RGB, len(cats))
		for i, k := range cats {
			c, err := ParseHex(scale.Palette[i])
			if err != nil {
				return err
			}
			index[k] = c
			ml.Legend.Entries = append(ml.Legend.Entries, LegendEntry{Label: k, Color: c, Pattern: PatternNone})
		}
		for i := range ml.Marks {
			ml.Marks[i].Color = index[ml.Marks[i].Record.Key(field)]
		}

	case field == models.FieldValue || field == models.FieldPercent:
		low, err := ParseHex(scale.Low)
		if err != nil {
			return err
		}
		high, err := ParseHex(scale.High)
		if err != nil {
			return err
		}
		missing, err := ParseHex(scale.Missing)
		if err != nil {
			return err
		}
		g := Gradient{Low: low, High: high, Min: math.Inf(1), Max: math.Inf(-1)}
		for _, r := range records {
			if v := r.Measure(field); v.Valid {
				g.Min = math.Min(g.Min, v.V)
				g.Max = math.Max(g.Max, v.V)
			}
		}
		if math.IsInf(g.Min, 1) {
			g.Min, g.Max = 0, 0
		}
		ml.Legend.Gradient = &g
		for i := range ml.Marks {
			v := ml.Marks[i].Record.Measure(field)
			if !v.Valid {
				ml.Marks[i].Color = missing
				ml.Legend.Missing = &missing
				continue
			}
			ml.Marks[i].Color = g.At(v.V)
		}

	default:
		c, err := ParseHex(scale.Palette[0])
		if err != nil {
			return err
		}
		for i := range ml.Marks {
			ml.Marks[i].Color = c
		}
	}
	return nil
}

func (ml *MarkList) resolvePatterns(records []models.LongRecord) error {
	for i := range ml.Marks {
		ml.Marks[i].Pattern = PatternNone
	}
	field := ml.Spec.PatternField
	if !field.Categorical() {
		return nil
	}

	motifs, err := motifPalette(ml.Spec.Patterns)
	if err != nil {
		return err
	}
	cats := Categories(records, field, ml.Spec.Order(field))
	if len(cats) > len(motifs) {
		return &PaletteExhaustedError{Channel: "pattern", Need: len(cats), Have: len(motifs)}
	}
	index := make(map[string]Pattern, len(cats))
	for i, k := range cats {
		index[k] = motifs[i]
	}
	for i := range ml.Marks {
		ml.Marks[i].Pattern = index[ml.Marks[i].Record.Key(field)]
	}

	if field == ml.Spec.FillField {
		for i := range ml.Legend.Entries {
			ml.Legend.Entries[i].Pattern = index[ml.Legend.Entries[i].Label]
		}
		return nil
	}
	for _, k := range cats {
		ml.Legend.Entries = append(ml.Legend.Entries, LegendEntry{Label: k, Color: RGB{255, 255, 255}, Pattern: index[k]})
	}
	return nil
}

// stack computes bar spans. Marks sharing a facet and x category form one
// stack, ordered by the declared order of the other categorical field.
func (ml *MarkList) stack(records []models.LongRecord, xField models.Field) {
	stackField := other(xField)
	rank := make(map[string]int)
	for i, k := range Categories(records, stackField, ml.Spec.Order(stackField)) {
		rank[k] = i
	}

	buckets := make(map[string][]int)
	var keys []string
	for i, m := range ml.Marks {
		key := m.Facet + "\x00" + m.X
		if _, ok := buckets[key]; !ok {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], i)
	}

	slots := 0
	for _, idx := range buckets {
		slots = max(slots, len(idx))
	}

	ml.ValueMax = 0
	for _, key := range keys {
		idx := buckets[key]
		sort.SliceStable(idx, func(a, b int) bool {
			return rank[ml.Marks[idx[a]].Record.Key(stackField)] < rank[ml.Marks[idx[b]].Record.Key(stackField)]
		})

		var total float64
		for _, i := range idx {
			total += ml.Marks[i].Record.Value.Or(0)
		}

		var cum float64
		for slot, i := range idx {
			v := ml.Marks[i].Record.Value.Or(0)
			m := &ml.Marks[i]
			m.stackTotal = total
			switch ml.Spec.StackMode {
			case models.StackStacked:
				m.Start, m.End = cum, cum+v
			case models.StackPercent:
				if total > 0 {
					m.Start, m.End = 100*cum/total, 100*(cum+v)/total
				}
			default:
				m.Start, m.End = 0, v
				m.Slot, m.Slots = slot, slots
			}
			cum += v
			ml.ValueMax = math.Max(ml.ValueMax, m.End)
		}
	}

	if ml.Spec.StackMode == models.StackPercent {
		ml.ValueMax = 100
	}
	if ml.ValueMax <= 0 {
		ml.ValueMax = 1
	}
}

func (ml *MarkList) resolveLabels() {
	field := ml.Spec.LabelField
	if field == models.FieldNone {
		switch ml.Geometry {
		case models.GeometryTile:
			field = fillMeasure(ml.Spec)
		case models.GeometryTreemap:
			field = models.FieldGroup
		default:
			field = models.FieldValue
			if ml.Spec.StackMode == models.StackPercent {
				field = models.FieldPercent
			}
		}
	}

	for i := range ml.Marks {
		m := &ml.Marks[i]
		m.Label, m.ShowLabel = ml.label(*m, field)
	}
}

func (ml *MarkList) label(m Mark, field models.Field) (string, bool) {
	r := m.Record
	if r.Value.Empty() && !ml.Spec.ShowZeroLabels {
		return "", false
	}

	switch field {
	case models.FieldGroup, models.FieldSeries:
		text := r.Key(field)
		if ml.Geometry == models.GeometryTreemap && r.Value.Valid {
			text += "\n" + formatNumber(ml.Spec.LabelFormat, "%g", r.Value.V)
		}
		return text, text != ""

	case models.FieldPercent:
		pct := r.Percent
		if ml.Geometry == models.GeometryBar && ml.Spec.StackMode == models.StackPercent {
			pct = models.Missing()
			if m.stackTotal > 0 {
				pct = models.Some(m.End - m.Start)
			}
		}
		if !pct.Valid {
			return "", false
		}
		return formatNumber(ml.Spec.LabelFormat, "%.0f%%", pct.V), true

	default:
		if !r.Value.Valid {
			return "NA", true
		}
		return formatNumber(ml.Spec.LabelFormat, "%g", r.Value.V), true
	}
}

// fillMeasure is the numeric field driving continuous fill.
func fillMeasure(spec models.VisualSpec) models.Field {
	if spec.FillField == models.FieldPercent {
		return models.FieldPercent
	}
	return models.FieldValue
}

func other(f models.Field) models.Field {
	if f == models.FieldSeries {
		return models.FieldGroup
	}
	return models.FieldSeries
}

func formatNumber(format, fallback string, v float64) string {
	if format == "" {
		format = fallback
	}
	return fmt.Sprintf(format, v)
}
