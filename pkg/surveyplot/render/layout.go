// Package render positions encoded marks on a physical page and paints the
// result as a vector PDF.
package render

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/encode"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/models"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/parser"
)

// Align positions text horizontally about its anchor.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

const (
	barFill   = 0.8
	hairline  = 0.15
	axisWidth = 0.25
)

// Rect is a filled rectangle in page millimetres, origin top-left.
type Rect struct {
	X, Y, W, H float64
	Fill       encode.RGB
	Pattern    encode.Pattern
	// Outline strokes the border in Stroke.
	Outline bool
	Stroke  encode.RGB
}

// Line is a straight stroke.
type Line struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          encode.RGB
}

// Text is one line of text anchored at (X, Y), where Y is the vertical centre
// of the line.
type Text struct {
	X, Y  float64
	Text  string
	Size  float64 // points
	Bold  bool
	Color encode.RGB
	Align Align
	// Rotation is in degrees counter-clockwise about the anchor.
	Rotation float64
}

// Layout is a fully positioned figure. Painting order is gridlines, rects,
// axes, then texts.
type Layout struct {
	Width, Height float64 // millimetres
	FontFamily    string
	Background    encode.RGB

	Gridlines []Line
	Rects     []Rect
	Axes      []Line
	Texts     []Text
}

type box struct {
	X, Y, W, H float64
}

func (b box) shrinkTop(d float64) box    { return box{b.X, b.Y + d, b.W, b.H - d} }
func (b box) shrinkBottom(d float64) box { return box{b.X, b.Y, b.W, b.H - d} }
func (b box) shrinkLeft(d float64) box   { return box{b.X + d, b.Y, b.W - d, b.H} }
func (b box) shrinkRight(d float64) box  { return box{b.X, b.Y, b.W - d, b.H} }

type composer struct {
	ml    *encode.MarkList
	theme models.Theme
	m     *measurer
	l     *Layout

	ink, grid, bg encode.RGB
	lh, gap       float64
}

// Compose lays out a mark list on a page of the given size. The result depends
// only on its inputs.
func Compose(ml *encode.MarkList, theme models.Theme, size models.Size) (*Layout, error) {
	if ml == nil {
		return nil, errors.New("compose: nil mark list")
	}
	w, err := parser.ToMillimetres(size.Width, size.Unit)
	if err != nil {
		return nil, &ExportError{Err: err}
	}
	h, err := parser.ToMillimetres(size.Height, size.Unit)
	if err != nil {
		return nil, &ExportError{Err: err}
	}
	if !(w > 0 && h > 0) {
		return nil, &ExportError{Err: fmt.Errorf("%w: %gx%g %s", ErrInvalidSize, size.Width, size.Height, size.Unit)}
	}

	theme = theme.WithDefaults()
	m, err := newMeasurer(theme.FontFamily)
	if err != nil {
		return nil, err
	}
	c := &composer{ml: ml, theme: theme, m: m}
	for _, p := range []struct {
		dst *encode.RGB
		hex string
	}{{&c.ink, theme.TextColor}, {&c.grid, theme.GridColor}, {&c.bg, theme.Background}} {
		if *p.dst, err = encode.ParseHex(p.hex); err != nil {
			return nil, fmt.Errorf("theme: %w", err)
		}
	}
	c.lh = lineHeight(theme.FontSize)
	c.gap = c.lh / 2
	c.l = &Layout{Width: w, Height: h, FontFamily: theme.FontFamily, Background: c.bg}

	area := box{X: theme.Margin, Y: theme.Margin, W: w - 2*theme.Margin, H: h - 2*theme.Margin}
	area = c.title(area)
	area = c.legend(area)
	area = c.axisTitles(area)
	if err := c.panels(area); err != nil {
		return nil, err
	}
	return c.l, nil
}

func (c *composer) title(area box) box {
	title := c.ml.Spec.Title
	if title == "" {
		return area
	}
	h := lineHeight(c.theme.TitleSize)
	c.l.Texts = append(c.l.Texts, Text{
		X: area.X + area.W/2, Y: area.Y + h/2, Text: title,
		Size: c.theme.TitleSize, Bold: true, Color: c.ink, Align: AlignCenter,
	})
	return area.shrinkTop(h + c.gap)
}

func (c *composer) axisTitles(area box) box {
	if c.ml.Geometry == models.GeometryTreemap {
		return area
	}
	spec := c.ml.Spec
	if spec.XTitle != "" {
		area = area.shrinkBottom(c.lh + c.gap)
		c.l.Texts = append(c.l.Texts, Text{
			X: area.X + area.W/2, Y: area.Y + area.H + c.gap + c.lh/2, Text: spec.XTitle,
			Size: c.theme.FontSize, Color: c.ink, Align: AlignCenter,
		})
	}
	if spec.YTitle != "" {
		c.l.Texts = append(c.l.Texts, Text{
			X: area.X + c.lh/2, Y: area.Y + area.H/2, Text: spec.YTitle,
			Size: c.theme.FontSize, Color: c.ink, Align: AlignCenter, Rotation: 90,
		})
		area = area.shrinkLeft(c.lh + c.gap)
	}
	return area
}

// panels splits area into a near-square grid with one panel per facet. Tick
// labels are drawn on the left column and on panels with nothing below them.
func (c *composer) panels(area box) error {
	ml := c.ml
	n := len(ml.Facets)
	if n == 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	faceted := ml.Spec.FacetField.Categorical()

	left, bottom := c.tickBands()
	var strip, padX, padY float64
	if faceted {
		strip = c.lh + c.gap/2
	}
	if cols > 1 {
		padX = c.gap
	}
	if rows > 1 {
		padY = c.gap
	}
	cellW, cellH := area.W/float64(cols), area.H/float64(rows)

	for i, facet := range ml.Facets {
		row, col := i/cols, i%cols
		cell := box{X: area.X + float64(col)*cellW, Y: area.Y + float64(row)*cellH, W: cellW, H: cellH}
		p := box{X: cell.X + left, Y: cell.Y + strip, W: cell.W - left - padX, H: cell.H - strip - bottom - padY}
		if p.W <= 0 || p.H <= 0 {
			return &ExportError{Err: fmt.Errorf("%w: %.1fx%.1f mm leaves no room for the plot", ErrInvalidSize, c.l.Width, c.l.Height)}
		}

		if faceted {
			c.l.Texts = append(c.l.Texts, Text{
				X: p.X + p.W/2, Y: cell.Y + c.lh/2, Text: facet,
				Size: c.theme.FontSize, Bold: true, Color: c.ink, Align: AlignCenter,
			})
		}
		showX := i+cols >= n
		showY := col == 0

		switch ml.Geometry {
		case models.GeometryTile:
			c.tiles(p, facet, showX, showY)
		case models.GeometryTreemap:
			c.treemap(p, facet)
		default:
			c.bars(p, facet, showX, showY)
		}
	}
	return nil
}

func (c *composer) bars(p box, facet string, showX, showY bool) {
	ml := c.ml
	flipped := ml.Spec.Flipped()
	ticks := c.valueTicks()
	labels := c.valueLabels(ticks)
	top := ticks[len(ticks)-1]

	scale := func(v float64) float64 {
		if flipped {
			return p.X + v/top*p.W
		}
		return p.Y + p.H - v/top*p.H
	}

	for i, t := range ticks {
		pos := scale(t)
		if flipped {
			if c.theme.Gridlines == "major" {
				c.l.Gridlines = append(c.l.Gridlines, Line{X1: pos, Y1: p.Y, X2: pos, Y2: p.Y + p.H, Width: hairline, Color: c.grid})
			}
			if showX {
				c.tick(pos, p.Y+p.H+c.gap/2+c.lh/2, labels[i], AlignCenter)
			}
			continue
		}
		if c.theme.Gridlines == "major" {
			c.l.Gridlines = append(c.l.Gridlines, Line{X1: p.X, Y1: pos, X2: p.X + p.W, Y2: pos, Width: hairline, Color: c.grid})
		}
		if showY {
			c.tick(p.X-c.gap/2, pos, labels[i], AlignRight)
		}
	}

	extent := p.W
	if flipped {
		extent = p.H
	}
	band := extent / float64(max(len(ml.XCategories), 1))
	for i, cat := range ml.XCategories {
		centre := band * (float64(i) + 0.5)
		switch {
		case flipped && showY:
			c.tick(p.X-c.gap/2, p.Y+centre, cat, AlignRight)
		case !flipped && showX:
			c.categoryTick(p.X+centre, p.Y+p.H, cat)
		}
	}

	index := positions(ml.XCategories)
	for _, m := range ml.Marks {
		if m.Facet != facet {
			continue
		}
		width := band * barFill
		offset := band*float64(index[m.X]) + (band-width)/2
		if m.Slots > 1 {
			width /= float64(m.Slots)
			offset += width * float64(m.Slot)
		}

		lo, hi := scale(m.Start), scale(m.End)
		r := Rect{X: p.X + offset, Y: hi, W: width, H: lo - hi, Fill: m.Color, Pattern: m.Pattern}
		if flipped {
			r = Rect{X: lo, Y: p.Y + offset, W: hi - lo, H: width, Fill: m.Color, Pattern: m.Pattern}
		}
		if r.W > 0 && r.H > 0 {
			c.l.Rects = append(c.l.Rects, r)
		}
		if m.ShowLabel {
			c.label(r.X+r.W/2, r.Y+r.H/2, m)
		}
	}

	c.l.Axes = append(c.l.Axes,
		Line{X1: p.X, Y1: p.Y + p.H, X2: p.X + p.W, Y2: p.Y + p.H, Width: axisWidth, Color: c.ink},
		Line{X1: p.X, Y1: p.Y, X2: p.X, Y2: p.Y + p.H, Width: axisWidth, Color: c.ink},
	)
}

func (c *composer) tiles(p box, facet string, showX, showY bool) {
	ml := c.ml
	xb := p.W / float64(max(len(ml.XCategories), 1))
	yb := p.H / float64(max(len(ml.YCategories), 1))

	if showX {
		for i, cat := range ml.XCategories {
			c.categoryTick(p.X+xb*(float64(i)+0.5), p.Y+p.H, cat)
		}
	}
	if showY {
		for j, cat := range ml.YCategories {
			c.tick(p.X-c.gap/2, p.Y+yb*(float64(j)+0.5), cat, AlignRight)
		}
	}

	xi, yi := positions(ml.XCategories), positions(ml.YCategories)
	for _, m := range ml.Marks {
		if m.Facet != facet {
			continue
		}
		r := Rect{
			X: p.X + xb*float64(xi[m.X]), Y: p.Y + yb*float64(yi[m.Y]), W: xb, H: yb,
			Fill: m.Color, Pattern: m.Pattern, Outline: true, Stroke: c.bg,
		}
		c.l.Rects = append(c.l.Rects, r)
		if m.ShowLabel {
			c.label(r.X+r.W/2, r.Y+r.H/2, m)
		}
	}
}

func (c *composer) treemap(p box, facet string) {
	marks := c.ml.Marks
	var idx []int
	for i, m := range marks {
		if m.Facet == facet && m.Weight > 0 {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return marks[idx[a]].Weight > marks[idx[b]].Weight
	})

	weights := make([]float64, len(idx))
	for k, i := range idx {
		weights[k] = marks[i].Weight
	}
	for k, b := range squarify(weights, p) {
		m := marks[idx[k]]
		c.l.Rects = append(c.l.Rects, Rect{
			X: b.X, Y: b.Y, W: b.W, H: b.H,
			Fill: m.Color, Pattern: m.Pattern, Outline: true, Stroke: c.bg,
		})
		if m.ShowLabel {
			c.label(b.X+b.W/2, b.Y+b.H/2, m)
		}
	}
}

// label centres a mark's label on (cx, cy), one Text per line.
func (c *composer) label(cx, cy float64, m encode.Mark) {
	lines := strings.Split(m.Label, "\n")
	color := inkOn(m.Color, c.ink)
	for k, s := range lines {
		y := cy + (float64(k)-float64(len(lines)-1)/2)*c.lh
		c.l.Texts = append(c.l.Texts, Text{
			X: cx, Y: y, Text: s, Size: c.theme.FontSize, Color: color, Align: AlignCenter,
		})
	}
}

func (c *composer) tick(x, y float64, s string, align Align) {
	c.l.Texts = append(c.l.Texts, Text{X: x, Y: y, Text: s, Size: c.theme.FontSize, Color: c.ink, Align: align})
}

// categoryTick places a category label below a horizontal axis at axisY,
// honouring the theme's tick rotation.
func (c *composer) categoryTick(x, axisY float64, s string) {
	rot := c.theme.TickRotation
	if rot == 0 {
		c.tick(x, axisY+c.gap/2+c.lh/2, s, AlignCenter)
		return
	}
	align := AlignRight
	if rot < 0 {
		align = AlignLeft
	}
	c.l.Texts = append(c.l.Texts, Text{
		X: x, Y: axisY + c.gap, Text: s, Size: c.theme.FontSize,
		Color: c.ink, Align: align, Rotation: rot,
	})
}

// tickBands returns the space reserved left of and below each panel for tick labels.
func (c *composer) tickBands() (left, bottom float64) {
	ml := c.ml
	size := c.theme.FontSize
	switch ml.Geometry {
	case models.GeometryTreemap:
		return 0, 0
	case models.GeometryTile:
		return c.m.maxWidth(ml.YCategories, size) + c.gap, c.rotatedHeight(c.m.maxWidth(ml.XCategories, size)) + c.gap
	}
	if ml.Spec.Flipped() {
		return c.m.maxWidth(ml.XCategories, size) + c.gap, c.lh + c.gap
	}
	values := c.valueLabels(c.valueTicks())
	return c.m.maxWidth(values, size) + c.gap, c.rotatedHeight(c.m.maxWidth(ml.XCategories, size)) + c.gap
}

func (c *composer) rotatedHeight(w float64) float64 {
	if c.theme.TickRotation == 0 {
		return c.lh
	}
	rad := c.theme.TickRotation * math.Pi / 180
	return math.Abs(w*math.Sin(rad)) + math.Abs(c.lh*math.Cos(rad))
}

func (c *composer) valueTicks() []float64 {
	return niceTicks(c.ml.ValueMax, 4)
}

func (c *composer) valueLabels(ticks []float64) []string {
	out := make([]string, len(ticks))
	for i, t := range ticks {
		out[i] = formatTick(t)
		if c.ml.Spec.StackMode == models.StackPercent {
			out[i] += "%"
		}
	}
	return out
}

// niceTicks returns evenly spaced ticks from zero covering limit, using steps
// of 1, 2, 2.5 or 5 times a power of ten.
func niceTicks(limit float64, n int) []float64 {
	if !(limit > 0) {
		limit = 1
	}
	raw := limit / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := 10 * mag
	for _, s := range []float64{1, 2, 2.5, 5} {
		if raw <= s*mag {
			step = s * mag
			break
		}
	}
	top := math.Ceil(limit/step-1e-9) * step

	var out []float64
	for i := 0; ; i++ {
		v := float64(i) * step
		if v > top+step/2 {
			break
		}
		out = append(out, v)
	}
	return out
}

func formatTick(v float64) string {
	return fmt.Sprintf("%.6g", v)
}

func positions(keys []string) map[string]int {
	out := make(map[string]int, len(keys))
	for i, k := range keys {
		out[k] = i
	}
	return out
}

// inkOn picks dark or white text for legibility on fill.
func inkOn(fill, dark encode.RGB) encode.RGB {
	if fill.Luminance() > 0.18 {
		return dark
	}
	return encode.RGB{R: 255, G: 255, B: 255}
}
