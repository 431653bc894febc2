package render

import (
	"math"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/encode"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/models"
)

const (
	rampSteps    = 24
	missingLabel = "NA"
)

// legend draws the legend at the theme position and returns the remaining area.
func (c *composer) legend(area box) box {
	lg := c.ml.Legend
	if c.theme.Legend == models.LegendNone {
		return area
	}
	switch {
	case lg.Gradient != nil:
		return c.gradientLegend(area)
	case len(lg.Entries) > 0:
		return c.discreteLegend(area)
	}
	return area
}

func (c *composer) discreteLegend(area box) box {
	entries := c.ml.Legend.Entries
	size := c.theme.FontSize
	sw := c.lh
	rowH := c.lh * 1.4

	if c.theme.Legend == models.LegendRight {
		var labelW float64
		for _, e := range entries {
			labelW = math.Max(labelW, c.m.width(e.Label, size, false))
		}
		width := sw + c.gap + labelW
		x := area.X + area.W - width
		y := math.Max(area.Y, area.Y+(area.H-rowH*float64(len(entries)))/2)
		for i, e := range entries {
			c.legendKey(x, y+float64(i)*rowH, sw, e)
		}
		return area.shrinkRight(width + 2*c.gap)
	}

	// top and bottom legends flow left to right and wrap at the area width
	type spot struct {
		x   float64
		row int
	}
	spots := make([]spot, len(entries))
	x, row := 0.0, 0
	for i, e := range entries {
		w := sw + c.gap + c.m.width(e.Label, size, false) + 2*c.gap
		if x > 0 && x+w > area.W {
			x, row = 0, row+1
		}
		spots[i] = spot{x: x, row: row}
		x += w
	}
	height := rowH * float64(row+1)
	top := area.Y
	if c.theme.Legend == models.LegendBottom {
		top = area.Y + area.H - height
	}
	for i, e := range entries {
		c.legendKey(area.X+spots[i].x, top+float64(spots[i].row)*rowH, sw, e)
	}
	if c.theme.Legend == models.LegendBottom {
		return area.shrinkBottom(height + c.gap)
	}
	return area.shrinkTop(height + c.gap)
}

func (c *composer) gradientLegend(area box) box {
	g := *c.ml.Legend.Gradient
	missing := c.ml.Legend.Missing
	size := c.theme.FontSize
	sw := c.lh
	lo, hi := formatTick(g.Min), formatTick(g.Max)

	if c.theme.Legend == models.LegendRight {
		rampH := math.Min(area.H*0.5, 30)
		labelW := math.Max(c.m.width(lo, size, false), c.m.width(hi, size, false))
		if missing != nil {
			labelW = math.Max(labelW, c.m.width(missingLabel, size, false))
		}
		width := sw + c.gap + labelW
		x := area.X + area.W - width
		y := area.Y + (area.H-rampH)/2
		step := rampH / rampSteps
		for i := 0; i < rampSteps; i++ {
			v := g.Max - (g.Max-g.Min)*(float64(i)+0.5)/rampSteps
			c.l.Rects = append(c.l.Rects, Rect{X: x, Y: y + float64(i)*step, W: sw, H: step, Fill: g.At(v)})
		}
		c.tick(x+sw+c.gap, y, hi, AlignLeft)
		c.tick(x+sw+c.gap, y+rampH, lo, AlignLeft)
		if missing != nil {
			c.legendKey(x, y+rampH+c.lh, sw, encode.LegendEntry{Label: missingLabel, Color: *missing, Pattern: encode.PatternNone})
		}
		return area.shrinkRight(width + 2*c.gap)
	}

	rampW := math.Min(area.W*0.4, 40)
	loW, hiW := c.m.width(lo, size, false), c.m.width(hi, size, false)
	total := loW + rampW + hiW + 2*c.gap
	if missing != nil {
		total += 3*c.gap + sw + c.m.width(missingLabel, size, false)
	}
	x := area.X + (area.W-total)/2
	top := area.Y
	if c.theme.Legend == models.LegendBottom {
		top = area.Y + area.H - sw
	}

	c.tick(x+loW, top+sw/2, lo, AlignRight)
	rx := x + loW + c.gap
	step := rampW / rampSteps
	for i := 0; i < rampSteps; i++ {
		v := g.Min + (g.Max-g.Min)*(float64(i)+0.5)/rampSteps
		c.l.Rects = append(c.l.Rects, Rect{X: rx + float64(i)*step, Y: top, W: step, H: sw, Fill: g.At(v)})
	}
	c.tick(rx+rampW+c.gap, top+sw/2, hi, AlignLeft)
	if missing != nil {
		c.legendKey(rx+rampW+c.gap+hiW+2*c.gap, top, sw, encode.LegendEntry{Label: missingLabel, Color: *missing, Pattern: encode.PatternNone})
	}

	if c.theme.Legend == models.LegendBottom {
		return area.shrinkBottom(sw + c.gap)
	}
	return area.shrinkTop(sw + c.gap)
}

func (c *composer) legendKey(x, y, sw float64, e encode.LegendEntry) {
	c.l.Rects = append(c.l.Rects, Rect{
		X: x, Y: y, W: sw, H: sw,
		Fill: e.Color, Pattern: e.Pattern, Outline: true, Stroke: c.grid,
	})
	c.tick(x+sw+c.gap, y+sw/2, e.Label, AlignLeft)
}
