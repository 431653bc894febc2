package encode

import "fmt"

// Pattern is a fill texture motif drawn over a mark's colour so series stay
// distinguishable in grayscale print.
type Pattern string

const (
	PatternNone       Pattern = "none"
	PatternStripe     Pattern = "stripe"
	PatternCrosshatch Pattern = "crosshatch"
	PatternCircle     Pattern = "circle"
	PatternHorizontal Pattern = "horizontal"
	PatternVertical   Pattern = "vertical"
	PatternGrid       Pattern = "grid"
)

// Motifs is the fixed motif palette in assignment order.
var Motifs = []Pattern{
	PatternNone,
	PatternStripe,
	PatternCrosshatch,
	PatternCircle,
	PatternHorizontal,
	PatternVertical,
	PatternGrid,
}

// motifPalette resolves a configured motif subset, defaulting to Motifs.
func motifPalette(names []string) ([]Pattern, error) {
	if len(names) == 0 {
		return Motifs, nil
	}
	known := make(map[Pattern]bool, len(Motifs))
	for _, m := range Motifs {
		known[m] = true
	}
	out := make([]Pattern, 0, len(names))
	for _, n := range names {
		p := Pattern(n)
		if !known[p] {
			return nil, fmt.Errorf("unknown pattern motif %q", n)
		}
		out = append(out, p)
	}
	return out, nil
}
