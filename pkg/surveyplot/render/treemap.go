package render

import "math"

// squarify lays out weights, sorted in descending order, inside b using the
// squarified treemap algorithm (Bruls, Huizing and van Wijk). Each returned
// box has an area proportional to its weight.
func squarify(weights []float64, b box) []box {
	out := make([]box, len(weights))
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 || b.W <= 0 || b.H <= 0 {
		return out
	}

	areas := make([]float64, len(weights))
	for i, w := range weights {
		areas[i] = w / total * b.W * b.H
	}

	for i := 0; i < len(areas); {
		side := math.Min(b.W, b.H)
		j := i + 1
		for j < len(areas) && worst(areas[i:j+1], side) <= worst(areas[i:j], side) {
			j++
		}

		var sum float64
		for _, a := range areas[i:j] {
			sum += a
		}
		if b.W >= b.H {
			w := sum / b.H
			y := b.Y
			for k, a := range areas[i:j] {
				h := a / w
				out[i+k] = box{X: b.X, Y: y, W: w, H: h}
				y += h
			}
			b.X += w
			b.W -= w
		} else {
			h := sum / b.W
			x := b.X
			for k, a := range areas[i:j] {
				w := a / h
				out[i+k] = box{X: x, Y: b.Y, W: w, H: h}
				x += w
			}
			b.Y += h
			b.H -= h
		}
		i = j
	}
	return out
}

// worst is the largest aspect ratio in a row of areas laid along side.
func worst(row []float64, side float64) float64 {
	var sum, hi float64
	lo := math.Inf(1)
	for _, a := range row {
		sum += a
		lo = math.Min(lo, a)
		hi = math.Max(hi, a)
	}
	s2, w2 := sum*sum, side*side
	return math.Max(w2*hi/s2, s2/(w2*lo))
}
