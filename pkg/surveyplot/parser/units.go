// Package parser reads workbook sheets into tables and converts physical units.
package parser

import "fmt"

// MillimetresPerInch is the exact inch length.
// 1 inch = 25.4 mm = 72 PostScript points, so 1 pt = 25.4 / 72 mm.
const MillimetresPerInch = 25.4

// PointsPerInch is the PostScript point density used by PDF.
const PointsPerInch = 72.0

// ToMillimetres converts a length in unit (mm, cm, in, pt; empty means mm) to millimetres.
func ToMillimetres(v float64, unit string) (float64, error) {
	switch unit {
	case "", "mm":
		return v, nil
	case "cm":
		return v * 10, nil
	case "in":
		return v * MillimetresPerInch, nil
	case "pt":
		return v * MillimetresPerInch / PointsPerInch, nil
	}
	return 0, fmt.Errorf("unknown length unit %q", unit)
}

// PointsToMillimetres converts a font size or line width in points to millimetres.
func PointsToMillimetres(pt float64) float64 {
	return pt * MillimetresPerInch / PointsPerInch
}
