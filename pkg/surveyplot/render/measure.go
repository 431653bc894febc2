package render

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/parser"
)

// measurer answers text extents with the same core-font metrics the painter uses.
type measurer struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	family string
}

func newMeasurer(family string) (*measurer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont(family, "", 10)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("font %q: %w", family, err)
	}
	return &measurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), family: family}, nil
}

// width is the rendered width of s in millimetres.
func (m *measurer) width(s string, size float64, bold bool) float64 {
	style := ""
	if bold {
		style = "B"
	}
	m.pdf.SetFont(m.family, style, size)
	return m.pdf.GetStringWidth(m.tr(s))
}

func (m *measurer) maxWidth(items []string, size float64) float64 {
	var w float64
	for _, s := range items {
		w = max(w, m.width(s, size, false))
	}
	return w
}

// lineHeight is the vertical advance of one text line in millimetres.
func lineHeight(pt float64) float64 {
	return parser.PointsToMillimetres(pt) * 1.2
}
