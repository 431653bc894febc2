package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/encode"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/parser"
)

const hatchStep = 1.5 // mm between pattern strokes

// creationDate is stamped into every document so identical layouts yield identical bytes.
var creationDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Export paints l and writes it to path. The file appears at path only once
// it is complete; on failure nothing is left behind.
func Export(l *Layout, path string) error {
	var buf bytes.Buffer
	if err := Paint(l, &buf); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := writeFile(path, buf.Bytes()); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	return nil
}

// Paint renders l as a single-page PDF to w.
func Paint(l *Layout, w io.Writer) error {
	if l == nil || !(l.Width > 0 && l.Height > 0) {
		return ErrInvalidSize
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: l.Width, Ht: l.Height},
	})
	pdf.SetCreationDate(creationDate)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont(l.FontFamily, "", 10)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	setFill(pdf, l.Background)
	pdf.Rect(0, 0, l.Width, l.Height, "F")

	for _, ln := range l.Gridlines {
		line(pdf, ln)
	}
	for _, r := range l.Rects {
		rect(pdf, r)
	}
	for _, ln := range l.Axes {
		line(pdf, ln)
	}
	for _, t := range l.Texts {
		text(pdf, l.FontFamily, tr, t)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return pdf.Output(w)
}

func line(pdf *gofpdf.Fpdf, ln Line) {
	setDraw(pdf, ln.Color)
	pdf.SetLineWidth(ln.Width)
	pdf.Line(ln.X1, ln.Y1, ln.X2, ln.Y2)
}

func rect(pdf *gofpdf.Fpdf, r Rect) {
	setFill(pdf, r.Fill)
	style := "F"
	if r.Outline {
		setDraw(pdf, r.Stroke)
		pdf.SetLineWidth(hairline)
		style = "FD"
	}
	pdf.Rect(r.X, r.Y, r.W, r.H, style)
	hatch(pdf, r)
}

func text(pdf *gofpdf.Fpdf, family string, tr func(string) string, t Text) {
	style := ""
	if t.Bold {
		style = "B"
	}
	pdf.SetFont(family, style, t.Size)
	pdf.SetTextColor(int(t.Color.R), int(t.Color.G), int(t.Color.B))

	s := tr(t.Text)
	x := t.X
	switch t.Align {
	case AlignCenter:
		x -= pdf.GetStringWidth(s) / 2
	case AlignRight:
		x -= pdf.GetStringWidth(s)
	}
	// baseline sits about a third of the font size below the line centre
	y := t.Y + parser.PointsToMillimetres(t.Size)*0.35

	if t.Rotation != 0 {
		pdf.TransformBegin()
		pdf.TransformRotate(t.Rotation, t.X, t.Y)
		pdf.Text(x, y, s)
		pdf.TransformEnd()
		return
	}
	pdf.Text(x, y, s)
}

// hatch overlays the rect's texture motif, clipped to the rect.
func hatch(pdf *gofpdf.Fpdf, r Rect) {
	if r.Pattern == "" || r.Pattern == encode.PatternNone || r.W <= 0 || r.H <= 0 {
		return
	}
	ink := inkOn(r.Fill, encode.RGB{R: 0x33, G: 0x33, B: 0x33})
	setDraw(pdf, ink)
	setFill(pdf, ink)
	pdf.SetLineWidth(hairline)

	pdf.ClipRect(r.X, r.Y, r.W, r.H, false)
	defer pdf.ClipEnd()

	horizontal := func() {
		for y := r.Y + hatchStep/2; y < r.Y+r.H; y += hatchStep {
			pdf.Line(r.X, y, r.X+r.W, y)
		}
	}
	vertical := func() {
		for x := r.X + hatchStep/2; x < r.X+r.W; x += hatchStep {
			pdf.Line(x, r.Y, x, r.Y+r.H)
		}
	}
	// rising diagonals run bottom-left to top-right; falling ones mirror them
	diagonal := func(rising bool) {
		for t := -r.H; t < r.W; t += hatchStep {
			if rising {
				pdf.Line(r.X+t, r.Y+r.H, r.X+t+r.H, r.Y)
			} else {
				pdf.Line(r.X+t, r.Y, r.X+t+r.H, r.Y+r.H)
			}
		}
	}

	switch r.Pattern {
	case encode.PatternStripe:
		diagonal(true)
	case encode.PatternCrosshatch:
		diagonal(true)
		diagonal(false)
	case encode.PatternHorizontal:
		horizontal()
	case encode.PatternVertical:
		vertical()
	case encode.PatternGrid:
		horizontal()
		vertical()
	case encode.PatternCircle:
		for y := r.Y + hatchStep/2; y < r.Y+r.H; y += hatchStep {
			for x := r.X + hatchStep/2; x < r.X+r.W; x += hatchStep {
				pdf.Circle(x, y, hatchStep/5, "F")
			}
		}
	}
}

func setFill(pdf *gofpdf.Fpdf, c encode.RGB) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setDraw(pdf *gofpdf.Fpdf, c encode.RGB) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

// writeFile writes data to a temporary sibling of path and renames it into
// place after a successful close.
func writeFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
