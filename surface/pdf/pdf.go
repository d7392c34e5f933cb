// Package pdf provides a vector paintcanvas.Surface that paints segments
// into a single-page PDF document sized to the canvas. One logical unit is
// one PDF point.
//
// A PDF cannot erase ink, so ClearAndFill starts a new document. Replaying
// a history onto the surface therefore leaves exactly the visible strokes:
//
//	doc := pdf.New(640, 480)
//	canvas.Export(doc)
//	err := doc.Output(w)
package pdf

import (
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/ha1tch/paintcanvas"
)

// Surface paints segments into a gofpdf document.
type Surface struct {
	doc      *gofpdf.Fpdf
	mode     paintcanvas.RenderMode
	width    float64
	height   float64
	title    string
	compress bool
	alpha    float64
	painted  int
}

var (
	_ paintcanvas.Surface = (*Surface)(nil)
	_ paintcanvas.Resizer = (*Surface)(nil)
)

// Option configures a Surface.
type Option func(*Surface)

// WithMode selects line or stamp rendering. The default is line.
func WithMode(m paintcanvas.RenderMode) Option {
	return func(s *Surface) { s.mode = m }
}

// WithTitle sets the document title metadata.
func WithTitle(title string) Option {
	return func(s *Surface) { s.title = title }
}

// WithCompression toggles content stream compression. On by default.
func WithCompression(on bool) Option {
	return func(s *Surface) { s.compress = on }
}

// New returns a surface with an empty transparent page of width x height
// points.
func New(width, height int, opts ...Option) *Surface {
	s := &Surface{
		width:    float64(max(width, 1)),
		height:   float64(max(height, 1)),
		title:    "paintcanvas",
		compress: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.doc = s.newDocument()
	return s
}

func (s *Surface) newDocument() *gofpdf.Fpdf {
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: s.width, Ht: s.height},
	})
	doc.SetCompression(s.compress)
	doc.SetTitle(s.title, true)
	doc.SetCreator("paintcanvas", true)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	doc.SetLineCapStyle("round")
	doc.SetLineJoinStyle("round")
	s.alpha = 1
	s.painted = 0
	return doc
}

// ClearAndFill implements paintcanvas.Surface by starting a new document
// whose page is filled with bg.
func (s *Surface) ClearAndFill(bg color.Color) {
	s.doc = s.newDocument()
	s.setFill(bg)
	s.doc.Rect(0, 0, s.width, s.height, "F")
}

// PaintSegment implements paintcanvas.Surface.
func (s *Surface) PaintSegment(seg paintcanvas.Segment) {
	s.painted++
	if s.mode == paintcanvas.RenderStamp {
		s.setFill(seg.Color)
		for _, p := range paintcanvas.Stamps(seg) {
			s.doc.Circle(p.X, p.Y, seg.Size, "F")
		}
		return
	}
	if seg.IsDot() {
		s.setFill(seg.Color)
		s.doc.Circle(seg.To.X, seg.To.Y, seg.Size/2, "F")
		return
	}
	s.setDraw(seg.Color)
	s.doc.SetLineWidth(seg.Size)
	s.doc.Line(seg.From.X, seg.From.Y, seg.To.X, seg.To.Y)
}

// Local implements paintcanvas.Surface. Export targets receive recorded
// segments only, so coordinates pass through unchanged.
func (s *Surface) Local(x, y float64) paintcanvas.Point {
	return paintcanvas.Pt(x, y)
}

// Resize implements paintcanvas.Resizer. The current page is discarded.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("pdf: invalid size %dx%d", width, height)
	}
	s.width, s.height = float64(width), float64(height)
	s.doc = s.newDocument()
	return nil
}

// Painted returns the number of segments painted since the last clear.
func (s *Surface) Painted() int { return s.painted }

// Output finishes the document and writes it to w. The surface must be
// cleared before it is painted on again.
func (s *Surface) Output(w io.Writer) error {
	if err := s.doc.Output(w); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}

func (s *Surface) setFill(c color.Color) {
	n := s.nrgba(c)
	s.doc.SetFillColor(int(n.R), int(n.G), int(n.B))
}

func (s *Surface) setDraw(c color.Color) {
	n := s.nrgba(c)
	s.doc.SetDrawColor(int(n.R), int(n.G), int(n.B))
}

// nrgba converts c and applies its alpha to the graphics state.
func (s *Surface) nrgba(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if a := float64(n.A) / 0xff; a != s.alpha {
		s.doc.SetAlpha(a, "Normal")
		s.alpha = a
	}
	return n
}
