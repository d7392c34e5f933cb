// Package raster provides a software paintcanvas.Surface backed by a gg
// drawing context.
//
// Segments are painted either as round-capped strokes or as stamped discs
// along the interpolated points, depending on the render mode:
//
//	s := raster.New(640, 480, raster.WithMode(paintcanvas.RenderStamp))
//	defer s.Close()
//
// The backing pixmap is PixelRatio times the logical size; the context
// transform scales logical units, so segments stay in canvas units.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"math"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/ha1tch/paintcanvas"
)

// Surface is a gg-backed raster surface. It is not safe for concurrent use.
type Surface struct {
	dc     *gg.Context
	mode   paintcanvas.RenderMode
	ratio  float64
	origin paintcanvas.Point
	width  int
	height int
}

var (
	_ paintcanvas.Surface = (*Surface)(nil)
	_ paintcanvas.Resizer = (*Surface)(nil)
	_ io.Closer           = (*Surface)(nil)
)

// Option configures a Surface.
type Option func(*Surface)

// WithMode selects line or stamp rendering. The default is line.
func WithMode(m paintcanvas.RenderMode) Option {
	return func(s *Surface) {
		s.mode = m
	}
}

// WithPixelRatio sets how many device pixels back one logical unit.
// Ratios <= 0 are ignored.
func WithPixelRatio(r float64) Option {
	return func(s *Surface) {
		if r > 0 {
			s.ratio = r
		}
	}
}

// WithOrigin sets the position of the surface's top-left corner in the
// input source's coordinate space. Local subtracts it.
func WithOrigin(x, y float64) Option {
	return func(s *Surface) {
		s.origin = paintcanvas.Pt(x, y)
	}
}

// New creates a surface of width x height logical units. Non-positive
// sizes are clamped to 1.
func New(width, height int, opts ...Option) *Surface {
	s := &Surface{
		ratio:  1,
		width:  max(width, 1),
		height: max(height, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dc = gg.NewContext(s.device(s.width), s.device(s.height))
	s.dc.Scale(s.ratio, s.ratio)
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
	return s
}

func (s *Surface) device(n int) int {
	return max(int(math.Ceil(float64(n)*s.ratio)), 1)
}

// Width returns the logical width.
func (s *Surface) Width() int { return s.width }

// Height returns the logical height.
func (s *Surface) Height() int { return s.height }

// PixelRatio returns the device pixels per logical unit.
func (s *Surface) PixelRatio() float64 { return s.ratio }

// Mode returns the render mode.
func (s *Surface) Mode() paintcanvas.RenderMode { return s.mode }

// ClearAndFill implements paintcanvas.Surface.
func (s *Surface) ClearAndFill(bg color.Color) {
	s.dc.ClearWithColor(toGG(bg))
}

// PaintSegment implements paintcanvas.Surface.
func (s *Surface) PaintSegment(seg paintcanvas.Segment) {
	c := toGG(seg.Color)
	s.dc.SetRGBA(c.R, c.G, c.B, c.A)

	if s.mode == paintcanvas.RenderStamp {
		for _, p := range paintcanvas.Stamps(seg) {
			s.dc.DrawCircle(p.X, p.Y, seg.Size)
			s.fill()
		}
		return
	}

	// A round cap on a zero-length line is a disc of the line width.
	if seg.IsDot() {
		s.dc.DrawCircle(seg.To.X, seg.To.Y, seg.Size/2)
		s.fill()
		return
	}
	s.dc.SetLineWidth(seg.Size)
	s.dc.DrawLine(seg.From.X, seg.From.Y, seg.To.X, seg.To.Y)
	if err := s.dc.Stroke(); err != nil {
		paintcanvas.Logger().Warn("raster: stroke failed", slog.Any("err", err))
	}
}

func (s *Surface) fill() {
	if err := s.dc.Fill(); err != nil {
		paintcanvas.Logger().Warn("raster: fill failed", slog.Any("err", err))
	}
}

// Local implements paintcanvas.Surface.
func (s *Surface) Local(x, y float64) paintcanvas.Point {
	return paintcanvas.Pt(x-s.origin.X, y-s.origin.Y)
}

// SetOrigin moves the surface within the input source's space.
func (s *Surface) SetOrigin(x, y float64) {
	s.origin = paintcanvas.Pt(x, y)
}

// Resize implements paintcanvas.Resizer. The contents are discarded.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("raster: invalid size %dx%d", width, height)
	}
	if err := s.dc.Resize(s.device(width), s.device(height)); err != nil {
		return fmt.Errorf("raster: %w", err)
	}
	s.width, s.height = width, height
	return nil
}

// Image returns a copy of the device pixels.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the device pixels as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// WritePNG writes the surface as PNG scaled by scale relative to the
// logical size: scale 1 yields width x height pixels whatever the pixel
// ratio.
func (s *Surface) WritePNG(w io.Writer, scale float64) error {
	if !(scale > 0) {
		return fmt.Errorf("raster: invalid export scale %g", scale)
	}
	src := s.dc.Image()
	dw := max(int(math.Round(float64(s.width)*scale)), 1)
	dh := max(int(math.Round(float64(s.height)*scale)), 1)
	if src.Bounds().Dx() == dw && src.Bounds().Dy() == dh {
		return png.Encode(w, src)
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return png.Encode(w, dst)
}

// Close releases the drawing context.
func (s *Surface) Close() error {
	return s.dc.Close()
}

// toGG converts c to gg's straight-alpha unit components.
func toGG(c color.Color) gg.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return gg.RGBA{
		R: float64(n.R) / 0xff,
		G: float64(n.G) / 0xff,
		B: float64(n.B) / 0xff,
		A: float64(n.A) / 0xff,
	}
}
