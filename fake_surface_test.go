package paintcanvas

import (
	"image/color"
	"slices"
	"strconv"
	"testing"
)

// modelSurface remembers what a raster surface would show: the background
// of the last clear and every segment painted since.
type modelSurface struct {
	bg      color.Color
	painted []Segment
	clears  int
	offset  Point
}

func (s *modelSurface) ClearAndFill(bg color.Color) {
	s.bg = bg
	s.painted = nil
	s.clears++
}

func (s *modelSurface) PaintSegment(seg Segment) {
	s.painted = append(s.painted, seg)
}

func (s *modelSurface) Local(x, y float64) Point {
	return Point{X: x - s.offset.X, Y: y - s.offset.Y}
}

// flatten returns the segments of entries in paint order.
func flatten(entries []Entry) []Segment {
	var segs []Segment
	for _, e := range entries {
		segs = append(segs, e.Segments...)
	}
	return segs
}

// assertShows fails unless s shows bg with exactly the segments of entries.
func assertShows(t *testing.T, s *modelSurface, bg color.Color, entries []Entry) {
	t.Helper()
	if s.bg != bg {
		t.Errorf("surface background = %v, want %v", s.bg, bg)
	}
	want := flatten(entries)
	if !slices.Equal(s.painted, want) {
		t.Errorf("surface shows %d segments %v, want %d segments %v",
			len(s.painted), s.painted, len(want), want)
	}
}

// sequentialIDs returns an ID generator yielding "e1", "e2", ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "e" + strconv.Itoa(n)
	}
}

func newTestCanvas(t *testing.T, opts ...Option) (*Canvas, *modelSurface) {
	t.Helper()
	s := &modelSurface{}
	opts = append([]Option{WithIDGenerator(sequentialIDs())}, opts...)
	c, err := New(s, DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, s
}

// drawStroke performs down at pts[0], moves through pts[1:len-1] and up at
// the last point. It produces len(pts)-1 segments (the first one a dot).
func drawStroke(c *Canvas, pts ...Point) {
	c.PointerDown(pts[0].X, pts[0].Y)
	for _, p := range pts[1 : len(pts)-1] {
		c.PointerMove(p.X, p.Y)
	}
	last := pts[len(pts)-1]
	c.PointerUp(last.X, last.Y)
}
