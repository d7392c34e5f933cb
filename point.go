package paintcanvas

import (
	"fmt"
	"image/color"
	"math"
)

// Point is a position in surface-local canvas units.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Segment is one paint operation. From == To paints a single dot.
type Segment struct {
	From  Point
	To    Point
	Color color.Color
	Size  float64
}

// IsDot reports whether the segment has zero length.
func (s Segment) IsDot() bool {
	return s.From == s.To
}

// Entry is the list of segments produced by one gesture.
type Entry struct {
	ID       string
	Segments []Segment
}

// Len returns the number of segments in the entry.
func (e Entry) Len() int {
	return len(e.Segments)
}
