package paintcanvas

import "math"

// MaxSteps caps the number of points Interpolate walks from end.
const MaxSteps = 1 << 16

// Interpolate returns the points from end toward start, spaced one unit
// apart along the axis with the larger delta. The other axis advances by
// |otherDelta|/|baseDelta| per step. Every point after the first is rounded
// to the nearest integer. The first point is always end.
//
// The stepping tolerates rounding drift over long segments; it is not
// Bresenham.
//
// A non-finite point, or a delta too large to represent, yields only end.
// At most MaxSteps points follow end, so a segment longer than that stops
// short of start.
func Interpolate(end, start Point) []Point {
	if !end.finite() || !start.finite() {
		return []Point{end}
	}
	dx := start.X - end.X
	dy := start.Y - end.Y
	base := math.Max(math.Abs(dx), math.Abs(dy))
	if base == 0 || math.IsInf(base, 0) {
		return []Point{end}
	}

	stepX := axisStep(dx, base)
	stepY := axisStep(dy, base)
	n := int(math.Min(math.Floor(base), MaxSteps))

	points := make([]Point, 0, n+1)
	points = append(points, end)
	for i := 1; i <= n; i++ {
		points = append(points, Point{
			X: math.Round(end.X + float64(i)*stepX),
			Y: math.Round(end.Y + float64(i)*stepY),
		})
	}
	return points
}

// axisStep is the signed per-iteration advance of one axis.
func axisStep(delta, base float64) float64 {
	if delta == 0 {
		return 0
	}
	return math.Copysign(math.Abs(delta)/base, delta)
}

// Stamps returns the points a stamp renderer fills for seg, starting at
// seg.To and walking back to seg.From.
func Stamps(seg Segment) []Point {
	return Interpolate(seg.To, seg.From)
}
