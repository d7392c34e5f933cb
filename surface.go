package paintcanvas

import (
	"fmt"
	"image/color"
	"strings"
)

// Surface is the drawing target a Canvas paints on. The surface is owned
// by the caller; the Canvas only paints on it.
type Surface interface {
	// ClearAndFill discards every painted pixel and fills the surface
	// with bg.
	ClearAndFill(bg color.Color)

	// PaintSegment paints seg with the segment's own color and size.
	PaintSegment(seg Segment)

	// Local translates raw input coordinates into surface-local space.
	Local(x, y float64) Point
}

// Resizer is implemented by surfaces whose backing buffer follows the
// configured logical size.
type Resizer interface {
	Resize(width, height int) error
}

// RenderMode selects how a surface paints a segment.
type RenderMode uint8

const (
	// RenderLine strokes From->To with round caps and joins, width = Size.
	RenderLine RenderMode = iota
	// RenderStamp fills a circle of radius Size at every interpolated
	// point between From and To.
	RenderStamp
)

func (m RenderMode) String() string {
	switch m {
	case RenderLine:
		return "line"
	case RenderStamp:
		return "stamp"
	default:
		return fmt.Sprintf("RenderMode(%d)", uint8(m))
	}
}

// ParseRenderMode parses "line" or "stamp".
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line", "":
		return RenderLine, nil
	case "stamp":
		return RenderStamp, nil
	default:
		return RenderLine, fmt.Errorf("unknown render mode %q (want line or stamp)", s)
	}
}
