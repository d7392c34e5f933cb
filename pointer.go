package paintcanvas

import (
	"fmt"
	"image/color"
	"log/slog"
)

// EventKind identifies a gesture event.
type EventKind uint8

const (
	// GestureStart begins a stroke. Its coordinates are not used.
	GestureStart EventKind = iota + 1
	// GestureMove extends the stroke to the event position.
	GestureMove
	// GestureEnd extends the stroke to the event position and commits it.
	GestureEnd
)

func (k EventKind) String() string {
	switch k {
	case GestureStart:
		return "start"
	case GestureMove:
		return "move"
	case GestureEnd:
		return "end"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is one raw pointer event. X and Y are in the input source's space
// and are translated by Surface.Local. Contacts is the number of
// simultaneous touch points; mouse input reports 0 or 1.
type Event struct {
	Kind     EventKind
	X, Y     float64
	Contacts int
}

// pointerState is the transient per-gesture state. The zero value is idle.
type pointerState struct {
	drawing bool
	last    Point
	hasLast bool
	color   color.Color
	size    float64
	current []Segment
}

// Handle feeds one event to the pointer state machine. Events reporting
// more than one contact, or with NaN or infinite coordinates, are dropped
// without changing state.
func (c *Canvas) Handle(ev Event) {
	if ev.Contacts > 1 {
		Logger().Debug("paintcanvas: ignoring multi-contact event",
			slog.String("kind", ev.Kind.String()),
			slog.Int("contacts", ev.Contacts))
		return
	}
	if !Pt(ev.X, ev.Y).finite() {
		Logger().Debug("paintcanvas: ignoring non-finite event",
			slog.String("kind", ev.Kind.String()),
			slog.Float64("x", ev.X),
			slog.Float64("y", ev.Y))
		return
	}
	switch ev.Kind {
	case GestureStart:
		c.start()
	case GestureMove:
		c.move(ev.X, ev.Y)
	case GestureEnd:
		c.end(ev.X, ev.Y)
	}
}

// PointerDown starts a single-contact gesture.
func (c *Canvas) PointerDown(x, y float64) {
	c.Handle(Event{Kind: GestureStart, X: x, Y: y, Contacts: 1})
}

// PointerMove continues the current gesture.
func (c *Canvas) PointerMove(x, y float64) {
	c.Handle(Event{Kind: GestureMove, X: x, Y: y, Contacts: 1})
}

// PointerUp ends the current gesture at (x, y).
func (c *Canvas) PointerUp(x, y float64) {
	c.Handle(Event{Kind: GestureEnd, X: x, Y: y, Contacts: 1})
}

// Drawing reports whether a gesture is in progress.
func (c *Canvas) Drawing() bool {
	return c.pointer.drawing
}

func (c *Canvas) start() {
	if c.pointer.drawing {
		return
	}
	c.pointer = pointerState{
		drawing: true,
		color:   c.cfg.Color,
		size:    c.cfg.BrushSize,
	}
	c.notifyDrawing(true)
}

func (c *Canvas) move(x, y float64) {
	if !c.pointer.drawing {
		return
	}
	seg := c.record(c.surface.Local(x, y))
	c.surface.PaintSegment(seg)
}

// record appends the segment ending at p to the accumulator. The first
// segment of a gesture starts and ends at p so a tap leaves a mark.
func (c *Canvas) record(p Point) Segment {
	from := p
	if c.pointer.hasLast {
		from = c.pointer.last
	}
	seg := Segment{From: from, To: p, Color: c.pointer.color, Size: c.pointer.size}
	c.pointer.current = append(c.pointer.current, seg)
	c.pointer.last, c.pointer.hasLast = p, true
	return seg
}

func (c *Canvas) end(x, y float64) {
	if !c.pointer.drawing {
		return
	}
	// The input may not emit a trailing move at the release position.
	c.move(x, y)
	if len(c.pointer.current) > 0 {
		c.history.Commit(Entry{ID: c.newID(), Segments: c.pointer.current})
	}
	c.abortGesture()
}

// abortGesture returns the state machine to idle without committing.
func (c *Canvas) abortGesture() {
	wasDrawing := c.pointer.drawing
	c.pointer = pointerState{}
	if wasDrawing {
		c.notifyDrawing(false)
	}
}

func (c *Canvas) notifyDrawing(drawing bool) {
	if c.observe != nil {
		c.observe(drawing)
	}
}
