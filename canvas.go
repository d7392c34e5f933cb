package paintcanvas

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/google/uuid"
)

// Canvas is one drawing surface instance: it owns the pointer state
// machine and the stroke history, and paints on a caller-owned Surface.
type Canvas struct {
	cfg     Config
	surface Surface
	history *History
	pointer pointerState

	observe func(drawing bool)
	newID   func() string
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithDrawingObserver registers fn to be called whenever a gesture starts
// (true) or ends (false). Front-ends use it to reflect the drawing state.
func WithDrawingObserver(fn func(drawing bool)) Option {
	return func(c *Canvas) {
		c.observe = fn
	}
}

// WithIDGenerator replaces the random UUID assigned to committed entries.
func WithIDGenerator(fn func() string) Option {
	return func(c *Canvas) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New validates cfg, clears s to the background and returns an idle
// canvas with an empty history.
func New(s Surface, cfg Config, opts ...Option) (*Canvas, error) {
	if s == nil {
		return nil, fmt.Errorf("paintcanvas: nil surface")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Canvas{
		cfg:     cfg,
		surface: s,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.history = NewHistory(s, cfg.Background, cfg.HistoryLimit)
	c.Reset()
	return c, nil
}

// Config returns a copy of the current configuration.
func (c *Canvas) Config() Config { return c.cfg }

// Surface returns the surface the canvas paints on.
func (c *Canvas) Surface() Surface { return c.surface }

// History returns a read-only view of the stroke log. Navigate it through
// the Canvas methods, which refuse requests during a gesture.
func (c *Canvas) History() HistoryView { return HistoryView{h: c.history} }

// HistoryView reads a canvas history. It tracks later changes to the log.
type HistoryView struct {
	h *History
}

func (v HistoryView) Len() int                { return v.h.Len() }
func (v HistoryView) Cursor() int             { return v.h.Cursor() }
func (v HistoryView) Limit() int              { return v.h.Limit() }
func (v HistoryView) CanUndo() bool           { return v.h.CanUndo() }
func (v HistoryView) CanRedo() bool           { return v.h.CanRedo() }
func (v HistoryView) Entries() []Entry        { return v.h.Entries() }
func (v HistoryView) Visible() []Entry        { return v.h.Visible() }
func (v HistoryView) Background() color.Color { return v.h.Background() }

// Undo removes the newest visible entry from the surface. It is a no-op
// while a gesture is in progress. It reports whether the cursor moved.
func (c *Canvas) Undo() bool {
	if c.refuseDuringGesture("undo") {
		return false
	}
	return c.history.Undo()
}

// Redo repaints the next redoable entry. It is a no-op while a gesture is
// in progress. It reports whether the cursor moved.
func (c *Canvas) Redo() bool {
	if c.refuseDuringGesture("redo") {
		return false
	}
	return c.history.Redo()
}

// ReplayTo moves the history cursor to n, clamped to the log bounds.
func (c *Canvas) ReplayTo(n int) bool {
	if c.refuseDuringGesture("replay") {
		return false
	}
	return c.history.ReplayTo(n)
}

func (c *Canvas) refuseDuringGesture(op string) bool {
	if !c.pointer.drawing {
		return false
	}
	Logger().Debug("paintcanvas: history request during gesture ignored", slog.String("op", op))
	return true
}

// Reset clears the surface to the background and empties the history. A
// gesture in progress is abandoned without committing.
func (c *Canvas) Reset() {
	c.abortGesture()
	c.history.Reset(c.cfg.Background)
	Logger().Info("paintcanvas: reset",
		slog.Int("width", c.cfg.Width),
		slog.Int("height", c.cfg.Height),
		slog.String("background", FormatColor(c.cfg.Background)))
}

// Export paints the visible history onto dst over the background. dst
// should have the canvas size.
func (c *Canvas) Export(dst Surface) {
	c.history.Render(dst)
}

// Color returns the brush color used for new gestures.
func (c *Canvas) Color() color.Color { return c.cfg.Color }

// SetColor changes the brush color. A gesture in progress keeps the color
// it started with.
func (c *Canvas) SetColor(col color.Color) error {
	if col == nil {
		return fmt.Errorf("%w: nil brush color", ErrInvalidColor)
	}
	c.cfg.Color = col
	return nil
}

// BrushSize returns the brush size used for new gestures.
func (c *Canvas) BrushSize() float64 { return c.cfg.BrushSize }

// SetBrushSize changes the brush size. A gesture in progress keeps the
// size it started with.
func (c *Canvas) SetBrushSize(size float64) error {
	if !(size > 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidBrushSize, size)
	}
	c.cfg.BrushSize = size
	return nil
}

// Background returns the surface background color.
func (c *Canvas) Background() color.Color { return c.cfg.Background }

// SetBackground changes the background and resets the canvas. The reset
// is not undoable.
func (c *Canvas) SetBackground(bg color.Color) error {
	if bg == nil {
		return fmt.Errorf("%w: nil background color", ErrInvalidColor)
	}
	c.cfg.Background = bg
	c.Reset()
	return nil
}

// Size returns the logical surface size.
func (c *Canvas) Size() (width, height int) { return c.cfg.Width, c.cfg.Height }

// SetSize changes the logical surface size, resizes the surface when it
// implements Resizer, and resets the canvas. The reset is not undoable.
func (c *Canvas) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	if r, ok := c.surface.(Resizer); ok {
		if err := r.Resize(width, height); err != nil {
			return fmt.Errorf("paintcanvas: resize surface: %w", err)
		}
	}
	c.cfg.Width, c.cfg.Height = width, height
	c.Reset()
	return nil
}

// SetHistoryLimit changes how many entries the history retains. 0 is
// unbounded. Lowering the limit evicts the oldest entries immediately.
func (c *Canvas) SetHistoryLimit(limit int) error {
	if limit < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidHistoryLimit, limit)
	}
	c.cfg.HistoryLimit = limit
	c.history.SetLimit(limit)
	return nil
}
