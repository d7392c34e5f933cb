// Package paintcanvas records freehand pointer gestures as strokes, paints
// them immediately on a drawing surface and keeps a linear undo/redo log of
// the strokes.
//
// A Canvas owns one Surface, one History and the pointer state machine that
// turns gesture events into segments:
//
//	s := raster.New(640, 480)
//	c, err := paintcanvas.New(s, paintcanvas.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	c.PointerDown(10, 10)
//	c.PointerMove(40, 25)
//	c.PointerUp(80, 30)
//	c.Undo()
//
// Painting is immediate mode: every move paints straight onto the surface.
// Moving forward in history repaints only the entries that are missing,
// moving backward clears the surface and repaints the visible prefix.
//
// A Canvas is not safe for concurrent use. Deliver all events and history
// requests from one goroutine.
package paintcanvas
