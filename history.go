package paintcanvas

import (
	"image/color"
	"log/slog"
	"slices"
)

// History is the ordered stroke log of one surface. The cursor counts how
// many entries, in order, are currently painted on the surface; entries at
// or past the cursor can be redone.
//
// After any sequence of Commit, Undo, Redo and ReplayTo the surface holds
// the same pixels as clearing it and painting entries[0:cursor] in order.
type History struct {
	surface    Surface
	background color.Color
	entries    []Entry
	cursor     int
	limit      int
}

// NewHistory returns an empty log that replays onto s. A limit > 0 caps the
// number of retained entries; see Commit.
func NewHistory(s Surface, background color.Color, limit int) *History {
	return &History{
		surface:    s,
		background: background,
		limit:      max(limit, 0),
	}
}

// Len returns the number of retained entries.
func (h *History) Len() int { return len(h.entries) }

// Cursor returns the number of entries reflected on the surface.
func (h *History) Cursor() int { return h.cursor }

// Limit returns the retention cap, 0 when unbounded.
func (h *History) Limit() int { return h.limit }

// CanUndo reports whether Undo would move the cursor.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would move the cursor.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries) }

// Entries returns a copy of every retained entry, redoable ones included.
func (h *History) Entries() []Entry {
	return copyEntries(h.entries)
}

// Visible returns a copy of the entries currently painted on the surface.
func (h *History) Visible() []Entry {
	return copyEntries(h.entries[:h.cursor])
}

func copyEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{ID: e.ID, Segments: slices.Clone(e.Segments)}
	}
	return out
}

// Commit appends e as the newest entry and moves the cursor past it. Any
// redoable entries are discarded first. When a limit is set and exceeded,
// the oldest entries are evicted; their pixels stay on the surface until
// the next backward replay, which repaints only retained entries.
//
// Commit does not paint: the entry was painted while it was being drawn.
func (h *History) Commit(e Entry) {
	if h.cursor < len(h.entries) {
		Logger().Debug("paintcanvas: discarding redo branch",
			slog.Int("dropped", len(h.entries)-h.cursor))
		clear(h.entries[h.cursor:])
		h.entries = h.entries[:h.cursor]
	}
	h.entries = append(h.entries, e)
	h.cursor = len(h.entries)
	Logger().Debug("paintcanvas: commit",
		slog.String("entry", e.ID),
		slog.Int("segments", len(e.Segments)),
		slog.Int("cursor", h.cursor))
	h.evict()
}

// SetLimit changes the retention cap and evicts immediately if needed.
func (h *History) SetLimit(limit int) {
	h.limit = max(limit, 0)
	h.evict()
}

// evict drops entries beyond the limit. Redoable entries go before painted
// ones, so the surface never holds a stroke that is no longer below the
// cursor while a later one can still be redone.
func (h *History) evict() {
	if h.limit == 0 || len(h.entries) <= h.limit {
		return
	}
	if h.cursor < len(h.entries) {
		keep := max(h.cursor, h.limit)
		Logger().Debug("paintcanvas: evicted redoable entries",
			slog.Int("evicted", len(h.entries)-keep),
			slog.Int("limit", h.limit))
		clear(h.entries[keep:])
		h.entries = h.entries[:keep]
		if len(h.entries) <= h.limit {
			return
		}
	}
	n := len(h.entries) - h.limit
	clear(h.entries[:n])
	h.entries = append(h.entries[:0], h.entries[n:]...)
	clear(h.entries[len(h.entries):cap(h.entries)])
	h.cursor -= n
	Logger().Debug("paintcanvas: evicted oldest entries",
		slog.Int("evicted", n),
		slog.Int("limit", h.limit))
}

// Undo steps the cursor back by one entry. It reports whether the cursor
// moved.
func (h *History) Undo() bool {
	return h.ReplayTo(h.cursor - 1)
}

// Redo steps the cursor forward by one entry. It reports whether the
// cursor moved.
func (h *History) Redo() bool {
	return h.ReplayTo(h.cursor + 1)
}

// ReplayTo moves the cursor to target, clamped to [0, Len()]. Moving
// forward paints only entries[cursor:target] over the current pixels.
// Moving backward clears the surface and repaints entries[0:target]:
// raster paint cannot be taken back. It reports whether the cursor moved.
func (h *History) ReplayTo(target int) bool {
	target = min(max(target, 0), len(h.entries))
	if target == h.cursor {
		return false
	}
	if target > h.cursor {
		Logger().Debug("paintcanvas: replay forward",
			slog.Int("from", h.cursor), slog.Int("to", target))
		paintEntries(h.surface, h.entries[h.cursor:target])
		h.cursor = target
		return true
	}
	Logger().Debug("paintcanvas: replay backward",
		slog.Int("from", h.cursor), slog.Int("to", target))
	h.cursor = target
	h.Render(h.surface)
	return true
}

// Render clears dst to the background and paints the visible entries.
// dst may be the history's own surface or any other adapter, such as an
// export target.
func (h *History) Render(dst Surface) {
	dst.ClearAndFill(h.background)
	paintEntries(dst, h.entries[:h.cursor])
}

// Reset drops every entry, records bg as the new background and clears
// the surface to it.
func (h *History) Reset(bg color.Color) {
	clear(h.entries)
	h.entries = h.entries[:0]
	h.cursor = 0
	h.background = bg
	h.surface.ClearAndFill(bg)
}

// Background returns the color backward replays clear to.
func (h *History) Background() color.Color { return h.background }

func paintEntries(s Surface, entries []Entry) {
	for _, e := range entries {
		for _, seg := range e.Segments {
			s.PaintSegment(seg)
		}
	}
}
