package paintcanvas

import (
	"math"
	"slices"
	"testing"
)

func TestTapProducesDot(t *testing.T) {
	c, s := newTestCanvas(t)
	c.PointerDown(12, 7)
	c.PointerUp(12, 7)

	h := c.History()
	if h.Len() != 1 || h.Cursor() != 1 {
		t.Fatalf("Len, Cursor = %d, %d, want 1, 1", h.Len(), h.Cursor())
	}
	e := h.Entries()[0]
	want := Segment{From: Pt(12, 7), To: Pt(12, 7), Color: c.Color(), Size: c.BrushSize()}
	if !slices.Equal(e.Segments, []Segment{want}) {
		t.Errorf("segments = %v, want [%v]", e.Segments, want)
	}
	if !slices.Equal(s.painted, []Segment{want}) {
		t.Errorf("painted = %v, want [%v]", s.painted, want)
	}
}

func TestFirstMovePaintsAtCurrentPoint(t *testing.T) {
	c, s := newTestCanvas(t)
	c.PointerDown(0, 0)
	c.PointerMove(5, 5)
	c.PointerMove(8, 9)

	if len(s.painted) != 2 {
		t.Fatalf("painted %d segments, want 2", len(s.painted))
	}
	if !s.painted[0].IsDot() || s.painted[0].To != Pt(5, 5) {
		t.Errorf("first segment = %v, want dot at (5,5)", s.painted[0])
	}
	if s.painted[1].From != Pt(5, 5) || s.painted[1].To != Pt(8, 9) {
		t.Errorf("second segment = %v, want (5,5)->(8,9)", s.painted[1])
	}
	// Nothing is committed before the gesture ends.
	if c.History().Len() != 0 {
		t.Errorf("Len() = %d during gesture, want 0", c.History().Len())
	}
}

func TestGestureEndCapturesReleasePoint(t *testing.T) {
	c, _ := newTestCanvas(t)
	drawStroke(c, Pt(0, 0), Pt(1, 1), Pt(2, 2), Pt(3, 3))

	segs := c.History().Entries()[0].Segments
	if len(segs) != 3 {
		t.Fatalf("entry has %d segments, want 3", len(segs))
	}
	if last := segs[len(segs)-1]; last.From != Pt(2, 2) || last.To != Pt(3, 3) {
		t.Errorf("last segment = %v, want (2,2)->(3,3)", last)
	}
}

func TestMultiContactRejected(t *testing.T) {
	var transitions []bool
	c, s := newTestCanvas(t, WithDrawingObserver(func(d bool) {
		transitions = append(transitions, d)
	}))

	c.Handle(Event{Kind: GestureStart, X: 1, Y: 1, Contacts: 2})
	c.Handle(Event{Kind: GestureMove, X: 2, Y: 2, Contacts: 2})
	c.Handle(Event{Kind: GestureEnd, X: 3, Y: 3, Contacts: 2})

	if c.Drawing() {
		t.Error("Drawing() = true after multi-contact start")
	}
	if c.History().Len() != 0 || len(s.painted) != 0 {
		t.Errorf("multi-contact gesture produced %d entries and %d painted segments",
			c.History().Len(), len(s.painted))
	}
	if len(transitions) != 0 {
		t.Errorf("observer saw %v, want nothing", transitions)
	}
}

func TestMultiContactDuringGestureIgnored(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.PointerDown(0, 0)
	c.PointerMove(1, 0)
	c.Handle(Event{Kind: GestureMove, X: 50, Y: 50, Contacts: 3})
	c.PointerUp(2, 0)

	segs := c.History().Entries()[0].Segments
	for _, seg := range segs {
		if seg.To == Pt(50, 50) {
			t.Errorf("multi-contact move was recorded: %v", seg)
		}
	}
	if len(segs) != 2 {
		t.Errorf("entry has %d segments, want 2", len(segs))
	}
}

func TestNonFiniteEventsIgnored(t *testing.T) {
	c, s := newTestCanvas(t)
	c.PointerDown(0, 0)
	c.PointerMove(1, 1)
	c.PointerMove(math.NaN(), 4)
	c.PointerMove(math.Inf(-1), 4)
	c.PointerUp(math.Inf(1), math.Inf(1))
	if !c.Drawing() {
		t.Fatal("non-finite end closed the gesture")
	}
	c.PointerUp(2, 2)

	if got := c.History().Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
	want := []Segment{
		{From: Pt(1, 1), To: Pt(1, 1)},
		{From: Pt(1, 1), To: Pt(2, 2)},
	}
	segs := c.History().Entries()[0].Segments
	if len(segs) != len(want) || len(s.painted) != len(want) {
		t.Fatalf("recorded %d, painted %d segments, want %d", len(segs), len(s.painted), len(want))
	}
	for i, seg := range segs {
		if seg.From != want[i].From || seg.To != want[i].To {
			t.Errorf("segment %d = %v -> %v, want %v -> %v", i, seg.From, seg.To, want[i].From, want[i].To)
		}
	}
}

func TestMoveAndEndWhileIdleAreNoops(t *testing.T) {
	c, s := newTestCanvas(t)
	c.PointerMove(4, 4)
	c.PointerUp(4, 4)
	if c.History().Len() != 0 || len(s.painted) != 0 {
		t.Errorf("idle events produced %d entries, %d segments", c.History().Len(), len(s.painted))
	}
}

func TestDrawingObserver(t *testing.T) {
	var transitions []bool
	c, _ := newTestCanvas(t, WithDrawingObserver(func(d bool) {
		transitions = append(transitions, d)
	}))

	c.PointerDown(0, 0)
	if !c.Drawing() {
		t.Error("Drawing() = false after PointerDown")
	}
	c.PointerDown(1, 1) // already drawing
	c.PointerUp(1, 1)
	if c.Drawing() {
		t.Error("Drawing() = true after PointerUp")
	}
	if !slices.Equal(transitions, []bool{true, false}) {
		t.Errorf("transitions = %v, want [true false]", transitions)
	}
}

func TestLocalTranslation(t *testing.T) {
	c, s := newTestCanvas(t)
	s.offset = Pt(100, 50)
	c.PointerDown(110, 60)
	c.PointerUp(110, 60)

	seg := c.History().Entries()[0].Segments[0]
	if seg.To != Pt(10, 10) {
		t.Errorf("segment at %v, want (10,10)", seg.To)
	}
}

func TestGestureKeepsStartingStyle(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.PointerDown(0, 0)
	c.PointerMove(1, 1)
	if err := c.SetColor(red); err != nil {
		t.Fatal(err)
	}
	if err := c.SetBrushSize(9); err != nil {
		t.Fatal(err)
	}
	c.PointerUp(2, 2)

	for _, seg := range c.History().Entries()[0].Segments {
		if seg.Color == red || seg.Size == 9 {
			t.Errorf("segment %v picked up mid-gesture style change", seg)
		}
	}

	c.PointerDown(5, 5)
	c.PointerUp(5, 5)
	seg := c.History().Entries()[1].Segments[0]
	if seg.Color != red || seg.Size != 9 {
		t.Errorf("next gesture uses %v/%g, want red/9", seg.Color, seg.Size)
	}
}

func TestEventKindString(t *testing.T) {
	tests := map[EventKind]string{
		GestureStart: "start",
		GestureMove:  "move",
		GestureEnd:   "end",
		EventKind(9): "EventKind(9)",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("EventKind(%d).String() = %q, want %q", uint8(k), got, want)
		}
	}
}
