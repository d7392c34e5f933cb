package pdf

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/ha1tch/paintcanvas"
)

func TestExportVisibleHistory(t *testing.T) {
	for _, mode := range []paintcanvas.RenderMode{paintcanvas.RenderLine, paintcanvas.RenderStamp} {
		t.Run(mode.String(), func(t *testing.T) {
			screen := &countingSurface{}
			c, err := paintcanvas.New(screen, paintcanvas.DefaultConfig())
			if err != nil {
				t.Fatal(err)
			}
			c.PointerDown(10, 10)
			c.PointerMove(20, 20)
			c.PointerUp(30, 25)
			c.PointerDown(50, 50)
			c.PointerUp(50, 50)
			c.Undo()

			doc := New(640, 480, WithMode(mode), WithCompression(false))
			c.Export(doc)
			if doc.Painted() != 2 {
				t.Errorf("Painted() = %d, want 2 (only the visible stroke)", doc.Painted())
			}

			var buf bytes.Buffer
			if err := doc.Output(&buf); err != nil {
				t.Fatalf("Output() error = %v", err)
			}
			out := buf.String()
			if !strings.HasPrefix(out, "%PDF-") {
				t.Errorf("output does not start with a PDF header: %q", out[:min(len(out), 16)])
			}
			if !strings.Contains(out, "/Title") {
				t.Error("output has no title metadata")
			}
		})
	}
}

func TestClearStartsNewPage(t *testing.T) {
	doc := New(100, 100)
	seg := paintcanvas.Segment{From: paintcanvas.Pt(1, 1), To: paintcanvas.Pt(9, 9), Color: paintcanvas.DefaultConfig().Color, Size: 2}
	doc.PaintSegment(seg)
	doc.PaintSegment(seg)
	doc.ClearAndFill(paintcanvas.DefaultConfig().Background)
	if doc.Painted() != 0 {
		t.Errorf("Painted() = %d after clear, want 0", doc.Painted())
	}
	if err := doc.Resize(0, 1); err == nil {
		t.Error("Resize(0, 1) succeeded")
	}
	if err := doc.Resize(200, 50); err != nil {
		t.Errorf("Resize(200, 50) error = %v", err)
	}
	if p := doc.Local(3, 4); p != paintcanvas.Pt(3, 4) {
		t.Errorf("Local(3, 4) = %v", p)
	}
}

// countingSurface stands in for the on-screen surface.
type countingSurface struct{ painted int }

func (s *countingSurface) ClearAndFill(color.Color)             {}
func (s *countingSurface) PaintSegment(paintcanvas.Segment)     { s.painted++ }
func (s *countingSurface) Local(x, y float64) paintcanvas.Point { return paintcanvas.Pt(x, y) }
