package paintcanvas

import (
	"math"
	"slices"
	"testing"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name       string
		end, start Point
		want       []Point
	}{
		{
			name:  "same point",
			end:   Pt(3.5, 2),
			start: Pt(3.5, 2),
			want:  []Point{Pt(3.5, 2)},
		},
		{
			name:  "horizontal",
			end:   Pt(10, 0),
			start: Pt(0, 0),
			want: []Point{
				Pt(10, 0), Pt(9, 0), Pt(8, 0), Pt(7, 0), Pt(6, 0), Pt(5, 0),
				Pt(4, 0), Pt(3, 0), Pt(2, 0), Pt(1, 0), Pt(0, 0),
			},
		},
		{
			name:  "vertical upward",
			end:   Pt(0, 0),
			start: Pt(0, -4),
			want:  []Point{Pt(0, 0), Pt(0, -1), Pt(0, -2), Pt(0, -3), Pt(0, -4)},
		},
		{
			name:  "x dominant diagonal",
			end:   Pt(0, 0),
			start: Pt(4, 2),
			want:  []Point{Pt(0, 0), Pt(1, 1), Pt(2, 1), Pt(3, 2), Pt(4, 2)},
		},
		{
			name:  "y dominant toward negative quadrant",
			end:   Pt(0, 0),
			start: Pt(-2, -6),
			want: []Point{
				Pt(0, 0), Pt(0, -1), Pt(-1, -2), Pt(-1, -3),
				Pt(-1, -4), Pt(-2, -5), Pt(-2, -6),
			},
		},
		{
			name:  "NaN start",
			end:   Pt(0, 0),
			start: Pt(math.NaN(), 0),
			want:  []Point{Pt(0, 0)},
		},
		{
			name:  "infinite start",
			end:   Pt(2, 3),
			start: Pt(math.Inf(1), 0),
			want:  []Point{Pt(2, 3)},
		},
		{
			name:  "delta overflows",
			end:   Pt(-math.MaxFloat64, 0),
			start: Pt(math.MaxFloat64, 0),
			want:  []Point{Pt(-math.MaxFloat64, 0)},
		},
		{
			name:  "fractional end is kept",
			end:   Pt(0.4, 0),
			start: Pt(3, 0),
			want:  []Point{Pt(0.4, 0), Pt(1, 0), Pt(2, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpolate(tt.end, tt.start)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Interpolate(%v, %v) = %v, want %v", tt.end, tt.start, got, tt.want)
			}
		})
	}
}

func TestInterpolateSpacing(t *testing.T) {
	end, start := Pt(100, 37), Pt(3, 250)
	pts := Interpolate(end, start)
	if pts[0] != end {
		t.Fatalf("first point = %v, want %v", pts[0], end)
	}
	// y is dominant: 213 units, 214 points.
	if len(pts) != 214 {
		t.Fatalf("len = %d, want 214", len(pts))
	}
	for i := 1; i < len(pts); i++ {
		dy := pts[i].Y - pts[i-1].Y
		if dy != 1 {
			t.Fatalf("step %d: dy = %g, want 1", i, dy)
		}
		dx := pts[i].X - pts[i-1].X
		if dx > 0 || dx < -1 {
			t.Fatalf("step %d: dx = %g, want within [-1, 0]", i, dx)
		}
	}
}

func TestStamps(t *testing.T) {
	seg := Segment{From: Pt(0, 0), To: Pt(3, 0), Size: 2}
	want := []Point{Pt(3, 0), Pt(2, 0), Pt(1, 0), Pt(0, 0)}
	if got := Stamps(seg); !slices.Equal(got, want) {
		t.Errorf("Stamps() = %v, want %v", got, want)
	}

	dot := Segment{From: Pt(5, 5), To: Pt(5, 5)}
	if !dot.IsDot() {
		t.Error("IsDot() = false for zero-length segment")
	}
	if got := Stamps(dot); len(got) != 1 || got[0] != Pt(5, 5) {
		t.Errorf("Stamps(dot) = %v, want [(5,5)]", got)
	}
}

func TestInterpolateLongSegmentIsBounded(t *testing.T) {
	got := Interpolate(Pt(0, 0), Pt(1e20, 0))
	if len(got) != MaxSteps+1 {
		t.Fatalf("len = %d, want %d", len(got), MaxSteps+1)
	}
	if got[0] != Pt(0, 0) || got[1] != Pt(1, 0) || got[MaxSteps] != Pt(MaxSteps, 0) {
		t.Errorf("points = %v, %v ... %v", got[0], got[1], got[MaxSteps])
	}
}
