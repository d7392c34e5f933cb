package main

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ha1tch/paintcanvas"
)

// view maps window coordinates onto the canvas viewport.
type view struct {
	zoom float32
	panX float32
	panY float32
}

func newView() *view { return &view{zoom: 1} }

// ScreenToCanvas converts a window position into canvas coordinates.
func (v *view) ScreenToCanvas(screenX, screenY float64) paintcanvas.Point {
	return paintcanvas.Point{
		X: (screenX - leftPanel - float64(v.panX)) / float64(v.zoom),
		Y: (screenY - topBar - float64(v.panY)) / float64(v.zoom),
	}
}

// zoomAt scales the view by one wheel step, keeping the canvas point under
// (mx, my) fixed.
func (v *view) zoomAt(mx, my, wheel float32) {
	oldZoom := v.zoom
	v.zoom = clamp(v.zoom*(1+wheel*0.1), 0.25, 8)
	if v.zoom == oldZoom {
		return
	}
	f := v.zoom / oldZoom
	v.panX = mx - leftPanel - (mx-leftPanel-v.panX)*f
	v.panY = my - topBar - (my-topBar-v.panY)*f
}

// inViewport reports whether a window position lies between the panels.
func inViewport(x, y float32) bool {
	return x > leftPanel && x < screenWidth-rightPanel && y > topBar && y < screenHeight-statusBar
}

// toRL converts any color to raylib's straight-alpha RGBA.
func toRL(c color.Color) rl.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return rl.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// fromRL converts a raylib palette color for the canvas.
func fromRL(c rl.Color) color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func clamp(value, lo, hi float32) float32 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
