package main

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ha1tch/paintcanvas"
)

// textureSurface paints into an off-screen render texture that the window
// shows through the view.
type textureSurface struct {
	target rl.RenderTexture2D
	mode   paintcanvas.RenderMode
	view   *view
	width  int
	height int
}

var (
	_ paintcanvas.Surface = (*textureSurface)(nil)
	_ paintcanvas.Resizer = (*textureSurface)(nil)
)

func newTextureSurface(width, height int, mode paintcanvas.RenderMode, v *view) *textureSurface {
	return &textureSurface{
		target: rl.LoadRenderTexture(int32(width), int32(height)),
		mode:   mode,
		view:   v,
		width:  width,
		height: height,
	}
}

func (s *textureSurface) ClearAndFill(bg color.Color) {
	rl.BeginTextureMode(s.target)
	rl.ClearBackground(toRL(bg))
	rl.EndTextureMode()
}

func (s *textureSurface) PaintSegment(seg paintcanvas.Segment) {
	c := toRL(seg.Color)
	size := float32(seg.Size)

	rl.BeginTextureMode(s.target)
	defer rl.EndTextureMode()

	if s.mode == paintcanvas.RenderStamp {
		for _, p := range paintcanvas.Stamps(seg) {
			rl.DrawCircleV(vec(p), size, c)
		}
		return
	}
	to := vec(seg.To)
	if !seg.IsDot() {
		from := vec(seg.From)
		rl.DrawLineEx(from, to, size, c)
		rl.DrawCircleV(from, size/2, c)
	}
	rl.DrawCircleV(to, size/2, c)
}

func (s *textureSurface) Local(x, y float64) paintcanvas.Point {
	return s.view.ScreenToCanvas(x, y)
}

func (s *textureSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	rl.UnloadRenderTexture(s.target)
	s.target = rl.LoadRenderTexture(int32(width), int32(height))
	s.width, s.height = width, height
	return nil
}

func (s *textureSurface) Close() {
	rl.UnloadRenderTexture(s.target)
}

func vec(p paintcanvas.Point) rl.Vector2 {
	return rl.Vector2{X: float32(p.X), Y: float32(p.Y)}
}
