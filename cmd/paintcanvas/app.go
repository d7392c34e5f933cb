package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ha1tch/paintcanvas"
	"github.com/ha1tch/paintcanvas/surface/pdf"
	"github.com/ha1tch/paintcanvas/surface/raster"
)

const (
	screenWidth  = 1280
	screenHeight = 800
	fontSize     = 8
	leftPanel    = 100
	rightPanel   = 200
	topBar       = 50
	statusBar    = 24
	historyRowH  = 30
	historyTop   = 40
)

// Button is a clickable panel control.
type Button struct {
	rect     rl.Rectangle
	text     string
	hover    bool
	selected bool
}

// Slider picks a value in [min, max].
type Slider struct {
	rect  rl.Rectangle
	value float32
	min   float32
	max   float32
	label string
}

// Action buttons in the right panel, left to right.
const (
	actionUndo = iota
	actionRedo
	actionClear
)

// Export buttons in the left panel.
const (
	exportPNG = iota
	exportPDF
)

// App is the interactive front end around a paintcanvas.Canvas.
type App struct {
	canvas  *paintcanvas.Canvas
	surface *textureSurface
	view    *view
	mode    paintcanvas.RenderMode

	// Panning
	isPanning bool
	panStartX float32
	panStartY float32

	// Input
	drawing    bool
	lastScreen rl.Vector2
	moved      bool

	// UI
	palette       []rl.Color
	sizeSlider    Slider
	modeButtons   []Button
	actionButtons []Button
	exportButtons []Button
	historyScroll int

	exportDir string
	message   string
}

// NewApp creates the window-side state. The window must already be open.
func NewApp(cfg paintcanvas.Config, mode paintcanvas.RenderMode, exportDir string) (*App, error) {
	app := &App{
		view:      newView(),
		mode:      mode,
		exportDir: exportDir,
	}
	app.surface = newTextureSurface(cfg.Width, cfg.Height, mode, app.view)

	canvas, err := paintcanvas.New(app.surface, cfg,
		paintcanvas.WithDrawingObserver(func(drawing bool) { app.drawing = drawing }))
	if err != nil {
		app.surface.Close()
		return nil, err
	}
	app.canvas = canvas

	app.palette = []rl.Color{
		rl.Black, rl.White, rl.Red, rl.Green, rl.Blue,
		rl.Yellow, rl.Orange, rl.Purple, rl.Pink, rl.Brown,
		rl.Gray, rl.DarkGray, rl.LightGray, rl.SkyBlue, rl.Magenta,
		{R: 255, G: 0, B: 128, A: 255}, {R: 128, G: 255, B: 0, A: 255}, {R: 0, G: 128, B: 255, A: 255},
	}

	app.sizeSlider = Slider{
		rect:  rl.Rectangle{X: 10, Y: 70, Width: 80, Height: 20},
		value: float32(cfg.BrushSize),
		min:   1,
		max:   50,
		label: "SIZE",
	}

	app.modeButtons = []Button{
		{rect: rl.Rectangle{X: 10, Y: 130, Width: 38, Height: 20}, text: "LINE", selected: mode == paintcanvas.RenderLine},
		{rect: rl.Rectangle{X: 52, Y: 130, Width: 38, Height: 20}, text: "STAMP", selected: mode == paintcanvas.RenderStamp},
	}

	app.exportButtons = []Button{
		{rect: rl.Rectangle{X: 10, Y: screenHeight - statusBar - 40, Width: 38, Height: 30}, text: "PNG"},
		{rect: rl.Rectangle{X: 52, Y: screenHeight - statusBar - 40, Width: 38, Height: 30}, text: "PDF"},
	}

	x := float32(screenWidth - rightPanel + 10)
	y := float32(screenHeight - statusBar - 40)
	app.actionButtons = []Button{
		{rect: rl.Rectangle{X: x, Y: y, Width: 55, Height: 30}, text: "UNDO"},
		{rect: rl.Rectangle{X: x + 62, Y: y, Width: 55, Height: 30}, text: "REDO"},
		{rect: rl.Rectangle{X: x + 124, Y: y, Width: 55, Height: 30}, text: "CLEAR"},
	}

	return app, nil
}

// Close releases the render texture.
func (app *App) Close() {
	app.surface.Close()
}

// SetMode switches between line and stamp rendering and repaints the
// visible history in the new mode.
func (app *App) SetMode(m paintcanvas.RenderMode) {
	if app.drawing || m == app.mode {
		return
	}
	app.mode = m
	app.surface.mode = m
	app.canvas.Export(app.surface)
	for i := range app.modeButtons {
		app.modeButtons[i].selected = paintcanvas.RenderMode(i) == m
	}
}

// Update processes one frame of input.
func (app *App) Update() {
	mousePos := rl.GetMousePosition()

	// Keyboard shortcuts
	if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) {
		if rl.IsKeyPressed(rl.KeyZ) {
			if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
				app.canvas.Redo()
			} else {
				app.canvas.Undo()
			}
		}
		if rl.IsKeyPressed(rl.KeyY) {
			app.canvas.Redo()
		}
		if rl.IsKeyPressed(rl.KeyS) {
			app.export(exportPNG)
		}
		if rl.IsKeyPressed(rl.KeyP) {
			app.export(exportPDF)
		}
	}

	// Space+drag panning
	if rl.IsKeyDown(rl.KeySpace) && !app.drawing {
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			app.isPanning = true
			app.panStartX = mousePos.X - app.view.panX
			app.panStartY = mousePos.Y - app.view.panY
		}
	}
	if app.isPanning && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		app.view.panX = mousePos.X - app.panStartX
		app.view.panY = mousePos.Y - app.panStartY
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) || !rl.IsKeyDown(rl.KeySpace) {
		app.isPanning = false
	}
	if app.isPanning {
		return
	}

	// Zoom with the wheel, except mid-stroke where it would bend the line
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !app.drawing {
		switch {
		case inViewport(mousePos.X, mousePos.Y):
			app.view.zoomAt(mousePos.X, mousePos.Y, wheel)
		case mousePos.X > screenWidth-rightPanel:
			app.historyScroll = max(app.historyScroll-int(wheel), 0)
		}
	}

	app.updatePanels(mousePos)
	app.updateStroke(mousePos)

	// Middle button panning
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		app.view.panX += delta.X
		app.view.panY += delta.Y
	}
}

func (app *App) updatePanels(mousePos rl.Vector2) {
	clicked := rl.IsMouseButtonPressed(rl.MouseLeftButton)

	for i := range app.modeButtons {
		btn := &app.modeButtons[i]
		btn.hover = rl.CheckCollisionPointRec(mousePos, btn.rect)
		if btn.hover && clicked {
			app.SetMode(paintcanvas.RenderMode(i))
		}
	}

	for i, c := range app.palette {
		if rl.CheckCollisionPointRec(mousePos, paletteRect(i)) && clicked {
			if err := app.canvas.SetColor(fromRL(c)); err != nil {
				app.message = err.Error()
			}
		}
	}

	if rl.CheckCollisionPointRec(mousePos, app.sizeSlider.rect) && rl.IsMouseButtonDown(rl.MouseLeftButton) && !app.drawing {
		s := &app.sizeSlider
		relX := mousePos.X - s.rect.X
		s.value = clamp(s.min+(relX/s.rect.Width)*(s.max-s.min), s.min, s.max)
		if err := app.canvas.SetBrushSize(float64(s.value)); err != nil {
			app.message = err.Error()
		}
	}

	for i := range app.exportButtons {
		btn := &app.exportButtons[i]
		btn.hover = rl.CheckCollisionPointRec(mousePos, btn.rect)
		if btn.hover && clicked {
			app.export(i)
		}
	}

	for i := range app.actionButtons {
		btn := &app.actionButtons[i]
		btn.hover = rl.CheckCollisionPointRec(mousePos, btn.rect)
		if !btn.hover || !clicked {
			continue
		}
		switch i {
		case actionUndo:
			app.canvas.Undo()
		case actionRedo:
			app.canvas.Redo()
		case actionClear:
			app.canvas.Reset()
			app.historyScroll = 0
		}
	}

	// Clicking a history row replays to just after that entry; the row
	// above the list replays to the empty canvas.
	if clicked && mousePos.X > screenWidth-rightPanel {
		if n, ok := app.historyRowAt(mousePos.Y); ok {
			app.canvas.ReplayTo(n)
		}
	}
}

// updateStroke forwards pointer input to the canvas. Mouse input reports a
// single contact; on touch screens the touch count is forwarded so that
// multi-finger gestures are rejected.
func (app *App) updateStroke(mousePos rl.Vector2) {
	contacts := max(int(rl.GetTouchPointCount()), 1)
	inside := inViewport(mousePos.X, mousePos.Y)
	x, y := float64(mousePos.X), float64(mousePos.Y)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && inside && !rl.IsKeyDown(rl.KeySpace) {
		app.canvas.Handle(paintcanvas.Event{Kind: paintcanvas.GestureStart, X: x, Y: y, Contacts: contacts})
		app.lastScreen = mousePos
		app.moved = false
	}
	if !app.canvas.Drawing() {
		return
	}
	switch {
	case rl.IsMouseButtonReleased(rl.MouseLeftButton), !inside:
		app.canvas.Handle(paintcanvas.Event{Kind: paintcanvas.GestureEnd, X: x, Y: y, Contacts: contacts})
	case rl.IsMouseButtonDown(rl.MouseLeftButton) && (mousePos != app.lastScreen || !app.moved):
		// A stationary press still paints its first dot.
		app.canvas.Handle(paintcanvas.Event{Kind: paintcanvas.GestureMove, X: x, Y: y, Contacts: contacts})
		app.lastScreen = mousePos
		app.moved = true
	}
}

// historyRowAt maps a y position in the history panel to a replay target.
func (app *App) historyRowAt(y float32) (int, bool) {
	if y < historyTop || y >= screenHeight-statusBar-50 {
		return 0, false
	}
	row := int(y-historyTop)/historyRowH + app.historyScroll
	entries := app.canvas.History().Len()
	if row > entries {
		return 0, false
	}
	// Row 0 is the newest entry.
	return entries - row, true
}

func (app *App) export(kind int) {
	var (
		path string
		err  error
	)
	switch kind {
	case exportPNG:
		path, err = app.exportPNG()
	case exportPDF:
		path, err = app.exportPDF()
	}
	if err != nil {
		paintcanvas.Logger().Warn("paintcanvas: export failed", slog.Any("error", err))
		app.message = "EXPORT FAILED: " + err.Error()
		return
	}
	paintcanvas.Logger().Info("paintcanvas: exported", slog.String("path", path))
	app.message = "SAVED " + path
}

// exportPNG renders the visible history off-screen rather than reading the
// render texture back, which would need a vertical flip.
func (app *App) exportPNG() (string, error) {
	w, h := app.canvas.Size()
	s := raster.New(w, h, raster.WithMode(app.mode))
	defer s.Close()
	app.canvas.Export(s)

	path := filepath.Join(app.exportDir, "export.png")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := s.WritePNG(f, 1); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

func (app *App) exportPDF() (string, error) {
	w, h := app.canvas.Size()
	doc := pdf.New(w, h, pdf.WithMode(app.mode))
	app.canvas.Export(doc)

	path := filepath.Join(app.exportDir, "export.pdf")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := doc.Output(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

func paletteRect(i int) rl.Rectangle {
	return rl.Rectangle{X: float32(10 + (i%3)*28), Y: float32(180 + (i/3)*28), Width: 24, Height: 24}
}

// Draw renders one frame.
func (app *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 40, G: 40, B: 40, A: 255})

	mousePos := rl.GetMousePosition()

	app.drawViewport(mousePos)
	app.drawLeftPanel()
	app.drawHistoryPanel(mousePos)
	app.drawStatusBar()

	rl.EndDrawing()
}

func (app *App) drawViewport(mousePos rl.Vector2) {
	w, h := app.canvas.Size()
	rl.BeginScissorMode(leftPanel, topBar, screenWidth-leftPanel-rightPanel, screenHeight-topBar-statusBar)

	// Checkerboard shows through translucent backgrounds.
	tileSize := max(int32(16*app.view.zoom), 4)
	offsetX := int32(app.view.panX) % (tileSize * 2)
	offsetY := int32(app.view.panY) % (tileSize * 2)
	for y := int32(-2); y < screenHeight/tileSize+2; y++ {
		for x := int32(-2); x < screenWidth/tileSize+2; x++ {
			if (x+y)%2 == 0 {
				rl.DrawRectangle(leftPanel+x*tileSize+offsetX, topBar+y*tileSize+offsetY,
					tileSize, tileSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
			}
		}
	}

	// Render textures are stored bottom-up.
	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: -float32(h)}
	dstRect := rl.Rectangle{
		X:      leftPanel + app.view.panX,
		Y:      topBar + app.view.panY,
		Width:  float32(w) * app.view.zoom,
		Height: float32(h) * app.view.zoom,
	}
	rl.DrawTexturePro(app.surface.target.Texture, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
	rl.DrawRectangleLinesEx(dstRect, 2, rl.Color{R: 100, G: 100, B: 100, A: 255})

	if inViewport(mousePos.X, mousePos.Y) && !app.isPanning {
		size := float32(app.canvas.BrushSize()) * app.view.zoom
		if app.mode == paintcanvas.RenderStamp {
			rl.DrawCircleLines(int32(mousePos.X), int32(mousePos.Y), size, rl.White)
		} else {
			rl.DrawCircleLines(int32(mousePos.X), int32(mousePos.Y), size/2, rl.White)
		}
	}
	if app.isPanning {
		rl.DrawText("HAND", int32(mousePos.X+10), int32(mousePos.Y-10), fontSize, rl.Yellow)
	} else if rl.IsKeyDown(rl.KeySpace) {
		rl.DrawText("CLICK AND DRAG TO PAN", int32(mousePos.X+10), int32(mousePos.Y+10), fontSize, rl.Yellow)
	}

	rl.EndScissorMode()

	// Top bar
	rl.DrawRectangle(leftPanel, 0, screenWidth-leftPanel-rightPanel, topBar, rl.Color{R: 60, G: 60, B: 60, A: 255})
	info := fmt.Sprintf("ZOOM: %.0f%% | SIZE: %dX%d | MODE: %s | BRUSH: %.0f %s",
		app.view.zoom*100, w, h, app.mode, app.canvas.BrushSize(), paintcanvas.FormatColor(app.canvas.Color()))
	rl.DrawText(info, leftPanel+10, 20, fontSize, rl.White)
}

func (app *App) drawLeftPanel() {
	rl.DrawRectangle(0, 0, leftPanel, screenHeight-statusBar, rl.Color{R: 50, G: 50, B: 50, A: 255})
	rl.DrawText("PAINTCANVAS", 10, 10, fontSize, rl.White)

	s := app.sizeSlider
	rl.DrawText(s.label, int32(s.rect.X), int32(s.rect.Y-12), fontSize, rl.LightGray)
	rl.DrawRectangleRec(s.rect, rl.Color{R: 60, G: 60, B: 60, A: 255})
	sliderPos := s.rect.X + (s.value-s.min)/(s.max-s.min)*s.rect.Width
	rl.DrawRectangle(int32(sliderPos-2), int32(s.rect.Y), 4, int32(s.rect.Height), rl.White)
	rl.DrawText(fmt.Sprintf("%.0f", app.canvas.BrushSize()), int32(s.rect.X), int32(s.rect.Y+25), fontSize, rl.White)

	rl.DrawText("MODE", 10, 115, fontSize, rl.LightGray)
	for _, btn := range app.modeButtons {
		drawButton(btn, 6)
	}

	rl.DrawText("COLORS", 10, 165, fontSize, rl.LightGray)
	current := toRL(app.canvas.Color())
	for i, c := range app.palette {
		rect := paletteRect(i)
		rl.DrawRectangleRec(rect, c)
		if current == c {
			rl.DrawRectangleLinesEx(rect, 2, rl.White)
		} else {
			rl.DrawRectangleLinesEx(rect, 1, rl.Color{R: 70, G: 70, B: 70, A: 255})
		}
	}

	rl.DrawRectangle(10, 360, 40, 30, current)
	rl.DrawRectangleLines(10, 360, 40, 30, rl.White)

	rl.DrawText("EXPORT", 10, screenHeight-statusBar-55, fontSize, rl.LightGray)
	for _, btn := range app.exportButtons {
		drawButton(btn, fontSize)
	}
}

func (app *App) drawHistoryPanel(mousePos rl.Vector2) {
	h := app.canvas.History()
	rl.DrawRectangle(screenWidth-rightPanel, 0, rightPanel, screenHeight-statusBar, rl.Color{R: 50, G: 50, B: 50, A: 255})
	rl.DrawText(fmt.Sprintf("HISTORY %d/%d", h.Cursor(), h.Len()), screenWidth-rightPanel+10, 10, fontSize, rl.White)

	entries := h.Entries()
	maxRows := (screenHeight - statusBar - 50 - historyTop) / historyRowH
	for row := 0; row < maxRows; row++ {
		n := len(entries) - (row + app.historyScroll)
		if n < 0 {
			break
		}
		y := int32(historyTop + row*historyRowH)
		rect := rl.Rectangle{X: screenWidth - rightPanel + 10, Y: float32(y), Width: rightPanel - 20, Height: historyRowH - 4}

		bg := rl.Color{R: 60, G: 60, B: 60, A: 255}
		switch {
		case n == h.Cursor():
			bg = rl.Color{R: 80, G: 80, B: 120, A: 255}
		case rl.CheckCollisionPointRec(mousePos, rect):
			bg = rl.Color{R: 70, G: 70, B: 70, A: 255}
		}
		rl.DrawRectangleRec(rect, bg)

		label := "(EMPTY)"
		textColor := rl.White
		if n > 0 {
			e := entries[n-1]
			label = fmt.Sprintf("%3d  %s  %d SEG", n, shortID(e.ID), e.Len())
			if n > h.Cursor() {
				textColor = rl.Gray
			}
		}
		rl.DrawText(label, int32(rect.X)+6, y+9, fontSize, textColor)
	}

	for i, btn := range app.actionButtons {
		enabled := !app.drawing
		switch i {
		case actionUndo:
			enabled = enabled && h.CanUndo()
		case actionRedo:
			enabled = enabled && h.CanRedo()
		}
		if !enabled {
			btn.hover = false
		}
		drawButton(btn, fontSize)
	}
}

func (app *App) drawStatusBar() {
	h := app.canvas.History()
	state := "IDLE"
	if app.drawing {
		state = "DRAWING"
	}
	rl.DrawRectangle(0, screenHeight-statusBar, screenWidth, statusBar, rl.Color{R: 30, G: 30, B: 30, A: 255})
	status := fmt.Sprintf("%s | CURSOR %d OF %d", state, h.Cursor(), h.Len())
	if limit := h.Limit(); limit > 0 {
		status += fmt.Sprintf(" (LIMIT %d)", limit)
	}
	if app.message != "" {
		status += " | " + app.message
	}
	rl.DrawText(status, 10, screenHeight-statusBar+8, fontSize, rl.LightGray)
}

func drawButton(btn Button, size int32) {
	c := rl.Color{R: 70, G: 70, B: 70, A: 255}
	if btn.selected {
		c = rl.Color{R: 100, G: 100, B: 150, A: 255}
	} else if btn.hover {
		c = rl.Color{R: 80, G: 80, B: 80, A: 255}
	}
	rl.DrawRectangleRec(btn.rect, c)
	rl.DrawRectangleLinesEx(btn.rect, 1, rl.Color{R: 90, G: 90, B: 90, A: 255})

	textW := rl.MeasureText(btn.text, size)
	textX := int32(btn.rect.X + btn.rect.Width/2 - float32(textW)/2)
	textY := int32(btn.rect.Y + btn.rect.Height/2 - float32(size)/2)
	rl.DrawText(btn.text, textX, textY, size, rl.White)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
