// Command paintcanvas is an interactive freehand painting window with
// stroke-level undo, redo and replay.
package main

import (
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/pflag"

	"github.com/ha1tch/paintcanvas"
)

func main() {
	os.Exit(run())
}

func run() int {
	def := paintcanvas.DefaultConfig()
	var (
		width, height int
		colorHex      string
		brushSize     float64
		background    string
		modeName      string
		historyLimit  int
		exportDir     string
		logLevel      string
		showHelp      bool
	)

	pflag.IntVarP(&width, "width", "W", 512, "Canvas width in pixels")
	pflag.IntVarP(&height, "height", "H", 512, "Canvas height in pixels")
	pflag.StringVarP(&colorHex, "color", "c", paintcanvas.FormatColor(def.Color), "Initial brush color")
	pflag.Float64VarP(&brushSize, "size", "s", 4, "Initial brush size")
	pflag.StringVarP(&background, "background", "b", paintcanvas.FormatColor(def.Background), "Background color")
	pflag.StringVarP(&modeName, "mode", "m", "line", "Render mode: line or stamp")
	pflag.IntVar(&historyLimit, "history-limit", def.HistoryLimit, "Maximum retained strokes (0 = unlimited)")
	pflag.StringVar(&exportDir, "export-dir", ".", "Directory for Ctrl+S / Ctrl+P exports")
	pflag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help message")
	pflag.Parse()

	if showHelp {
		fmt.Println("paintcanvas - freehand painting with stroke history")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  paintcanvas [flags]")
		fmt.Println()
		fmt.Println("Flags:")
		pflag.PrintDefaults()
		fmt.Println()
		fmt.Println("Keys: Ctrl+Z undo, Ctrl+Y or Ctrl+Shift+Z redo, Ctrl+S export PNG, Ctrl+P export PDF,")
		fmt.Println("      Space+drag or middle button to pan, wheel to zoom")
		return 0
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", logLevel)
		return 1
	}
	paintcanvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	mode, err := paintcanvas.ParseRenderMode(modeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fg, err := paintcanvas.ParseColor(colorHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing --color: %v\n", err)
		return 1
	}
	bg, err := paintcanvas.ParseColor(background)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing --background: %v\n", err)
		return 1
	}
	cfg := paintcanvas.Config{
		Color:        fg,
		BrushSize:    brushSize,
		Background:   bg,
		Width:        width,
		Height:       height,
		HistoryLimit: historyLimit,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(screenWidth, screenHeight, "paintcanvas")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	app, err := NewApp(cfg, mode, exportDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer app.Close()

	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()
	}
	return 0
}
