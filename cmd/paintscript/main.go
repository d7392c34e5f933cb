// Command paintscript replays a drawing script headlessly and writes the
// result as PNG and, optionally, PDF.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/ha1tch/paintcanvas"
	"github.com/ha1tch/paintcanvas/internal/script"
	"github.com/ha1tch/paintcanvas/surface/pdf"
	"github.com/ha1tch/paintcanvas/surface/raster"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	width, height int
	color         string
	size          float64
	background    string
	mode          string
	historyLimit  int
	pixelRatio    float64
	scale         float64
	output        string
	pdfPath       string
	logLevel      string
	showHelp      bool
	showVersion   bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	def := paintcanvas.DefaultConfig()

	fs := pflag.NewFlagSet("paintscript", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVarP(&opts.width, "width", "W", def.Width, "Canvas width in logical units")
	fs.IntVarP(&opts.height, "height", "H", def.Height, "Canvas height in logical units")
	fs.StringVarP(&opts.color, "color", "c", paintcanvas.FormatColor(def.Color), "Initial brush color (#rgb, #rrggbb, #rrggbbaa)")
	fs.Float64VarP(&opts.size, "size", "s", def.BrushSize, "Initial brush size")
	fs.StringVarP(&opts.background, "background", "b", paintcanvas.FormatColor(def.Background), "Background color")
	fs.StringVarP(&opts.mode, "mode", "m", "line", "Render mode: line or stamp")
	fs.IntVar(&opts.historyLimit, "history-limit", def.HistoryLimit, "Maximum retained strokes (0 = unlimited)")
	fs.Float64Var(&opts.pixelRatio, "pixel-ratio", 1, "Device pixels per logical unit")
	fs.Float64Var(&opts.scale, "scale", 1, "Output PNG scale relative to the logical size")
	fs.StringVarP(&opts.output, "output", "o", "out.png", "PNG output path (- for stdout, empty to skip)")
	fs.StringVar(&opts.pdfPath, "pdf", "", "Also write a PDF of the visible strokes to this path")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	fs.BoolVarP(&opts.showHelp, "help", "h", false, "Show help message")
	fs.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.showHelp {
		printHelp(stdout, fs)
		return 0
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "paintscript version %s\n", version)
		return 0
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		fmt.Fprintf(stderr, "Error: invalid log level %q\n", opts.logLevel)
		return 1
	}
	paintcanvas.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer paintcanvas.SetLogger(nil)

	cfg, mode, err := opts.config()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	src := stdin
	if rest := fs.Args(); len(rest) > 0 && rest[0] != "-" {
		f, err := os.Open(rest[0])
		if err != nil {
			fmt.Fprintf(stderr, "Error opening script: %v\n", err)
			return 1
		}
		defer f.Close()
		src = f
	}

	surface := raster.New(cfg.Width, cfg.Height,
		raster.WithMode(mode),
		raster.WithPixelRatio(opts.pixelRatio))
	defer surface.Close()

	canvas, err := paintcanvas.New(surface, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	stats, err := script.Exec(canvas, src)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	h := canvas.History()
	paintcanvas.Logger().Info("paintscript: done",
		slog.Int("commands", stats.Commands),
		slog.Int("refused", stats.Refused),
		slog.Int("entries", h.Len()),
		slog.Int("cursor", h.Cursor()))

	if opts.output != "" {
		if err := writePNG(surface, opts.output, opts.scale, stdout); err != nil {
			fmt.Fprintf(stderr, "Error writing PNG: %v\n", err)
			return 1
		}
	}
	if opts.pdfPath != "" {
		if err := writePDF(canvas, mode, opts.pdfPath); err != nil {
			fmt.Fprintf(stderr, "Error writing PDF: %v\n", err)
			return 1
		}
	}
	return 0
}

func (o options) config() (paintcanvas.Config, paintcanvas.RenderMode, error) {
	mode, err := paintcanvas.ParseRenderMode(o.mode)
	if err != nil {
		return paintcanvas.Config{}, mode, err
	}
	fg, err := paintcanvas.ParseColor(o.color)
	if err != nil {
		return paintcanvas.Config{}, mode, fmt.Errorf("--color: %w", err)
	}
	bg, err := paintcanvas.ParseColor(o.background)
	if err != nil {
		return paintcanvas.Config{}, mode, fmt.Errorf("--background: %w", err)
	}
	cfg := paintcanvas.Config{
		Color:        fg,
		BrushSize:    o.size,
		Background:   bg,
		Width:        o.width,
		Height:       o.height,
		HistoryLimit: o.historyLimit,
	}
	return cfg, mode, cfg.Validate()
}

func writePNG(s *raster.Surface, path string, scale float64, stdout io.Writer) error {
	if path == "-" {
		return s.WritePNG(stdout, scale)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.WritePNG(f, scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePDF(c *paintcanvas.Canvas, mode paintcanvas.RenderMode, path string) error {
	w, h := c.Size()
	doc := pdf.New(w, h, pdf.WithMode(mode))
	c.Export(doc)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := doc.Output(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "paintscript - replay a drawing script to PNG/PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  paintscript [flags] [script]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The script is read from stdin when no path (or -) is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Script commands:")
	fmt.Fprintln(w, "  down X Y [N]   move X Y [N]   up X Y [N]   (N = contact count)")
	fmt.Fprintln(w, "  undo   redo   replay N   reset")
	fmt.Fprintln(w, "  color HEX   size N   background HEX   resize W H")
}
