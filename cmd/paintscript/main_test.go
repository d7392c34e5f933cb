package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testScript = `color #0000ff
size 3
down 5 5
move 20 20
up 30 10
`

func TestRunWritesPNGAndPDF(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "draw.txt")
	if err := os.WriteFile(scriptPath, []byte(testScript), 0o644); err != nil {
		t.Fatal(err)
	}
	pngPath := filepath.Join(dir, "out.png")
	pdfPath := filepath.Join(dir, "out.pdf")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-W", "40", "-H", "30", "--scale", "2", "-o", pngPath, "--pdf", pdfPath, scriptPath},
		strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}

	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 60 {
		t.Errorf("PNG size = %dx%d, want 80x60", b.Dx(), b.Dy())
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("PDF output has no header")
	}
}

func TestRunReadsStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-W", "20", "-H", "10", "-o", "-"}, strings.NewReader(testScript), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}
	img, err := png.Decode(&stdout)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("PNG size = %dx%d, want 20x10", b.Dx(), b.Dy())
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		script  string
		want    int
		wantErr string
	}{
		{"unknown flag", []string{"--nope"}, "", 2, "unknown flag"},
		{"bad color", []string{"--color", "blue"}, "", 1, "--color"},
		{"bad mode", []string{"--mode", "spray"}, "", 1, "spray"},
		{"bad size", []string{"--size", "0"}, "", 1, "brush size"},
		{"bad log level", []string{"--log-level", "loud"}, "", 1, "log level"},
		{"script error", []string{"-o", ""}, "down 1 1\nwiggle\n", 1, "line 2"},
		{"missing script", []string{filepath.Join(t.TempDir(), "missing.txt")}, "", 1, "opening script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, strings.NewReader(tt.script), &stdout, &stderr); got != tt.want {
				t.Fatalf("run() = %d, want %d", got, tt.want)
			}
			if !strings.Contains(stderr.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want it to mention %q", stderr.String(), tt.wantErr)
			}
		})
	}
}

func TestRunHelpAndVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--help"}, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("run(--help) = %d", code)
	}
	if !strings.Contains(stdout.String(), "resize W H") {
		t.Errorf("help output missing script commands: %q", stdout.String())
	}
	stdout.Reset()
	if code := run([]string{"-v"}, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("run(-v) = %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "paintscript version") {
		t.Errorf("version output = %q", stdout.String())
	}
}
